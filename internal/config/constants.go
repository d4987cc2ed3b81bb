package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./bookstack.db"

	// DefaultAuditArchiveDir holds archived integrity reports
	DefaultAuditArchiveDir = "./audit-reports"
)
