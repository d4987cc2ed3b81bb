package http

import (
	"github.com/mrlokans/bookstack/internal/database"
	"github.com/mrlokans/bookstack/internal/settingsstore"
)

// Library is the full surface of the library service used by the API.
type Library interface {
	BookLibrary
	AnalyticsLibrary
	IntegrityLibrary
	PreferencesLibrary
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Library  Library
	Database *database.Database
	Events   EventReader

	// Integrity audit schedule (optional)
	SettingsStore  *settingsstore.SettingsStore
	AuditScheduler AuditScheduler

	// Reports saved by scheduled audits (optional)
	Archive ReportArchive

	// Task queue client (optional)
	TaskClient TaskQueue

	// Application info
	Version string

	// DemoMode rejects writes other than score previews.
	DemoMode bool
}
