package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Log
		Database
		Audit
		IntegrityAudit
		Analytics
		Tasks
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // json or console
	}
	Database struct {
		Path   string
		LogSQL bool // gorm logs every statement at info level
	}
	Audit struct {
		ArchiveDir    string // scheduled integrity reports, one JSON file per run
		RetentionDays int    // Days to keep audit events (default: 30)
	}
	// INTEGRITY_AUDIT_ENABLED and INTEGRITY_AUDIT_SCHEDULE are resolved by
	// settingsstore, below any value saved through the API.
	IntegrityAudit struct {
		Workers int // > 1 parallelises the duplicate scan
	}
	Analytics struct {
		CacheSize int64 // dashboards kept in the memo cache
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Demo struct {
		Enabled bool // read-only API over the sample library
	}
)

// ShutdownTimeout is the grace period given to in-flight work on exit.
func (g Global) ShutdownTimeout() time.Duration {
	return time.Duration(g.ShutdownTimeoutInSeconds) * time.Second
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("log_sql", false)
	v.SetDefault("audit_archive_dir", DefaultAuditArchiveDir)
	v.SetDefault("audit_retention_days", 30)

	v.SetDefault("integrity_audit_workers", 1)

	v.SetDefault("analytics_cache_size", 64)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: Database{
			Path:   v.GetString("DATABASE_PATH"),
			LogSQL: v.GetBool("LOG_SQL"),
		},
		Audit: Audit{
			ArchiveDir:    v.GetString("AUDIT_ARCHIVE_DIR"),
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		IntegrityAudit: IntegrityAudit{
			Workers: v.GetInt("INTEGRITY_AUDIT_WORKERS"),
		},
		Analytics: Analytics{
			CacheSize: v.GetInt64("ANALYTICS_CACHE_SIZE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
