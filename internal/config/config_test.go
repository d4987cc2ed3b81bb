package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "HOST", "DATABASE_PATH", "LOG_LEVEL", "LOG_FORMAT",
		"INTEGRITY_AUDIT_WORKERS", "TASK_WORKERS", "DEMO_MODE",
	} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, int32(8188), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2*time.Second, cfg.Global.ShutdownTimeout())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.False(t, cfg.Database.LogSQL)
	assert.Equal(t, DefaultAuditArchiveDir, cfg.Audit.ArchiveDir)
	assert.Equal(t, 30, cfg.Audit.RetentionDays)
	assert.Equal(t, 1, cfg.IntegrityAudit.Workers)
	assert.Equal(t, int64(64), cfg.Analytics.CacheSize)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 15*time.Minute, cfg.Tasks.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.Tasks.CleanupInterval)
	assert.False(t, cfg.Demo.Enabled)
}

func TestNewConfig_Environment(t *testing.T) {
	tests := []struct {
		env    string
		value  string
		assert func(t *testing.T, cfg *Config)
	}{
		{"PORT", "9000", func(t *testing.T, cfg *Config) { assert.Equal(t, int32(9000), cfg.HTTP.Port) }},
		{"DATABASE_PATH", "/data/library.db", func(t *testing.T, cfg *Config) { assert.Equal(t, "/data/library.db", cfg.Database.Path) }},
		{"LOG_FORMAT", "console", func(t *testing.T, cfg *Config) { assert.Equal(t, "console", cfg.Log.Format) }},
		{"INTEGRITY_AUDIT_WORKERS", "4", func(t *testing.T, cfg *Config) { assert.Equal(t, 4, cfg.IntegrityAudit.Workers) }},
		{"ANALYTICS_CACHE_SIZE", "8", func(t *testing.T, cfg *Config) { assert.Equal(t, int64(8), cfg.Analytics.CacheSize) }},
		{"TASKS_ENABLED", "false", func(t *testing.T, cfg *Config) { assert.False(t, cfg.Tasks.Enabled) }},
		{"TASK_RELEASE_AFTER", "30m", func(t *testing.T, cfg *Config) { assert.Equal(t, 30*time.Minute, cfg.Tasks.ReleaseAfter) }},
		{"DEMO_MODE", "true", func(t *testing.T, cfg *Config) { assert.True(t, cfg.Demo.Enabled) }},
		{"SHUTDOWN_TIMEOUT_IN_SECONDS", "10", func(t *testing.T, cfg *Config) { assert.Equal(t, 10*time.Second, cfg.Global.ShutdownTimeout()) }},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			tt.assert(t, NewConfig())
		})
	}
}
