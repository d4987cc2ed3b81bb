package settingsstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstack/internal/database"
	"github.com/mrlokans/bookstack/internal/database/settings"
	"github.com/mrlokans/bookstack/internal/entities"
)

func setupTestStore(t *testing.T) (*SettingsStore, *settings.Repository) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := settings.NewRepository(db.DB)
	return New(repo), repo
}

func TestIntegrityAuditEnabled(t *testing.T) {
	t.Setenv(envIntegrityAuditEnabled, "")
	store, repo := setupTestStore(t)

	info := store.GetIntegrityAuditConfigInfo(time.Now())
	assert.False(t, info.Enabled)
	assert.Equal(t, SourceDefault, info.EnabledSource)
	assert.Nil(t, info.NextRunAt)

	require.NoError(t, store.SetIntegrityAuditEnabled(true))
	info = store.GetIntegrityAuditConfigInfo(time.Now())
	assert.True(t, info.Enabled)
	assert.Equal(t, SourceDatabase, info.EnabledSource)
	assert.NotNil(t, info.NextRunAt)

	require.NoError(t, repo.DeleteSetting(entities.SettingKeyIntegrityAuditEnabled))
	assert.False(t, store.GetIntegrityAuditConfig().Enabled)
}

func TestIntegrityAuditEnabledWithEnv(t *testing.T) {
	t.Setenv(envIntegrityAuditEnabled, "true")
	store, _ := setupTestStore(t)

	info := store.GetIntegrityAuditConfigInfo(time.Now())
	assert.True(t, info.Enabled)
	assert.Equal(t, SourceEnvironment, info.EnabledSource)

	// Database should override env
	require.NoError(t, store.SetIntegrityAuditEnabled(false))
	info = store.GetIntegrityAuditConfigInfo(time.Now())
	assert.False(t, info.Enabled)
	assert.Equal(t, SourceDatabase, info.EnabledSource)
}

func TestIntegrityAuditSchedule(t *testing.T) {
	t.Setenv(envIntegrityAuditSchedule, "")
	store, _ := setupTestStore(t)

	assert.Equal(t, DefaultIntegrityAuditSchedule, store.GetIntegrityAuditConfig().Schedule)

	assert.Error(t, store.SetIntegrityAuditSchedule("every day"))
	require.NoError(t, store.SetIntegrityAuditSchedule("0 */6 * * *"))

	info := store.GetIntegrityAuditConfigInfo(time.Now())
	assert.Equal(t, "0 */6 * * *", info.Schedule)
	assert.Equal(t, SourceDatabase, info.ScheduleSource)
	assert.Equal(t, "Every 6 hours", info.ScheduleDescription)

	require.NoError(t, store.ClearIntegrityAuditSettings())
	assert.Equal(t, DefaultIntegrityAuditSchedule, store.GetIntegrityAuditConfig().Schedule)
}

func TestIntegrityAuditStatus(t *testing.T) {
	store, _ := setupTestStore(t)

	status := store.GetIntegrityAuditStatus()
	assert.Nil(t, status.LastRunAt)
	assert.Empty(t, status.Status)

	at := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetIntegrityAuditStatus("success", "2 users audited", at))

	status = store.GetIntegrityAuditStatus()
	require.NotNil(t, status.LastRunAt)
	assert.True(t, at.Equal(*status.LastRunAt))
	assert.Equal(t, "success", status.Status)
	assert.Equal(t, "2 users audited", status.Message)
}

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 3 * * *", true},
		{"*/15 * * * *", true},
		{"0 0 * * 0", true},
		{"", false},
		{"* * *", false},
		{"0 0 0 * * *", false},
		{"61 * * * *", false},
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestGetNextRunTime(t *testing.T) {
	from := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	next, err := GetNextRunTime("0 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 11, 3, 0, 0, 0, time.UTC), *next)

	_, err = GetNextRunTime("bad", from)
	assert.Error(t, err)
}
