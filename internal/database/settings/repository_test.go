package settings

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstack/internal/entities"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "settings.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Setting{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewRepository(db)
}

func TestRepository_SetSetting_New(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.SetSetting(entities.SettingKeyIntegrityAuditSchedule, "0 3 * * *")
	require.NoError(t, err)

	setting, err := repo.GetSetting(entities.SettingKeyIntegrityAuditSchedule)
	require.NoError(t, err)
	assert.Equal(t, entities.SettingKeyIntegrityAuditSchedule, setting.Key)
	assert.Equal(t, "0 3 * * *", setting.Value)
}

func TestRepository_SetSetting_Update(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SetSetting(entities.SettingKeyIntegrityAuditEnabled, "false"))
	require.NoError(t, repo.SetSetting(entities.SettingKeyIntegrityAuditEnabled, "true"))

	value, ok, err := repo.GetValue(entities.SettingKeyIntegrityAuditEnabled)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestRepository_GetValue_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	value, ok, err := repo.GetValue("nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)

	_, err = repo.GetSetting("nonexistent")
	assert.Error(t, err)
}

func TestRepository_SetMany(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SetSetting(entities.SettingKeyIntegrityAuditLastStatus, "failed"))
	err := repo.SetMany(map[string]string{
		entities.SettingKeyIntegrityAuditLastStatus:  "success",
		entities.SettingKeyIntegrityAuditLastMessage: "3 findings",
	})
	require.NoError(t, err)

	tests := map[string]string{
		entities.SettingKeyIntegrityAuditLastStatus:  "success",
		entities.SettingKeyIntegrityAuditLastMessage: "3 findings",
	}
	for key, expected := range tests {
		value, ok, err := repo.GetValue(key)
		require.NoError(t, err)
		assert.True(t, ok, key)
		assert.Equal(t, expected, value, key)
	}
}

func TestRepository_DeleteSetting(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SetSetting("to-delete", "value"))
	require.NoError(t, repo.DeleteSetting("to-delete"))

	_, ok, err := repo.GetValue("to-delete")
	require.NoError(t, err)
	assert.False(t, ok)

	// Should not error even if key doesn't exist
	assert.NoError(t, repo.DeleteSetting("nonexistent"))
}

func TestRepository_DeleteSettings(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.SetMany(map[string]string{"a": "1", "b": "2", "c": "3"}))
	require.NoError(t, repo.DeleteSettings("a", "b"))
	require.NoError(t, repo.DeleteSettings())

	_, ok, _ := repo.GetValue("a")
	assert.False(t, ok)
	_, ok, _ = repo.GetValue("c")
	assert.True(t, ok)
}
