package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstack/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestRepository_LogEvent(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{
		UserID:      1,
		EventType:   entities.AuditEventRescore,
		Action:      "formula_update",
		Description: "Recomputed 10 scores",
		Status:      entities.AuditStatusSuccess,
	}

	err := repo.LogEvent(event)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func seedEvents(t *testing.T, repo *Repository) time.Time {
	now := time.Now()
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			UserID:    1,
			EventType: entities.AuditEventRescore,
			Action:    "rescore",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: now.Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(&entities.AuditEvent{
			UserID:    2,
			EventType: entities.AuditEventIntegrityAudit,
			Action:    "scheduled_audit",
			Status:    entities.AuditStatusFailed,
			CreatedAt: now.Add(-48 * time.Hour),
		}))
	}
	return now
}

func TestRepository_Query(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	now := seedEvents(t, repo)

	tests := []struct {
		name     string
		filter   Filter
		total    int64
		returned int
	}{
		{"everything", Filter{}, 20, 20},
		{"one user", Filter{UserID: 1}, 15, 15},
		{"by type", Filter{EventType: entities.AuditEventIntegrityAudit}, 5, 5},
		{"by status", Filter{Status: entities.AuditStatusFailed}, 5, 5},
		{"since", Filter{Since: now.Add(-24 * time.Hour)}, 15, 15},
		{"page", Filter{UserID: 1, Limit: 5, Offset: 10}, 15, 5},
		{"past the end", Filter{UserID: 1, Limit: 5, Offset: 15}, 15, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, total, err := repo.Query(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			assert.Len(t, events, tt.returned)
		})
	}
}

func TestRepository_GetEvents_Ordering(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	seedEvents(t, repo)

	events, _, err := repo.GetEvents(1, 10, 0)
	require.NoError(t, err)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].CreatedAt.After(events[i-1].CreatedAt))
	}

	page2, _, err := repo.GetEvents(1, 10, 10)
	require.NoError(t, err)
	assert.NotEqual(t, events[0].ID, page2[0].ID)
}

func TestRepository_LatestOfType(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	latest, err := repo.LatestOfType(1, entities.AuditEventRescore)
	require.NoError(t, err)
	assert.Nil(t, latest)

	seedEvents(t, repo)
	latest, err = repo.LatestOfType(2, entities.AuditEventIntegrityAudit)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "scheduled_audit", latest.Action)
}

func TestRepository_DeleteOldEvents(t *testing.T) {
	repo := NewRepository(setupTestDB(t))
	now := seedEvents(t, repo)

	deleted, err := repo.DeleteOldEvents(now.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)

	_, total, err := repo.GetEvents(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
}

func TestRepository_GetEventByID(t *testing.T) {
	repo := NewRepository(setupTestDB(t))

	event := &entities.AuditEvent{UserID: 1, EventType: entities.AuditEventPreferences, Action: "update"}
	require.NoError(t, repo.LogEvent(event))

	got, err := repo.GetEventByID(event.ID)
	require.NoError(t, err)
	assert.Equal(t, "update", got.Action)

	_, err = repo.GetEventByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
