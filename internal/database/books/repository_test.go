package books

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/scoring"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "books.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return NewRepository(db)
}

func intPtr(v int) *int { return &v }

func TestRepository_ListForUser_Order(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.Create([]entities.Book{
		{UserID: 1, Title: "No order"},
		{UserID: 1, Title: "Second", Order: intPtr(2)},
		{UserID: 1, Title: "First", Order: intPtr(1)},
		{UserID: 2, Title: "Other user", Order: intPtr(0)},
	}))

	books, err := repo.ListForUser(1)
	require.NoError(t, err)

	var titles []string
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{"First", "Second", "No order"}, titles)
}

func TestRepository_ListByStatus(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.Create([]entities.Book{
		{UserID: 1, Title: "A", Status: entities.StatusRead},
		{UserID: 1, Title: "B", Status: entities.StatusToRead},
	}))

	books, err := repo.ListByStatus(1, entities.StatusToRead)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "B", books[0].Title)
}

func TestRepository_GetByID_ScopedToUser(t *testing.T) {
	repo := setupTestDB(t)
	books := []entities.Book{{UserID: 1, Title: "Mine"}}
	require.NoError(t, repo.Create(books))

	got, err := repo.GetByID(1, books[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)

	_, err = repo.GetByID(2, books[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ApplyScores(t *testing.T) {
	repo := setupTestDB(t)
	books := []entities.Book{
		{UserID: 1, Title: "A", Score: 3},
		{UserID: 1, Title: "B", Score: 5},
		{UserID: 2, Title: "C", Score: 1},
	}
	require.NoError(t, repo.Create(books))

	err := repo.ApplyScores(1, []scoring.ScoreChange{
		{BookID: books[0].ID, OldScore: 3, NewScore: 20},
		{BookID: books[2].ID, OldScore: 1, NewScore: 99},
	})
	require.NoError(t, err)

	a, err := repo.GetByID(1, books[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 20, a.Score)

	b, err := repo.GetByID(1, books[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 5, b.Score)

	c, err := repo.GetByID(2, books[2].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Score, "changes never cross users")

	assert.NoError(t, repo.ApplyScores(1, nil))
}

func TestRepository_UserIDsAndCount(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.Create([]entities.Book{
		{UserID: 3, Title: "A"},
		{UserID: 1, Title: "B"},
		{UserID: 3, Title: "C"},
	}))

	ids, err := repo.UserIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, ids)

	count, err := repo.CountForUser(3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	deleted, err := repo.DeleteForUser(3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
