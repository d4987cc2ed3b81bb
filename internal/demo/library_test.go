package demo

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstack/internal/database"
	"github.com/mrlokans/bookstack/internal/database/books"
	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/integrity"
	"github.com/mrlokans/bookstack/internal/taxonomy"
)

func TestBooks(t *testing.T) {
	list := Books(7)
	require.NotEmpty(t, list)

	statuses := map[entities.Status]int{}
	for _, b := range list {
		assert.Equal(t, uint(7), b.UserID)
		assert.NotEmpty(t, b.Title)
		statuses[b.Status]++
		if b.IsRead() {
			assert.NotEmpty(t, b.DateRead, b.Title)
			assert.Equal(t, entities.PriorityDone, b.Priority, b.Title)
		}
	}
	assert.Positive(t, statuses[entities.StatusToRead])
	assert.Positive(t, statuses[entities.StatusReading])
	assert.Positive(t, statuses[entities.StatusRead])
}

func TestBooks_AuditFindings(t *testing.T) {
	list := Books(1)
	for i := range list {
		list[i].ID = uint(i + 1)
	}

	findings := integrity.Audit(list, taxonomy.Default(), taxonomy.DefaultAvailabilityOptions())
	byType := map[integrity.IssueType]int{}
	for _, f := range findings {
		byType[f.IssueType]++
	}
	assert.Equal(t, map[integrity.IssueType]int{
		integrity.IssueClass:        1,
		integrity.IssueCategory:     1,
		integrity.IssueAvailability: 1,
		integrity.IssueDuplicate:    1,
	}, byType)

	parallel, err := integrity.New(taxonomy.Default(), nil, integrity.Options{Workers: 2}).Run(context.Background(), list)
	require.NoError(t, err)
	assert.Equal(t, findings, parallel)
}

func TestSeed_ReplacesLibrary(t *testing.T) {
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "demo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := books.NewRepository(db.DB)
	require.NoError(t, repo.Create([]entities.Book{
		{UserID: 1, Title: "Old book"},
		{UserID: 2, Title: "Someone else's"},
	}))

	n, err := Seed(db.DB, 1)
	require.NoError(t, err)
	assert.Equal(t, len(Books(1)), n)

	count, err := repo.CountForUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)

	other, err := repo.CountForUser(2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)

	// Seeding again does not duplicate.
	_, err = Seed(db.DB, 1)
	require.NoError(t, err)
	count, err = repo.CountForUser(1)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}
