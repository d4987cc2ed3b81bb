// Package books provides database operations for library snapshots.
//
// The engine never talks to the database: services load a user's books
// through ListForUser, hand the slice to the engine and persist score
// changes back with ApplyScores.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	snapshot, err := repo.ListForUser(userID)
package books

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/scoring"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForUser returns every book of a user ordered by reading-list position
// (books without a position last), then id.
func (r *Repository) ListForUser(userID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ?", userID).
		Order("sort_order IS NULL, sort_order ASC, id ASC").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books for user %d: %w", userID, err)
	}
	return books, nil
}

// ListByStatus returns the books of a user with the given status.
func (r *Repository) ListByStatus(userID uint, status entities.Status) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Where("user_id = ? AND status = ?", userID, status).
		Order("sort_order IS NULL, sort_order ASC, id ASC").
		Find(&books).Error
	return books, err
}

// GetByID retrieves a book by id, scoped to its owner.
func (r *Repository) GetByID(userID, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("user_id = ?", userID).First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts the given books in batches.
func (r *Repository) Create(books []entities.Book) error {
	if len(books) == 0 {
		return nil
	}
	return r.db.CreateInBatches(books, 100).Error
}

// ApplyScores persists score changes in a single transaction.
func (r *Repository) ApplyScores(userID uint, changes []scoring.ScoreChange) error {
	if len(changes) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return applyScores(tx, userID, changes)
	})
}

// ApplyScoresTx persists score changes inside a caller-owned transaction.
func ApplyScoresTx(tx *gorm.DB, userID uint, changes []scoring.ScoreChange) error {
	return applyScores(tx, userID, changes)
}

func applyScores(tx *gorm.DB, userID uint, changes []scoring.ScoreChange) error {
	for _, c := range changes {
		res := tx.Model(&entities.Book{}).
			Where("id = ? AND user_id = ?", c.BookID, userID).
			UpdateColumn("score", c.NewScore)
		if res.Error != nil {
			return fmt.Errorf("failed to update score of book %d: %w", c.BookID, res.Error)
		}
	}
	return nil
}

// UserIDs returns every user owning at least one book.
func (r *Repository) UserIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Book{}).Distinct("user_id").Order("user_id").Pluck("user_id", &ids).Error
	return ids, err
}

// CountForUser returns the number of books of a user.
func (r *Repository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteForUser removes every book of a user. Used by the demo seeder.
func (r *Repository) DeleteForUser(userID uint) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&entities.Book{})
	return res.RowsAffected, res.Error
}
