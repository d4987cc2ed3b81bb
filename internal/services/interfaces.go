package services

import (
	"github.com/mrlokans/bookstack/internal/database/preferences"
	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/scoring"
)

// BookReader provides read-only access to library snapshots.
// Use this interface when you only need to query books.
type BookReader interface {
	ListForUser(userID uint) ([]entities.Book, error)
	UserIDs() ([]uint, error)
}

// ScoreWriter persists recomputed scores.
type ScoreWriter interface {
	ApplyScores(userID uint, changes []scoring.ScoreChange) error
}

// PreferencesReader loads the effective engine configuration of a user.
type PreferencesReader interface {
	Load(userID uint) (preferences.Settings, error)
}

// RescoreResult contains the outcome of a bulk score recomputation.
type RescoreResult struct {
	Total   int `json:"total"`
	Changed int `json:"changed"`
}
