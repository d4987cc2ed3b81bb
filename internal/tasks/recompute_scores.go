package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookstack/internal/logging"
	"github.com/mrlokans/bookstack/internal/services"
)

// Rescorer recomputes the stored scores of a user's books.
type Rescorer interface {
	RecomputeScores(userID uint) (services.RescoreResult, error)
}

// RecomputeScoresTask rescores every book of one user with the stored formula.
type RecomputeScoresTask struct {
	UserID uint `json:"user_id"`
}

// Config returns the queue configuration for rescore tasks.
func (t RecomputeScoresTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueRecomputeScores,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RecomputeScoresProcessor creates a processor function for RecomputeScoresTask.
func RecomputeScoresProcessor(rescorer Rescorer) backlite.QueueProcessor[RecomputeScoresTask] {
	return func(ctx context.Context, task RecomputeScoresTask) error {
		if rescorer == nil {
			return fmt.Errorf("rescorer not configured")
		}

		res, err := rescorer.RecomputeScores(task.UserID)
		if err != nil {
			return fmt.Errorf("recompute scores for user %d: %w", task.UserID, err)
		}

		logging.Info().
			Uint("user_id", task.UserID).
			Int("changed", res.Changed).
			Int("total", res.Total).
			Msg("task recomputed scores")
		return nil
	}
}

// NewRecomputeScoresQueue creates a backlite queue for rescore tasks.
func NewRecomputeScoresQueue(rescorer Rescorer) backlite.Queue {
	return backlite.NewQueue(RecomputeScoresProcessor(rescorer))
}
