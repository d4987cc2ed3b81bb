package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
)

// IntegrityAuditRunner audits one user's library, or every library when
// userID is 0.
type IntegrityAuditRunner interface {
	RunAudit(ctx context.Context, userID uint) error
}

// IntegrityAuditTask runs the metadata and duplicate checks on demand.
type IntegrityAuditTask struct {
	// UserID 0 audits every user.
	UserID uint `json:"user_id"`
}

// Config returns the queue configuration for integrity audit tasks.
func (t IntegrityAuditTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueIntegrityAudit,
		MaxAttempts: 1,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   7 * 24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// IntegrityAuditProcessor creates a processor function for IntegrityAuditTask.
func IntegrityAuditProcessor(runner IntegrityAuditRunner) backlite.QueueProcessor[IntegrityAuditTask] {
	return func(ctx context.Context, task IntegrityAuditTask) error {
		if runner == nil {
			return fmt.Errorf("integrity audit runner not configured")
		}
		if err := runner.RunAudit(ctx, task.UserID); err != nil {
			return fmt.Errorf("integrity audit: %w", err)
		}
		return nil
	}
}

// NewIntegrityAuditQueue creates a backlite queue for integrity audit tasks.
func NewIntegrityAuditQueue(runner IntegrityAuditRunner) backlite.Queue {
	return backlite.NewQueue(IntegrityAuditProcessor(runner))
}
