package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookstack/internal/logging"
)

const defaultRetentionDays = 30

// AuditEventCleaner deletes audit events older than a retention window.
type AuditEventCleaner interface {
	DeleteOldEvents(retention time.Duration) (int64, error)
}

// ReportPruner deletes archived integrity reports written before a cutoff.
type ReportPruner interface {
	Prune(cutoff time.Time) (int, error)
}

// CleanupAuditEventsTask applies the retention window to the audit trail:
// events first, then the archived reports those events point to.
type CleanupAuditEventsTask struct {
	RetentionDays int `json:"retention_days"`
}

func (t CleanupAuditEventsTask) retention() (int, time.Duration) {
	days := t.RetentionDays
	if days <= 0 {
		days = defaultRetentionDays
	}
	return days, time.Duration(days) * 24 * time.Hour
}

// Config returns the queue configuration for retention sweeps.
func (t CleanupAuditEventsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        QueueCleanupAuditEvents,
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupAuditEventsProcessor sweeps events with cleaner and, when pruner is
// set, archived reports. Events are deleted before reports are pruned.
func CleanupAuditEventsProcessor(cleaner AuditEventCleaner, pruner ReportPruner) backlite.QueueProcessor[CleanupAuditEventsTask] {
	return func(ctx context.Context, task CleanupAuditEventsTask) error {
		if cleaner == nil {
			return fmt.Errorf("audit event cleaner not configured")
		}

		days, window := task.retention()
		deleted, err := cleaner.DeleteOldEvents(window)
		if err != nil {
			return fmt.Errorf("cleanup audit events: %w", err)
		}

		pruned := 0
		if pruner != nil {
			pruned, err = pruner.Prune(time.Now().Add(-window))
			if err != nil {
				return fmt.Errorf("prune integrity reports: %w", err)
			}
		}

		logging.Info().
			Int64("events_deleted", deleted).
			Int("reports_pruned", pruned).
			Int("retention_days", days).
			Msg("audit trail retention applied")
		return nil
	}
}

// NewCleanupAuditEventsQueue creates a backlite queue for retention sweeps.
func NewCleanupAuditEventsQueue(cleaner AuditEventCleaner, pruner ReportPruner) backlite.Queue {
	return backlite.NewQueue(CleanupAuditEventsProcessor(cleaner, pruner))
}
