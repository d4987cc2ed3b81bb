package tasks

import (
	"fmt"

	"github.com/mikestefanello/backlite"
)

const (
	QueueRecomputeScores    = "recompute_scores"
	QueueIntegrityAudit     = "integrity_audit"
	QueueCleanupAuditEvents = "cleanup_audit_events"
)

// TypeInfo describes a task type that can be triggered manually.
type TypeInfo struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Queue       string `json:"queue"`
}

// Types lists the manually triggerable task types.
func Types() []TypeInfo {
	return []TypeInfo{
		{
			Type:        QueueRecomputeScores,
			Description: "Recompute the score of every book with the stored formula",
			Queue:       QueueRecomputeScores,
		},
		{
			Type:        QueueIntegrityAudit,
			Description: "Check classes, categories, availability and duplicate titles",
			Queue:       QueueIntegrityAudit,
		},
		{
			Type:        QueueCleanupAuditEvents,
			Description: "Delete audit events and archived reports past the retention period",
			Queue:       QueueCleanupAuditEvents,
		},
	}
}

// Params are the inputs accepted when triggering a task by type name.
type Params struct {
	UserID        uint
	RetentionDays int
}

// NewTask builds the task of the named type.
func NewTask(taskType string, p Params) (backlite.Task, error) {
	switch taskType {
	case QueueRecomputeScores:
		if p.UserID == 0 {
			return nil, fmt.Errorf("user_id is required for %s", taskType)
		}
		return RecomputeScoresTask{UserID: p.UserID}, nil
	case QueueIntegrityAudit:
		return IntegrityAuditTask{UserID: p.UserID}, nil
	case QueueCleanupAuditEvents:
		return CleanupAuditEventsTask{RetentionDays: p.RetentionDays}, nil
	default:
		return nil, fmt.Errorf("unknown task type: %s", taskType)
	}
}

// Handlers bundles what the queues need to process tasks.
type Handlers struct {
	Rescorer Rescorer
	Auditor  IntegrityAuditRunner
	Cleaner  AuditEventCleaner
	// Archive is optional; without it only events are swept.
	Archive ReportPruner
}

// RegisterAll registers every queue with the client.
func (c *Client) RegisterAll(h Handlers) {
	c.Register(
		NewRecomputeScoresQueue(h.Rescorer),
		NewIntegrityAuditQueue(h.Auditor),
		NewCleanupAuditEventsQueue(h.Cleaner, h.Archive),
	)
}
