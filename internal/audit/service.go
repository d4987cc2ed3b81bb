// Package audit records the event log of the application: formula changes,
// bulk rescoring runs and integrity audits. It is unrelated to the integrity
// Auditor, which inspects book metadata.
package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/mrlokans/bookstack/internal/database/audit"
	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/logging"
)

const maxErrorLen = 500

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.repo.LogEvent(event); err != nil {
			logging.Error().Err(err).
				Str("event_type", string(event.EventType)).
				Str("action", event.Action).
				Msg("failed to log audit event")
		}
	}()
}

// Wait blocks until every pending LogAsync call has finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// LogRescore records a bulk score recomputation.
func (s *Service) LogRescore(userID uint, action string, changed, total int, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventRescore,
		Action:      action,
		Description: fmt.Sprintf("Recomputed scores: %d of %d books changed", changed, total),
		EntityType:  "book",
		Status:      entities.AuditStatusSuccess,
	}
	event.Metadata = metadata(map[string]any{
		"changed": changed,
		"total":   total,
	})
	markFailed(event, err)
	s.LogAsync(event)
}

// IntegrityResult summarises an integrity audit for the event log.
type IntegrityResult struct {
	TotalBooks       int
	Findings         int
	AffectedBooks    int
	HealthPercentage float64
	ReportFile       string
}

// LogIntegrityAudit records the outcome of an integrity audit.
func (s *Service) LogIntegrityAudit(userID uint, action string, res IntegrityResult, err error) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventIntegrityAudit,
		Action:    action,
		Description: fmt.Sprintf("Integrity audit: %d findings on %d of %d books (%.1f%% healthy)",
			res.Findings, res.AffectedBooks, res.TotalBooks, res.HealthPercentage),
		EntityType: "book",
		Status:     entities.AuditStatusSuccess,
	}
	md := map[string]any{
		"total_books":       res.TotalBooks,
		"findings":          res.Findings,
		"affected_books":    res.AffectedBooks,
		"health_percentage": res.HealthPercentage,
	}
	if res.ReportFile != "" {
		md["report_file"] = res.ReportFile
	}
	event.Metadata = metadata(md)
	markFailed(event, err)
	s.LogAsync(event)
}

// LogPreferences records a change of a user's formula, taxonomy or goal.
func (s *Service) LogPreferences(userID uint, action, description string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventPreferences,
		Action:      action,
		Description: description,
		EntityType:  "user_preference",
		EntityID:    &userID,
		Status:      entities.AuditStatusSuccess,
	}
	markFailed(event, err)
	s.LogAsync(event)
}

// LogSettings records a global settings change event.
func (s *Service) LogSettings(userID uint, action, description string) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventSettings,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	s.LogAsync(event)
}

// GetEvents retrieves a page of audit events.
func (s *Service) GetEvents(f audit.Filter) ([]entities.AuditEvent, int64, error) {
	return s.repo.Query(f)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

func markFailed(event *entities.AuditEvent, err error) {
	if err == nil {
		return
	}
	event.Status = entities.AuditStatusFailed
	event.ErrorMsg = truncate(err.Error(), maxErrorLen)
}

func metadata(md map[string]any) string {
	raw, err := json.Marshal(md)
	if err != nil {
		return ""
	}
	return string(raw)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
