// Package scheduler runs periodic jobs on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookstack/internal/audit"
	"github.com/mrlokans/bookstack/internal/integrity"
	"github.com/mrlokans/bookstack/internal/logging"
	"github.com/mrlokans/bookstack/internal/settingsstore"
)

// LibraryAuditor is the part of the library service the scheduler needs.
type LibraryAuditor interface {
	UserIDs() ([]uint, error)
	Audit(ctx context.Context, userID uint) (integrity.Report, error)
}

// ErrAuditRunning is returned when a run is requested while one is active.
var ErrAuditRunning = errors.New("integrity audit already running")

// IntegrityAuditScheduler audits every user's library on a cron schedule and
// records the outcome in settings and the event log.
type IntegrityAuditScheduler struct {
	library       LibraryAuditor
	settingsStore *settingsstore.SettingsStore
	auditService  *audit.Service
	archive       *audit.Archive

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isAuditing bool
	cancelFunc context.CancelFunc
}

// NewIntegrityAuditScheduler creates a scheduler. auditService and archive
// may be nil.
func NewIntegrityAuditScheduler(library LibraryAuditor, settingsStore *settingsstore.SettingsStore, auditService *audit.Service, archive *audit.Archive) *IntegrityAuditScheduler {
	return &IntegrityAuditScheduler{
		library:       library,
		settingsStore: settingsStore,
		auditService:  auditService,
		archive:       archive,
		cron:          newCron(),
	}
}

func newCron() *cron.Cron {
	return cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)))
}

// Start begins the scheduler if the audit is enabled.
func (s *IntegrityAuditScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settingsStore.GetIntegrityAuditConfig()
	if !config.Enabled {
		logging.Info().Msg("integrity audit scheduler disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		if err := s.RunAudit(context.Background(), 0); err != nil && !errors.Is(err, ErrAuditRunning) {
			logging.Error().Err(err).Msg("scheduled integrity audit failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule integrity audit: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	event := logging.Info().
		Str("schedule", config.Schedule).
		Str("description", settingsstore.GetCronDescription(config.Schedule))
	if nextRun, err := settingsstore.GetNextRunTime(config.Schedule, time.Now()); err == nil {
		event = event.Time("next_run", *nextRun)
	}
	event.Msg("integrity audit scheduler started")

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *IntegrityAuditScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	c, entryID, cancel := s.cron, s.entryID, s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// The lock is released first: a running job takes it when it finishes.
	<-c.Stop().Done()
	c.Remove(entryID)
	if cancel != nil {
		cancel()
	}

	logging.Info().Msg("integrity audit scheduler stopped")
}

// Reschedule restarts the scheduler with the current settings.
func (s *IntegrityAuditScheduler) Reschedule() error {
	s.Stop()

	s.mu.Lock()
	s.cron = newCron()
	s.mu.Unlock()

	return s.Start(context.Background())
}

// RunNow triggers an audit of every library in the background.
func (s *IntegrityAuditScheduler) RunNow() {
	go func() {
		if err := s.RunAudit(context.Background(), 0); err != nil && !errors.Is(err, ErrAuditRunning) {
			logging.Error().Err(err).Msg("manual integrity audit failed")
		}
	}()
}

// IsRunning returns whether the scheduler is active.
func (s *IntegrityAuditScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsAuditing returns whether an audit is in progress.
func (s *IntegrityAuditScheduler) IsAuditing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuditing
}

// GetNextRunTime returns when the next audit will occur.
func (s *IntegrityAuditScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// RunAudit audits the library of userID, or of every user when userID is
// 0, and records the outcome. Only one audit runs at a time.
func (s *IntegrityAuditScheduler) RunAudit(ctx context.Context, userID uint) error {
	s.mu.Lock()
	if s.isAuditing {
		s.mu.Unlock()
		logging.Info().Msg("integrity audit skipped, already running")
		return ErrAuditRunning
	}
	s.isAuditing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isAuditing = false
		s.mu.Unlock()
	}()

	startTime := time.Now()
	users := []uint{userID}
	if userID == 0 {
		var err error
		users, err = s.library.UserIDs()
		if err != nil {
			s.recordStatus("failed", fmt.Sprintf("Failed to list users: %v", err))
			return fmt.Errorf("list users: %w", err)
		}
	}

	var failed, findings int
	var errs []error
	for _, uid := range users {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		n, err := s.auditUser(ctx, uid)
		if err != nil {
			failed++
			errs = append(errs, fmt.Errorf("user %d: %w", uid, err))
			continue
		}
		findings += n
	}

	duration := time.Since(startTime).Round(time.Millisecond)
	msg := fmt.Sprintf("Audited %d libraries, %d findings in %v", len(users)-failed, findings, duration)
	if len(errs) > 0 {
		msg = fmt.Sprintf("%s; %d failed", msg, failed)
		s.recordStatus("failed", msg)
		return errors.Join(errs...)
	}
	s.recordStatus("success", msg)
	logging.Info().Int("users", len(users)).Int("findings", findings).Dur("duration", duration).Msg("integrity audit finished")
	return nil
}

func (s *IntegrityAuditScheduler) auditUser(ctx context.Context, userID uint) (int, error) {
	report, err := s.library.Audit(ctx, userID)
	res := audit.IntegrityResult{
		TotalBooks:       report.Summary.TotalBooks,
		Findings:         report.Summary.TotalFindings,
		AffectedBooks:    report.Summary.AffectedBooks,
		HealthPercentage: report.Summary.HealthPercentage,
	}
	if err == nil && s.archive != nil {
		name, archiveErr := s.archive.Save(report)
		if archiveErr != nil {
			logging.Warn().Err(archiveErr).Uint("user_id", userID).Msg("failed to archive integrity report")
		}
		res.ReportFile = name
	}
	if s.auditService != nil {
		s.auditService.LogIntegrityAudit(userID, "scheduled_audit", res, err)
	}
	if err != nil {
		return 0, err
	}
	return report.Summary.TotalFindings, nil
}

func (s *IntegrityAuditScheduler) recordStatus(status, message string) {
	if err := s.settingsStore.SetIntegrityAuditStatus(status, message, time.Now()); err != nil {
		logging.Warn().Err(err).Msg("failed to record integrity audit status")
	}
}
