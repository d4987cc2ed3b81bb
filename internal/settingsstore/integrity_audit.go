package settingsstore

import (
	"strconv"
	"time"

	"github.com/mrlokans/bookstack/internal/entities"
)

const (
	envIntegrityAuditEnabled  = "INTEGRITY_AUDIT_ENABLED"
	envIntegrityAuditSchedule = "INTEGRITY_AUDIT_SCHEDULE"

	DefaultIntegrityAuditSchedule = "0 3 * * *"
)

// IntegrityAuditConfig is the effective configuration of the scheduled audit.
type IntegrityAuditConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// IntegrityAuditConfigInfo includes source information for each field.
type IntegrityAuditConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"`

	Schedule            string     `json:"schedule"`
	ScheduleSource      string     `json:"schedule_source"`
	ScheduleDescription string     `json:"schedule_description"`
	NextRunAt           *time.Time `json:"next_run_at,omitempty"`
}

// IntegrityAuditStatus is the outcome of the last scheduled run.
type IntegrityAuditStatus struct {
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	Status    string     `json:"status,omitempty"` // "success", "failed", ""
	Message   string     `json:"message,omitempty"`
}

func (s *SettingsStore) integrityEnabled() (bool, string) {
	v, src := s.resolve(entities.SettingKeyIntegrityAuditEnabled, envIntegrityAuditEnabled, "false")
	return parseBool(v), src
}

func (s *SettingsStore) integritySchedule() (string, string) {
	return s.resolve(entities.SettingKeyIntegrityAuditSchedule, envIntegrityAuditSchedule, DefaultIntegrityAuditSchedule)
}

// GetIntegrityAuditConfig returns the effective configuration.
func (s *SettingsStore) GetIntegrityAuditConfig() IntegrityAuditConfig {
	enabled, _ := s.integrityEnabled()
	schedule, _ := s.integritySchedule()
	return IntegrityAuditConfig{Enabled: enabled, Schedule: schedule}
}

// GetIntegrityAuditConfigInfo returns the configuration with source information.
func (s *SettingsStore) GetIntegrityAuditConfigInfo(now time.Time) IntegrityAuditConfigInfo {
	enabled, enabledSrc := s.integrityEnabled()
	schedule, scheduleSrc := s.integritySchedule()

	info := IntegrityAuditConfigInfo{
		Enabled:             enabled,
		EnabledSource:       enabledSrc,
		Schedule:            schedule,
		ScheduleSource:      scheduleSrc,
		ScheduleDescription: GetCronDescription(schedule),
	}
	if enabled {
		info.NextRunAt, _ = GetNextRunTime(schedule, now)
	}
	return info
}

// SetIntegrityAuditEnabled saves the enabled flag to the database.
func (s *SettingsStore) SetIntegrityAuditEnabled(enabled bool) error {
	return s.repo.SetSetting(entities.SettingKeyIntegrityAuditEnabled, strconv.FormatBool(enabled))
}

// SetIntegrityAuditSchedule validates and saves the schedule.
func (s *SettingsStore) SetIntegrityAuditSchedule(schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.repo.SetSetting(entities.SettingKeyIntegrityAuditSchedule, schedule)
}

// ClearIntegrityAuditSettings removes database overrides, reverting to
// environment or defaults.
func (s *SettingsStore) ClearIntegrityAuditSettings() error {
	return s.repo.DeleteSettings(
		entities.SettingKeyIntegrityAuditEnabled,
		entities.SettingKeyIntegrityAuditSchedule,
	)
}

// GetIntegrityAuditStatus returns the outcome of the last run.
func (s *SettingsStore) GetIntegrityAuditStatus() IntegrityAuditStatus {
	var status IntegrityAuditStatus
	if v, ok, _ := s.repo.GetValue(entities.SettingKeyIntegrityAuditLastAt); ok && v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			status.LastRunAt = &ts
		}
	}
	status.Status, _, _ = s.repo.GetValue(entities.SettingKeyIntegrityAuditLastStatus)
	status.Message, _, _ = s.repo.GetValue(entities.SettingKeyIntegrityAuditLastMessage)
	return status
}

// SetIntegrityAuditStatus records the outcome of a run.
func (s *SettingsStore) SetIntegrityAuditStatus(status, message string, at time.Time) error {
	return s.repo.SetMany(map[string]string{
		entities.SettingKeyIntegrityAuditLastAt:      at.UTC().Format(time.RFC3339),
		entities.SettingKeyIntegrityAuditLastStatus:  status,
		entities.SettingKeyIntegrityAuditLastMessage: message,
	})
}
