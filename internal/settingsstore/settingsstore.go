// Package settingsstore resolves effective global settings.
//
// Priority: database > environment > default. Every getter has a matching
// source getter reporting which layer supplied the value.
package settingsstore

import (
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookstack/internal/database/settings"
	"github.com/mrlokans/bookstack/internal/logging"
)

const (
	SourceDatabase    = "database"
	SourceEnvironment = "environment"
	SourceDefault     = "default"
)

type SettingsStore struct {
	repo *settings.Repository
}

func New(repo *settings.Repository) *SettingsStore {
	return &SettingsStore{repo: repo}
}

// resolve looks a key up in the database, then in the environment.
func (s *SettingsStore) resolve(key, envVar, def string) (string, string) {
	value, ok, err := s.repo.GetValue(key)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("failed to read setting, falling back")
	}
	if ok && value != "" {
		return value, SourceDatabase
	}
	if env := os.Getenv(envVar); env != "" {
		return env, SourceEnvironment
	}
	return def, SourceDefault
}

func parseBool(v string) bool {
	return v == "true" || v == "1"
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	case "0 3 * * *":
		return "Daily at 03:00"
	case "0 0 * * 0":
		return "Weekly on Sunday at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the schedule fires next after from.
func GetNextRunTime(schedule string, from time.Time) (*time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(from)
	return &next, nil
}
