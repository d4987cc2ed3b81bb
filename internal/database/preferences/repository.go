// Package preferences persists per-user engine configuration: the score
// formula, the class/category taxonomy, availability options and the
// yearly reading goal.
//
// Documents are stored as JSON text. A missing row or an empty document
// resolves to the built-in defaults.
package preferences

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/scoring"
	"github.com/mrlokans/bookstack/internal/taxonomy"
)

// Settings is the decoded form of a user's preferences.
type Settings struct {
	Formula      scoring.FormulaConfig `json:"formula"`
	Taxonomy     taxonomy.Taxonomy     `json:"taxonomy"`
	Availability []string              `json:"availability_options"`
	YearlyGoal   int                   `json:"yearly_goal"`
}

// Defaults returns the settings of a user who never saved any.
func Defaults() Settings {
	return Settings{
		Formula:      scoring.DefaultFormulaConfig(),
		Taxonomy:     taxonomy.Default(),
		Availability: taxonomy.DefaultAvailabilityOptions(),
		YearlyGoal:   entities.DefaultYearlyGoal,
	}
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load returns the effective settings of a user.
func (r *Repository) Load(userID uint) (Settings, error) {
	var pref entities.UserPreference
	err := r.db.First(&pref, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load preferences for user %d: %w", userID, err)
	}
	return Decode(pref)
}

// Store upserts the settings of a user.
func (r *Repository) Store(userID uint, s Settings) error {
	return StoreTx(r.db, userID, s)
}

// StoreTx upserts the settings of a user inside a caller-owned transaction.
func StoreTx(tx *gorm.DB, userID uint, s Settings) error {
	pref, err := Encode(userID, s)
	if err != nil {
		return err
	}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&pref).Error
	if err != nil {
		return fmt.Errorf("failed to store preferences for user %d: %w", userID, err)
	}
	return nil
}

// Reset removes the stored settings so the defaults apply again.
func (r *Repository) Reset(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&entities.UserPreference{}).Error
}

// Decode turns a stored row into Settings, filling every empty document with
// its default.
func Decode(pref entities.UserPreference) (Settings, error) {
	formula, err := scoring.ParseFormulaConfig([]byte(pref.FormulaConfig))
	if err != nil {
		return Settings{}, err
	}

	var tx taxonomy.Taxonomy
	if strings.TrimSpace(pref.ClassCategories) != "" {
		if err := json.Unmarshal([]byte(pref.ClassCategories), &tx); err != nil {
			return Settings{}, fmt.Errorf("decode class categories: %w", err)
		}
	}

	var availability []string
	if strings.TrimSpace(pref.AvailabilityOptions) != "" {
		if err := json.Unmarshal([]byte(pref.AvailabilityOptions), &availability); err != nil {
			return Settings{}, fmt.Errorf("decode availability options: %w", err)
		}
	}

	goal := pref.YearlyGoal
	if goal <= 0 {
		goal = entities.DefaultYearlyGoal
	}

	return Settings{
		Formula:      formula,
		Taxonomy:     tx.OrDefault(),
		Availability: taxonomy.AvailabilityOptionsOrDefault(availability),
		YearlyGoal:   goal,
	}, nil
}

// Encode serialises settings into a storable row.
func Encode(userID uint, s Settings) (entities.UserPreference, error) {
	formula, err := json.Marshal(s.Formula)
	if err != nil {
		return entities.UserPreference{}, fmt.Errorf("encode formula config: %w", err)
	}

	pref := entities.UserPreference{
		UserID:        userID,
		FormulaConfig: string(formula),
		YearlyGoal:    s.YearlyGoal,
	}
	if !s.Taxonomy.IsEmpty() {
		raw, err := json.Marshal(s.Taxonomy)
		if err != nil {
			return entities.UserPreference{}, fmt.Errorf("encode class categories: %w", err)
		}
		pref.ClassCategories = string(raw)
	}
	if len(s.Availability) > 0 {
		raw, err := json.Marshal(s.Availability)
		if err != nil {
			return entities.UserPreference{}, fmt.Errorf("encode availability options: %w", err)
		}
		pref.AvailabilityOptions = string(raw)
	}
	return pref, nil
}
