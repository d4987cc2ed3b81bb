package entities

import "time"

// DefaultYearlyGoal is the reading goal assigned to users who never set one.
const DefaultYearlyGoal = 20

// UserPreference stores per-user engine configuration as JSON documents.
// Empty documents mean "use the built-in defaults".
type UserPreference struct {
	UserID              uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FormulaConfig       string    `gorm:"type:text" json:"formula_config,omitempty"`
	ClassCategories     string    `gorm:"type:text" json:"class_categories,omitempty"`
	AvailabilityOptions string    `gorm:"type:text" json:"availability_options,omitempty"`
	YearlyGoal          int       `gorm:"default:20" json:"yearly_goal"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
