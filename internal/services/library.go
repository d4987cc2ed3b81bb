package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/mrlokans/bookstack/internal/analytics"
	"github.com/mrlokans/bookstack/internal/audit"
	"github.com/mrlokans/bookstack/internal/database/books"
	"github.com/mrlokans/bookstack/internal/database/preferences"
	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/integrity"
	"github.com/mrlokans/bookstack/internal/logging"
	"github.com/mrlokans/bookstack/internal/scoring"
	"github.com/mrlokans/bookstack/internal/taxonomy"
	"github.com/mrlokans/bookstack/internal/validation"
)

// LibraryOptions tune the service.
type LibraryOptions struct {
	// AuditWorkers > 1 parallelises the duplicate scan.
	AuditWorkers int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// LibraryService loads a user's books and preferences, runs the engine on
// them and persists score changes.
type LibraryService struct {
	db    *gorm.DB
	books *books.Repository
	prefs *preferences.Repository
	audit *audit.Service
	memo  *analytics.Memo
	opts  LibraryOptions
}

// NewLibraryService creates the service. auditSvc and memo may be nil.
func NewLibraryService(db *gorm.DB, auditSvc *audit.Service, memo *analytics.Memo, opts LibraryOptions) *LibraryService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &LibraryService{
		db:    db,
		books: books.NewRepository(db),
		prefs: preferences.NewRepository(db),
		audit: auditSvc,
		memo:  memo,
		opts:  opts,
	}
}

func (s *LibraryService) snapshot(userID uint) ([]entities.Book, preferences.Settings, error) {
	prefs, err := s.prefs.Load(userID)
	if err != nil {
		return nil, preferences.Settings{}, err
	}
	list, err := s.books.ListForUser(userID)
	if err != nil {
		return nil, preferences.Settings{}, err
	}
	return list, prefs, nil
}

// Books returns the library of a user in reading-list order.
func (s *LibraryService) Books(userID uint) ([]entities.Book, error) {
	return s.books.ListForUser(userID)
}

// UserIDs lists every user owning books.
func (s *LibraryService) UserIDs() ([]uint, error) {
	return s.books.UserIDs()
}

// Dashboard computes every analytics view of a user's library.
func (s *LibraryService) Dashboard(userID uint) (*analytics.Dashboard, error) {
	list, prefs, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}
	in := analytics.Inputs{
		Taxonomy:   prefs.Taxonomy,
		YearlyGoal: prefs.YearlyGoal,
		Now:        s.opts.Now(),
	}
	if s.memo != nil {
		return s.memo.Dashboard(list, in), nil
	}
	return analytics.Compute(list, in), nil
}

// TimelineView is the reading timeline at one granularity.
type TimelineView struct {
	Granularity analytics.Granularity  `json:"granularity"`
	Periods     []analytics.Period     `json:"periods"`
	Meta        analytics.TimelineMeta `json:"meta"`
}

// Timeline aggregates read books per month or year.
func (s *LibraryService) Timeline(userID uint, g analytics.Granularity) (TimelineView, error) {
	list, err := s.books.ListForUser(userID)
	if err != nil {
		return TimelineView{}, err
	}
	return TimelineView{
		Granularity: g,
		Periods:     analytics.AggregateTimeline(list, g),
		Meta:        analytics.BuildTimelineMeta(list),
	}, nil
}

// DistributionsView pairs the read/unread distributions with their colours.
type DistributionsView struct {
	analytics.StatusDistributions
	Colors map[string]string `json:"colors"`
}

// Distributions returns the read and unread distributions of a library.
func (s *LibraryService) Distributions(userID uint) (DistributionsView, error) {
	list, prefs, err := s.snapshot(userID)
	if err != nil {
		return DistributionsView{}, err
	}
	return DistributionsView{
		StatusDistributions: analytics.ComputeDistributions(list),
		Colors:              analytics.BuildPalette(list, prefs.Taxonomy).CSS(),
	}, nil
}

// Insights extracts historical facts from the read books.
func (s *LibraryService) Insights(userID uint) (analytics.Insights, error) {
	list, err := s.books.ListForUser(userID)
	if err != nil {
		return analytics.Insights{}, err
	}
	return analytics.ExtractInsights(list), nil
}

// Audit runs the integrity checks on a user's library.
func (s *LibraryService) Audit(ctx context.Context, userID uint) (integrity.Report, error) {
	list, prefs, err := s.snapshot(userID)
	if err != nil {
		return integrity.Report{}, err
	}
	auditor := integrity.New(prefs.Taxonomy, prefs.Availability, integrity.Options{Workers: s.opts.AuditWorkers})
	findings, err := auditor.Run(ctx, list)
	if err != nil {
		return integrity.Report{}, err
	}
	return integrity.NewReport(list, findings), nil
}

// PreviewScore explains the score book would get. A non-nil formula
// overrides the stored one, so unsaved edits can be simulated.
func (s *LibraryService) PreviewScore(userID uint, book entities.Book, formula *scoring.FormulaConfig) (scoring.Breakdown, error) {
	var cfg scoring.FormulaConfig
	if formula != nil {
		if err := formula.Validate(); err != nil {
			return scoring.Breakdown{}, err
		}
		cfg = formula.WithDefaults()
	} else {
		prefs, err := s.prefs.Load(userID)
		if err != nil {
			return scoring.Breakdown{}, err
		}
		cfg = prefs.Formula
	}
	return scoring.Explain(book, cfg), nil
}

// ToReadStats returns the average score of each quarter of the reading list.
func (s *LibraryService) ToReadStats(userID uint) (scoring.Quartiles, error) {
	list, err := s.books.ListByStatus(userID, entities.StatusToRead)
	if err != nil {
		return scoring.Quartiles{}, err
	}
	return scoring.ToReadQuartiles(list), nil
}

// Preferences returns the effective settings of a user.
func (s *LibraryService) Preferences(userID uint) (preferences.Settings, error) {
	return s.prefs.Load(userID)
}

// PreferencesUpdate carries the sections to change. Nil sections are kept.
type PreferencesUpdate struct {
	Formula      *scoring.FormulaConfig `json:"formula"`
	Taxonomy     *taxonomy.Taxonomy     `json:"taxonomy"`
	Availability []string               `json:"availability_options" validate:"omitempty,unique,dive,required"`
	YearlyGoal   *int                   `json:"yearly_goal" validate:"omitempty,min=0,max=1000"`
}

// UpdateResult reports what an update did.
type UpdateResult struct {
	Settings preferences.Settings `json:"settings"`
	Rescored *RescoreResult       `json:"rescored,omitempty"`
}

// UpdatePreferences validates and stores an update. When the formula
// changes, every book of the user is rescored in the same transaction.
func (s *LibraryService) UpdatePreferences(userID uint, update PreferencesUpdate) (UpdateResult, error) {
	if err := validation.Struct(&update); err != nil {
		return UpdateResult{}, err
	}
	if update.Formula != nil {
		if err := update.Formula.Validate(); err != nil {
			return UpdateResult{}, err
		}
	}
	if update.Taxonomy != nil {
		if err := update.Taxonomy.Validate(); err != nil {
			return UpdateResult{}, err
		}
	}

	current, err := s.prefs.Load(userID)
	if err != nil {
		return UpdateResult{}, err
	}

	next := current
	formulaChanged := false
	if update.Formula != nil {
		next.Formula = update.Formula.WithDefaults()
		formulaChanged, err = formulaDiffers(current.Formula, next.Formula)
		if err != nil {
			return UpdateResult{}, err
		}
	}
	if update.Taxonomy != nil {
		next.Taxonomy = update.Taxonomy.OrDefault()
	}
	if update.Availability != nil {
		next.Availability = taxonomy.AvailabilityOptionsOrDefault(update.Availability)
	}
	if update.YearlyGoal != nil {
		next.YearlyGoal = *update.YearlyGoal
		if next.YearlyGoal == 0 {
			next.YearlyGoal = entities.DefaultYearlyGoal
		}
	}

	var rescored *RescoreResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := preferences.StoreTx(tx, userID, next); err != nil {
			return err
		}
		if !formulaChanged {
			return nil
		}
		res, err := rescoreTx(tx, userID, next.Formula)
		if err != nil {
			return err
		}
		rescored = &res
		return nil
	})

	if s.audit != nil {
		s.audit.LogPreferences(userID, "preferences_update", describeUpdate(update), err)
		if formulaChanged {
			var changed, total int
			if rescored != nil {
				changed, total = rescored.Changed, rescored.Total
			}
			s.audit.LogRescore(userID, "formula_update", changed, total, err)
		}
	}
	if err != nil {
		return UpdateResult{}, err
	}

	logging.Info().Uint("user_id", userID).Bool("formula_changed", formulaChanged).Msg("preferences updated")
	return UpdateResult{Settings: next, Rescored: rescored}, nil
}

// RecomputeScores rescores every book of a user with the stored formula.
func (s *LibraryService) RecomputeScores(userID uint) (RescoreResult, error) {
	prefs, err := s.prefs.Load(userID)
	if err != nil {
		return RescoreResult{}, err
	}

	var res RescoreResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		res, err = rescoreTx(tx, userID, prefs.Formula)
		return err
	})
	if s.audit != nil {
		s.audit.LogRescore(userID, "manual_rescore", res.Changed, res.Total, err)
	}
	if err != nil {
		return RescoreResult{}, err
	}

	logging.Info().Uint("user_id", userID).Int("changed", res.Changed).Int("total", res.Total).Msg("scores recomputed")
	return res, nil
}

func rescoreTx(tx *gorm.DB, userID uint, cfg scoring.FormulaConfig) (RescoreResult, error) {
	list, err := books.NewRepository(tx).ListForUser(userID)
	if err != nil {
		return RescoreResult{}, err
	}
	changes := scoring.Recompute(list, cfg)
	if err := books.ApplyScoresTx(tx, userID, changes); err != nil {
		return RescoreResult{}, err
	}
	return RescoreResult{Total: len(list), Changed: len(changes)}, nil
}

func formulaDiffers(a, b scoring.FormulaConfig) (bool, error) {
	ra, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("encode formula config: %w", err)
	}
	rb, err := json.Marshal(b)
	if err != nil {
		return false, fmt.Errorf("encode formula config: %w", err)
	}
	return !bytes.Equal(ra, rb), nil
}

func describeUpdate(u PreferencesUpdate) string {
	var parts []string
	if u.Formula != nil {
		parts = append(parts, "formula")
	}
	if u.Taxonomy != nil {
		parts = append(parts, "taxonomy")
	}
	if u.Availability != nil {
		parts = append(parts, "availability options")
	}
	if u.YearlyGoal != nil {
		parts = append(parts, fmt.Sprintf("yearly goal (%d)", *u.YearlyGoal))
	}
	if len(parts) == 0 {
		return "No changes"
	}
	return "Updated " + strings.Join(parts, ", ")
}
