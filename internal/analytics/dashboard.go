// Package analytics derives reading statistics from a snapshot of books:
// KPIs, a contiguous reading timeline, distributions by type, class and
// category, colour palettes and historical insights.
//
// Every function is a pure reduction over its input and never mutates the
// books it is given. Malformed values (missing dates, unknown classes) are
// skipped or bucketed, never reported as errors.
package analytics

import (
	"time"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/taxonomy"
)

// Inputs are the non-book parameters of a dashboard.
type Inputs struct {
	Taxonomy   taxonomy.Taxonomy
	YearlyGoal int
	Now        time.Time
}

// Timelines holds the monthly and yearly series of the same books.
type Timelines struct {
	Monthly []Period     `json:"monthly"`
	Yearly  []Period     `json:"yearly"`
	Meta    TimelineMeta `json:"meta"`
}

// Dashboard is every derived view of one library.
type Dashboard struct {
	KPIs          KPIs                `json:"kpi"`
	Insights      Insights            `json:"insights"`
	Timeline      Timelines           `json:"timeline"`
	Distributions StatusDistributions `json:"distributions"`
	Palette       Palette             `json:"palette"`
	Colors        map[string]string   `json:"colors"`
}

// Compute builds the dashboard of books. An empty taxonomy falls back to
// the built-in one and a zero Now means the current time.
func Compute(books []entities.Book, in Inputs) *Dashboard {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	tx := in.Taxonomy.OrDefault()
	palette := BuildPalette(books, tx)

	return &Dashboard{
		KPIs:     ComputeKPIs(books, in.YearlyGoal, now),
		Insights: ExtractInsights(books),
		Timeline: Timelines{
			Monthly: AggregateTimeline(books, Monthly),
			Yearly:  AggregateTimeline(books, Yearly),
			Meta:    BuildTimelineMeta(books),
		},
		Distributions: ComputeDistributions(books),
		Palette:       palette,
		Colors:        palette.CSS(),
	}
}
