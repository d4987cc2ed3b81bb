// Package integrity audits a library for data-quality problems: classes,
// categories and availability values unknown to the user's taxonomy, and
// books whose titles are near-duplicates of each other.
//
// The duplicate pass compares every pair of books, so its cost grows with
// the square of the library size. That is fine for personal libraries of a
// few thousand books; larger corpora would need a blocking key before the
// pairwise comparison.
package integrity

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/taxonomy"
	"github.com/mrlokans/bookstack/internal/utils"
)

const (
	// minTitleLength skips titles too short to compare meaningfully.
	minTitleLength = 3
	// similarityThreshold flags pairs whose similarity exceeds it.
	similarityThreshold = 0.85
	// maxSmallDistance flags pairs within this many edits when the longer
	// title has more than minLongTitle characters.
	maxSmallDistance = 2
	minLongTitle     = 5
)

// Options tune an audit run.
type Options struct {
	// Workers > 1 spreads the duplicate pass over that many goroutines.
	// The findings are identical to a sequential run.
	Workers int
}

// Auditor checks books against a taxonomy and an availability list.
type Auditor struct {
	taxonomy     taxonomy.Taxonomy
	availability map[string]struct{}
	opts         Options
}

// New creates an auditor. An empty taxonomy or availability list falls
// back to the built-in defaults.
func New(tx taxonomy.Taxonomy, availabilityOptions []string, opts Options) *Auditor {
	avail := make(map[string]struct{})
	for _, a := range taxonomy.AvailabilityOptionsOrDefault(availabilityOptions) {
		avail[a] = struct{}{}
	}
	return &Auditor{
		taxonomy:     tx.OrDefault(),
		availability: avail,
		opts:         opts,
	}
}

// Audit runs the metadata pass followed by the duplicate pass.
func Audit(books []entities.Book, tx taxonomy.Taxonomy, availabilityOptions []string) []Finding {
	findings, _ := New(tx, availabilityOptions, Options{}).Run(context.Background(), books)
	return findings
}

// Run audits books. Metadata findings come first, in book order, followed
// by duplicate findings ordered by pair (i, j). The only error is the
// cancellation of ctx.
func (a *Auditor) Run(ctx context.Context, books []entities.Book) ([]Finding, error) {
	findings := a.CheckMetadata(books)
	dups, err := a.FindDuplicates(ctx, books)
	if err != nil {
		return nil, err
	}
	findings = append(findings, dups...)
	if findings == nil {
		findings = []Finding{}
	}
	return findings, nil
}

// CheckMetadata reports, per book, an undefined class or else a category
// missing from its class, and independently an unknown availability.
func (a *Auditor) CheckMetadata(books []entities.Book) []Finding {
	var findings []Finding
	for i := range books {
		b := &books[i]

		switch {
		case !a.taxonomy.HasClass(b.BookClass):
			findings = append(findings, Finding{
				BookID:    b.ID,
				Title:     b.Title,
				IssueType: IssueClass,
				Value:     b.BookClass,
				Reason:    fmt.Sprintf("class %q does not exist", b.BookClass),
			})
		case !a.taxonomy.HasCategory(b.BookClass, b.Category):
			findings = append(findings, Finding{
				BookID:    b.ID,
				Title:     b.Title,
				IssueType: IssueCategory,
				Value:     b.Category,
				Reason:    fmt.Sprintf("category %q does not exist in class %q", b.Category, b.BookClass),
			})
		}

		if _, ok := a.availability[b.Availability]; !ok {
			findings = append(findings, Finding{
				BookID:    b.ID,
				Title:     b.Title,
				IssueType: IssueAvailability,
				Value:     b.Availability,
				Reason:    fmt.Sprintf("availability %q is not a valid option", b.Availability),
			})
		}
	}
	return findings
}

// FindDuplicates compares every pair of titles. A pair is flagged on its
// first book when the normalised titles are equal, when their similarity
// exceeds 0.85, or when they are at most 2 edits apart and the longer one
// has more than 5 characters.
func (a *Auditor) FindDuplicates(ctx context.Context, books []entities.Book) ([]Finding, error) {
	titles := make([]string, len(books))
	for i := range books {
		titles[i] = utils.NormalizeTitle(books[i].Title)
	}

	rows := make([][]Finding, len(books))
	scan := func(i int) {
		rows[i] = a.scanRow(books, titles, i)
	}

	workers := a.opts.Workers
	if workers <= 1 {
		for i := range books {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scan(i)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range books {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				scan(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var findings []Finding
	for _, row := range rows {
		findings = append(findings, row...)
	}
	return findings, nil
}

// scanRow compares book i with every later book.
func (a *Auditor) scanRow(books []entities.Book, titles []string, i int) []Finding {
	t1 := titles[i]
	if utils.RuneLen(t1) < minTitleLength {
		return nil
	}

	var out []Finding
	for j := i + 1; j < len(books); j++ {
		t2 := titles[j]
		if utils.RuneLen(t2) < minTitleLength {
			continue
		}

		if t1 == t2 {
			out = append(out, Finding{
				BookID:      books[i].ID,
				Title:       books[i].Title,
				IssueType:   IssueDuplicate,
				Reason:      fmt.Sprintf("duplicate of %q (id %d)", books[j].Title, books[j].ID),
				DuplicateOf: books[j].ID,
				Similarity:  1,
			})
			continue
		}

		sim, dist := Similarity(t1, t2)
		longest := max(utils.RuneLen(t1), utils.RuneLen(t2))
		if sim > similarityThreshold || (dist <= maxSmallDistance && longest > minLongTitle) {
			out = append(out, Finding{
				BookID:      books[i].ID,
				Title:       books[i].Title,
				IssueType:   IssueDuplicate,
				Reason:      fmt.Sprintf("possible duplicate of %q (id %d)", books[j].Title, books[j].ID),
				DuplicateOf: books[j].ID,
				Similarity:  sim,
				Distance:    dist,
			})
		}
	}
	return out
}

// Report bundles an audit run for presentation.
type Report struct {
	Findings []Finding `json:"findings"`
	Summary  Summary   `json:"summary"`
	Groups   []Group   `json:"groups"`
}

// NewReport summarises and groups findings of books.
func NewReport(books []entities.Book, findings []Finding) Report {
	if findings == nil {
		findings = []Finding{}
	}
	return Report{
		Findings: findings,
		Summary:  Summarize(books, findings),
		Groups:   GroupByReason(findings),
	}
}
