package scoring

import (
	"github.com/mrlokans/bookstack/internal/entities"
)

// Breakdown lists every contribution to a book's score.
type Breakdown struct {
	Type         int `json:"type"`
	Availability int `json:"availability"`
	Priority     int `json:"priority"`
	BookClass    int `json:"book_class"`
	Category     int `json:"category"`
	Year         int `json:"year"`
	Total        int `json:"total"`

	// CategoryMatch is the configured pattern that supplied Category, and
	// CategoryFallback is set when it matched as a substring.
	CategoryMatch    string `json:"category_match,omitempty"`
	CategoryFallback bool   `json:"category_fallback"`
	YearLabel        string `json:"year_label,omitempty"`
}

// ComputeScore returns the score of book under cfg. Unmatched lookups
// contribute 0 and the sum is not clamped.
func ComputeScore(book entities.Book, cfg FormulaConfig) int {
	return Explain(book, cfg).Total
}

// Explain computes the score of book and reports how each weight table
// contributed to it.
func Explain(book entities.Book, cfg FormulaConfig) Breakdown {
	var b Breakdown

	b.Type = cfg.Type.Lookup(string(book.Type))
	b.Availability = cfg.Availability.Lookup(book.Availability)
	b.Priority = cfg.Priority[string(book.Priority)]
	b.BookClass = cfg.BookClass[book.BookClass]

	if book.Category != "" {
		if w, ok := cfg.Category.Exact(book.Category); ok && w != 0 {
			b.Category = w
			b.CategoryMatch = book.Category
		} else if cw, ok := cfg.Category.FirstContained(book.Category); ok {
			b.Category = cw.Weight
			b.CategoryMatch = cw.Pattern
			b.CategoryFallback = cw.Pattern != book.Category
		}
	}

	if book.Year != nil {
		if r, ok := cfg.Year.Match(*book.Year); ok {
			b.Year = r.Weight
			b.YearLabel = r.Label
		}
	}

	b.Total = b.Type + b.Availability + b.Priority + b.BookClass + b.Category + b.Year
	return b
}
