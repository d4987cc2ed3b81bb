package analytics

import (
	"sort"
	"strings"

	"github.com/mrlokans/bookstack/internal/entities"
)

// Undefined names the bucket of books that have no value for a field.
const Undefined = "Undefined"

// Dimension is a book field that distributions group by.
type Dimension string

const (
	ByType     Dimension = "type"
	ByClass    Dimension = "book_class"
	ByCategory Dimension = "category"
)

func (d Dimension) value(b *entities.Book) string {
	var v string
	switch d {
	case ByType:
		v = string(b.Type)
	case ByClass:
		v = b.BookClass
	case ByCategory:
		v = b.Category
	}
	if strings.TrimSpace(v) == "" {
		return Undefined
	}
	return v
}

// Slice is one named count of a distribution.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Distribution counts books per value of dim. Every book is counted exactly
// once. Slices are ordered by count descending, then name.
func Distribution(books []entities.Book, dim Dimension) []Slice {
	counts := make(map[string]int)
	for i := range books {
		counts[dim.value(&books[i])]++
	}

	out := make([]Slice, 0, len(counts))
	for name, n := range counts {
		out = append(out, Slice{Name: name, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SplitByStatus separates read books from books still to read or being
// read. Books with any other status belong to neither subset.
func SplitByStatus(books []entities.Book) (read, unread []entities.Book) {
	for _, b := range books {
		switch {
		case b.IsRead():
			read = append(read, b)
		case b.IsUnread():
			unread = append(unread, b)
		}
	}
	return read, unread
}

// Distributions groups one subset of books by every dimension.
type Distributions struct {
	Type     []Slice `json:"type"`
	Class    []Slice `json:"class"`
	Category []Slice `json:"category"`
}

func distributionsOf(books []entities.Book) Distributions {
	return Distributions{
		Type:     Distribution(books, ByType),
		Class:    Distribution(books, ByClass),
		Category: Distribution(books, ByCategory),
	}
}

// StatusDistributions holds the distributions of the read and unread
// subsets.
type StatusDistributions struct {
	Read   Distributions `json:"read"`
	Unread Distributions `json:"unread"`
}

// ComputeDistributions splits books by status and computes every
// distribution of both subsets.
func ComputeDistributions(books []entities.Book) StatusDistributions {
	read, unread := SplitByStatus(books)
	return StatusDistributions{
		Read:   distributionsOf(read),
		Unread: distributionsOf(unread),
	}
}

// Sum returns the total count of a distribution.
func Sum(slices []Slice) int {
	total := 0
	for _, s := range slices {
		total += s.Value
	}
	return total
}
