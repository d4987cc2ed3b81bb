package analytics

import (
	"sort"
	"strings"

	"github.com/mrlokans/bookstack/internal/entities"
)

// BookRef identifies a book in an insight.
type BookRef struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	DateRead string `json:"date_read"`
}

func refOf(b *entities.Book) *BookRef {
	return &BookRef{ID: b.ID, Title: b.Title, Author: b.Author, DateRead: b.DateRead}
}

// TopAuthors lists the most-read author(s), sorted by name when tied.
type TopAuthors struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

// BusiestYears lists the year(s) with the most books read, ascending.
type BusiestYears struct {
	Years []int `json:"years"`
	Count int   `json:"count"`
}

// Insights summarises the reading history. Every field is nil when no read
// book qualifies.
type Insights struct {
	OldestRead  *BookRef      `json:"oldest_read"`
	NewestRead  *BookRef      `json:"newest_read"`
	BusiestYear *BusiestYears `json:"busiest_year"`
	TopAuthor   *TopAuthors   `json:"top_author"`
}

// ExtractInsights reduces the read books of the collection. Books with the
// same extreme date_read are tie-broken by lowest id.
func ExtractInsights(books []entities.Book) Insights {
	var out Insights

	dated := readWithDates(books)
	var oldest, newest *datedBook
	years := map[int]int{}
	for i := range dated {
		d := &dated[i]
		years[d.date.Year()]++
		if oldest == nil || d.date.Before(oldest.date) ||
			(d.date.Equal(oldest.date) && d.book.ID < oldest.book.ID) {
			oldest = d
		}
		if newest == nil || d.date.After(newest.date) ||
			(d.date.Equal(newest.date) && d.book.ID < newest.book.ID) {
			newest = d
		}
	}
	if oldest != nil {
		out.OldestRead = refOf(oldest.book)
		out.NewestRead = refOf(newest.book)
	}

	if years, count := maxKeys(years); count > 0 {
		sort.Ints(years)
		out.BusiestYear = &BusiestYears{Years: years, Count: count}
	}

	authors := map[string]int{}
	for i := range books {
		if !books[i].IsRead() {
			continue
		}
		if a := strings.TrimSpace(books[i].Author); a != "" {
			authors[a]++
		}
	}
	if names, count := maxKeys(authors); count > 0 {
		sort.Strings(names)
		out.TopAuthor = &TopAuthors{Names: names, Count: count}
	}

	return out
}

// maxKeys returns every key holding the highest count, unordered.
func maxKeys[K comparable](counts map[K]int) ([]K, int) {
	best := 0
	var keys []K
	for k, n := range counts {
		switch {
		case n > best:
			best = n
			keys = []K{k}
		case n == best:
			keys = append(keys, k)
		}
	}
	return keys, best
}
