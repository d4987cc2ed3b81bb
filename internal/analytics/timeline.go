package analytics

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mrlokans/bookstack/internal/entities"
)

// Granularity is the width of a timeline period.
type Granularity string

const (
	Monthly Granularity = "month"
	Yearly  Granularity = "year"
)

// ParseGranularity accepts "month" and "year"; anything else is an error.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Monthly, Yearly:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// Period is one bucket of the reading timeline. Date is "YYYY" or
// "YYYY-MM". Class and category keys are data dependent.
type Period struct {
	Date        string
	Total       int
	PerType     map[string]int
	PerClass    map[string]int
	PerCategory map[string]int
}

func newPeriod(key string) *Period {
	return &Period{
		Date: key,
		PerType: map[string]int{
			string(entities.TypeTechnical):    0,
			string(entities.TypeNonTechnical): 0,
		},
		PerClass:    map[string]int{},
		PerCategory: map[string]int{},
	}
}

// Field is one key of a flattened period.
type Field struct {
	Key   string
	Value int
}

// Fields flattens the period into a single record: total, both type keys,
// then class keys and category keys, each group sorted by name. "date" and
// "total" are reserved, and a key already emitted by an earlier group is
// not repeated.
func (p Period) Fields() []Field {
	fields := []Field{{Key: "total", Value: p.Total}}
	seen := map[string]struct{}{"date": {}, "total": {}}

	add := func(m map[string]int) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			fields = append(fields, Field{Key: k, Value: m[k]})
		}
	}

	add(map[string]int{
		string(entities.TypeTechnical):    p.PerType[string(entities.TypeTechnical)],
		string(entities.TypeNonTechnical): p.PerType[string(entities.TypeNonTechnical)],
	})
	add(p.PerClass)
	add(p.PerCategory)
	return fields
}

// MarshalJSON writes the flattened record:
//
//	{"date":"2024-03","total":2,"Não Técnico":1,"Técnico":1,"Tecnologia & IA":1,...}
func (p Period) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	date, err := json.Marshal(p.Date)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"date":`)
	buf.Write(date)
	for _, f := range p.Fields() {
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(f.Value))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TimelineMeta lists every class and category that appears in a timeline,
// in first-seen order.
type TimelineMeta struct {
	Classes    []string `json:"classes"`
	Categories []string `json:"categories"`
}

// datedBook is a read book with a usable date.
type datedBook struct {
	book *entities.Book
	date time.Time
}

func readWithDates(books []entities.Book) []datedBook {
	var out []datedBook
	for i := range books {
		if !books[i].IsRead() {
			continue
		}
		if d, ok := ParseDate(books[i].DateRead); ok {
			out = append(out, datedBook{book: &books[i], date: d})
		}
	}
	return out
}

func periodKey(t time.Time, g Granularity) string {
	if g == Yearly {
		return fmt.Sprintf("%04d", t.Year())
	}
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// periodIndex maps a date to a sequential unit so that every unit between
// two dates can be enumerated.
func periodIndex(t time.Time, g Granularity) int {
	if g == Yearly {
		return t.Year()
	}
	return t.Year()*12 + int(t.Month()) - 1
}

func indexKey(idx int, g Granularity) string {
	if g == Yearly {
		return fmt.Sprintf("%04d", idx)
	}
	return fmt.Sprintf("%04d-%02d", idx/12, idx%12+1)
}

// AggregateTimeline buckets read books by date_read into a contiguous,
// ascending series of periods. Every period between the first and last read
// date is present, including empty ones. Books without a usable date are
// skipped; no such books yields an empty series.
func AggregateTimeline(books []entities.Book, g Granularity) []Period {
	dated := readWithDates(books)
	if len(dated) == 0 {
		return []Period{}
	}

	lo, hi := periodIndex(dated[0].date, g), periodIndex(dated[0].date, g)
	for _, d := range dated[1:] {
		idx := periodIndex(d.date, g)
		lo = min(lo, idx)
		hi = max(hi, idx)
	}

	buckets := make(map[string]*Period, hi-lo+1)
	order := make([]string, 0, hi-lo+1)
	for idx := lo; idx <= hi; idx++ {
		key := indexKey(idx, g)
		buckets[key] = newPeriod(key)
		order = append(order, key)
	}

	for _, d := range dated {
		p := buckets[periodKey(d.date, g)]
		p.Total++
		p.PerType[typeBucket(d.book.Type)]++
		if d.book.BookClass != "" {
			p.PerClass[d.book.BookClass]++
		}
		if d.book.Category != "" {
			p.PerCategory[d.book.Category]++
		}
	}

	out := make([]Period, 0, len(order))
	for _, key := range order {
		out = append(out, *buckets[key])
	}
	return out
}

// BuildTimelineMeta collects the classes and categories of the read books
// that appear on the timeline.
func BuildTimelineMeta(books []entities.Book) TimelineMeta {
	meta := TimelineMeta{Classes: []string{}, Categories: []string{}}
	seenClass := map[string]struct{}{}
	seenCat := map[string]struct{}{}
	for _, d := range readWithDates(books) {
		if c := d.book.BookClass; c != "" {
			if _, ok := seenClass[c]; !ok {
				seenClass[c] = struct{}{}
				meta.Classes = append(meta.Classes, c)
			}
		}
		if c := d.book.Category; c != "" {
			if _, ok := seenCat[c]; !ok {
				seenCat[c] = struct{}{}
				meta.Categories = append(meta.Categories, c)
			}
		}
	}
	return meta
}

// typeBucket files anything that is not technical as non-technical so that
// the type columns always add up to the total.
func typeBucket(t entities.BookType) string {
	if t == entities.TypeTechnical {
		return string(entities.TypeTechnical)
	}
	return string(entities.TypeNonTechnical)
}
