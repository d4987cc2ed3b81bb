package analytics

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
	json "github.com/goccy/go-json"

	"github.com/mrlokans/bookstack/internal/entities"
)

// Fingerprint hashes every input a dashboard depends on. Equal
// fingerprints mean Compute would return equal dashboards, provided Now
// falls in the same calendar year.
func Fingerprint(books []entities.Book, in Inputs) uint64 {
	d := xxhash.New()
	field := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	optInt := func(v *int) {
		if v == nil {
			field("-")
			return
		}
		field(strconv.Itoa(*v))
	}

	for i := range books {
		b := &books[i]
		field(strconv.FormatUint(uint64(b.ID), 10))
		field(b.Title)
		field(b.Author)
		field(string(b.Status))
		field(string(b.Type))
		field(b.BookClass)
		field(b.Category)
		field(b.DateRead)
		field(strconv.Itoa(b.Score))
		optInt(b.Rating)
		_, _ = d.Write([]byte{1})
	}

	tx, _ := json.Marshal(in.Taxonomy.OrDefault())
	_, _ = d.Write(tx)
	field(strconv.Itoa(in.YearlyGoal))
	if !in.Now.IsZero() {
		field(strconv.Itoa(in.Now.Year()))
	}
	return d.Sum64()
}

// Memo caches dashboards by fingerprint. Eviction is bounded by size
// entries; a miss recomputes from scratch.
type Memo struct {
	cache *ristretto.Cache[uint64, *Dashboard]
}

// NewMemo creates a cache holding roughly size dashboards.
func NewMemo(size int64) (*Memo, error) {
	if size <= 0 {
		size = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, *Dashboard]{
		// Every dashboard costs 1, so MaxCost counts dashboards.
		NumCounters:        size * 10,
		MaxCost:            size,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Memo{cache: cache}, nil
}

// Dashboard returns the cached dashboard for the inputs or computes and
// stores it. Callers must not modify the result.
func (m *Memo) Dashboard(books []entities.Book, in Inputs) *Dashboard {
	key := Fingerprint(books, in)
	if d, ok := m.cache.Get(key); ok {
		return d
	}
	d := Compute(books, in)
	m.cache.Set(key, d, 1)
	return d
}

// Wait blocks until pending stores are visible to Dashboard.
func (m *Memo) Wait() {
	m.cache.Wait()
}

// Clear drops every cached dashboard.
func (m *Memo) Clear() {
	m.cache.Clear()
}

func (m *Memo) Close() {
	m.cache.Close()
}
