package analytics

import (
	"strconv"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/taxonomy"
)

func sampleLibrary() []entities.Book {
	return []entities.Book{
		{ID: 1, Title: "Clean Code", Author: "Robert Martin", Status: entities.StatusRead, DateRead: "2024-01-10",
			Type: entities.TypeTechnical, BookClass: "Tecnologia & IA", Category: "Programação", Score: 0},
		{ID: 2, Title: "Sapiens", Author: "Yuval Harari", Status: entities.StatusRead, DateRead: "2024-03-02",
			Type: entities.TypeNonTechnical, Category: "História/Ficção"},
		{ID: 3, Title: "Deep Learning", Author: "Ian Goodfellow", Status: entities.StatusToRead,
			Type: entities.TypeTechnical, BookClass: "Tecnologia & IA", Category: "IA", Score: 21},
	}
}

func TestCompute(t *testing.T) {
	now := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	d := Compute(sampleLibrary(), Inputs{YearlyGoal: 10, Now: now})

	assert.Equal(t, 3, d.KPIs.Total)
	assert.Equal(t, 2, d.KPIs.ReadThisYear)
	assert.Len(t, d.Timeline.Monthly, 3)
	assert.Len(t, d.Timeline.Yearly, 1)
	assert.Equal(t, []string{"Tecnologia & IA"}, d.Timeline.Meta.Classes)
	assert.Equal(t, "Literatura & Cultura", d.Palette.CategoryClass["História/Ficção"])
	assert.Contains(t, d.Colors, "IA")
	require.NotNil(t, d.Insights.OldestRead)
	assert.Equal(t, uint(1), d.Insights.OldestRead.ID)

	_, err := json.Marshal(d)
	assert.NoError(t, err)
}

func TestCompute_Empty(t *testing.T) {
	d := Compute(nil, Inputs{})

	assert.Equal(t, 0, d.KPIs.Total)
	assert.Empty(t, d.Timeline.Monthly)
	assert.Empty(t, d.Timeline.Yearly)
	assert.Empty(t, d.Distributions.Read.Type)
	assert.Equal(t, Insights{}, d.Insights)
	assert.Empty(t, d.Palette.Unmapped)
}

func TestFingerprint(t *testing.T) {
	in := Inputs{YearlyGoal: 20}
	books := sampleLibrary()

	base := Fingerprint(books, in)
	assert.Equal(t, base, Fingerprint(sampleLibrary(), in))

	changed := sampleLibrary()
	changed[2].Score = 22
	assert.NotEqual(t, base, Fingerprint(changed, in))

	assert.NotEqual(t, base, Fingerprint(books, Inputs{YearlyGoal: 21}))

	custom := Inputs{YearlyGoal: 20, Taxonomy: taxonomy.New(taxonomy.Class{Name: "X"})}
	assert.NotEqual(t, base, Fingerprint(books, custom))

	assert.Equal(t, base, Fingerprint(books, Inputs{YearlyGoal: 20, Taxonomy: taxonomy.Default()}),
		"empty taxonomy and the default one are the same input")
}

func TestMemo_ReturnsEquivalentDashboards(t *testing.T) {
	memo, err := NewMemo(8)
	require.NoError(t, err)
	defer memo.Close()

	in := Inputs{YearlyGoal: 5, Now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	first := memo.Dashboard(sampleLibrary(), in)
	memo.Wait()
	second := memo.Dashboard(sampleLibrary(), in)

	assert.Same(t, first, second)
	assert.Equal(t, Compute(sampleLibrary(), in), first)

	memo.Clear()
	again := memo.Dashboard(sampleLibrary(), in)
	assert.NotSame(t, first, again)
	assert.Equal(t, first, again)
}

func TestMemo_HoldsSizeDashboards(t *testing.T) {
	for _, size := range []int64{1, 8, 64} {
		t.Run(strconv.FormatInt(size, 10), func(t *testing.T) {
			memo, err := NewMemo(size)
			require.NoError(t, err)
			defer memo.Close()

			now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
			stored := make([]*Dashboard, size)
			for i := range stored {
				stored[i] = memo.Dashboard(sampleLibrary(), Inputs{YearlyGoal: i + 1, Now: now})
				memo.Wait()
			}

			for i, want := range stored {
				got := memo.Dashboard(sampleLibrary(), Inputs{YearlyGoal: i + 1, Now: now})
				assert.Same(t, want, got, "goal %d", i+1)
			}
		})
	}
}
