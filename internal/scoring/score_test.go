package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/bookstack/internal/entities"
)

func yearPtr(y int) *int { return &y }

func TestComputeScore_DefaultConfig(t *testing.T) {
	cfg := DefaultFormulaConfig()

	tests := []struct {
		name     string
		book     entities.Book
		expected int
	}{
		{
			name: "technical shelf high 2022 unmatched category",
			book: entities.Book{
				Type:         entities.TypeTechnical,
				Availability: "Estante",
				Priority:     entities.PriorityHigh,
				Year:         yearPtr(2022),
				Category:     "Romance",
			},
			expected: 4 + 2 + 10 + 9,
		},
		{
			name: "non technical falls back to type default",
			book: entities.Book{
				Type:     entities.TypeNonTechnical,
				Priority: entities.PriorityLow,
				Year:     yearPtr(1990),
			},
			expected: 2 + 0 + 1 + 4,
		},
		{
			name: "exact category",
			book: entities.Book{
				Type:     entities.TypeTechnical,
				Category: "Cosmologia",
			},
			expected: 4 + 7,
		},
		{
			name:     "empty book still gets type default",
			book:     entities.Book{},
			expected: 2,
		},
		{
			name: "done priority contributes nothing",
			book: entities.Book{
				Type:     entities.TypeTechnical,
				Priority: entities.PriorityDone,
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeScore(tt.book, cfg))
		})
	}
}

func TestComputeScore_Deterministic(t *testing.T) {
	cfg := DefaultFormulaConfig()
	book := entities.Book{
		Type:         entities.TypeTechnical,
		Availability: "Estante",
		Priority:     entities.PriorityMedium,
		Year:         yearPtr(2010),
		Category:     "Machine Learning aplicado",
	}
	first := ComputeScore(book, cfg)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeScore(book, cfg))
	}
}

func TestExplain_YearRanges(t *testing.T) {
	cfg := FormulaConfig{Year: YearWeights{Ranges: []YearRange{
		{Max: yearPtr(2005), Weight: 4},
		{Min: yearPtr(2006), Max: yearPtr(2021), Weight: 7},
		{Min: yearPtr(2022), Weight: 9},
	}}}

	tests := []struct {
		year     *int
		expected int
	}{
		{yearPtr(1990), 4},
		{yearPtr(2005), 4},
		{yearPtr(2006), 7},
		{yearPtr(2021), 7},
		{yearPtr(2022), 9},
		{yearPtr(2100), 9},
		{nil, 0},
	}

	for _, tt := range tests {
		b := Explain(entities.Book{Year: tt.year}, cfg)
		assert.Equal(t, tt.expected, b.Year)
	}
}

func TestExplain_YearGapContributesZero(t *testing.T) {
	cfg := FormulaConfig{Year: YearWeights{Ranges: []YearRange{
		{Max: yearPtr(2000), Weight: 1},
		{Min: yearPtr(2010), Weight: 3},
	}}}
	b := Explain(entities.Book{Year: yearPtr(2005)}, cfg)
	assert.Zero(t, b.Year)
	assert.Empty(t, b.YearLabel)
}

func TestExplain_CategoryFallback(t *testing.T) {
	cfg := FormulaConfig{Category: CategoryWeights{
		{Pattern: "Dados", Weight: 2},
		{Pattern: "Engenharia de Dados", Weight: 5},
		{Pattern: "Zero", Weight: 0},
		{Pattern: "IA", Weight: 6},
	}}

	tests := []struct {
		name     string
		category string
		weight   int
		match    string
		fallback bool
	}{
		{"exact wins over earlier substring", "Engenharia de Dados", 5, "Engenharia de Dados", false},
		{"first substring wins", "Análise de dados", 2, "Dados", true},
		{"case insensitive", "SISTEMAS DE IA", 6, "IA", true},
		{"zero exact weight without other match", "Zero", 0, "Zero", false},
		{"no match", "Romance", 0, "", false},
		{"empty category", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Explain(entities.Book{Category: tt.category}, cfg)
			assert.Equal(t, tt.weight, b.Category)
			assert.Equal(t, tt.match, b.CategoryMatch)
			assert.Equal(t, tt.fallback, b.CategoryFallback)
		})
	}
}

func TestExplain_ZeroExactWeightUsesEarlierSubstring(t *testing.T) {
	cfg := FormulaConfig{Category: CategoryWeights{
		{Pattern: "Dados", Weight: 2},
		{Pattern: "Ciência de Dados", Weight: 0},
	}}

	b := Explain(entities.Book{Category: "Ciência de Dados"}, cfg)
	assert.Equal(t, 2, b.Category)
	assert.Equal(t, "Dados", b.CategoryMatch)
	assert.True(t, b.CategoryFallback)
}

func TestExplain_BookClassAndTotals(t *testing.T) {
	cfg := DefaultFormulaConfig()
	cfg.BookClass = map[string]int{"Tecnologia & IA": 3}

	b := Explain(entities.Book{
		Type:      entities.TypeTechnical,
		BookClass: "Tecnologia & IA",
		Category:  "IA",
		Year:      yearPtr(2015),
	}, cfg)

	assert.Equal(t, 4, b.Type)
	assert.Equal(t, 3, b.BookClass)
	assert.Equal(t, 6, b.Category)
	assert.Equal(t, 7, b.Year)
	assert.Equal(t, "Recentes", b.YearLabel)
	assert.Equal(t, b.Type+b.Availability+b.Priority+b.BookClass+b.Category+b.Year, b.Total)
}

func TestComputeScore_NegativeWeightsAreNotClamped(t *testing.T) {
	cfg := FormulaConfig{Type: WeightTable{Default: yearPtr(-5)}}
	assert.Equal(t, -5, ComputeScore(entities.Book{}, cfg))
}

func TestComputeScore_EmptyConfig(t *testing.T) {
	assert.Zero(t, ComputeScore(entities.Book{
		Type:     entities.TypeTechnical,
		Priority: entities.PriorityHigh,
		Year:     yearPtr(2022),
	}, FormulaConfig{}))
}
