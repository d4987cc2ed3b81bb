// Package scoring computes the priority score of a book from a user's
// weighted formula.
//
// A score is the sum of six independent contributions (type, availability,
// priority, class, category, publication year). Every lookup that misses
// contributes 0, so malformed books never produce an error.
package scoring

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/utils"
	"github.com/mrlokans/bookstack/internal/validation"
)

const defaultKey = "default"

// WeightTable maps a field value to a weight with an optional fallback.
// In JSON the fallback is stored under the "default" key:
//
//	{"Técnico": 4, "default": 2}
type WeightTable struct {
	Weights map[string]int
	Default *int
}

// Lookup returns the weight of key, the table default, or 0.
func (w WeightTable) Lookup(key string) int {
	if v, ok := w.Weights[key]; ok {
		return v
	}
	if w.Default != nil {
		return *w.Default
	}
	return 0
}

func (w WeightTable) isZero() bool {
	return w.Weights == nil && w.Default == nil
}

func (w WeightTable) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(w.Weights)+1)
	for k, v := range w.Weights {
		out[k] = v
	}
	if w.Default != nil {
		out[defaultKey] = *w.Default
	}
	return json.Marshal(out)
}

func (w *WeightTable) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*w = WeightTable{}
		return nil
	}
	w.Default = nil
	if v, ok := raw[defaultKey]; ok {
		w.Default = &v
		delete(raw, defaultKey)
	}
	w.Weights = raw
	return nil
}

// YearRange admits publication years within [Min, Max]. A missing bound is
// open on that side.
type YearRange struct {
	Min    *int   `json:"min,omitempty"`
	Max    *int   `json:"max,omitempty"`
	Weight int    `json:"weight"`
	Label  string `json:"label,omitempty"`
}

// Admits reports whether year falls inside the range.
func (r YearRange) Admits(year int) bool {
	if r.Min != nil && year < *r.Min {
		return false
	}
	if r.Max != nil && year > *r.Max {
		return false
	}
	return true
}

// YearWeights is an ordered list of disjoint year ranges. The first range
// admitting a year supplies its weight.
type YearWeights struct {
	Ranges []YearRange `json:"ranges"`
}

// Match returns the first range admitting year.
func (y YearWeights) Match(year int) (YearRange, bool) {
	for _, r := range y.Ranges {
		if r.Admits(year) {
			return r, true
		}
	}
	return YearRange{}, false
}

// CategoryWeight pairs a category name with its weight. Pattern is matched
// exactly first, then as a case-insensitive substring of the book category.
type CategoryWeight struct {
	Pattern string `json:"pattern" validate:"required"`
	Weight  int    `json:"weight"`
}

// CategoryWeights is ordered so that the substring fallback is reproducible:
// the first matching pattern wins.
//
// JSON accepts both the list form and the older object form, whose member
// order is kept:
//
//	[{"pattern": "IA", "weight": 6}]
//	{"IA": 6, "Programação": 3}
type CategoryWeights []CategoryWeight

// Exact returns the weight configured for category (case-sensitive).
func (c CategoryWeights) Exact(category string) (int, bool) {
	for _, cw := range c {
		if cw.Pattern == category {
			return cw.Weight, true
		}
	}
	return 0, false
}

// FirstContained returns the first pattern contained in category, ignoring
// case.
func (c CategoryWeights) FirstContained(category string) (CategoryWeight, bool) {
	if category == "" {
		return CategoryWeight{}, false
	}
	for _, cw := range c {
		if cw.Pattern != "" && utils.ContainsFold(category, cw.Pattern) {
			return cw, true
		}
	}
	return CategoryWeight{}, false
}

func (c *CategoryWeights) UnmarshalJSON(data []byte) error {
	if utils.IsJSONArray(data) {
		var list []CategoryWeight
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*c = list
		return nil
	}

	var list []CategoryWeight
	err := utils.DecodeOrderedObject(data, func(key string, raw []byte) error {
		var weight int
		if err := json.Unmarshal(raw, &weight); err != nil {
			return fmt.Errorf("category weight %q: %w", key, err)
		}
		list = append(list, CategoryWeight{Pattern: key, Weight: weight})
		return nil
	})
	if err != nil {
		return err
	}
	*c = list
	return nil
}

// FormulaConfig holds the weight tables used to compute scores.
// A nil section means "not configured" and is replaced by the built-in
// default in WithDefaults; an empty but non-nil section is kept as is.
type FormulaConfig struct {
	Type         WeightTable     `json:"type"`
	Availability WeightTable     `json:"availability"`
	Priority     map[string]int  `json:"priority"`
	Year         YearWeights     `json:"year"`
	BookClass    map[string]int  `json:"book_class"`
	Category     CategoryWeights `json:"category" validate:"unique=Pattern,dive"`
}

// DefaultFormulaConfig returns the built-in weight table.
func DefaultFormulaConfig() FormulaConfig {
	return FormulaConfig{
		Type: WeightTable{
			Weights: map[string]int{string(entities.TypeTechnical): 4},
			Default: intPtr(2),
		},
		Availability: WeightTable{
			Weights: map[string]int{"Estante": 2},
			Default: intPtr(0),
		},
		Priority: map[string]int{
			string(entities.PriorityLow):        1,
			string(entities.PriorityMedium):     4,
			string(entities.PriorityMediumHigh): 7,
			string(entities.PriorityHigh):       10,
		},
		Year: YearWeights{Ranges: []YearRange{
			{Max: intPtr(2005), Weight: 4, Label: "Antigos"},
			{Min: intPtr(2006), Max: intPtr(2021), Weight: 7, Label: "Recentes"},
			{Min: intPtr(2022), Weight: 9, Label: "Lançamentos"},
		}},
		BookClass: map[string]int{},
		Category:  defaultCategoryWeights(),
	}
}

func defaultCategoryWeights() CategoryWeights {
	return CategoryWeights{
		{"Produtividade", 5},
		{"Liderança", 7},
		{"Inteligência emocional", 7},
		{"Desenvolvimento pessoal", 5},
		{"Criatividade", 3},
		{"Comunicação", 5},
		{"Bem-estar", 5},
		{"Literatura brasileira", 5},
		{"História/Ficção", 7},
		{"Diversidade e inclusão", 3},
		{"Negócios", 2},
		{"Finanças pessoais", 4},
		{"Conhecimento geral", 7},
		{"Estatística", 7},
		{"MLOps", 5},
		{"Engenharia de dados", 5},
		{"Arquitetura de Software", 1},
		{"Programação", 3},
		{"Machine learning", 7},
		{"Visão computacional", 7},
		{"IA", 6},
		{"Data science", 7},
		{"Análise de Dados", 5},
		{"Liderança & Pensamento Estratégico", 7},
		{"Arquitetura da Mente (Mindset)", 7},
		{"Sistemas de IA & LLMs", 6},
		{"Storytelling & Visualização", 5},
		{"Biohacking & Existência", 5},
		{"Épicos & Ficção Reflexiva", 7},
		{"Justiça Social & Interseccionalidade", 3},
		{"Liberdade Econômica", 4},
		{"Cosmologia", 7},
		{"Estatística & Incerteza", 7},
		{"Engenharia de ML & MLOps", 5},
	}
}

// WithDefaults returns a copy of c where every unconfigured section is taken
// from DefaultFormulaConfig.
func (c FormulaConfig) WithDefaults() FormulaConfig {
	def := DefaultFormulaConfig()
	if c.Type.isZero() {
		c.Type = def.Type
	}
	if c.Availability.isZero() {
		c.Availability = def.Availability
	}
	if c.Priority == nil {
		c.Priority = def.Priority
	}
	if c.Year.Ranges == nil {
		c.Year = def.Year
	}
	if c.BookClass == nil {
		c.BookClass = def.BookClass
	}
	if c.Category == nil {
		c.Category = def.Category
	}
	return c
}

// ParseFormulaConfig decodes a stored formula document. Empty input yields
// the default configuration.
func ParseFormulaConfig(data []byte) (FormulaConfig, error) {
	var cfg FormulaConfig
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return FormulaConfig{}, fmt.Errorf("decode formula config: %w", err)
		}
	}
	return cfg.WithDefaults(), nil
}

// Validate checks category patterns and that year ranges are well-formed,
// ascending and disjoint. Gaps between ranges are allowed; a year in a gap
// contributes 0.
func (c FormulaConfig) Validate() error {
	if err := validation.Struct(&c); err != nil {
		return err
	}

	ranges := c.Year.Ranges
	for i, r := range ranges {
		field := fmt.Sprintf("year.ranges[%d]", i)
		if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
			return validation.NewError(field, "min must not exceed max")
		}
		if r.Min == nil && i > 0 {
			return validation.NewError(field, "only the first range may omit min")
		}
		if r.Max == nil && i < len(ranges)-1 {
			return validation.NewError(field, "only the last range may omit max")
		}
		if i > 0 && *ranges[i-1].Max >= *r.Min {
			return validation.NewError(field, "must start after the previous range ends")
		}
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
