package analytics

import (
	"sort"
	"unicode/utf16"

	"github.com/mrlokans/bookstack/internal/entities"
	"github.com/mrlokans/bookstack/internal/taxonomy"
	"github.com/mrlokans/bookstack/internal/utils"
)

// Unmapped is the synthetic class of categories whose class cannot be
// resolved.
const Unmapped = "Unmapped"

// lightnessStep separates categories of the same class.
const lightnessStep = 5.0

var classBaseHSL = map[string]utils.HSL{
	"Desenvolvimento Pessoal":  {H: 185, S: 75, L: 75},
	"Literatura & Cultura":     {H: 270, S: 70, L: 80},
	"Tecnologia & IA":          {H: 145, S: 65, L: 70},
	"Negócios & Finanças":      {H: 45, S: 85, L: 75},
	"Engenharia & Arquitetura": {H: 220, S: 70, L: 80},
	"Conhecimento & Ciências":  {H: 340, S: 80, L: 80},
	"Produtividade":            {H: 15, S: 80, L: 80},
	"Espiritualidade":          {H: 245, S: 70, L: 80},
	"Biografias":               {H: 320, S: 70, L: 75},
}

var unmappedHSL = utils.HSL{H: 0, S: 0, L: 80}

// ClassColor returns the base colour of a class. Classes outside the
// built-in palette get a hue derived from their name, so the result is
// stable across runs.
func ClassColor(class string) utils.HSL {
	if class == Unmapped {
		return unmappedHSL
	}
	if c, ok := classBaseHSL[class]; ok {
		return c
	}
	return utils.HSL{H: float64(nameHue(class)), S: 65, L: 75}
}

// nameHue hashes the UTF-16 code units of name with
// h = c + (h<<5) - h, the shift done in 32-bit arithmetic, and folds the
// result into [0, 360).
func nameHue(name string) int64 {
	var hash int64
	for _, c := range utf16.Encode([]rune(name)) {
		shifted := int64(int32(hash) << 5)
		hash = int64(c) + shifted - hash
	}
	h := hash % 360
	if h < 0 {
		h = -h
	}
	return h
}

// CategoryColor perturbs the class colour of the idx-th of n categories.
func CategoryColor(base utils.HSL, idx, n int) utils.HSL {
	offset := (float64(idx) - float64(n-1)/2) * lightnessStep
	return base.WithLightness(base.L + offset)
}

// Palette is the colour assignment of one library.
type Palette struct {
	Classes       map[string]utils.HSL `json:"classes"`
	Categories    map[string]utils.HSL `json:"categories"`
	CategoryClass map[string]string    `json:"category_class"`
	Unmapped      []string             `json:"unmapped_categories"`
}

// CSS renders every colour of the palette keyed by class or category name.
func (p Palette) CSS() map[string]string {
	out := make(map[string]string, len(p.Classes)+len(p.Categories))
	for name, c := range p.Classes {
		out[name] = c.String()
	}
	for name, c := range p.Categories {
		out[name] = c.String()
	}
	return out
}

// BuildPalette assigns colours to every class of the taxonomy and every
// category found in books. A category takes the class of the first book
// that resolves one, through the book's own class, the taxonomy or the
// built-in table of known categories. Within a class, categories are ranked
// by frequency (then name) and spread around the class lightness.
// Categories that resolve to no class are grouped under Unmapped and listed
// in Palette.Unmapped.
func BuildPalette(books []entities.Book, tx taxonomy.Taxonomy) Palette {
	p := Palette{
		Classes:       map[string]utils.HSL{},
		Categories:    map[string]utils.HSL{},
		CategoryClass: map[string]string{},
		Unmapped:      []string{},
	}

	for _, cls := range tx.ClassNames() {
		p.Classes[cls] = ClassColor(cls)
	}

	freq := map[string]int{}
	for i := range books {
		b := &books[i]
		if b.BookClass != "" {
			if _, ok := p.Classes[b.BookClass]; !ok {
				p.Classes[b.BookClass] = ClassColor(b.BookClass)
			}
		}
		if b.Category == "" {
			continue
		}
		freq[b.Category]++
		if _, done := p.CategoryClass[b.Category]; done {
			continue
		}
		if cls, ok := tx.ResolveClass(b.BookClass, b.Category); ok {
			p.CategoryClass[b.Category] = cls
		}
	}

	byClass := map[string][]string{}
	for cat := range freq {
		cls, ok := p.CategoryClass[cat]
		if !ok {
			cls = Unmapped
			p.Unmapped = append(p.Unmapped, cat)
		}
		byClass[cls] = append(byClass[cls], cat)
	}
	sort.Strings(p.Unmapped)

	for cls, cats := range byClass {
		sort.Slice(cats, func(i, j int) bool {
			if freq[cats[i]] != freq[cats[j]] {
				return freq[cats[i]] > freq[cats[j]]
			}
			return cats[i] < cats[j]
		})
		base := ClassColor(cls)
		if cls != Unmapped {
			p.Classes[cls] = base
		}
		for idx, cat := range cats {
			p.Categories[cat] = CategoryColor(base, idx, len(cats))
		}
	}
	return p
}
