// Package taxonomy holds the two-level classification of a library:
// macro Classes, each owning an ordered list of Categories, plus the list of
// accepted availability values.
//
// Order is significant everywhere: classes and categories are displayed in
// insertion order, and category uniqueness is per class, not global. The
// JSON form is an object whose member order is preserved:
//
//	{"Tecnologia & IA": ["IA", "Programação"], "Negócios & Finanças": ["Negócios"]}
package taxonomy

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mrlokans/bookstack/internal/utils"
	"github.com/mrlokans/bookstack/internal/validation"
)

// Class is a top-level subject grouping and its categories in display order.
type Class struct {
	Name       string   `json:"name" validate:"required"`
	Categories []string `json:"categories" validate:"unique,dive,required"`
}

// Taxonomy is an ordered mapping ClassName -> []CategoryName.
// The zero value is an empty taxonomy; use OrDefault to fall back to the
// built-in table.
type Taxonomy struct {
	Classes []Class `json:"classes" validate:"dive"`
}

// New builds a taxonomy from classes in the given order.
func New(classes ...Class) Taxonomy {
	return Taxonomy{Classes: classes}
}

// IsEmpty reports whether no class is defined.
func (t Taxonomy) IsEmpty() bool {
	return len(t.Classes) == 0
}

// OrDefault returns t, or the built-in taxonomy when t is empty.
func (t Taxonomy) OrDefault() Taxonomy {
	if t.IsEmpty() {
		return Default()
	}
	return t
}

// ClassNames returns class names in display order.
func (t Taxonomy) ClassNames() []string {
	names := make([]string, 0, len(t.Classes))
	for _, c := range t.Classes {
		names = append(names, c.Name)
	}
	return names
}

// HasClass reports whether name is a defined class (exact match).
func (t Taxonomy) HasClass(name string) bool {
	_, ok := t.find(name)
	return ok
}

// Categories returns a copy of the categories of class, or nil when the
// class is unknown.
func (t Taxonomy) Categories(class string) []string {
	c, ok := t.find(class)
	if !ok {
		return nil
	}
	out := make([]string, len(c.Categories))
	copy(out, c.Categories)
	return out
}

// HasCategory reports whether category belongs to class (exact match).
func (t Taxonomy) HasCategory(class, category string) bool {
	c, ok := t.find(class)
	if !ok {
		return false
	}
	for _, cat := range c.Categories {
		if cat == category {
			return true
		}
	}
	return false
}

// ClassOf returns the first class, in display order, that lists category.
func (t Taxonomy) ClassOf(category string) (string, bool) {
	if category == "" {
		return "", false
	}
	for _, c := range t.Classes {
		for _, cat := range c.Categories {
			if cat == category {
				return c.Name, true
			}
		}
	}
	return "", false
}

// ResolveClass finds the class a category should be grouped under: the
// book's own class when set, then the taxonomy owner of the category, then
// the built-in table of known free-text categories.
func (t Taxonomy) ResolveClass(bookClass, category string) (string, bool) {
	if bookClass != "" {
		return bookClass, true
	}
	if cls, ok := t.ClassOf(category); ok {
		return cls, true
	}
	return FallbackClass(category)
}

// Validate checks structural rules: non-empty names, unique class names and
// unique categories within each class.
func (t Taxonomy) Validate() error {
	if err := validation.Struct(&t); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(t.Classes))
	for i, c := range t.Classes {
		if _, dup := seen[c.Name]; dup {
			return validation.NewError(fmt.Sprintf("classes[%d].name", i), "must not contain duplicates")
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}

func (t Taxonomy) find(name string) (Class, bool) {
	for _, c := range t.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return Class{}, false
}

// MarshalJSON writes the taxonomy as an ordered JSON object.
func (t Taxonomy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range t.Classes {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		cats := c.Categories
		if cats == nil {
			cats = []string{}
		}
		val, err := json.Marshal(cats)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an ordered JSON object of class -> categories.
func (t *Taxonomy) UnmarshalJSON(data []byte) error {
	var classes []Class
	err := utils.DecodeOrderedObject(data, func(key string, raw []byte) error {
		var cats []string
		if err := json.Unmarshal(raw, &cats); err != nil {
			return fmt.Errorf("categories of %q: %w", key, err)
		}
		classes = append(classes, Class{Name: key, Categories: cats})
		return nil
	})
	if err != nil {
		return err
	}
	t.Classes = classes
	return nil
}
