package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Lower lower-cases s with Unicode-aware rules ("ÉPICOS" -> "épicos").
// A new Caser is created per call because Casers are not safe for
// concurrent use.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// NormalizeTitle trims and lower-cases a title for comparison.
func NormalizeTitle(title string) string {
	return Lower(strings.TrimSpace(title))
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Lower(s), Lower(substr))
}

// RuneLen returns the number of characters in s.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
