package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter selects the events shown in a projection.
// An empty Category or AllCategories disables the category filter; an empty
// Search disables the text filter. When both are set they intersect.
type Filter struct {
	Category string
	Search   string
}

// IsZero reports whether f selects every event.
func (f Filter) IsZero() bool {
	return (f.Category == "" || f.Category == AllCategories) && strings.TrimSpace(f.Search) == ""
}

// Matches reports whether e passes both the category and the search filter.
// Category must match exactly. Search is a case-insensitive substring match
// against Title or Description, comparing lowercased text the way a browser's
// toLowerCase does (so "ß" does not match "ss").
func (f Filter) Matches(e Event) bool {
	if f.Category != "" && f.Category != AllCategories && e.Category != f.Category {
		return false
	}
	term := strings.TrimSpace(f.Search)
	if term == "" {
		return true
	}
	lower := cases.Lower(language.Und)
	term = lower.String(term)
	return strings.Contains(lower.String(e.Title), term) ||
		strings.Contains(lower.String(e.Description), term)
}
