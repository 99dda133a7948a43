package domain

import (
	"slices"
	"strings"
)

// AllCategories is the filter value that disables category filtering.
const AllCategories = "all"

// DefaultCategories is the category set offered by the input form when none
// is configured.
var DefaultCategories = Categories{"work", "personal", "social", "health", "other"}

// Categories is the fixed, ordered set of tags an event may carry.
// Order is the order the form lists them in.
type Categories []string

// Contains reports whether name is one of the configured categories.
func (c Categories) Contains(name string) bool {
	return slices.Contains(c, name)
}

// ParseCategories normalizes a configured category list: entries are trimmed
// and lowercased, and empty entries, duplicates and the reserved "all" value
// are dropped. An empty result falls back to DefaultCategories.
func ParseCategories(names []string) Categories {
	var out Categories
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || n == AllCategories || out.Contains(n) {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return slices.Clone(DefaultCategories)
	}
	return out
}
