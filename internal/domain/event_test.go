package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eventboard/internal/domain"
)

func ptr(s string) *string { return &s }

func TestEventInput_Normalized_TrimsTitleAndDescription(t *testing.T) {
	in := domain.EventInput{
		Title:       ptr("  Budget Review \n"),
		Date:        ptr(" 2025-03-05 "),
		Description: ptr("\tquarterly  "),
	}

	got := in.Normalized()

	assert.Equal(t, "Budget Review", *got.Title)
	assert.Equal(t, "quarterly", *got.Description)
	// Only title and description are trimmed; other values are used as-is.
	assert.Equal(t, " 2025-03-05 ", *got.Date)
	assert.Nil(t, got.Category)
	// The receiver is not modified.
	assert.Equal(t, "  Budget Review \n", *in.Title)
}

func TestEventInput_ApplyTo_OnlyPresentFields(t *testing.T) {
	e := domain.Event{
		ID:          "1735689600000",
		Title:       "Old",
		Date:        "2025-01-01",
		Category:    "work",
		Description: "keep me",
		CreatedAt:   "2025-01-01T00:00:00.000Z",
	}

	got := domain.EventInput{Title: ptr("New"), Category: ptr("personal")}.ApplyTo(e)

	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "personal", got.Category)
	assert.Equal(t, "2025-01-01", got.Date)
	assert.Equal(t, "keep me", got.Description)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.CreatedAt, got.CreatedAt)
}

func TestInputFromEvent_RoundTrip(t *testing.T) {
	e := domain.Event{Title: "T", Date: "2025-02-02", Category: "health", Description: "D"}

	got := domain.InputFromEvent(e).ApplyTo(domain.Event{ID: "x"})

	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "2025-02-02", got.Date)
	assert.Equal(t, "health", got.Category)
	assert.Equal(t, "D", got.Description)
	assert.Equal(t, "x", got.ID)
}

func TestEvent_ParsedDate(t *testing.T) {
	d, ok := domain.Event{Date: "2025-01-10"}.ParsedDate()
	require.True(t, ok)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 10, d.Day())

	_, ok = domain.Event{Date: "not a date"}.ParsedDate()
	assert.False(t, ok)
}

func TestFilter_Matches(t *testing.T) {
	budget := domain.Event{Title: "Budget Review", Category: "work"}
	gym := domain.Event{Title: "Gym", Description: "leg day, skip the budget talk", Category: "health"}
	dinner := domain.Event{Title: "Dinner", Category: "personal"}

	tests := []struct {
		name   string
		filter domain.Filter
		event  domain.Event
		want   bool
	}{
		{"zero filter matches everything", domain.Filter{}, dinner, true},
		{"all disables category", domain.Filter{Category: "all"}, dinner, true},
		{"category exact match", domain.Filter{Category: "work"}, budget, true},
		{"category mismatch", domain.Filter{Category: "work"}, dinner, false},
		{"search is case-insensitive on title", domain.Filter{Search: "BUDGET"}, budget, true},
		{"search matches description", domain.Filter{Search: "budget"}, gym, true},
		{"search miss", domain.Filter{Search: "budget"}, dinner, false},
		{"search whitespace ignored", domain.Filter{Search: "   "}, dinner, true},
		{"search lowercases non-ASCII", domain.Filter{Search: "ÉTÉ"}, domain.Event{Title: "Fête d'été"}, true},
		{"search does not fold sharp s", domain.Filter{Search: "strasse"}, domain.Event{Title: "Straße Fest"}, false},
		{"filters intersect", domain.Filter{Category: "work", Search: "budget"}, gym, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(tc.event))
		})
	}
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, domain.Filter{}.IsZero())
	assert.True(t, domain.Filter{Category: "all", Search: " "}.IsZero())
	assert.False(t, domain.Filter{Category: "work"}.IsZero())
	assert.False(t, domain.Filter{Search: "x"}.IsZero())
}

func TestParseCategories(t *testing.T) {
	got := domain.ParseCategories([]string{" Work", "personal", "", "work", "ALL", "travel"})
	assert.Equal(t, domain.Categories{"work", "personal", "travel"}, got)
	assert.True(t, got.Contains("travel"))
	assert.False(t, got.Contains("all"))

	assert.Equal(t, domain.DefaultCategories, domain.ParseCategories(nil))
}
