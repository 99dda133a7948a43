package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/eventboard/internal/domain"
)

// ValidateInput enforces the checks the input form applies before handing
// data to the store. The store itself never calls it.
//   - Title must be non-empty after trimming.
//   - Date must be a YYYY-MM-DD calendar date.
//   - Category must be one of cats.
//
// When partial is true absent fields are skipped (edits that change only
// some fields); otherwise title, date and category are required.
func ValidateInput(in domain.EventInput, cats domain.Categories, partial bool) error {
	switch {
	case in.Title != nil:
		if strings.TrimSpace(*in.Title) == "" {
			return fmt.Errorf("%w: title is required", domain.ErrValidation)
		}
	case !partial:
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	switch {
	case in.Date != nil:
		if _, err := time.Parse(domain.DateLayout, *in.Date); err != nil {
			return fmt.Errorf("%w: date must be in YYYY-MM-DD format", domain.ErrValidation)
		}
	case !partial:
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	switch {
	case in.Category != nil:
		if !cats.Contains(*in.Category) {
			return fmt.Errorf("%w: category must be one of %s", domain.ErrValidation, strings.Join(cats, ", "))
		}
	case !partial:
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}

	return nil
}
