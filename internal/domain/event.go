// Package domain contains the core data types for the event board.
// It is imported by every other internal package (repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// DateLayout is the date-only format used for Event.Date.
const DateLayout = "2006-01-02"

// TimestampLayout is the format of Event.CreatedAt: UTC with millisecond
// precision, matching what a browser writes with Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Event is a single user-created calendar entry.
// ID and CreatedAt are assigned on creation and never change afterwards.
// The JSON keys match what the browser board writes to localStorage, so an
// exported localStorage value loads unchanged.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// ParsedDate returns Date as a time.Time in UTC.
// ok is false when Date is not a valid YYYY-MM-DD string.
func (e Event) ParsedDate() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EventInput is a partial event record as supplied by a form or API call.
// Nil fields are absent: Add leaves them empty, Update leaves them unchanged.
type EventInput struct {
	Title       *string `json:"title,omitempty"`
	Date        *string `json:"date,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Normalized returns a copy of in with Title and Description trimmed.
// This is the only normalization the store applies.
func (in EventInput) Normalized() EventInput {
	out := in
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		out.Title = &t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		out.Description = &d
	}
	return out
}

// ApplyTo returns e with every present field of in copied over it.
// ID and CreatedAt are never touched.
func (in EventInput) ApplyTo(e Event) Event {
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Date != nil {
		e.Date = *in.Date
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	return e
}

// InputFromEvent builds a fully-populated EventInput from e.
func InputFromEvent(e Event) EventInput {
	return EventInput{
		Title:       &e.Title,
		Date:        &e.Date,
		Category:    &e.Category,
		Description: &e.Description,
	}
}
