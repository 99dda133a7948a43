// Package calendar renders events as an iCalendar feed so they can be
// imported into other calendar applications.
package calendar

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pkordes/eventboard/internal/domain"
)

// ProductID identifies this application in generated feeds.
const ProductID = "-//Event Board//eventboard//EN"

// uidDomain qualifies event ids into globally unique UIDs.
const uidDomain = "eventboard.local"

// GenerateICS builds a VCALENDAR with one all-day VEVENT per event.
// Events whose date does not parse are skipped. stamp is written as DTSTAMP.
func GenerateICS(events []domain.Event, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	for _, e := range events {
		day, ok := e.ParsedDate()
		if !ok {
			continue
		}

		ve := cal.AddEvent(e.ID + "@" + uidDomain)
		ve.SetDtStampTime(stamp.UTC())
		if created, err := time.Parse(domain.TimestampLayout, e.CreatedAt); err == nil {
			ve.SetCreatedTime(created.UTC())
		}
		ve.SetAllDayStartAt(day)
		ve.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Category != "" {
			ve.AddProperty(ical.ComponentPropertyCategories, e.Category)
		}
	}

	return cal.Serialize()
}
