// Package export renders the event collection as a downloadable file.
// The HTTP server and the CLI share it so both produce identical output.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/eventboard/internal/calendar"
	"github.com/pkordes/eventboard/internal/domain"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatICS  = "ics"
)

// Formats lists every supported format, default first.
var Formats = []string{FormatJSON, FormatCSV, FormatICS}

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"id", "title", "date", "category", "description", "created_at"}

// File is an encoded export.
type File struct {
	Body        []byte
	ContentType string
	Filename    string
}

// Encode renders events in format. An empty format means JSON; an unknown
// one is a domain.ErrValidation error. stamp is written into ICS output as
// the generation time.
func Encode(events []domain.Event, format string, stamp time.Time) (File, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatJSON
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(events, "", "  ")
		if err != nil {
			return File{}, fmt.Errorf("export.Encode: %w", err)
		}
		return File{Body: append(data, '\n'), ContentType: "application/json", Filename: "events.json"}, nil
	case FormatCSV:
		return File{Body: encodeCSV(events), ContentType: "text/csv; charset=utf-8", Filename: "events.csv"}, nil
	case FormatICS:
		body := calendar.GenerateICS(events, stamp)
		return File{Body: []byte(body), ContentType: "text/calendar; charset=utf-8", Filename: "events.ics"}, nil
	default:
		return File{}, fmt.Errorf("%w: format must be one of %s", domain.ErrValidation, strings.Join(Formats, ", "))
	}
}

// encodeCSV writes a header row and one record per event.
func encodeCSV(events []domain.Event) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, e := range events {
		//nolint:errcheck
		w.Write([]string{e.ID, e.Title, e.Date, e.Category, e.Description, e.CreatedAt})
	}
	w.Flush()
	return buf.Bytes()
}
