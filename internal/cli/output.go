package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/render"
)

// Output formats for list.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// categoryColors gives each default category its own badge color.
var categoryColors = map[string]*color.Color{
	"work":     color.New(color.FgBlue, color.Bold),
	"personal": color.New(color.FgGreen, color.Bold),
	"social":   color.New(color.FgMagenta, color.Bold),
	"health":   color.New(color.FgRed, color.Bold),
	"other":    color.New(color.FgYellow, color.Bold),
}

var (
	dateColor  = color.New(color.FgCyan)
	idColor    = color.New(color.Faint)
	emptyColor = color.New(color.FgWhite, color.Bold)
)

// listResult is the JSON shape of list --format json.
type listResult struct {
	Events []domain.Event `json:"events"`
	Count  int            `json:"count"`
	Total  int            `json:"total"`
}

// WriteEvents writes events in the specified format. total is the size of
// the whole collection and decides which empty message is shown.
func WriteEvents(w io.Writer, events []domain.Event, f domain.Filter, total int, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listResult{Events: events, Count: len(events), Total: total})
	case FormatText:
		return writeText(w, events, f, total)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeText prints one block per event, or the empty-state hint.
func writeText(w io.Writer, events []domain.Event, f domain.Filter, total int) error {
	if len(events) == 0 {
		if total == 0 && f.IsZero() {
			emptyColor.Fprintln(w, "No events yet")
			fmt.Fprintln(w, `Run "eventctl add" to get started!`)
		} else {
			emptyColor.Fprintln(w, "No events found")
			fmt.Fprintln(w, "Try adjusting your search or filter.")
		}
		return nil
	}

	for _, e := range events {
		badge, ok := categoryColors[e.Category]
		if !ok {
			badge = color.New(color.Bold)
		}
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			dateColor.Sprint(render.FormatLongDate(e.Date)),
			badge.Sprintf("[%s]", e.Category),
			e.Title,
			idColor.Sprintf("(id %s)", e.ID),
		)
		desc := e.Description
		if desc == "" {
			desc = render.NoDescription
		}
		fmt.Fprintf(w, "    %s\n", desc)
	}
	fmt.Fprintf(w, "\n%d of %d events\n", len(events), total)
	return nil
}
