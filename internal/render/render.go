// Package render turns a service.View into HTML. It holds no state of its
// own: every page is a pure function of the view it is given.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/service"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// LongDateLayout renders dates like "Wednesday, January 1, 2025".
const LongDateLayout = "Monday, January 2, 2006"

// NoDescription is shown on cards whose description is blank.
const NoDescription = "No description provided."

// FormatLongDate formats a YYYY-MM-DD date in long form. Unparseable input
// is returned unchanged.
func FormatLongDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(LongDateLayout)
}

// Renderer executes the page templates.
type Renderer struct {
	tmpl       *template.Template
	categories domain.Categories
}

// New parses the embedded templates. cats populates the category filter and
// the form's category select.
func New(cats domain.Categories) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"longDate": FormatLongDate,
		"describe": func(s string) string {
			if s == "" {
				return NoDescription
			}
			return s
		},
	}).ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render.New: %w", err)
	}
	return &Renderer{tmpl: tmpl, categories: cats}, nil
}

type pageData struct {
	service.View
	Categories domain.Categories
	NoEvents   bool
	NoMatches  bool
	FormTitle  string
	Form       domain.Event
}

// Page writes the full board page for v.
func (r *Renderer) Page(w io.Writer, v service.View) error {
	data := pageData{
		View:       v,
		Categories: r.categories,
		NoEvents:   v.Empty == service.EmptyNoEvents,
		NoMatches:  v.Empty == service.EmptyNoMatches,
		FormTitle:  "Add New Event",
	}
	if v.Mode == service.ModeEdit && v.Editing != nil {
		data.FormTitle = "Edit Event"
		data.Form = *v.Editing
	}
	if v.Draft != nil {
		data.Form = *v.Draft
	}
	if err := r.tmpl.ExecuteTemplate(w, "page.html.tmpl", data); err != nil {
		return fmt.Errorf("render.Page: %w", err)
	}
	return nil
}

type confirmData struct {
	Event  domain.Event
	Prompt string
}

// ConfirmDelete writes the yes/no page shown before deleting e.
func (r *Renderer) ConfirmDelete(w io.Writer, e domain.Event) error {
	data := confirmData{Event: e, Prompt: service.DeletePrompt}
	if err := r.tmpl.ExecuteTemplate(w, "confirm.html.tmpl", data); err != nil {
		return fmt.Errorf("render.ConfirmDelete: %w", err)
	}
	return nil
}
