// Package handler implements the HTTP surface of the event board: the HTML
// pages that stand in for the browser UI, the JSON API, and exports.
// All handlers are methods on Server. Methods are split into files by
// surface (api.go, ui.go, export.go) but share the same dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/render"
	"github.com/pkordes/eventboard/internal/service"
)

// EventServicer defines the store operations the JSON API and exports use.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage.
type EventServicer interface {
	Add(ctx context.Context, in domain.EventInput) (domain.Event, error)
	Update(ctx context.Context, id string, in domain.EventInput) (domain.Event, bool, error)
	Delete(ctx context.Context, id string, confirm service.Confirmer) (service.DeleteOutcome, error)
	Get(id string) (domain.Event, error)
	List(f domain.Filter) []domain.Event
}

// BoardServicer defines the form-mode and notification operations the HTML
// pages use. *service.Session satisfies it.
type BoardServicer interface {
	View(f domain.Filter) service.View
	OpenAdd()
	OpenEdit(id string) bool
	Close()
	Submit(ctx context.Context, in domain.EventInput) (domain.Event, bool, error)
	Remove(ctx context.Context, id string, confirm service.Confirmer) (service.DeleteOutcome, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	events     EventServicer
	board      BoardServicer
	pages      *render.Renderer
	categories domain.Categories
	log        *slog.Logger
	now        func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the logger used for internal errors.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithClock sets the clock used to stamp exports.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer constructs the Server with all its dependencies.
func NewServer(events EventServicer, board BoardServicer, pages *render.Renderer, cats domain.Categories, opts ...Option) *Server {
	s := &Server{
		events:     events,
		board:      board,
		pages:      pages,
		categories: cats,
		log:        slog.Default(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Routes returns the router serving every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	// HTML board.
	r.Get("/", s.GetBoard)
	r.Post("/events/new", s.OpenAddForm)
	r.Post("/events/{id}/edit", s.OpenEditForm)
	r.Post("/events/form", s.SubmitForm)
	r.Post("/events/cancel", s.CancelForm)
	r.Get("/events/{id}/delete", s.ConfirmDelete)
	r.Post("/events/{id}/delete", s.DeleteFromBoard)

	// JSON API.
	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", s.ListEvents)
		r.Post("/", s.CreateEvent)
		r.Get("/{id}", s.GetEvent)
		r.Patch("/{id}", s.UpdateEvent)
		r.Delete("/{id}", s.DeleteEvent)
	})

	r.Get("/export", s.GetExport)

	return r
}

// filterFromRequest reads ?category= and ?search= into a domain.Filter.
func filterFromRequest(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
}
