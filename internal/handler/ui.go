package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/notify"
	"github.com/pkordes/eventboard/internal/service"
)

// GetBoard handles GET /: the event grid, filter controls, the form when it
// is open and the active notification.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	s.renderBoard(w, r, http.StatusOK, s.board.View(filterFromRequest(r)))
}

// OpenAddForm handles POST /events/new. Form state is shared server-side,
// so opening the form is a POST that link prefetchers never issue.
func (s *Server) OpenAddForm(w http.ResponseWriter, r *http.Request) {
	s.board.OpenAdd()
	redirectHome(w, r)
}

// OpenEditForm handles POST /events/{id}/edit. An unknown id leaves the form
// as it was.
func (s *Server) OpenEditForm(w http.ResponseWriter, r *http.Request) {
	s.board.OpenEdit(chi.URLParam(r, "id"))
	redirectHome(w, r)
}

// CancelForm handles POST /events/cancel.
func (s *Server) CancelForm(w http.ResponseWriter, r *http.Request) {
	s.board.Close()
	redirectHome(w, r)
}

// SubmitForm handles POST /events/form. It adds or edits depending on the
// form mode. Invalid input re-renders the board with 422 and an error banner;
// the form stays open.
func (s *Server) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.formError(w, r, err)
		return
	}
	in := inputFromForm(r)
	if err := service.ValidateInput(in, s.categories, false); err != nil {
		v := s.board.View(domain.Filter{})
		v.Notice = &notify.Message{Text: unwrapMessage(err), Kind: notify.KindError}
		draft := in.ApplyTo(domain.Event{})
		v.Draft = &draft
		v.FormOpen = true
		s.renderBoard(w, r, http.StatusUnprocessableEntity, v)
		return
	}

	if _, _, err := s.board.Submit(r.Context(), in); err != nil {
		s.internalError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// ConfirmDelete handles GET /events/{id}/delete by asking for confirmation.
func (s *Server) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	e, err := s.events.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			redirectHome(w, r)
			return
		}
		s.internalError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.pages.ConfirmDelete(&buf, e); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, &buf)
}

// DeleteFromBoard handles POST /events/{id}/delete. Only confirm=yes
// deletes; any other answer is a decline.
func (s *Server) DeleteFromBoard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.formError(w, r, err)
		return
	}
	answer := r.PostForm.Get("confirm") == "yes"
	confirm := service.ConfirmFunc(func(context.Context, string) bool { return answer })

	if _, err := s.board.Remove(r.Context(), chi.URLParam(r, "id"), confirm); err != nil {
		s.internalError(w, r, err)
		return
	}
	redirectHome(w, r)
}

// inputFromForm reads the event fields from a parsed form. Fields missing
// from the form stay nil.
func inputFromForm(r *http.Request) domain.EventInput {
	field := func(name string) *string {
		if !r.PostForm.Has(name) {
			return nil
		}
		v := r.PostForm.Get(name)
		return &v
	}
	return domain.EventInput{
		Title:       field("title"),
		Date:        field("date"),
		Category:    field("category"),
		Description: field("description"),
	}
}

func (s *Server) renderBoard(w http.ResponseWriter, r *http.Request, status int, v service.View) {
	var buf bytes.Buffer
	if err := s.pages.Page(&buf, v); err != nil {
		s.internalError(w, r, err)
		return
	}
	writeHTML(w, status, &buf)
}

func (s *Server) formError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, "malformed form", http.StatusBadRequest)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirectHome sends the browser back to the board with 303 See Other so a
// reload does not resubmit the form.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
