package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/service"
)

// eventRequest is the body of POST and PATCH /api/events.
// Every field is a pointer so PATCH can tell absent from empty.
type eventRequest struct {
	Title       *string             `json:"title"`
	Date        *openapi_types.Date `json:"date"`
	Category    *string             `json:"category"`
	Description *string             `json:"description"`
}

// toInput converts the request body to a domain.EventInput.
func (b eventRequest) toInput() domain.EventInput {
	in := domain.EventInput{
		Title:       b.Title,
		Category:    b.Category,
		Description: b.Description,
	}
	if b.Date != nil {
		d := b.Date.Format(openapi_types.DateFormat)
		in.Date = &d
	}
	return in
}

// listResponse is the body of GET /api/events.
type listResponse struct {
	Data  []domain.Event `json:"data"`
	Total int            `json:"total"`
}

// ListEvents handles GET /api/events.
// ?category= and ?search= narrow the list; results are sorted by date.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := s.events.List(filterFromRequest(r))
	writeJSON(w, http.StatusOK, listResponse{Data: events, Total: len(events)})
}

// GetEvent handles GET /api/events/{id}.
func (s *Server) GetEvent(w http.ResponseWriter, r *http.Request) {
	e, err := s.events.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateEvent handles POST /api/events.
// Title, date and category are required; description is optional.
func (s *Server) CreateEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}
	in := body.toInput()
	if err := service.ValidateInput(in, s.categories, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	e, err := s.events.Add(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/events/"+e.ID)
	writeJSON(w, http.StatusCreated, e)
}

// UpdateEvent handles PATCH /api/events/{id}.
// Only the fields present in the body are replaced.
func (s *Server) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeEventRequest(w, r)
	if !ok {
		return
	}
	in := body.toInput()
	if err := service.ValidateInput(in, s.categories, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	e, found, err := s.events.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, notFoundBody("event not found"))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteEvent handles DELETE /api/events/{id}.
// The request itself is the confirmation.
func (s *Server) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.events.Delete(r.Context(), chi.URLParam(r, "id"), service.AlwaysConfirm)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if outcome != service.DeleteRemoved {
		writeJSON(w, http.StatusNotFound, notFoundBody("event not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeEventRequest reads the JSON body. On failure it writes the error
// response itself and returns false.
func decodeEventRequest(w http.ResponseWriter, r *http.Request) (eventRequest, bool) {
	var body eventRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("request body too large"))
			return body, false
		}
		writeJSON(w, http.StatusBadRequest, requestBody("request body must be a JSON object; date must be in YYYY-MM-DD format"))
		return body, false
	}
	return body, true
}

// writeError maps domain sentinels to HTTP statuses. Anything else is logged
// and reported as a 500 without details.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody("event not found"))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, internalBody())
	}
}
