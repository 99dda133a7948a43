package service

import (
	"context"
	"sync"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/notify"
)

// Notification texts shown after a successful mutation.
const (
	MsgAdded   = "Event added successfully!"
	MsgUpdated = "Event updated successfully!"
	MsgDeleted = "Event deleted successfully!"
)

// Mode is the state of the input form.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// EmptyState tells the renderer which placeholder, if any, to show instead
// of event cards.
type EmptyState int

const (
	// EmptyNone means there are cards to render.
	EmptyNone EmptyState = iota
	// EmptyNoEvents means the collection itself is empty.
	EmptyNoEvents
	// EmptyNoMatches means a filter excluded every event.
	EmptyNoMatches
)

// View is everything the rendering layer needs for one page.
type View struct {
	Events   []domain.Event
	Empty    EmptyState
	Filter   domain.Filter
	Total    int
	Mode     Mode
	FormOpen bool
	Editing  *domain.Event
	Notice   *notify.Message
	// Draft, when set, prefills the form instead of Editing. Input surfaces
	// set it to echo back a rejected submission.
	Draft *domain.Event
}

// Session is the UI-facing controller: it tracks whether the form is adding
// or editing (by the id being edited), dispatches form submissions to the
// store, and raises notifications.
type Session struct {
	store    *EventStore
	notifier *notify.Notifier

	mu        sync.Mutex
	formOpen  bool
	editingID string
}

// NewSession constructs a Session over store. A nil notifier gets a fresh
// one on the wall clock.
func NewSession(store *EventStore, notifier *notify.Notifier) *Session {
	if notifier == nil {
		notifier = notify.New(nil)
	}
	return &Session{store: store, notifier: notifier}
}

// Store returns the underlying EventStore.
func (s *Session) Store() *EventStore { return s.store }

// OpenAdd opens the form in add mode.
func (s *Session) OpenAdd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formOpen = true
	s.editingID = ""
}

// OpenEdit opens the form in edit mode for id.
// Returns false, leaving the form untouched, when no event has that id.
func (s *Session) OpenEdit(id string) bool {
	if _, err := s.store.Get(id); err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formOpen = true
	s.editingID = id
	return true
}

// Close closes the form and returns to add mode.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formOpen = false
	s.editingID = ""
}

// Mode reports whether a submission would add or edit.
func (s *Session) Mode() Mode {
	if s.EditingID() != "" {
		return ModeEdit
	}
	return ModeAdd
}

// EditingID returns the id being edited, or "" in add mode. An edit whose
// event has since been deleted (for example through the JSON API) falls
// back to add mode.
func (s *Session) EditingID() string {
	s.mu.Lock()
	id := s.editingID
	s.mu.Unlock()
	if id == "" {
		return ""
	}
	if _, err := s.store.Get(id); err == nil {
		return id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingID == id {
		s.editingID = ""
	}
	return ""
}

// Submit adds in (add mode) or applies it to the event being edited (edit
// mode), shows the matching notification and closes the form. If the event
// being edited is gone by the time the update runs, in is added as a new
// event instead. applied is true whenever err is nil.
func (s *Session) Submit(ctx context.Context, in domain.EventInput) (e domain.Event, applied bool, err error) {
	if id := s.EditingID(); id != "" {
		e, found, err := s.store.Update(ctx, id, in)
		if err != nil {
			return domain.Event{}, false, err
		}
		if found {
			s.notifier.Show(MsgUpdated, notify.KindSuccess)
			s.Close()
			return e, true, nil
		}
	}

	e, err = s.store.Add(ctx, in)
	if err != nil {
		return domain.Event{}, false, err
	}
	s.notifier.Show(MsgAdded, notify.KindSuccess)
	s.Close()
	return e, true, nil
}

// Remove deletes id after confirmation and shows the delete notification
// whenever the user confirmed. If the removed event was being edited the
// form is closed.
func (s *Session) Remove(ctx context.Context, id string, confirm Confirmer) (DeleteOutcome, error) {
	outcome, err := s.store.Delete(ctx, id, confirm)
	if err != nil || outcome == DeleteDeclined {
		return outcome, err
	}
	if s.EditingID() == id {
		s.Close()
	}
	s.notifier.Show(MsgDeleted, notify.KindSuccess)
	return outcome, nil
}

// View computes the projection for f together with the form state and the
// active notification.
func (s *Session) View(f domain.Filter) View {
	v := View{
		Events: s.store.List(f),
		Filter: f,
		Total:  s.store.Len(),
	}
	switch {
	case len(v.Events) > 0:
		v.Empty = EmptyNone
	case f.IsZero():
		v.Empty = EmptyNoEvents
	default:
		v.Empty = EmptyNoMatches
	}

	s.mu.Lock()
	v.FormOpen = s.formOpen
	s.mu.Unlock()

	v.Mode = ModeAdd
	if id := s.EditingID(); id != "" {
		if e, err := s.store.Get(id); err == nil {
			v.Mode = ModeEdit
			v.Editing = &e
		}
	}
	if m, ok := s.notifier.Current(); ok {
		v.Notice = &m
	}
	return v
}
