// Package service contains the business logic for the event board.
// EventStore owns the authoritative in-memory collection and mirrors it to
// an EventRepo after every mutation; Session layers the add/edit form mode
// and notifications on top of it.
package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/repo"
)

// DeletePrompt is the question put to the Confirmer before a delete.
const DeletePrompt = "Are you sure you want to delete this event?"

// DeleteOutcome reports what a Delete call did. It is DeleteFailed, and
// carries no other meaning, whenever Delete also returns an error.
type DeleteOutcome int

const (
	// DeleteFailed is returned with a non-nil error; nothing changed.
	DeleteFailed DeleteOutcome = iota
	// DeleteDeclined means the confirmer said no; nothing changed.
	DeleteDeclined
	// DeleteNotFound means the delete was confirmed but no event had the id.
	DeleteNotFound
	// DeleteRemoved means the event was removed and the collection persisted.
	DeleteRemoved
)

// EventStore holds the event collection and keeps storage in sync with it.
// Every mutation persists the entire collection; if persisting fails the
// in-memory collection is left as it was.
type EventStore struct {
	mu     sync.RWMutex
	repo   repo.EventRepo
	now    func() time.Time
	events []domain.Event
}

// NewEventStore constructs an empty EventStore backed by r. Call Load to
// read the persisted collection. now supplies ids and createdAt timestamps;
// nil means time.Now.
func NewEventStore(r repo.EventRepo, now func() time.Time) *EventStore {
	if now == nil {
		now = time.Now
	}
	return &EventStore{repo: r, now: now, events: []domain.Event{}}
}

// Load replaces the in-memory collection with the persisted one.
// A missing or unparseable stored value loads as an empty collection.
func (s *EventStore) Load(ctx context.Context) error {
	events, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("service.EventStore.Load: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = events
	return nil
}

// Add creates a new event from in, assigning a fresh id and createdAt.
// Required fields are not re-validated here; the input surface does that.
func (s *EventStore) Add(ctx context.Context, in domain.EventInput) (domain.Event, error) {
	in = in.Normalized()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	e := in.ApplyTo(domain.Event{
		ID:        s.nextID(now),
		CreatedAt: now.Format(domain.TimestampLayout),
	})

	next := append(slices.Clone(s.events), e)
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventStore.Add: %w", err)
	}
	s.events = next
	return e, nil
}

// Update replaces the fields present in in on the event with the given id.
// found is false, and nothing is written, when no event has that id.
func (s *EventStore) Update(ctx context.Context, id string, in domain.EventInput) (e domain.Event, found bool, err error) {
	in = in.Normalized()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Event{}, false, nil
	}

	next := slices.Clone(s.events)
	next[i] = in.ApplyTo(next[i])
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.Event{}, true, fmt.Errorf("service.EventStore.Update: %w", err)
	}
	s.events = next
	return next[i], true, nil
}

// Delete asks confirm and, if accepted, removes the event with the given id.
// A nil confirm counts as accepted. The confirmer is consulted before the
// store is locked, so a slow prompt does not block readers.
func (s *EventStore) Delete(ctx context.Context, id string, confirm Confirmer) (DeleteOutcome, error) {
	if confirm != nil && !confirm.Confirm(ctx, DeletePrompt) {
		return DeleteDeclined, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return DeleteNotFound, nil
	}

	next := slices.Delete(slices.Clone(s.events), i, i+1)
	if err := s.repo.Save(ctx, next); err != nil {
		return DeleteFailed, fmt.Errorf("service.EventStore.Delete: %w", err)
	}
	s.events = next
	return DeleteRemoved, nil
}

// Get returns the event with the given id.
// Returns domain.ErrNotFound if there is none.
func (s *EventStore) Get(id string) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Event{}, fmt.Errorf("service.EventStore.Get: %w", domain.ErrNotFound)
	}
	return s.events[i], nil
}

// All returns a copy of the collection in storage order.
func (s *EventStore) All() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events)
}

// Len returns the number of events in the collection.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// List returns the events matching f, sorted ascending by date.
// Events with equal dates keep their storage order; events whose date does
// not parse sort after all others. The result is always non-nil.
func (s *EventStore) List(f domain.Filter) []domain.Event {
	s.mu.RLock()
	out := make([]domain.Event, 0, len(s.events))
	for _, e := range s.events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	s.mu.RUnlock()

	SortByDate(out)
	return out
}

// SortByDate stable-sorts events ascending by parsed date in place.
func SortByDate(events []domain.Event) {
	slices.SortStableFunc(events, func(a, b domain.Event) int {
		ad, aok := a.ParsedDate()
		bd, bok := b.ParsedDate()
		switch {
		case aok && bok:
			return ad.Compare(bd)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return cmp.Compare(a.Date, b.Date)
		}
	})
}

// nextID derives an id from the creation time in Unix milliseconds, bumping
// it until it is unused so two adds within one millisecond stay distinct.
// Callers must hold s.mu.
func (s *EventStore) nextID(now time.Time) string {
	n := now.UnixMilli()
	for s.indexOf(strconv.FormatInt(n, 10)) >= 0 {
		n++
	}
	return strconv.FormatInt(n, 10)
}

// indexOf returns the position of id in s.events, or -1.
// Callers must hold s.mu.
func (s *EventStore) indexOf(id string) int {
	return slices.IndexFunc(s.events, func(e domain.Event) bool { return e.ID == id })
}
