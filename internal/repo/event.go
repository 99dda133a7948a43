package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/eventboard/internal/domain"
)

// DefaultKey is the storage key the event collection is written under.
const DefaultKey = "events"

// EventRepo defines how the whole event collection is persisted.
// The service layer depends on this interface, not on a concrete backend,
// which allows the store to be unit-tested with a mock.
type EventRepo interface {
	// Load returns the persisted collection. A missing or unparseable value
	// yields an empty, non-nil slice and a nil error.
	Load(ctx context.Context) ([]domain.Event, error)

	// Save replaces the persisted collection with events.
	Save(ctx context.Context, events []domain.Event) error
}

// kvEventRepo stores the collection as a JSON array under a single key.
type kvEventRepo struct {
	kv  KVStore
	key string
	log *slog.Logger
}

// NewEventRepo constructs an EventRepo that keeps the collection under key
// in kv. An empty key falls back to DefaultKey; a nil logger discards logs.
func NewEventRepo(kv KVStore, key string, log *slog.Logger) EventRepo {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &kvEventRepo{kv: kv, key: key, log: log}
}

// Load reads and decodes the collection.
func (r *kvEventRepo) Load(ctx context.Context) ([]domain.Event, error) {
	data, err := r.kv.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Event{}, nil
		}
		return nil, fmt.Errorf("repo.EventRepo.Load: %w", err)
	}

	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		r.log.WarnContext(ctx, "stored events are unparseable, starting empty",
			"key", r.key,
			"error", err,
		)
		return []domain.Event{}, nil
	}
	if events == nil {
		events = []domain.Event{}
	}
	return events, nil
}

// Save encodes and writes the collection.
func (r *kvEventRepo) Save(ctx context.Context, events []domain.Event) error {
	if events == nil {
		events = []domain.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Save: encode: %w", err)
	}
	if err := r.kv.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("repo.EventRepo.Save: %w", err)
	}
	return nil
}
