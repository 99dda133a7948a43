// Package notify holds the transient status message shown after a
// successful mutation. A message is visible for Duration and then
// dismissed automatically.
package notify

import (
	"sync"
	"time"
)

// Duration is how long a notification stays visible.
const Duration = 3 * time.Second

// Kind selects the visual style of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Message is a notification as seen by the renderer.
type Message struct {
	Text      string
	Kind      Kind
	ExpiresAt time.Time
}

// Notifier keeps the most recent message. Showing a new message replaces
// the previous one and restarts the timer.
type Notifier struct {
	mu      sync.Mutex
	now     func() time.Time
	current *Message
}

// New returns a Notifier that reads time from now; nil means time.Now.
func New(now func() time.Time) *Notifier {
	if now == nil {
		now = time.Now
	}
	return &Notifier{now: now}
}

// Show makes text the visible message for the next Duration.
func (n *Notifier) Show(text string, kind Kind) Message {
	n.mu.Lock()
	defer n.mu.Unlock()

	m := Message{Text: text, Kind: kind, ExpiresAt: n.now().Add(Duration)}
	n.current = &m
	return m
}

// Current returns the visible message, if any. Expired messages are
// dropped on read.
func (n *Notifier) Current() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return Message{}, false
	}
	if !n.now().Before(n.current.ExpiresAt) {
		n.current = nil
		return Message{}, false
	}
	return *n.current, true
}

// Dismiss hides the visible message immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = nil
}
