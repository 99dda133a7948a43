package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eventboard/internal/notify"
)

// fakeClock is advanced by hand so expiry is deterministic.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestNotifier_VisibleForThreeSeconds(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	n := notify.New(clock.Now)

	n.Show("Event added successfully!", notify.KindSuccess)

	clock.Advance(2999 * time.Millisecond)
	m, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Event added successfully!", m.Text)
	assert.Equal(t, notify.KindSuccess, m.Kind)

	clock.Advance(time.Millisecond)
	_, ok = n.Current()
	assert.False(t, ok, "message must be dismissed after 3s")
}

func TestNotifier_ShowReplacesAndRestartsTimer(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	n := notify.New(clock.Now)

	n.Show("first", notify.KindSuccess)
	clock.Advance(2 * time.Second)
	n.Show("second", notify.KindSuccess)
	clock.Advance(2 * time.Second)

	m, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", m.Text)
}

func TestNotifier_Dismiss(t *testing.T) {
	n := notify.New(nil)
	n.Show("x", notify.KindSuccess)

	n.Dismiss()

	_, ok := n.Current()
	assert.False(t, ok)
}

func TestNotifier_EmptyByDefault(t *testing.T) {
	_, ok := notify.New(nil).Current()
	assert.False(t, ok)
}
