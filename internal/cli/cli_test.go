package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eventboard/internal/cli"
	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/repo"
	"github.com/pkordes/eventboard/internal/service"
)

// harness runs commands against one in-memory store shared by every run,
// the way successive eventctl invocations share the configured backend.
type harness struct {
	t     *testing.T
	store *service.EventStore
	opens int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store := service.NewEventStore(repo.NewEventRepo(repo.NewMemoryKV(), "", nil), func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	})
	require.NoError(t, store.Load(context.Background()))
	return &harness{t: t, store: store}
}

// run executes eventctl with args and stdin, returning stdout and the error.
func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	cmd := cli.NewRootCmd(cli.Options{
		Open: func(context.Context) (*service.EventStore, func() error, error) {
			h.opens++
			return h.store, func() error { return nil }, nil
		},
		Now: func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func (h *harness) only() domain.Event {
	h.t.Helper()
	all := h.store.All()
	require.Len(h.t, all, 1)
	return all[0]
}

func TestList_Empty(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("list")

	assert.Contains(t, out, "No events yet")
	assert.Equal(t, 1, h.opens)
}

func TestAddThenList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "--title", "  Budget Review ", "--date", "2025-03-05", "--category", "work")
	assert.Contains(t, out, service.MsgAdded)
	h.mustRun("add", "--title", "Dentist", "--date", "2025-01-10", "--category", "personal", "--description", "bring forms")

	out = h.mustRun("list")
	dentist := strings.Index(out, "Dentist")
	budget := strings.Index(out, "Budget Review")
	require.True(t, dentist >= 0 && budget >= 0, out)
	assert.Less(t, dentist, budget, "sorted by date")
	assert.Contains(t, out, "Friday, January 10, 2025")
	assert.Contains(t, out, "[personal]")
	assert.Contains(t, out, "bring forms")
	assert.Contains(t, out, "No description provided.")
	assert.Contains(t, out, "2 of 2 events")
}

func TestList_FilterAndJSON(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--title", "Budget Review", "--date", "2025-03-05", "--category", "work")
	h.mustRun("add", "--title", "Gym", "--date", "2025-01-02", "--category", "health")

	out := h.mustRun("list", "--category", "work", "--format", "json")

	var got struct {
		Events []domain.Event `json:"events"`
		Count  int            `json:"count"`
		Total  int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, "Budget Review", got.Events[0].Title)

	out = h.mustRun("list", "--search", "zzz")
	assert.Contains(t, out, "No events found")
}

func TestAdd_Validation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "add", "--title", "x", "--date", "03/05/2025", "--category", "work")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.run("", "add", "--title", "x", "--date", "2025-03-05", "--category", "travel")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = h.run("", "add", "--date", "2025-03-05", "--category", "work")
	require.Error(t, err, "title flag is required")

	assert.Equal(t, 0, h.store.Len())
}

func TestEdit_OnlyChangedFlags(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--title", "Dentist", "--date", "2025-01-10", "--category", "personal", "--description", "bring forms")
	before := h.only()

	out := h.mustRun("edit", before.ID, "--date", "2025-01-11")
	assert.Contains(t, out, service.MsgUpdated)

	after := h.only()
	assert.Equal(t, "2025-01-11", after.Date)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.Description, after.Description)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)

	h.mustRun("edit", before.ID, "--description", "")
	assert.Empty(t, h.only().Description)
}

func TestEdit_Errors(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--title", "Dentist", "--date", "2025-01-10", "--category", "personal")
	id := h.only().ID

	_, err := h.run("", "edit", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")

	_, err = h.run("", "edit", "nope", "--title", "x")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = h.run("", "edit", id, "--title", "   ")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Dentist", h.only().Title)
}

func TestDelete_Prompt(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		removed bool
	}{
		{"yes", "y\n", true},
		{"full word", "YES\n", true},
		{"no", "n\n", false},
		{"empty line declines", "\n", false},
		{"eof declines", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.mustRun("add", "--title", "Dentist", "--date", "2025-01-10", "--category", "personal")
			id := h.only().ID

			out, err := h.run(tc.stdin, "delete", id)
			require.NoError(t, err)

			assert.Contains(t, out, service.DeletePrompt+" [y/N]")
			if tc.removed {
				assert.Contains(t, out, service.MsgDeleted)
				assert.Equal(t, 0, h.store.Len())
			} else {
				assert.Contains(t, out, "Delete cancelled.")
				assert.Equal(t, 1, h.store.Len())
			}
		})
	}
}

func TestDelete_YesSkipsPrompt(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--title", "Dentist", "--date", "2025-01-10", "--category", "personal")

	out := h.mustRun("delete", h.only().ID, "--yes")

	assert.NotContains(t, out, "[y/N]")
	assert.Equal(t, 0, h.store.Len())
}

func TestDelete_UnknownID(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("y\n", "delete", "nope")

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, out, "[y/N]", "no prompt for a missing event")
}

func TestExport(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "--title", "Dentist", "--date", "2025-01-10", "--category", "personal")

	out := h.mustRun("export", "--format", "csv")
	assert.True(t, strings.HasPrefix(out, "id,title,date,category,description,created_at\n"), out)
	assert.Contains(t, out, "Dentist,2025-01-10,personal")

	path := filepath.Join(t.TempDir(), "events.ics")
	h.mustRun("export", "--format", "ics", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Dentist")

	_, err = h.run("", "export", "--format", "xml")
	require.ErrorIs(t, err, domain.ErrValidation)
}
