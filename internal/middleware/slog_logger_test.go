package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/eventboard/internal/middleware"
)

// serveLogged runs one request with the given status through the logger and
// returns the decoded log line, or nil when nothing was logged.
func serveLogged(t *testing.T, path string, status int) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("hello"))
		}),
	)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	// Simulate what chimiddleware.RequestID does: inject a known ID into context.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Code)

	if buf.Len() == 0 {
		return nil
	}
	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	return logEntry
}

// TestSlogLogger_logsRequestFields verifies that one JSON line carries method,
// path, status, bytes, duration, and the request ID.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	logEntry := serveLogged(t, "/api/events", http.StatusOK)

	require.NotNil(t, logEntry)
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "GET", logEntry["method"])
	assert.Equal(t, "/api/events", logEntry["path"])
	assert.EqualValues(t, http.StatusOK, logEntry["status"])
	assert.EqualValues(t, 5, logEntry["bytes"])
	assert.Equal(t, "test-req-id", logEntry["request_id"])
	assert.NotNil(t, logEntry["duration_ms"])
}

func TestSlogLogger_levelsByStatus(t *testing.T) {
	assert.Equal(t, "WARN", serveLogged(t, "/api/events/x", http.StatusNotFound)["level"])
	assert.Equal(t, "ERROR", serveLogged(t, "/api/events", http.StatusInternalServerError)["level"])
}

func TestSlogLogger_healthProbesAtDebug(t *testing.T) {
	assert.Nil(t, serveLogged(t, "/healthz", http.StatusOK), "debug line is filtered at info level")
}
