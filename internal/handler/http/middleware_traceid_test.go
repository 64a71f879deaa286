package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-pos-sync/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func TestWithTraceID_GeneratesID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(traceIDHeader)
	})

	rr := httptest.NewRecorder()
	newTestHandler().withTraceID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, pathPing, nil))

	traceID := rr.Header().Get(traceIDHeader)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err)
	assert.Empty(t, seen)
}

func TestWithTraceID_KeepsTerminalID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, pathPing, nil)
	req.Header.Set(traceIDHeader, "terminal-trace-1")
	rr := httptest.NewRecorder()

	newTestHandler().withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rr, req)

	assert.Equal(t, "terminal-trace-1", rr.Header().Get(traceIDHeader))
}

func TestWithTraceID_LoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodPost, pathChanges, nil)
	req.Header.Set(traceIDHeader, "abc-123")
	h.withTraceID(next).ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc-123", entry["trace_id"])
	assert.Equal(t, pathChanges, entry["path"])
}
