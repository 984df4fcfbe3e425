package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "moviedash/internal/errors"
	"moviedash/internal/shared/testutil"
)

func TestClientLogHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLevel  slog.Level
	}{
		{name: "error entry", body: `{"level":"error","message":"chart failed","view":"correlation"}`, wantStatus: http.StatusAccepted, wantLevel: slog.LevelError},
		{name: "default level", body: `{"message":"socket reconnected"}`, wantStatus: http.StatusAccepted, wantLevel: slog.LevelInfo},
		{name: "warn with data", body: `{"level":"warn","message":"slow render","data":{"ms":1200}}`, wantStatus: http.StatusAccepted, wantLevel: slog.LevelWarn},
		{name: "missing message", body: `{"level":"error"}`, wantStatus: http.StatusBadRequest},
		{name: "bad level", body: `{"level":"fatal","message":"x"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, handler := testutil.NewTestLogger(t)
			h := NewClientLogHandler(nil, logger, apierrors.NewErrorHandler(logger, false))

			req := httptest.NewRequest(http.MethodPost, "/api/client-log", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusAccepted {
				return
			}
			assert.JSONEq(t, `{"success":true}`, rec.Body.String())
			records := handler.GetRecordsByLevel(tt.wantLevel)
			require.NotEmpty(t, records)
			assert.True(t, handler.ContainsAttr("source", "browser"))
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apierrors.NewErrorHandler(logger, false)

	t.Run("disabled", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewMetricsHandler(nil, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("enabled", func(t *testing.T) {
		exporter := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("moviedash_sessions 0\n"))
		})
		rec := httptest.NewRecorder()
		NewMetricsHandler(exporter, errorHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "moviedash_sessions")
	})
}
