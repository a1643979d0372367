package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okCheck(context.Context) error { return nil }

func failingCheck(context.Context) error { return errors.New("connection refused") }

func serve(t *testing.T, handler http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestHandler_Statuses(t *testing.T) {
	tests := []struct {
		name       string
		checkers   map[string]Checker
		wantStatus Status
		wantCode   int
	}{
		{
			name:       "no checkers",
			wantStatus: StatusHealthy,
			wantCode:   http.StatusOK,
		},
		{
			name:       "healthy storage",
			checkers:   map[string]Checker{"storage": NewSimpleChecker("storage", okCheck)},
			wantStatus: StatusHealthy,
			wantCode:   http.StatusOK,
		},
		{
			name: "critical failure",
			checkers: map[string]Checker{
				"storage": NewSimpleChecker("storage", failingCheck),
				"kafka":   NewOptionalChecker("kafka", okCheck),
			},
			wantStatus: StatusUnhealthy,
			wantCode:   http.StatusServiceUnavailable,
		},
		{
			name: "optional failure degrades",
			checkers: map[string]Checker{
				"storage": NewSimpleChecker("storage", okCheck),
				"redis":   NewOptionalChecker("redis", failingCheck),
			},
			wantStatus: StatusDegraded,
			wantCode:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler("v1.2.3")
			for name, checker := range tt.checkers {
				handler.RegisterChecker(name, checker)
			}

			w := serve(t, handler.ServeHTTP)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var response Response
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.wantStatus, response.Status)
			assert.Equal(t, "v1.2.3", response.Version)
			assert.Len(t, response.Checks, len(tt.checkers))
		})
	}
}

func TestHandler_FailureMessage(t *testing.T) {
	handler := NewHandler("dev")
	handler.RegisterChecker("storage", NewSimpleChecker("storage", failingCheck))
	handler.RegisterChecker("nil", nil)

	response := handler.Evaluate(context.Background())
	require.Len(t, response.Checks, 1)
	check := response.Checks["storage"]
	assert.Equal(t, "connection refused", check.Message)
	assert.True(t, check.Critical)
}

func TestHandler_CheckTimeout(t *testing.T) {
	handler := NewHandler("dev")
	handler.timeout = 10 * time.Millisecond
	handler.RegisterChecker("slow", NewSimpleChecker("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	response := handler.Evaluate(context.Background())
	assert.Equal(t, StatusUnhealthy, response.Status)
	assert.Contains(t, response.Checks["slow"].Message, "deadline exceeded")
}

func TestLivenessAndReadiness(t *testing.T) {
	live := serve(t, LivenessHandler)
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Equal(t, "ok", live.Body.String())

	handler := NewHandler("dev")
	ready := serve(t, handler.ReadinessHandler)
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Equal(t, "ready", ready.Body.String())

	handler.RegisterChecker("storage", NewSimpleChecker("storage", failingCheck))
	notReady := serve(t, handler.ReadinessHandler)
	assert.Equal(t, http.StatusServiceUnavailable, notReady.Code)
	assert.Equal(t, "not ready", notReady.Body.String())
}
