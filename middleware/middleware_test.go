package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dnabot/appctx"
	"dnabot/clients/webex"
	"dnabot/core"
	"dnabot/models"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAPIKeyMiddleware(t *testing.T) {
	handler := NewAPIKeyMiddleware("s3cret").WithAPIKey(okHandler)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid key", "Bearer s3cret", http.StatusOK},
		{"wrong key", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/commands", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAPIKeyMiddleware_Disabled(t *testing.T) {
	m := NewAPIKeyMiddleware("")
	assert.False(t, m.Enabled())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	m.WithAPIKey(okHandler)(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = appctx.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.True(t, core.IsValidID(seen), seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-Id"))
}

func TestErrorAlertMiddleware_RecoversPanicAndAlerts(t *testing.T) {
	client := webex.NewMockWebexClient()
	client.On("SendMessage", mock.Anything, "alerts-room", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "PANIC - boom")
	}), mock.Anything).Return(&models.WebexMessage{ID: "alert-1"}, nil).Once()

	m := NewErrorAlertMiddleware(AlertConfig{RoomID: "alerts-room", Environment: "test", AppName: "dnabot"}, client)
	handler := m.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webex/events", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	m.Wait()
	client.AssertExpectations(t)
}

func TestErrorAlertMiddleware_DeduplicatesWithinCooldown(t *testing.T) {
	client := webex.NewMockWebexClient()
	client.On("SendMessage", mock.Anything, "alerts-room", mock.Anything, mock.Anything).
		Return(&models.WebexMessage{ID: "alert"}, nil)

	m := NewErrorAlertMiddleware(AlertConfig{RoomID: "alerts-room", AppName: "dnabot"}, client)
	task := m.WrapBackgroundTask("artifact cleanup", func() error { return errors.New("disk full") })

	assert.Error(t, task())
	assert.Error(t, task())
	m.Wait()

	client.AssertNumberOfCalls(t, "SendMessage", 1)
}

func TestErrorAlertMiddleware_WrapBackgroundTaskRecoversPanic(t *testing.T) {
	m := NewErrorAlertMiddleware(AlertConfig{}, nil)
	task := m.WrapBackgroundTask("janitor", func() error { panic("nil map") })

	var err error
	require.NotPanics(t, func() { err = task() })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "janitor panicked")
}

func TestErrorAlertMiddleware_DisabledWithoutRoom(t *testing.T) {
	client := webex.NewMockWebexClient()
	m := NewErrorAlertMiddleware(AlertConfig{}, client)

	m.AlertOnError(errors.New("x"), "test")
	m.Wait()
	client.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestErrorAlertMiddleware_CooldownExpires(t *testing.T) {
	client := webex.NewMockWebexClient()
	client.On("SendMessage", mock.Anything, "alerts-room", mock.Anything, mock.Anything).
		Return(&models.WebexMessage{ID: "alert"}, nil)

	m := NewErrorAlertMiddleware(AlertConfig{RoomID: "alerts-room"}, client)
	m.alertCooldown = time.Nanosecond

	m.AlertOnError(errors.New("x"), "test")
	time.Sleep(time.Millisecond)
	m.AlertOnError(errors.New("x"), "test")
	m.Wait()

	client.AssertNumberOfCalls(t, "SendMessage", 2)
}
