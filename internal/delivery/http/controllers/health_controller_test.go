package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthController_Health(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctrl := NewHealthController(testLogger, pingerFunc(func(context.Context) error { return nil }))
		w := httptest.NewRecorder()
		ctrl.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		ctrl := NewHealthController(testLogger, pingerFunc(func(context.Context) error { return errors.New("dial tcp: refused") }))
		w := httptest.NewRecorder()
		ctrl.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.Contains(t, w.Body.String(), "refused")
	})
}
