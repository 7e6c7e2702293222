package services

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnstileDisabled(t *testing.T) {
	svc := NewTurnstileService("", "http://localhost:1", slog.Default())
	assert.False(t, svc.Enabled())
	assert.True(t, svc.Verify(context.Background(), "", ""))
}

func TestTurnstileVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "test-secret", r.PostForm.Get("secret"))
			assert.Equal(t, "token-1", r.PostForm.Get("response"))
			assert.Equal(t, "203.0.113.9", r.PostForm.Get("remoteip"))
			w.Write([]byte(`{"success":true}`))
		}))
		defer srv.Close()

		svc := NewTurnstileService("test-secret", srv.URL, slog.Default())
		assert.True(t, svc.Enabled())
		assert.True(t, svc.Verify(ctx, "token-1", "203.0.113.9"))
	})

	t.Run("Provider rejects", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false}`))
		}))
		defer srv.Close()

		svc := NewTurnstileService("test-secret", srv.URL, slog.Default())
		assert.False(t, svc.Verify(ctx, "bad-token", "203.0.113.9"))
	})

	t.Run("Transport failure fails closed", func(t *testing.T) {
		svc := NewTurnstileService("test-secret", "http://localhost:1", slog.Default())
		assert.False(t, svc.Verify(ctx, "token-1", "203.0.113.9"))
	})

	t.Run("Garbage response fails closed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		svc := NewTurnstileService("test-secret", srv.URL, slog.Default())
		assert.False(t, svc.Verify(ctx, "token-1", "203.0.113.9"))
	})
}
