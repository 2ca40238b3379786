package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func loginRequest(body, remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	return req
}

func TestRateLimitRejectsAfterLimit(t *testing.T) {
	limited := RateLimit("login_ip", 2, time.Minute)(noContent())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest(`{}`, "192.0.2.30:1234"))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest(`{}`, "192.0.2.30:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
	assert.Contains(t, rec.Body.String(), `"rate_limited"`)
}

func TestRateLimitKeysByUsernameAndKeepsBody(t *testing.T) {
	var seen string
	limited := RateLimit("login_user", 1, time.Minute, WithKeyFunc(JSONFieldOrIPKey("username")))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			seen = string(raw)
			w.WriteHeader(http.StatusNoContent)
		}))

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest(`{"username":"ana"}`, "203.0.113.10:1"))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, `{"username":"ana"}`, seen)

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest(`{"username":"luis"}`, "203.0.113.10:1"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest(`{"username":"ana"}`, "203.0.113.99:1"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimitWindowReset(t *testing.T) {
	counter := NewMemoryCounter()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	counter.now = func() time.Time { return now }
	limited := RateLimit("login_ip", 1, time.Minute, WithCounter(counter))(noContent())

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest(`{}`, "192.0.2.20:1111"))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest(`{}`, "192.0.2.20:1111"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	now = now.Add(61 * time.Second)
	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, loginRequest(`{}`, "192.0.2.20:1111"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type failingCounter struct{}

func (failingCounter) Hit(context.Context, string, time.Duration) (int, time.Duration, error) {
	return 0, 0, errors.New("redis down")
}

func TestRateLimitFailsOpenOnCounterError(t *testing.T) {
	limited := RateLimit("login_ip", 1, time.Minute, WithCounter(failingCounter{}))(noContent())
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, loginRequest(`{}`, "192.0.2.1:1"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	assert.Equal(t, "198.51.100.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 10.1.1.1 , 10.2.2.2")
	assert.Equal(t, "10.1.1.1", ClientIP(req))
}
