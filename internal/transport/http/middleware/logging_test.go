package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/platform/logger"
)

func TestRequestLoggerWritesStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: zerolog.InfoLevel, Output: &buf})

	handler := RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})))
	req := httptest.NewRequest(http.MethodGet, "/api/empleados/9", nil)
	req.Header.Set("X-Request-ID", "req-9")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &line))
	assert.Equal(t, "req-9", line["request_id"])
	assert.Equal(t, float64(404), line["status"])
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "/api/empleados/9", line["path"])
}

func TestRecovererReturnsEnvelope(t *testing.T) {
	handler := Recoverer(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"internal_error"`)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestBodyLimitRefusesDeclaredOversize(t *testing.T) {
	handler := BodyLimit(8)(noContent())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"too":"long"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(true)(noContent()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}
