package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCountsByRoute(t *testing.T) {
	c := New()
	c.Record("/api/empleados", http.MethodGet, http.StatusOK, 10*time.Millisecond)
	c.Record("/api/empleados", http.MethodGet, http.StatusOK, 5*time.Millisecond)
	c.Record("/api/auth/login", http.MethodPost, http.StatusTooManyRequests, time.Millisecond)

	body := scrape(t, c)
	assert.Contains(t, body, `http_requests_total{method="GET",route="/api/empleados",status="200"} 2`)
	assert.Contains(t, body, "http_rate_limited_total 1")
}

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.Record("", http.MethodGet, http.StatusNotFound, time.Millisecond)

	assert.Contains(t, scrape(t, c), `http_requests_total{method="GET",route="unmatched",status="404"} 1`)
}

func TestNilCollectorIgnoresRecords(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() { c.Record("/x", "GET", 200, time.Second) })
}
