package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"checador/internal/platform/metrics"
)

// Metrics labels requests with the matched chi route pattern to keep label cardinality bounded.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			route := ""
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}
			collector.Record(route, r.Method, recorder.status, time.Since(start))
		})
	}
}
