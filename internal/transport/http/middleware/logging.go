package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"checador/internal/platform/logger"
	"checador/internal/transport/http/api"
)

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.written {
		s.status = code
		s.written = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.written {
		s.status = http.StatusOK
		s.written = true
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// RequestLogger binds the request id to the logging context and writes one line per request.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := log.WithRequestID(r.Context(), GetRequestID(r.Context()))
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r.WithContext(ctx))

			ctx = log.WithFields(ctx, map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      recorder.status,
				"duration_ms": time.Since(start).Milliseconds(),
			})
			switch {
			case recorder.status >= http.StatusInternalServerError:
				log.Error(ctx, "http.request", nil)
			case recorder.status >= http.StatusBadRequest:
				log.Warn(ctx, "http.request")
			default:
				log.Info(ctx, "http.request")
			}
		})
	}
}

// Recoverer turns a panic into a 500 envelope.
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctx := log.WithField(r.Context(), "stack", string(debug.Stack()))
				log.Error(ctx, "http.panic", fmt.Errorf("panic: %v", rec))
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", GetRequestID(r.Context()))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
