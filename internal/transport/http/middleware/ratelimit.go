package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"checador/internal/platform/logger"
	"checador/internal/transport/http/api"
)

// Counter counts hits per key inside fixed windows. The redis client satisfies it for multi-instance deployments.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetIn time.Duration, err error)
}

type RateLimitKeyFunc func(r *http.Request) string

type RateLimitOption func(*rateLimiter)

type rateLimiter struct {
	scope   string
	limit   int
	window  time.Duration
	keyFn   RateLimitKeyFunc
	counter Counter
	log     *logger.Logger
}

func WithKeyFunc(fn RateLimitKeyFunc) RateLimitOption {
	return func(rl *rateLimiter) {
		if fn != nil {
			rl.keyFn = fn
		}
	}
}

func WithCounter(counter Counter) RateLimitOption {
	return func(rl *rateLimiter) {
		if counter != nil {
			rl.counter = counter
		}
	}
}

func WithLogger(log *logger.Logger) RateLimitOption {
	return func(rl *rateLimiter) {
		rl.log = log
	}
}

// RateLimit allows limit requests per key and window. Keys are prefixed with scope so limiters can share a counter.
func RateLimit(scope string, limit int, window time.Duration, opts ...RateLimitOption) func(http.Handler) http.Handler {
	rl := &rateLimiter{
		scope:   scope,
		limit:   limit,
		window:  window,
		keyFn:   ClientIP,
		counter: NewMemoryCounter(),
	}
	for _, opt := range opts {
		opt(rl)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.enforce(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *rateLimiter) enforce(w http.ResponseWriter, r *http.Request) bool {
	if rl.limit <= 0 {
		return true
	}

	key := rl.keyFn(r)
	if key == "" {
		key = ClientIP(r)
	}
	if rl.scope != "" {
		key = rl.scope + ":" + key
	}

	count, reset, err := rl.counter.Hit(r.Context(), key, rl.window)
	if err != nil {
		// Fail open when the counter is unavailable.
		rl.log.Error(r.Context(), "rate_limit.counter_failed", err)
		return true
	}

	resetIn := durationSeconds(reset)
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(rl.limit-count, 0)))
	w.Header().Set("X-RateLimit-Reset", strconv.Itoa(resetIn))

	if count > rl.limit {
		w.Header().Set("Retry-After", strconv.Itoa(max(resetIn, 1)))
		ctx := rl.log.WithFields(r.Context(), map[string]any{"key": key, "limit": rl.limit})
		rl.log.Warn(ctx, "rate_limit.exceeded")
		api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
		return false
	}
	return true
}

type rateBucket struct {
	count int
	reset time.Time
}

// MemoryCounter is a process-local Counter.
type MemoryCounter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{buckets: map[string]*rateBucket{}, now: time.Now}
}

func (m *MemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int, time.Duration, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.buckets) > 10000 {
		for k, b := range m.buckets {
			if now.After(b.reset) {
				delete(m.buckets, k)
			}
		}
	}

	bucket, ok := m.buckets[key]
	if !ok || now.After(bucket.reset) {
		bucket = &rateBucket{reset: now.Add(window)}
		m.buckets[key] = bucket
	}
	bucket.count++
	return bucket.count, bucket.reset.Sub(now), nil
}

// JSONFieldOrIPKey keys by a string field of a JSON body, falling back to the client IP.
func JSONFieldOrIPKey(field string) RateLimitKeyFunc {
	return func(r *http.Request) string {
		value := extractJSONField(r, field)
		if value == "" {
			return ClientIP(r)
		}
		return field + ":" + value
	}
}

// ClientIP prefers the first X-Forwarded-For hop.
func ClientIP(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if value := strings.TrimSpace(first); value != "" {
			return value
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func durationSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	seconds := int(d.Seconds())
	if seconds <= 0 {
		return 1
	}
	return seconds
}

func extractJSONField(r *http.Request, field string) string {
	if r == nil || r.Body == nil {
		return ""
	}
	contentType := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if !strings.Contains(contentType, "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64*1024))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(raw))
	if len(raw) == 0 {
		return ""
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	value, _ := payload[field].(string)
	return strings.TrimSpace(value)
}
