package middleware

import (
	"context"
	"net/http"
	"strings"

	"checador/internal/domain/auth"
	"checador/internal/platform/logger"
	"checador/internal/transport/http/api"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

type TokenVerifier interface {
	Verify(raw string) (auth.Identity, error)
}

// Authenticate rejects requests without a valid bearer token.
func Authenticate(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				api.FailError(r.Context(), w, auth.ErrMissingToken, GetRequestID(r.Context()))
				return
			}
			identity, err := verifier.Verify(raw)
			if err != nil {
				api.FailError(r.Context(), w, auth.ErrInvalidToken, GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyIdentity, identity)
			ctx = log.WithUserID(ctx, identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func GetIdentity(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(auth.Identity)
	return identity, ok
}

// WithIdentity is used by handler tests to skip token handling.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, identity)
}
