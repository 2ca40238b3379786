package middleware

import (
	"net/http"

	"checador/internal/domain/auth"
	"checador/internal/transport/http/api"
)

func RequireRole(required auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := GetIdentity(r.Context())
			if err := auth.Authorize(identity, required); err != nil {
				api.FailError(r.Context(), w, err, GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
