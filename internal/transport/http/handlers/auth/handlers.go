package authhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checador/internal/domain/auth"
	"checador/internal/transport/http/api"
	"checador/internal/transport/http/middleware"
	"checador/internal/transport/http/shared"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (auth.LoginResult, error)
}

type Handler struct {
	Service Authenticator
	// LoginLimits wrap the login route; the server passes its configured rate limiters here.
	LoginLimits []func(http.Handler) http.Handler
}

func NewHandler(service Authenticator, loginLimits ...func(http.Handler) http.Handler) *Handler {
	return &Handler{Service: service, LoginLimits: loginLimits}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.With(h.LoginLimits...).Post("/login", h.HandleLogin)
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	result, err := h.Service.Authenticate(r.Context(), payload.Username, payload.Password)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}
