package profilehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checador/internal/domain/auth"
	"checador/internal/domain/profile"
	"checador/internal/transport/http/api"
	"checador/internal/transport/http/middleware"
	"checador/internal/transport/http/shared"
)

type ProfileService interface {
	Overview(ctx context.Context, id auth.Identity) (profile.Overview, error)
	Detail(ctx context.Context, id auth.Identity) (profile.Detail, error)
	UpdateSelf(ctx context.Context, id auth.Identity, in profile.UpdateInput) (profile.PersonalData, error)
}

type Handler struct {
	Service ProfileService
}

func NewHandler(service ProfileService) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/perfil", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleEmployee))
		r.Get("/", h.handleOverview)
		r.Get("/me", h.handleDetail)
		r.Put("/actualizar-me", h.handleUpdate)
	})
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	overview, err := h.Service.Overview(r.Context(), identity)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, overview, reqID)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	detail, err := h.Service.Detail(r.Context(), identity)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, detail, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	var payload profile.UpdateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	data, err := h.Service.UpdateSelf(r.Context(), identity, payload)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"mensaje": "Datos personales actualizados correctamente", "datos_personales": data}, reqID)
}
