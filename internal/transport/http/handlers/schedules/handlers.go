package scheduleshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checador/internal/domain/audit"
	"checador/internal/domain/auth"
	"checador/internal/domain/schedules"
	"checador/internal/transport/http/api"
	"checador/internal/transport/http/middleware"
	"checador/internal/transport/http/shared"
)

const entitySchedule = "horario"

type ScheduleService interface {
	Create(ctx context.Context, in schedules.CreateInput) (schedules.Schedule, error)
	Update(ctx context.Context, id int64, in schedules.UpdateInput) (schedules.Schedule, error)
	Delete(ctx context.Context, id int64) error
	ListOwn(ctx context.Context, userID int64) ([]schedules.Schedule, error)
}

type Handler struct {
	Service ScheduleService
	Audit   shared.Auditor
}

func NewHandler(service ScheduleService, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(auth.RoleAdmin)

	r.Route("/horarios", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleEmployee)).Get("/", h.handleListOwn)
		r.With(admin).Post("/crear", h.handleCreate)
		r.With(admin).Put("/{id}", h.handleUpdate)
		r.With(admin).Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	list, err := h.Service.ListOwn(r.Context(), identity.UserID)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"horarios": list}, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload schedules.CreateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	shared.Track(r, h.Audit, audit.ActionScheduleCreate, entitySchedule, created.ID, created)
	api.Created(w, map[string]any{"mensaje": "Horario asignado correctamente", "horario": created}, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := shared.PathID(r, "id")
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	var payload schedules.UpdateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	shared.Track(r, h.Audit, audit.ActionScheduleUpdate, entitySchedule, id, updated)
	api.Success(w, map[string]any{"mensaje": "Horario actualizado correctamente", "horario": updated}, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := shared.PathID(r, "id")
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	shared.Track(r, h.Audit, audit.ActionScheduleDelete, entitySchedule, id, nil)
	api.Success(w, map[string]any{"mensaje": "Horario eliminado correctamente"}, reqID)
}
