package attendancehandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checador/internal/domain/attendance"
	"checador/internal/domain/audit"
	"checador/internal/domain/auth"
	"checador/internal/transport/http/api"
	"checador/internal/transport/http/middleware"
	"checador/internal/transport/http/shared"
)

const entityAttendance = "asistencia"

type AttendanceService interface {
	ClockSelf(ctx context.Context, id auth.Identity) (attendance.Record, error)
	RegisterFor(ctx context.Context, in attendance.RegisterInput) (attendance.Record, error)
	Query(ctx context.Context, f attendance.Filter) ([]attendance.Listed, error)
	ListOwn(ctx context.Context, id auth.Identity) ([]attendance.Record, error)
	Update(ctx context.Context, recordID int64, in attendance.UpdateInput) (attendance.Record, error)
	Summary(ctx context.Context, id auth.Identity) (attendance.Summary, error)
}

type Handler struct {
	Service AttendanceService
	Audit   shared.Auditor
}

func NewHandler(service AttendanceService, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	admin := middleware.RequireRole(auth.RoleAdmin)
	anyone := middleware.RequireRole(auth.RoleEmployee)

	r.Route("/asistencias", func(r chi.Router) {
		r.With(admin).Post("/registrar", h.handleRegister)
		r.With(admin).Get("/consultar", h.handleQuery)
		r.With(admin).Put("/actualizar/{id}", h.handleUpdate)
		r.With(anyone).Post("/registrar-asistencia", h.handleClock)
		r.With(anyone).Get("/consultar-asistencias", h.handleListOwn)
	})
	r.With(anyone).Get("/inicio/resumen", h.handleSummary)
}

func (h *Handler) handleClock(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	record, err := h.Service.ClockSelf(r.Context(), identity)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, map[string]any{"mensaje": "Asistencia registrada correctamente.", "asistencia": record}, reqID)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload attendance.RegisterInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	record, err := h.Service.RegisterFor(r.Context(), payload)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	shared.Track(r, h.Audit, audit.ActionAttendanceCreate, entityAttendance, record.ID, record)
	api.Created(w, map[string]any{"asistencia": record}, reqID)
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	filter, err := ParseFilter(r)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	rows, err := h.Service.Query(r.Context(), filter)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, rows, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := shared.PathID(r, "id")
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	var payload attendance.UpdateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	record, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	shared.Track(r, h.Audit, audit.ActionAttendanceUpdate, entityAttendance, record.ID, record)
	api.Success(w, map[string]any{"asistencia": record}, reqID)
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	rows, err := h.Service.ListOwn(r.Context(), identity)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, rows, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	summary, err := h.Service.Summary(r.Context(), identity)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

// ParseFilter reads usuario_id, fecha, fecha_inicio and fecha_fin from the query string.
func ParseFilter(r *http.Request) (attendance.Filter, error) {
	userID, err := shared.QueryID(r, "usuario_id")
	if err != nil {
		return attendance.Filter{}, err
	}
	q := r.URL.Query()
	return attendance.Filter{
		UsuarioID:   userID,
		Fecha:       q.Get("fecha"),
		FechaInicio: q.Get("fecha_inicio"),
		FechaFin:    q.Get("fecha_fin"),
	}, nil
}
