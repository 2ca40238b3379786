package dashboardhandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"checador/internal/domain/attendance"
	"checador/internal/domain/audit"
	"checador/internal/domain/auth"
	"checador/internal/domain/dashboard"
	"checador/internal/domain/employees"
	"checador/internal/transport/http/api"
	attendancehandler "checador/internal/transport/http/handlers/attendance"
	"checador/internal/transport/http/middleware"
	"checador/internal/transport/http/shared"
)

type DashboardService interface {
	Employees(ctx context.Context) ([]employees.Employee, error)
	Users(ctx context.Context) ([]dashboard.UserRow, error)
	Roles(ctx context.Context) ([]dashboard.Role, error)
	Attendance(ctx context.Context) ([]attendance.Listed, error)
	Schedules(ctx context.Context) ([]dashboard.ScheduleRow, error)
	AttendancePDF(ctx context.Context, f attendance.Filter) ([]byte, error)
}

type AuditReader interface {
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, includeDetails bool, limit, offset int) ([]audit.Event, error)
}

type Handler struct {
	Service DashboardService
	Audit   AuditReader
}

func NewHandler(service DashboardService, auditReader AuditReader) *Handler {
	return &Handler{Service: service, Audit: auditReader}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Get("/empleados", listing(h.Service.Employees))
		r.Get("/usuarios", listing(h.Service.Users))
		r.Get("/roles", listing(h.Service.Roles))
		r.Get("/asistencias", listing(h.Service.Attendance))
		r.Get("/asistencias/pdf", h.handleAttendancePDF)
		r.Get("/horarios", listing(h.Service.Schedules))
		r.Get("/auditoria", h.handleListEvents)
		r.Get("/auditoria/exportar", h.handleExportEvents)
	})
}

func listing[T any](load func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := middleware.GetRequestID(r.Context())
		rows, err := load(r.Context())
		if err != nil {
			api.FailError(r.Context(), w, err, reqID)
			return
		}
		if rows == nil {
			rows = []T{}
		}
		api.Success(w, rows, reqID)
	}
}

func (h *Handler) handleAttendancePDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	filter, err := attendancehandler.ParseFilter(r)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	doc, err := h.Service.AttendancePDF(r.Context(), filter)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=asistencias.pdf")
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		api.Log.Warn(r.Context(), "dashboard.pdf_write_failed: "+err.Error())
	}
}

func auditFilter(r *http.Request) (audit.Filter, error) {
	actor, err := shared.QueryID(r, "actorUserId")
	if err != nil {
		return audit.Filter{}, err
	}
	q := r.URL.Query()
	return audit.Filter{Action: q.Get("action"), EntityType: q.Get("entityType"), ActorUser: actor}, nil
}
