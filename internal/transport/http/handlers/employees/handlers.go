package employeeshandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"checador/internal/domain/audit"
	"checador/internal/domain/auth"
	"checador/internal/domain/employees"
	"checador/internal/platform/apperr"
	"checador/internal/transport/http/api"
	"checador/internal/transport/http/middleware"
	"checador/internal/transport/http/shared"
)

const entityEmployee = "empleado"

type EmployeeService interface {
	Create(ctx context.Context, in employees.CreateInput) (employees.Employee, error)
	Update(ctx context.Context, employeeID int64, in employees.UpdateInput) (employees.Employee, error)
	Delete(ctx context.Context, employeeID int64) error
	Get(ctx context.Context, employeeID int64) (employees.Employee, error)
	List(ctx context.Context) ([]employees.Employee, error)
	Search(ctx context.Context, term string) ([]employees.Employee, error)
}

type Handler struct {
	Service EmployeeService
	Audit   shared.Auditor
}

func NewHandler(service EmployeeService, auditor shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/empleados", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin))
		r.Post("/crear", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/buscar/{nombre}", h.handleSearch)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employees.CreateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	shared.Track(r, h.Audit, audit.ActionEmployeeCreate, entityEmployee, created.ID, created)
	api.Created(w, map[string]any{"empleado": created}, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	term := strings.TrimSpace(chi.URLParam(r, "nombre"))
	if term == "" {
		api.FailError(r.Context(), w, apperr.Invalid([]apperr.FieldIssue{{Field: "nombre", Reason: "is required"}}), reqID)
		return
	}

	list, err := h.Service.Search(r.Context(), term)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, list, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := shared.PathID(r, "id")
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	employee, err := h.Service.Get(r.Context(), id)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	id, err := shared.PathID(r, "id")
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	var payload employees.UpdateInput
	if err := shared.DecodeJSON(r, &payload); err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	updated, err := h.Service.Update(r.Context(), id, payload)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	shared.Track(r, h.Audit, audit.ActionEmployeeUpdate, entityEmployee, id, updated)
	api.Success(w, map[string]any{"mensaje": "Empleado actualizado", "empleado": updated}, reqID)
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

	shared.Track(r, h.Audit, audit.ActionEmployeeDelete, entityEmployee, id, nil)
	api.Success(w, map[string]any{"mensaje": "Empleado eliminado"}, reqID)
}
