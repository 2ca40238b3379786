package dashboardhandler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"checador/internal/domain/audit"
	"checador/internal/transport/http/api"
	"checador/internal/transport/http/middleware"
	"checador/internal/transport/http/shared"
)

// exportLimit caps a single CSV export.
const exportLimit = 10000

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	filter, err := auditFilter(r)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	includeDetails := r.URL.Query().Get("includeDetails") == "true"

	total, err := h.Audit.Count(r.Context(), filter)
	if err != nil {
		api.Log.Error(r.Context(), "audit.count_failed", err)
	}
	events, err := h.Audit.List(r.Context(), filter, includeDetails, page.Limit, page.Offset)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, events, reqID)
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	filter, err := auditFilter(r)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}
	events, err := h.Audit.List(r.Context(), filter, false, exportLimit, 0)
	if err != nil {
		api.FailError(r.Context(), w, err, reqID)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=auditoria.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "actor_user_id", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}); err != nil {
		api.Log.Warn(r.Context(), "audit export header failed: "+err.Error())
	}
	for _, evt := range events {
		row := []string{
			strconv.FormatInt(evt.ID, 10),
			optionalID(evt.ActorID),
			evt.Action,
			evt.EntityType,
			evt.EntityID,
			optional(evt.RequestID),
			optional(evt.IP),
			evt.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			api.Log.Warn(r.Context(), "audit export row failed: "+err.Error())
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		api.Log.Warn(r.Context(), "audit export flush failed: "+err.Error())
	}
}

func optional(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func optionalID(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}

var _ AuditReader = (*audit.Service)(nil)
