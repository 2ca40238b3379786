package shared

import (
	"context"
	"net/http"

	"checador/internal/domain/audit"
	"checador/internal/transport/http/middleware"
)

// Auditor receives best-effort audit entries from admin handlers.
type Auditor interface {
	Track(ctx context.Context, e audit.Entry)
}

// AuditEntry fills actor, request id and client IP from the request.
func AuditEntry(r *http.Request, action, entityType string, entityID int64, after any) audit.Entry {
	identity, _ := middleware.GetIdentity(r.Context())
	return audit.Entry{
		ActorID:    identity.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         middleware.ClientIP(r),
		After:      after,
	}
}

// Track is a no-op when auditor is nil.
func Track(r *http.Request, auditor Auditor, action, entityType string, entityID int64, after any) {
	if auditor == nil {
		return
	}
	auditor.Track(r.Context(), AuditEntry(r, action, entityType, entityID, after))
}
