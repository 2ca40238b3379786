package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"checador/internal/platform/db/postgres"
	"checador/internal/platform/logger"
)

// Actions recorded for admin mutations.
const (
	ActionEmployeeCreate   = "employee.create"
	ActionEmployeeUpdate   = "employee.update"
	ActionEmployeeDelete   = "employee.delete"
	ActionAttendanceCreate = "attendance.register"
	ActionAttendanceUpdate = "attendance.update"
	ActionScheduleCreate   = "schedule.create"
	ActionScheduleUpdate   = "schedule.update"
	ActionScheduleDelete   = "schedule.delete"
)

type Event struct {
	ID         int64           `json:"id"`
	ActorID    *int64          `json:"actorUserId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  *string         `json:"requestId"`
	IP         *string         `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	After      json.RawMessage `json:"after,omitempty"`
}

// Entry is what callers hand to Record.
type Entry struct {
	ActorID    int64
	Action     string
	EntityType string
	EntityID   int64
	RequestID  string
	IP         string
	After      any
}

type Filter struct {
	Action     string
	EntityType string
	ActorUser  *int64
}

type Service struct {
	DB  postgres.Querier
	Log *logger.Logger
}

func New(db postgres.Querier, log *logger.Logger) *Service {
	return &Service{DB: db, Log: log}
}

func (s *Service) Record(ctx context.Context, e Entry) error {
	var afterJSON []byte
	if e.After != nil {
		payload, err := json.Marshal(e.After)
		if err != nil {
			return err
		}
		afterJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_user_id, action, entity_type, entity_id, after_json, request_id, ip)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
  `, e.ActorID, e.Action, e.EntityType, strconv.FormatInt(e.EntityID, 10), afterJSON, e.RequestID, e.IP)
	return err
}

// Track records e and only logs a failure; the caller's request has already succeeded.
func (s *Service) Track(ctx context.Context, e Entry) {
	if s == nil {
		return
	}
	if err := s.Record(ctx, e); err != nil {
		s.Log.Error(ctx, "audit.record_failed", err)
	}
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	selectCols := "id, actor_user_id, action, entity_type, entity_id, request_id, ip, created_at"
	if includeDetails {
		selectCols += ", after_json"
	}
	query, args := buildBaseQuery("SELECT "+selectCols, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var evt Event
		dest := []any{&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt}
		if includeDetails {
			dest = append(dest, &evt.After)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

func buildBaseQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE 1=1"
	args := []any{}
	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.EntityType != "" {
		args = append(args, filter.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if filter.ActorUser != nil {
		args = append(args, *filter.ActorUser)
		query += fmt.Sprintf(" AND actor_user_id = $%d", len(args))
	}
	return query, args
}
