package api

import (
	"context"
	"encoding/json"
	"net/http"

	"checador/internal/platform/apperr"
	"checador/internal/platform/logger"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Log is used for failures while writing responses and for internal errors.
var Log = logger.Nop()

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		Log.Warn(context.Background(), "write json failed: "+err.Error())
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message}, RequestID: requestID})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	WriteJSON(w, status, Envelope{Success: false, Error: &Error{Code: code, Message: message, Details: details}, RequestID: requestID})
}

// FailError writes err using its apperr kind. Foreign errors become 500s and are logged with their cause.
func FailError(ctx context.Context, w http.ResponseWriter, err error, requestID string) {
	appErr, ok := apperr.As(err)
	if !ok {
		Log.Error(ctx, "request.failed", err)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
		return
	}

	status := appErr.Kind().HTTPStatus()
	if status >= http.StatusInternalServerError {
		Log.Error(ctx, "request.failed", err)
	}
	if fields := appErr.Fields(); len(fields) > 0 {
		FailWithDetails(w, status, appErr.Code(), appErr.Message(), map[string]any{"fields": fields}, requestID)
		return
	}
	Fail(w, status, appErr.Code(), appErr.Message(), requestID)
}
