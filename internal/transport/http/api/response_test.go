package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/platform/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestFailErrorMapsKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		internal bool
	}{
		{"not found", apperr.New(apperr.NotFound, "employee_not_found", "employee not found"), http.StatusNotFound, "employee_not_found", false},
		{"conflict", apperr.New(apperr.Conflict, "username_taken", "username already in use"), http.StatusConflict, "username_taken", false},
		{"forbidden", apperr.New(apperr.Forbidden, "forbidden", "no"), http.StatusForbidden, "forbidden", false},
		{"foreign error", errors.New("socket closed"), http.StatusInternalServerError, "internal_error", true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FailError(context.Background(), rec, tc.err, "req-1")

			assert.Equal(t, tc.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "req-1", body["requestId"])
			errBody := body["error"].(map[string]any)
			assert.Equal(t, tc.code, errBody["code"])
			if tc.internal {
				assert.NotContains(t, rec.Body.String(), "socket closed")
			}
		})
	}
}

func TestFailErrorIncludesFieldIssues(t *testing.T) {
	rec := httptest.NewRecorder()
	FailError(context.Background(), rec, apperr.Invalid([]apperr.FieldIssue{{Field: "curp", Reason: "is required"}}), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	details := body["error"].(map[string]any)["details"].(map[string]any)
	fields := details["fields"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "curp", fields[0].(map[string]any)["field"])
}

func TestCreatedEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]int{"id": 1}, "r")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
}
