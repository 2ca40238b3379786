package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"checador/internal/platform/apperr"
)

// DecodeJSON reads one JSON document into dst. Malformed input becomes a validation error on "body".
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return invalid("body", "is required")
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return invalid("body", "is required")
	case errors.As(err, &maxErr):
		return invalid("body", "is too large")
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return invalid(typeErr.Field, "has the wrong type")
	default:
		return invalid("body", "must be valid JSON")
	}
}

// PathID parses a positive integer URL parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid(name, "must be a positive integer")
	}
	return id, nil
}

// QueryID parses an optional positive integer query parameter; absent yields nil.
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, invalid(name, "must be a positive integer")
	}
	return &id, nil
}

func invalid(field, reason string) error {
	return apperr.Invalid([]apperr.FieldIssue{{Field: field, Reason: reason}})
}
