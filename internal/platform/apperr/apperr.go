package apperr

import (
	"errors"
	"net/http"
)

// Kind is the closed set of error categories the API reports.
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Unauthorized
	Forbidden
	DependencyMissing
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case DependencyMissing:
		return "dependency_missing"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to the status code written by the transport layer.
func (k Kind) HTTPStatus() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case DependencyMissing:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// FieldIssue describes one rejected input field.
type FieldIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Error struct {
	kind    Kind
	code    string
	message string
	fields  []FieldIssue
	cause   error
}

func New(kind Kind, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

// Wrap attaches cause to a copy of the sentinel so errors.Is still matches the sentinel.
func Wrap(sentinel *Error, cause error) *Error {
	if sentinel == nil {
		return &Error{kind: Internal, code: "internal_error", message: "internal error", cause: cause}
	}
	out := *sentinel
	out.cause = cause
	out.fields = append([]FieldIssue(nil), sentinel.fields...)
	return &out
}

// Invalid builds a validation error carrying field issues.
func Invalid(fields []FieldIssue) *Error {
	return &Error{
		kind:    Validation,
		code:    "validation_error",
		message: "payload validation failed",
		fields:  fields,
	}
}

func (e *Error) Kind() Kind {
	if e == nil {
		return Internal
	}
	return e.kind
}

func (e *Error) Code() string {
	if e == nil {
		return "internal_error"
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Fields() []FieldIssue {
	if e == nil {
		return nil
	}
	return e.fields
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches two errors of the same kind and code, so wrapped copies compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return e.kind == t.kind && e.code == t.code
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var out *Error
	if errors.As(err, &out) {
		return out, true
	}
	return nil, false
}

// KindOf reports the kind of err, or Internal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind()
	}
	return Internal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
