package auth

import "checador/internal/platform/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.Unauthorized, "invalid_credentials", "invalid credentials")
	ErrMissingToken       = apperr.New(apperr.Unauthorized, "missing_token", "authentication required")
	ErrInvalidToken       = apperr.New(apperr.Unauthorized, "invalid_token", "invalid or expired token")
	ErrForbidden          = apperr.New(apperr.Forbidden, "forbidden", "insufficient permissions")
)
