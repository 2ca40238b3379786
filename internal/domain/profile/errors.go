package profile

import "checador/internal/platform/apperr"

var (
	ErrUserNotFound     = apperr.New(apperr.NotFound, "user_not_found", "user not found")
	ErrEmployeeNotFound = apperr.New(apperr.NotFound, "employee_not_found", "employee not found for user")
	ErrPersonNotFound   = apperr.New(apperr.NotFound, "person_not_found", "personal data not found for user")
)
