package schedules

import "checador/internal/platform/apperr"

var (
	ErrScheduleNotFound = apperr.New(apperr.NotFound, "schedule_not_found", "schedule not found")
	ErrEmployeeNotFound = apperr.New(apperr.NotFound, "employee_not_found", "employee not found")
	ErrNothingToUpdate  = apperr.New(apperr.Validation, "nothing_to_update", "no fields supplied")
)
