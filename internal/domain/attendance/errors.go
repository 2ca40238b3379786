package attendance

import "checador/internal/platform/apperr"

var (
	ErrRecordNotFound   = apperr.New(apperr.NotFound, "attendance_not_found", "attendance record not found")
	ErrEmployeeNotFound = apperr.New(apperr.NotFound, "employee_not_found", "employee not found")
	ErrUserNotFound     = apperr.New(apperr.NotFound, "user_not_found", "user not found")
	ErrAlreadyComplete  = apperr.New(apperr.Conflict, "attendance_complete", "entry and exit already registered today")
	ErrRegistration     = apperr.New(apperr.Internal, "registration_failed", "could not register attendance")
)

// completeSignal is the message raised by registrar_asistencia once the day is closed.
const completeSignal = "asistencia_completa"
