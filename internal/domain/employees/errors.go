package employees

import (
	"checador/internal/platform/apperr"
	"checador/internal/platform/db/postgres"
)

var (
	ErrEmployeeNotFound = apperr.New(apperr.NotFound, "employee_not_found", "employee not found")
	ErrRoleNotFound     = apperr.New(apperr.DependencyMissing, "role_not_found", "role not found")
	ErrUnknownRole      = apperr.New(apperr.Validation, "unknown_role", "rol no encontrado")
	ErrUsernameTaken    = apperr.New(apperr.Conflict, "username_taken", "username already in use")
	ErrCURPTaken        = apperr.New(apperr.Conflict, "curp_taken", "curp already registered")
	ErrEmailTaken       = apperr.New(apperr.Conflict, "email_taken", "email already registered")
	ErrIdentifierTaken  = apperr.New(apperr.Conflict, "identifier_taken", "employee number already assigned")
	ErrConcurrentUpdate = apperr.New(apperr.Conflict, "concurrent_update", "concurrent update, try again")
)

var constraintErrors = map[string]*apperr.Error{
	"personas_curp_key":                  ErrCURPTaken,
	"personas_correo_key":                ErrEmailTaken,
	"usuarios_username_key":              ErrUsernameTaken,
	"empleados_numero_identificador_key": ErrIdentifierTaken,
}

// Translate turns storage failures into domain conflicts. Anything else passes through.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if postgres.IsSerializationFailure(err) {
		return apperr.Wrap(ErrConcurrentUpdate, err)
	}
	if pgErr, ok := postgres.PgError(err); ok && pgErr.Code == postgres.UniqueViolation {
		if mapped, found := constraintErrors[pgErr.ConstraintName]; found {
			return apperr.Wrap(mapped, err)
		}
	}
	return err
}
