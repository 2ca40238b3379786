package dashboard

import "checador/internal/domain/employees"

type Role struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// UserRow is a user with its person; the password digest is never selected.
type UserRow struct {
	ID        int64            `json:"id"`
	PersonaID int64            `json:"persona_id"`
	Username  string           `json:"username"`
	RolID     int64            `json:"rol_id"`
	Rol       string           `json:"rol"`
	Persona   employees.Person `json:"persona"`
}

type EmployeeRef struct {
	ID                  int64   `json:"id"`
	UsuarioID           int64   `json:"usuario_id"`
	Puesto              *string `json:"puesto"`
	Departamento        *string `json:"departamento"`
	NumeroIdentificador int     `json:"numero_identificador"`
}

type ScheduleRow struct {
	ID         int64       `json:"id"`
	EmployeeID int64       `json:"empleado_id"`
	DiaSemana  string      `json:"dia_semana"`
	HoraInicio string      `json:"hora_inicio"`
	HoraFin    string      `json:"hora_fin"`
	Empleado   EmployeeRef `json:"empleado"`
}
