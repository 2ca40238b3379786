package employees

import (
	"strings"

	"checador/internal/domain/schedules"
)

type Person struct {
	ID              int64   `json:"id"`
	Nombre          string  `json:"nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
	CURP            string  `json:"curp"`
	Correo          *string `json:"correo"`
	Telefono        *string `json:"telefono"`
}

// User never carries the password digest.
type User struct {
	ID        int64  `json:"id"`
	PersonaID int64  `json:"persona_id"`
	Username  string `json:"username"`
	RolID     int64  `json:"rol_id"`
	Rol       string `json:"rol"`
	Persona   Person `json:"persona"`
}

type Employee struct {
	ID                  int64                `json:"id"`
	UsuarioID           int64                `json:"usuario_id"`
	Puesto              *string              `json:"puesto"`
	Departamento        *string              `json:"departamento"`
	NumeroIdentificador int                  `json:"numero_identificador"`
	Usuario             User                 `json:"usuario"`
	Horarios            []schedules.Schedule `json:"horarios_laborales"`
}

// Refs are the row ids that make up one employee aggregate.
type Refs struct {
	EmployeeID int64
	UserID     int64
	PersonID   int64
}

type CreateInput struct {
	Nombre          string            `json:"nombre" validate:"required,max=100"`
	ApellidoPaterno string            `json:"apellido_paterno" validate:"required,max=100"`
	ApellidoMaterno *string           `json:"apellido_materno" validate:"omitempty,max=100"`
	CURP            string            `json:"curp" validate:"required,len=18"`
	Correo          string            `json:"correo" validate:"required,email,max=150"`
	Telefono        *string           `json:"telefono" validate:"omitempty,max=10"`
	Username        string            `json:"username" validate:"required,max=50"`
	Password        string            `json:"password" validate:"required"`
	Puesto          *string           `json:"puesto" validate:"omitempty,max=100"`
	Departamento    *string           `json:"departamento" validate:"omitempty,max=100"`
	Horarios        []schedules.Entry `json:"horarios" validate:"omitempty,dive"`
}

func (in *CreateInput) normalize() {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.ApellidoPaterno = strings.TrimSpace(in.ApellidoPaterno)
	in.CURP = strings.TrimSpace(in.CURP)
	in.Correo = strings.TrimSpace(in.Correo)
	in.Username = strings.TrimSpace(in.Username)
}

// PersonPatch holds the person columns an update may touch.
type PersonPatch struct {
	Nombre          *string
	ApellidoPaterno *string
	ApellidoMaterno *string
	CURP            *string
	Correo          *string
	Telefono        *string
}

func (p PersonPatch) Empty() bool {
	return p.Nombre == nil && p.ApellidoPaterno == nil && p.ApellidoMaterno == nil &&
		p.CURP == nil && p.Correo == nil && p.Telefono == nil
}

// UpdateInput is a partial change. A non-nil Horarios replaces the whole schedule set.
type UpdateInput struct {
	Nombre          *string           `json:"nombre" validate:"omitempty,min=1,max=100"`
	ApellidoPaterno *string           `json:"apellido_paterno" validate:"omitempty,min=1,max=100"`
	ApellidoMaterno *string           `json:"apellido_materno" validate:"omitempty,max=100"`
	CURP            *string           `json:"curp" validate:"omitempty,len=18"`
	Correo          *string           `json:"correo" validate:"omitempty,email,max=150"`
	Telefono        *string           `json:"telefono" validate:"omitempty,max=10"`
	Rol             *string           `json:"rol" validate:"omitempty,min=1"`
	Puesto          *string           `json:"puesto" validate:"omitempty,max=100"`
	Departamento    *string           `json:"departamento" validate:"omitempty,max=100"`
	Horarios        []schedules.Entry `json:"horarios" validate:"omitempty,dive"`
}

func (in UpdateInput) Person() PersonPatch {
	return PersonPatch{
		Nombre:          in.Nombre,
		ApellidoPaterno: in.ApellidoPaterno,
		ApellidoMaterno: in.ApellidoMaterno,
		CURP:            in.CURP,
		Correo:          in.Correo,
		Telefono:        in.Telefono,
	}
}
