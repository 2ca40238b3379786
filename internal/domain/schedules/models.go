package schedules

import "time"

// Weekdays are the stored day names, Sunday first to match time.Weekday.
var Weekdays = [7]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

func WeekdayName(d time.Weekday) string {
	return Weekdays[d]
}

type Schedule struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"empleado_id"`
	DiaSemana  string `json:"dia_semana"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

// Entry is one weekday window supplied while onboarding or replacing an employee's schedule.
type Entry struct {
	DiaSemana  string `json:"dia_semana" validate:"required,oneof=Domingo Lunes Martes Miércoles Jueves Viernes Sábado"`
	HoraInicio string `json:"hora_inicio" validate:"required,clock"`
	HoraFin    string `json:"hora_fin" validate:"required,clock"`
}

type CreateInput struct {
	EmployeeID int64  `json:"empleado_id" validate:"required,gt=0"`
	DiaSemana  string `json:"dia_semana" validate:"required,oneof=Domingo Lunes Martes Miércoles Jueves Viernes Sábado"`
	HoraInicio string `json:"hora_inicio" validate:"required,clock"`
	HoraFin    string `json:"hora_fin" validate:"required,clock"`
}

// UpdateInput carries only the fields being changed.
type UpdateInput struct {
	EmployeeID *int64  `json:"empleado_id" validate:"omitempty,gt=0"`
	DiaSemana  *string `json:"dia_semana" validate:"omitempty,oneof=Domingo Lunes Martes Miércoles Jueves Viernes Sábado"`
	HoraInicio *string `json:"hora_inicio" validate:"omitempty,clock"`
	HoraFin    *string `json:"hora_fin" validate:"omitempty,clock"`
}

func (in UpdateInput) Empty() bool {
	return in.EmployeeID == nil && in.DiaSemana == nil && in.HoraInicio == nil && in.HoraFin == nil
}
