package profile

// NoHistory replaces the attendance list when the user has none.
const NoHistory = "No hay datos disponibles."

// RecentLimit is how many attendance rows the overview shows.
const RecentLimit = 5

type Account struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	PersonaID int64  `json:"-"`
}

type Job struct {
	Puesto              *string `json:"puesto"`
	Departamento        *string `json:"departamento"`
	NumeroIdentificador int     `json:"numero_identificador"`
}

type PersonalData struct {
	Nombre          string  `json:"nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
	Correo          *string `json:"correo"`
	Telefono        *string `json:"telefono"`
}

type OverviewAccount struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Job
}

// Overview.HistorialAsistencias is either []attendance.Record or NoHistory.
type Overview struct {
	DatosPersonales      OverviewAccount `json:"datos_personales"`
	HistorialAsistencias any             `json:"historial_asistencias"`
}

type Detail struct {
	DatosCuenta        Account      `json:"datos_cuenta"`
	DatosPersonales    PersonalData `json:"datos_personales"`
	InformacionLaboral Job          `json:"informacion_laboral"`
}

type UpdateInput struct {
	Nombre          *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	ApellidoPaterno *string `json:"apellido_paterno" validate:"omitempty,min=1,max=100"`
	ApellidoMaterno *string `json:"apellido_materno" validate:"omitempty,max=100"`
	Correo          *string `json:"correo" validate:"omitempty,email,max=150"`
	Telefono        *string `json:"telefono" validate:"omitempty,max=10"`
}
