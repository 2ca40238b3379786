package attendance

import "strings"

// Source tags stored in registro_manual.
const (
	SourceEmployee = "empleado"
	SourceAdmin    = "admin"
)

// Notice is the fixed text shown on the home summary.
const Notice = "Los empleados deben registrar su entrada y salida diariamente. Ante incidencias, contacte TI."

type Record struct {
	ID             int64   `json:"id"`
	UsuarioID      int64   `json:"usuario_id"`
	Fecha          string  `json:"fecha"`
	HoraEntrada    *string `json:"hora_entrada"`
	HoraSalida     *string `json:"hora_salida"`
	RegistroManual *string `json:"registro_manual"`
}

type PersonName struct {
	Nombre          string  `json:"nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
}

// FullName joins the names, skipping an absent second surname.
func (p PersonName) FullName() string {
	parts := []string{p.Nombre, p.ApellidoPaterno}
	if p.ApellidoMaterno != nil {
		parts = append(parts, *p.ApellidoMaterno)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

type Owner struct {
	ID       int64      `json:"id"`
	Username string     `json:"username"`
	Persona  PersonName `json:"persona"`
}

// Listed is a record with its owner's names, as returned by admin queries.
type Listed struct {
	Record
	Usuario Owner `json:"usuario"`
}

type RegisterInput struct {
	UsuarioID      int64   `json:"usuario_id" validate:"required,gt=0"`
	Fecha          string  `json:"fecha" validate:"required,datetime=2006-01-02"`
	HoraEntrada    *string `json:"hora_entrada" validate:"omitempty,timeofday"`
	HoraSalida     *string `json:"hora_salida" validate:"omitempty,timeofday"`
	RegistroManual *string `json:"registro_manual" validate:"omitempty,max=100"`
}

type UpdateInput struct {
	HoraEntrada    *string `json:"hora_entrada"`
	HoraSalida     *string `json:"hora_salida"`
	RegistroManual *string `json:"registro_manual"`
}

// Filter narrows admin queries. A complete range wins over Fecha.
type Filter struct {
	UsuarioID   *int64
	Fecha       string
	FechaInicio string
	FechaFin    string
}

func (f Filter) HasRange() bool {
	return f.FechaInicio != "" && f.FechaFin != ""
}

type DaySchedule struct {
	Dia        string `json:"dia"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}

type LastRecord struct {
	Fecha       string  `json:"fecha"`
	HoraEntrada *string `json:"hora_entrada"`
	HoraSalida  *string `json:"hora_salida"`
}

type Summary struct {
	NombreCompleto    string       `json:"nombre_completo"`
	AsistenciaHoy     bool         `json:"asistencia_hoy"`
	HorarioDelDia     *DaySchedule `json:"horario_del_dia"`
	AsistenciasDelMes int          `json:"asistencias_del_mes"`
	UltimaAsistencia  *LastRecord  `json:"ultima_asistencia"`
	Avisos            string       `json:"avisos"`
}

// NormalizeTime keeps the time part of a full timestamp: "2024-05-01T08:30:00" becomes "08:30:00".
// A trailing UTC designator or offset is dropped; the clock reading is kept as written.
func NormalizeTime(value string) string {
	value = strings.TrimSpace(value)
	if _, after, found := strings.Cut(value, "T"); found {
		value = after
	}
	value = strings.TrimSuffix(value, "Z")
	if i := strings.IndexAny(value, "+-"); i >= 0 {
		value = value[:i]
	}
	return value
}

// NormalizeDate keeps the date part of a full timestamp.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	before, _, _ := strings.Cut(value, "T")
	return before
}
