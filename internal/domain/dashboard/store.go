package dashboard

import (
	"context"

	"checador/internal/platform/db/postgres"
)

type Store struct {
	DB postgres.Querier
}

func NewStore(db postgres.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Roles(ctx context.Context) ([]Role, error) {
	rows, err := s.DB.Query(ctx, `SELECT id, nombre FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Role, 0)
	for rows.Next() {
		var r Role
		if err := rows.Scan(&r.ID, &r.Nombre); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Users(ctx context.Context) ([]UserRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT u.id, u.persona_id, u.username, u.rol_id, r.nombre,
           p.id, p.nombre, p.apellido_paterno, p.apellido_materno, p.curp, p.correo, p.telefono
    FROM usuarios u
    JOIN roles r ON r.id = u.rol_id
    JOIN personas p ON p.id = u.persona_id
    ORDER BY u.id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]UserRow, 0)
	for rows.Next() {
		var u UserRow
		if err := rows.Scan(
			&u.ID, &u.PersonaID, &u.Username, &u.RolID, &u.Rol,
			&u.Persona.ID, &u.Persona.Nombre, &u.Persona.ApellidoPaterno, &u.Persona.ApellidoMaterno,
			&u.Persona.CURP, &u.Persona.Correo, &u.Persona.Telefono,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) Schedules(ctx context.Context) ([]ScheduleRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT h.id, h.empleado_id, h.dia_semana, h.hora_inicio::text, h.hora_fin::text,
           e.id, e.usuario_id, e.puesto, e.departamento, e.numero_identificador
    FROM horarios_laborales h
    JOIN empleados e ON e.id = h.empleado_id
    ORDER BY h.empleado_id,
             array_position(ARRAY['Domingo','Lunes','Martes','Miércoles','Jueves','Viernes','Sábado']::varchar[], h.dia_semana),
             h.id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ScheduleRow, 0)
	for rows.Next() {
		var h ScheduleRow
		if err := rows.Scan(
			&h.ID, &h.EmployeeID, &h.DiaSemana, &h.HoraInicio, &h.HoraFin,
			&h.Empleado.ID, &h.Empleado.UsuarioID, &h.Empleado.Puesto, &h.Empleado.Departamento, &h.Empleado.NumeroIdentificador,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
