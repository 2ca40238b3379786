package attendance

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"checador/internal/platform/db/postgres"
)

const recordColumns = `r.id, r.usuario_id, r.fecha::text, r.hora_entrada::text, r.hora_salida::text, r.registro_manual`

type Store struct {
	DB postgres.Querier
}

func NewStore(db postgres.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromContext(ctx, s.DB)
}

// Clock runs the registrar_asistencia routine and returns the affected record id.
func (s *Store) Clock(ctx context.Context, userID int64, source string) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx, `SELECT registrar_asistencia($1, $2)`, userID, source).Scan(&id)
	return id, err
}

func (s *Store) EmployeeExistsForUser(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM empleados WHERE usuario_id = $1)`, userID).Scan(&exists)
	return exists, err
}

func (s *Store) Insert(ctx context.Context, in RegisterInput) (Record, error) {
	row := s.q(ctx).QueryRow(ctx, `
    INSERT INTO registro_asistencia AS r (usuario_id, fecha, hora_entrada, hora_salida, registro_manual)
    VALUES ($1, $2::date, $3::time, $4::time, $5)
    RETURNING `+recordColumns, in.UsuarioID, in.Fecha, in.HoraEntrada, in.HoraSalida, in.RegistroManual)
	return scanRecord(row)
}

func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	return scanRecord(s.q(ctx).QueryRow(ctx, `SELECT `+recordColumns+` FROM registro_asistencia r WHERE r.id = $1`, id))
}

func (s *Store) Update(ctx context.Context, id int64, in UpdateInput) (Record, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	add := func(column, cast string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args))+cast)
	}
	add("hora_entrada", "::time", in.HoraEntrada)
	add("hora_salida", "::time", in.HoraSalida)
	add("registro_manual", "", in.RegistroManual)
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}
	args = append(args, id)
	row := s.q(ctx).QueryRow(ctx, `
    UPDATE registro_asistencia AS r SET `+strings.Join(sets, ", ")+`
    WHERE r.id = $`+strconv.Itoa(len(args))+`
    RETURNING `+recordColumns, args...)
	return scanRecord(row)
}

// Query lists records with owner names, newest first.
func (s *Store) Query(ctx context.Context, f Filter) ([]Listed, error) {
	where := make([]string, 0, 3)
	args := make([]any, 0, 3)
	cond := func(expr string, value any) {
		args = append(args, value)
		where = append(where, strings.ReplaceAll(expr, "?", "$"+strconv.Itoa(len(args))))
	}
	if f.UsuarioID != nil {
		cond("r.usuario_id = ?", *f.UsuarioID)
	}
	switch {
	case f.HasRange():
		cond("r.fecha >= ?::date", f.FechaInicio)
		cond("r.fecha <= ?::date", f.FechaFin)
	case f.Fecha != "":
		cond("r.fecha = ?::date", f.Fecha)
	}

	sql := `
    SELECT ` + recordColumns + `, u.id, u.username, p.nombre, p.apellido_paterno, p.apellido_materno
    FROM registro_asistencia r
    JOIN usuarios u ON u.id = r.usuario_id
    JOIN personas p ON p.id = u.persona_id`
	if len(where) > 0 {
		sql += "\n    WHERE " + strings.Join(where, " AND ")
	}
	sql += "\n    ORDER BY r.fecha DESC, r.id DESC"

	rows, err := s.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Listed, 0)
	for rows.Next() {
		var item Listed
		if err := rows.Scan(
			&item.ID, &item.UsuarioID, &item.Fecha, &item.HoraEntrada, &item.HoraSalida, &item.RegistroManual,
			&item.Usuario.ID, &item.Usuario.Username,
			&item.Usuario.Persona.Nombre, &item.Usuario.Persona.ApellidoPaterno, &item.Usuario.Persona.ApellidoMaterno,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListForUser returns at most limit rows when limit > 0.
func (s *Store) ListForUser(ctx context.Context, userID int64, limit int) ([]Record, error) {
	sql := `SELECT ` + recordColumns + ` FROM registro_asistencia r WHERE r.usuario_id = $1 ORDER BY r.fecha DESC, r.id DESC`
	args := []any{userID}
	if limit > 0 {
		sql += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) PersonName(ctx context.Context, userID int64) (PersonName, error) {
	var out PersonName
	err := s.q(ctx).QueryRow(ctx, `
    SELECT p.nombre, p.apellido_paterno, p.apellido_materno
    FROM usuarios u
    JOIN personas p ON p.id = u.persona_id
    WHERE u.id = $1
  `, userID).Scan(&out.Nombre, &out.ApellidoPaterno, &out.ApellidoMaterno)
	if errors.Is(err, pgx.ErrNoRows) {
		return PersonName{}, ErrUserNotFound
	}
	return out, err
}

func (s *Store) HasRecordOn(ctx context.Context, userID int64, day string) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM registro_asistencia WHERE usuario_id = $1 AND fecha = $2::date)
  `, userID, day).Scan(&exists)
	return exists, err
}

func (s *Store) CountSince(ctx context.Context, userID int64, day string) (int, error) {
	var n int
	err := s.q(ctx).QueryRow(ctx, `
    SELECT COUNT(*) FROM registro_asistencia WHERE usuario_id = $1 AND fecha >= $2::date
  `, userID, day).Scan(&n)
	return n, err
}

// Latest returns nil when the user has no records.
func (s *Store) Latest(ctx context.Context, userID int64) (*LastRecord, error) {
	var out LastRecord
	err := s.q(ctx).QueryRow(ctx, `
    SELECT fecha::text, hora_entrada::text, hora_salida::text
    FROM registro_asistencia
    WHERE usuario_id = $1
    ORDER BY fecha DESC, hora_salida DESC NULLS LAST, hora_entrada DESC NULLS LAST
    LIMIT 1
  `, userID).Scan(&out.Fecha, &out.HoraEntrada, &out.HoraSalida)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ScheduleFor returns the user's window for weekday, nil when there is none.
func (s *Store) ScheduleFor(ctx context.Context, userID int64, weekday string) (*DaySchedule, error) {
	out := DaySchedule{Dia: weekday}
	err := s.q(ctx).QueryRow(ctx, `
    SELECT h.hora_inicio::text, h.hora_fin::text
    FROM horarios_laborales h
    JOIN empleados e ON e.id = h.empleado_id
    WHERE e.usuario_id = $1 AND h.dia_semana = $2
    ORDER BY h.id
    LIMIT 1
  `, userID, weekday).Scan(&out.HoraInicio, &out.HoraFin)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var out Record
	err := row.Scan(&out.ID, &out.UsuarioID, &out.Fecha, &out.HoraEntrada, &out.HoraSalida, &out.RegistroManual)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return out, err
}
