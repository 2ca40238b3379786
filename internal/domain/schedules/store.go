package schedules

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"checador/internal/platform/db/postgres"
)

const scheduleColumns = `id, empleado_id, dia_semana, hora_inicio::text, hora_fin::text`

// weekdayOrder sorts rows in calendar order instead of alphabetically.
const weekdayOrder = `array_position(ARRAY['Domingo','Lunes','Martes','Miércoles','Jueves','Viernes','Sábado']::varchar[], dia_semana), id`

type Store struct {
	DB postgres.Querier
}

func NewStore(db postgres.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromContext(ctx, s.DB)
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM empleados WHERE id = $1)`, employeeID).Scan(&exists)
	return exists, err
}

// EmployeeIDForUser resolves the caller's employee row.
func (s *Store) EmployeeIDForUser(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx, `SELECT id FROM empleados WHERE usuario_id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrEmployeeNotFound
	}
	return id, err
}

func (s *Store) Create(ctx context.Context, in CreateInput) (Schedule, error) {
	row := s.q(ctx).QueryRow(ctx, `
    INSERT INTO horarios_laborales (empleado_id, dia_semana, hora_inicio, hora_fin)
    VALUES ($1, $2, $3::time, $4::time)
    RETURNING `+scheduleColumns, in.EmployeeID, in.DiaSemana, in.HoraInicio, in.HoraFin)
	return scanSchedule(row)
}

func (s *Store) Get(ctx context.Context, id int64) (Schedule, error) {
	row := s.q(ctx).QueryRow(ctx, `SELECT `+scheduleColumns+` FROM horarios_laborales WHERE id = $1`, id)
	return scanSchedule(row)
}

func (s *Store) Update(ctx context.Context, id int64, in UpdateInput) (Schedule, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(expr string, value any) {
		args = append(args, value)
		sets = append(sets, strings.Replace(expr, "?", "$"+strconv.Itoa(len(args)), 1))
	}
	if in.EmployeeID != nil {
		add("empleado_id = ?", *in.EmployeeID)
	}
	if in.DiaSemana != nil {
		add("dia_semana = ?", *in.DiaSemana)
	}
	if in.HoraInicio != nil {
		add("hora_inicio = ?::time", *in.HoraInicio)
	}
	if in.HoraFin != nil {
		add("hora_fin = ?::time", *in.HoraFin)
	}
	if len(sets) == 0 {
		return s.Get(ctx, id)
	}
	args = append(args, id)
	row := s.q(ctx).QueryRow(ctx, `
    UPDATE horarios_laborales SET `+strings.Join(sets, ", ")+`
    WHERE id = $`+strconv.Itoa(len(args))+`
    RETURNING `+scheduleColumns, args...)
	return scanSchedule(row)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.q(ctx).Exec(ctx, `DELETE FROM horarios_laborales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]Schedule, error) {
	rows, err := s.q(ctx).Query(ctx, `
    SELECT `+scheduleColumns+`
    FROM horarios_laborales
    WHERE empleado_id = $1
    ORDER BY `+weekdayOrder, employeeID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListForEmployees loads the schedules of many employees at once, keyed by employee id.
func (s *Store) ListForEmployees(ctx context.Context, employeeIDs []int64) (map[int64][]Schedule, error) {
	out := make(map[int64][]Schedule, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}
	rows, err := s.q(ctx).Query(ctx, `
    SELECT `+scheduleColumns+`
    FROM horarios_laborales
    WHERE empleado_id = ANY($1)
    ORDER BY empleado_id, `+weekdayOrder, employeeIDs)
	if err != nil {
		return nil, err
	}
	list, err := collect(rows)
	if err != nil {
		return nil, err
	}
	for _, sched := range list {
		out[sched.EmployeeID] = append(out[sched.EmployeeID], sched)
	}
	return out, nil
}

// InsertForEmployee adds entries without touching existing rows.
func (s *Store) InsertForEmployee(ctx context.Context, employeeID int64, entries []Entry) error {
	for _, entry := range entries {
		if _, err := s.q(ctx).Exec(ctx, `
      INSERT INTO horarios_laborales (empleado_id, dia_semana, hora_inicio, hora_fin)
      VALUES ($1, $2, $3::time, $4::time)
    `, employeeID, entry.DiaSemana, entry.HoraInicio, entry.HoraFin); err != nil {
			return err
		}
	}
	return nil
}

// ReplaceForEmployee deletes every row of the employee and inserts entries. Callers run it inside a transaction.
func (s *Store) ReplaceForEmployee(ctx context.Context, employeeID int64, entries []Entry) error {
	if _, err := s.q(ctx).Exec(ctx, `DELETE FROM horarios_laborales WHERE empleado_id = $1`, employeeID); err != nil {
		return err
	}
	return s.InsertForEmployee(ctx, employeeID, entries)
}

func scanSchedule(row pgx.Row) (Schedule, error) {
	var out Schedule
	err := row.Scan(&out.ID, &out.EmployeeID, &out.DiaSemana, &out.HoraInicio, &out.HoraFin)
	if errors.Is(err, pgx.ErrNoRows) {
		return Schedule{}, ErrScheduleNotFound
	}
	if err != nil {
		return Schedule{}, translate(err)
	}
	return out, nil
}

func collect(rows pgx.Rows) ([]Schedule, error) {
	defer rows.Close()
	out := make([]Schedule, 0)
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sched)
	}
	return out, rows.Err()
}

func translate(err error) error {
	if pgErr, ok := postgres.PgError(err); ok && pgErr.Code == postgres.ForeignKeyViolation {
		return ErrEmployeeNotFound
	}
	return err
}
