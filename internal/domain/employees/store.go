package employees

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"checador/internal/platform/db/postgres"
)

const employeeSelect = `
  SELECT e.id, e.usuario_id, e.puesto, e.departamento, e.numero_identificador,
         u.id, u.persona_id, u.username, u.rol_id, r.nombre,
         p.id, p.nombre, p.apellido_paterno, p.apellido_materno, p.curp, p.correo, p.telefono
  FROM empleados e
  JOIN usuarios u ON u.id = e.usuario_id
  JOIN roles r ON r.id = u.rol_id
  JOIN personas p ON p.id = u.persona_id`

type Store struct {
	DB postgres.Querier
}

func NewStore(db postgres.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromContext(ctx, s.DB)
}

func (s *Store) InsertPerson(ctx context.Context, in CreateInput) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx, `
    INSERT INTO personas (nombre, apellido_paterno, apellido_materno, curp, correo, telefono)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, in.Nombre, in.ApellidoPaterno, in.ApellidoMaterno, in.CURP, in.Correo, in.Telefono).Scan(&id)
	return id, err
}

func (s *Store) RoleIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx, `SELECT id FROM roles WHERE nombre = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrRoleNotFound
	}
	return id, err
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM usuarios WHERE username = $1)`, username).Scan(&exists)
	return exists, err
}

func (s *Store) InsertUser(ctx context.Context, personID int64, username, passwordHash string, roleID int64) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx, `
    INSERT INTO usuarios (persona_id, username, password_hash, rol_id)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, personID, username, passwordHash, roleID).Scan(&id)
	return id, err
}

// MaxIdentifier returns the highest numero_identificador, or 0 with no employees.
func (s *Store) MaxIdentifier(ctx context.Context) (int, error) {
	var max int
	err := s.q(ctx).QueryRow(ctx, `SELECT COALESCE(MAX(numero_identificador), 0) FROM empleados`).Scan(&max)
	return max, err
}

func (s *Store) InsertEmployee(ctx context.Context, userID int64, puesto, departamento *string, numero int) (int64, error) {
	var id int64
	err := s.q(ctx).QueryRow(ctx, `
    INSERT INTO empleados (usuario_id, puesto, departamento, numero_identificador)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, userID, puesto, departamento, numero).Scan(&id)
	return id, err
}

// Refs locks the employee row for the rest of the transaction.
func (s *Store) Refs(ctx context.Context, employeeID int64) (Refs, error) {
	out := Refs{EmployeeID: employeeID}
	err := s.q(ctx).QueryRow(ctx, `
    SELECT e.usuario_id, u.persona_id
    FROM empleados e
    JOIN usuarios u ON u.id = e.usuario_id
    WHERE e.id = $1
    FOR UPDATE OF e
  `, employeeID).Scan(&out.UserID, &out.PersonID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Refs{}, ErrEmployeeNotFound
	}
	return out, err
}

func (s *Store) UpdatePerson(ctx context.Context, personID int64, patch PersonPatch) error {
	sets, args := patchSet([]patchField{
		{"nombre", patch.Nombre},
		{"apellido_paterno", patch.ApellidoPaterno},
		{"apellido_materno", patch.ApellidoMaterno},
		{"curp", patch.CURP},
		{"correo", patch.Correo},
		{"telefono", patch.Telefono},
	})
	if len(sets) == 0 {
		return nil
	}
	args = append(args, personID)
	_, err := s.q(ctx).Exec(ctx, `UPDATE personas SET `+strings.Join(sets, ", ")+` WHERE id = $`+strconv.Itoa(len(args)), args...)
	return err
}

func (s *Store) UpdateUserRole(ctx context.Context, userID, roleID int64) error {
	_, err := s.q(ctx).Exec(ctx, `UPDATE usuarios SET rol_id = $1 WHERE id = $2`, roleID, userID)
	return err
}

func (s *Store) UpdateEmployee(ctx context.Context, employeeID int64, puesto, departamento *string) error {
	sets, args := patchSet([]patchField{
		{"puesto", puesto},
		{"departamento", departamento},
	})
	if len(sets) == 0 {
		return nil
	}
	args = append(args, employeeID)
	_, err := s.q(ctx).Exec(ctx, `UPDATE empleados SET `+strings.Join(sets, ", ")+` WHERE id = $`+strconv.Itoa(len(args)), args...)
	return err
}

// DeleteAggregate removes the employee, its user and the user's person, in that order.
func (s *Store) DeleteAggregate(ctx context.Context, refs Refs) error {
	if _, err := s.q(ctx).Exec(ctx, `DELETE FROM empleados WHERE id = $1`, refs.EmployeeID); err != nil {
		return err
	}
	if _, err := s.q(ctx).Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, refs.UserID); err != nil {
		return err
	}
	_, err := s.q(ctx).Exec(ctx, `DELETE FROM personas WHERE id = $1`, refs.PersonID)
	return err
}

func (s *Store) Get(ctx context.Context, employeeID int64) (Employee, error) {
	out, err := scanEmployee(s.q(ctx).QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, employeeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	return out, err
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.q(ctx).Query(ctx, employeeSelect+` ORDER BY e.numero_identificador`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Search matches term case-insensitively anywhere in the person's names.
func (s *Store) Search(ctx context.Context, term string) ([]Employee, error) {
	rows, err := s.q(ctx).Query(ctx, employeeSelect+`
  WHERE p.nombre ILIKE $1 OR p.apellido_paterno ILIKE $1 OR p.apellido_materno ILIKE $1
  ORDER BY e.numero_identificador`, "%"+escapeLike(term)+"%")
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

type patchField struct {
	column string
	value  *string
}

func patchSet(fields []patchField) ([]string, []any) {
	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		args = append(args, *f.value)
		sets = append(sets, f.column+" = $"+strconv.Itoa(len(args)))
	}
	return sets, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.UsuarioID, &e.Puesto, &e.Departamento, &e.NumeroIdentificador,
		&e.Usuario.ID, &e.Usuario.PersonaID, &e.Usuario.Username, &e.Usuario.RolID, &e.Usuario.Rol,
		&e.Usuario.Persona.ID, &e.Usuario.Persona.Nombre, &e.Usuario.Persona.ApellidoPaterno,
		&e.Usuario.Persona.ApellidoMaterno, &e.Usuario.Persona.CURP, &e.Usuario.Persona.Correo, &e.Usuario.Persona.Telefono,
	)
	return e, err
}

func collect(rows pgx.Rows) ([]Employee, error) {
	defer rows.Close()
	out := make([]Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
