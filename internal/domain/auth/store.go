package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"checador/internal/platform/db/postgres"
)

type Store struct {
	DB postgres.Querier
}

func NewStore(db postgres.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindCredentials(ctx context.Context, username string) (Credentials, error) {
	var out Credentials
	err := s.DB.QueryRow(ctx, `
    SELECT u.id, u.password_hash, u.persona_id, r.nombre,
           p.nombre, p.apellido_paterno, p.apellido_materno, p.curp, p.correo
    FROM usuarios u
    JOIN roles r ON r.id = u.rol_id
    JOIN personas p ON p.id = u.persona_id
    WHERE u.username = $1
  `, username).Scan(
		&out.UserID, &out.PasswordHash, &out.PersonID, &out.RoleName,
		&out.Person.Nombre, &out.Person.ApellidoPaterno, &out.Person.ApellidoMaterno, &out.Person.CURP, &out.Person.Correo,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrInvalidCredentials
	}
	return out, err
}
