package profile

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

func (s *Store) Account(ctx context.Context, userID int64) (Account, error) {
	var out Account
	err := s.DB.QueryRow(ctx, `SELECT id, username, persona_id FROM usuarios WHERE id = $1`, userID).
		Scan(&out.ID, &out.Username, &out.PersonaID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrUserNotFound
	}
	return out, err
}

func (s *Store) Job(ctx context.Context, userID int64) (Job, error) {
	var out Job
	err := s.DB.QueryRow(ctx, `
    SELECT puesto, departamento, numero_identificador
    FROM empleados
    WHERE usuario_id = $1
  `, userID).Scan(&out.Puesto, &out.Departamento, &out.NumeroIdentificador)
	if errors.Is(err, pgx.ErrNoRows) {
		return Job{}, ErrEmployeeNotFound
	}
	return out, err
}

func (s *Store) Person(ctx context.Context, personID int64) (PersonalData, error) {
	var out PersonalData
	err := s.DB.QueryRow(ctx, `
    SELECT nombre, apellido_paterno, apellido_materno, correo, telefono
    FROM personas
    WHERE id = $1
  `, personID).Scan(&out.Nombre, &out.ApellidoPaterno, &out.ApellidoMaterno, &out.Correo, &out.Telefono)
	if errors.Is(err, pgx.ErrNoRows) {
		return PersonalData{}, ErrPersonNotFound
	}
	return out, err
}
