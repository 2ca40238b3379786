package profile

import (
	"context"

	"checador/internal/domain/attendance"
	"checador/internal/domain/auth"
	"checador/internal/domain/employees"
	"checador/internal/platform/validate"
)

type Repository interface {
	Account(ctx context.Context, userID int64) (Account, error)
	Job(ctx context.Context, userID int64) (Job, error)
	Person(ctx context.Context, personID int64) (PersonalData, error)
}

type AttendanceLister interface {
	ListForUser(ctx context.Context, userID int64, limit int) ([]attendance.Record, error)
}

type PersonUpdater interface {
	UpdatePerson(ctx context.Context, personID int64, patch employees.PersonPatch) error
}

type Service struct {
	store      Repository
	attendance AttendanceLister
	people     PersonUpdater
}

func NewService(store Repository, attendance AttendanceLister, people PersonUpdater) *Service {
	return &Service{store: store, attendance: attendance, people: people}
}

// Overview returns account and job data with the latest attendance rows.
func (s *Service) Overview(ctx context.Context, id auth.Identity) (Overview, error) {
	account, err := s.store.Account(ctx, id.UserID)
	if err != nil {
		return Overview{}, err
	}
	job, err := s.store.Job(ctx, id.UserID)
	if err != nil {
		return Overview{}, err
	}
	recent, err := s.attendance.ListForUser(ctx, id.UserID, RecentLimit)
	if err != nil {
		return Overview{}, err
	}

	out := Overview{
		DatosPersonales: OverviewAccount{ID: account.ID, Username: account.Username, Job: job},
	}
	if len(recent) == 0 {
		out.HistorialAsistencias = NoHistory
	} else {
		out.HistorialAsistencias = recent
	}
	return out, nil
}

func (s *Service) Detail(ctx context.Context, id auth.Identity) (Detail, error) {
	account, err := s.store.Account(ctx, id.UserID)
	if err != nil {
		return Detail{}, err
	}
	person, err := s.store.Person(ctx, account.PersonaID)
	if err != nil {
		return Detail{}, err
	}
	job, err := s.store.Job(ctx, id.UserID)
	if err != nil {
		return Detail{}, err
	}
	return Detail{DatosCuenta: account, DatosPersonales: person, InformacionLaboral: job}, nil
}

// UpdateSelf changes the caller's own personal data.
func (s *Service) UpdateSelf(ctx context.Context, id auth.Identity, in UpdateInput) (PersonalData, error) {
	if err := validate.Struct(in); err != nil {
		return PersonalData{}, err
	}
	account, err := s.store.Account(ctx, id.UserID)
	if err != nil {
		return PersonalData{}, err
	}
	patch := employees.PersonPatch{
		Nombre:          in.Nombre,
		ApellidoPaterno: in.ApellidoPaterno,
		ApellidoMaterno: in.ApellidoMaterno,
		Correo:          in.Correo,
		Telefono:        in.Telefono,
	}
	if !patch.Empty() {
		if err := s.people.UpdatePerson(ctx, account.PersonaID, patch); err != nil {
			return PersonalData{}, employees.Translate(err)
		}
	}
	return s.store.Person(ctx, account.PersonaID)
}
