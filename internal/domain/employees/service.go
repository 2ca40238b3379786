package employees

import (
	"context"
	"errors"
	"strings"

	"checador/internal/domain/auth"
	"checador/internal/domain/schedules"
	"checador/internal/platform/apperr"
	"checador/internal/platform/validate"
)

// FirstIdentifier is the numero_identificador given to the first employee.
const FirstIdentifier = 1000

type Repository interface {
	InsertPerson(ctx context.Context, in CreateInput) (int64, error)
	RoleIDByName(ctx context.Context, name string) (int64, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	InsertUser(ctx context.Context, personID int64, username, passwordHash string, roleID int64) (int64, error)
	MaxIdentifier(ctx context.Context) (int, error)
	InsertEmployee(ctx context.Context, userID int64, puesto, departamento *string, numero int) (int64, error)
	Refs(ctx context.Context, employeeID int64) (Refs, error)
	UpdatePerson(ctx context.Context, personID int64, patch PersonPatch) error
	UpdateUserRole(ctx context.Context, userID, roleID int64) error
	UpdateEmployee(ctx context.Context, employeeID int64, puesto, departamento *string) error
	DeleteAggregate(ctx context.Context, refs Refs) error
	Get(ctx context.Context, employeeID int64) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Search(ctx context.Context, term string) ([]Employee, error)
}

type ScheduleRepository interface {
	InsertForEmployee(ctx context.Context, employeeID int64, entries []schedules.Entry) error
	ReplaceForEmployee(ctx context.Context, employeeID int64, entries []schedules.Entry) error
	ListForEmployee(ctx context.Context, employeeID int64) ([]schedules.Schedule, error)
	ListForEmployees(ctx context.Context, employeeIDs []int64) (map[int64][]schedules.Schedule, error)
}

type Transactor interface {
	WithinTx(ctx context.Context, fn func(context.Context) error) error
	WithinSerializable(ctx context.Context, fn func(context.Context) error) error
}

type Service struct {
	store     Repository
	schedules ScheduleRepository
	tx        Transactor
	hash      func(string) (string, error)
}

func NewService(store Repository, schedules ScheduleRepository, tx Transactor) *Service {
	return &Service{store: store, schedules: schedules, tx: tx, hash: auth.HashPassword}
}

// NextIdentifier continues from max, never going below FirstIdentifier.
func NextIdentifier(max int) int {
	if max >= FirstIdentifier {
		return max + 1
	}
	return FirstIdentifier
}

// Create onboards person, user, employee and optional schedules in one serializable transaction.
func (s *Service) Create(ctx context.Context, in CreateInput) (Employee, error) {
	in.normalize()
	if err := validate.Struct(in); err != nil {
		return Employee{}, err
	}

	digest, err := s.hash(in.Password)
	if err != nil {
		return Employee{}, err
	}

	var employeeID int64
	err = s.tx.WithinSerializable(ctx, func(ctx context.Context) error {
		personID, err := s.store.InsertPerson(ctx, in)
		if err != nil {
			return err
		}
		roleID, err := s.store.RoleIDByName(ctx, auth.RoleNameEmployee)
		if err != nil {
			return err
		}
		taken, err := s.store.UsernameExists(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
		userID, err := s.store.InsertUser(ctx, personID, in.Username, digest, roleID)
		if err != nil {
			return err
		}
		max, err := s.store.MaxIdentifier(ctx)
		if err != nil {
			return err
		}
		employeeID, err = s.store.InsertEmployee(ctx, userID, in.Puesto, in.Departamento, NextIdentifier(max))
		if err != nil {
			return err
		}
		if len(in.Horarios) > 0 {
			return s.schedules.InsertForEmployee(ctx, employeeID, in.Horarios)
		}
		return nil
	})
	if err != nil {
		return Employee{}, Translate(err)
	}
	return s.Get(ctx, employeeID)
}

// Update edits the aggregate. Person fields go to the person the employee's user points at.
func (s *Service) Update(ctx context.Context, employeeID int64, in UpdateInput) (Employee, error) {
	if err := validate.Struct(in); err != nil {
		return Employee{}, err
	}

	err := s.tx.WithinSerializable(ctx, func(ctx context.Context) error {
		refs, err := s.store.Refs(ctx, employeeID)
		if err != nil {
			return err
		}
		if patch := in.Person(); !patch.Empty() {
			if err := s.store.UpdatePerson(ctx, refs.PersonID, patch); err != nil {
				return err
			}
		}
		if in.Rol != nil {
			roleID, err := s.store.RoleIDByName(ctx, strings.TrimSpace(*in.Rol))
			if errors.Is(err, ErrRoleNotFound) {
				// Only Create treats a missing role as a deployment fault.
				return apperr.Wrap(ErrUnknownRole, err)
			}
			if err != nil {
				return err
			}
			if err := s.store.UpdateUserRole(ctx, refs.UserID, roleID); err != nil {
				return err
			}
		}
		if err := s.store.UpdateEmployee(ctx, employeeID, in.Puesto, in.Departamento); err != nil {
			return err
		}
		if in.Horarios != nil {
			return s.schedules.ReplaceForEmployee(ctx, employeeID, in.Horarios)
		}
		return nil
	})
	if err != nil {
		return Employee{}, Translate(err)
	}
	return s.Get(ctx, employeeID)
}

// Delete removes employee, user and person together.
func (s *Service) Delete(ctx context.Context, employeeID int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		refs, err := s.store.Refs(ctx, employeeID)
		if err != nil {
			return err
		}
		return s.store.DeleteAggregate(ctx, refs)
	})
	return Translate(err)
}

func (s *Service) Get(ctx context.Context, employeeID int64) (Employee, error) {
	emp, err := s.store.Get(ctx, employeeID)
	if err != nil {
		return Employee{}, err
	}
	horarios, err := s.schedules.ListForEmployee(ctx, employeeID)
	if err != nil {
		return Employee{}, err
	}
	emp.Horarios = horarios
	return emp, nil
}

// List returns every employee with user, person and schedules.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.withSchedules(ctx, list)
}

// Search matches term against the three name columns.
func (s *Service) Search(ctx context.Context, term string) ([]Employee, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Invalid([]apperr.FieldIssue{{Field: "nombre", Reason: "is required"}})
	}
	list, err := s.store.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.withSchedules(ctx, list)
}

func (s *Service) withSchedules(ctx context.Context, list []Employee) ([]Employee, error) {
	ids := make([]int64, 0, len(list))
	for _, emp := range list {
		ids = append(ids, emp.ID)
	}
	byEmployee, err := s.schedules.ListForEmployees(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Horarios = byEmployee[list[i].ID]
		if list[i].Horarios == nil {
			list[i].Horarios = []schedules.Schedule{}
		}
	}
	return list, nil
}
