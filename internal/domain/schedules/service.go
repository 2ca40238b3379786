package schedules

import (
	"context"

	"checador/internal/platform/validate"
)

type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID int64) (bool, error)
	EmployeeIDForUser(ctx context.Context, userID int64) (int64, error)
	Create(ctx context.Context, in CreateInput) (Schedule, error)
	Get(ctx context.Context, id int64) (Schedule, error)
	Update(ctx context.Context, id int64, in UpdateInput) (Schedule, error)
	Delete(ctx context.Context, id int64) error
	ListForEmployee(ctx context.Context, employeeID int64) ([]Schedule, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Schedule, error) {
	if err := validate.Struct(in); err != nil {
		return Schedule{}, err
	}
	if err := s.requireEmployee(ctx, in.EmployeeID); err != nil {
		return Schedule{}, err
	}
	return s.store.Create(ctx, in)
}

// Update applies a partial change. A new employee id must exist.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Schedule, error) {
	if err := validate.Struct(in); err != nil {
		return Schedule{}, err
	}
	if in.Empty() {
		return Schedule{}, ErrNothingToUpdate
	}
	if _, err := s.store.Get(ctx, id); err != nil {
		return Schedule{}, err
	}
	if in.EmployeeID != nil {
		if err := s.requireEmployee(ctx, *in.EmployeeID); err != nil {
			return Schedule{}, err
		}
	}
	return s.store.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID int64) ([]Schedule, error) {
	return s.store.ListForEmployee(ctx, employeeID)
}

// ListOwn returns the schedule of the employee linked to userID.
func (s *Service) ListOwn(ctx context.Context, userID int64) ([]Schedule, error) {
	employeeID, err := s.store.EmployeeIDForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListForEmployee(ctx, employeeID)
}

func (s *Service) requireEmployee(ctx context.Context, employeeID int64) error {
	exists, err := s.store.EmployeeExists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEmployeeNotFound
	}
	return nil
}
