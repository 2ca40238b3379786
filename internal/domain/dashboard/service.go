package dashboard

import (
	"context"

	"checador/internal/domain/attendance"
	"checador/internal/domain/employees"
)

type Repository interface {
	Roles(ctx context.Context) ([]Role, error)
	Users(ctx context.Context) ([]UserRow, error)
	Schedules(ctx context.Context) ([]ScheduleRow, error)
}

type EmployeeLister interface {
	List(ctx context.Context) ([]employees.Employee, error)
}

type AttendanceQuerier interface {
	Query(ctx context.Context, f attendance.Filter) ([]attendance.Listed, error)
}

// Service is the read-only admin facade.
type Service struct {
	store      Repository
	employees  EmployeeLister
	attendance AttendanceQuerier
}

func NewService(store Repository, employees EmployeeLister, attendance AttendanceQuerier) *Service {
	return &Service{store: store, employees: employees, attendance: attendance}
}

func (s *Service) Employees(ctx context.Context) ([]employees.Employee, error) {
	return s.employees.List(ctx)
}

func (s *Service) Users(ctx context.Context) ([]UserRow, error) {
	return s.store.Users(ctx)
}

func (s *Service) Roles(ctx context.Context) ([]Role, error) {
	return s.store.Roles(ctx)
}

func (s *Service) Attendance(ctx context.Context) ([]attendance.Listed, error) {
	return s.attendance.Query(ctx, attendance.Filter{})
}

func (s *Service) Schedules(ctx context.Context) ([]ScheduleRow, error) {
	return s.store.Schedules(ctx)
}
