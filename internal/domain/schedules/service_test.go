package schedules

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/platform/apperr"
)

type fakeStore struct {
	nextID    int64
	employees map[int64]int64 // employee id -> user id
	rows      map[int64]Schedule
}

func newFakeStore() *fakeStore {
	return &fakeStore{employees: map[int64]int64{1: 10, 2: 20}, rows: map[int64]Schedule{}}
}

func (f *fakeStore) EmployeeExists(_ context.Context, id int64) (bool, error) {
	_, ok := f.employees[id]
	return ok, nil
}

func (f *fakeStore) EmployeeIDForUser(_ context.Context, userID int64) (int64, error) {
	for empID, uid := range f.employees {
		if uid == userID {
			return empID, nil
		}
	}
	return 0, ErrEmployeeNotFound
}

func (f *fakeStore) Create(_ context.Context, in CreateInput) (Schedule, error) {
	f.nextID++
	row := Schedule{ID: f.nextID, EmployeeID: in.EmployeeID, DiaSemana: in.DiaSemana, HoraInicio: in.HoraInicio, HoraFin: in.HoraFin}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (Schedule, error) {
	row, ok := f.rows[id]
	if !ok {
		return Schedule{}, ErrScheduleNotFound
	}
	return row, nil
}

func (f *fakeStore) Update(ctx context.Context, id int64, in UpdateInput) (Schedule, error) {
	row, err := f.Get(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	if in.EmployeeID != nil {
		row.EmployeeID = *in.EmployeeID
	}
	if in.DiaSemana != nil {
		row.DiaSemana = *in.DiaSemana
	}
	if in.HoraInicio != nil {
		row.HoraInicio = *in.HoraInicio
	}
	if in.HoraFin != nil {
		row.HoraFin = *in.HoraFin
	}
	f.rows[id] = row
	return row, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return ErrScheduleNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStore) ListForEmployee(_ context.Context, employeeID int64) ([]Schedule, error) {
	out := []Schedule{}
	for _, row := range f.rows {
		if row.EmployeeID == employeeID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateValidatesAndChecksEmployee(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Create(context.Background(), CreateInput{EmployeeID: 1, DiaSemana: "Funday", HoraInicio: "9", HoraFin: ""})
	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Validation, appErr.Kind())
	assert.Len(t, appErr.Fields(), 3)

	_, err = svc.Create(context.Background(), CreateInput{EmployeeID: 99, DiaSemana: "Lunes", HoraInicio: "09:00", HoraFin: "17:00"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)

	created, err := svc.Create(context.Background(), CreateInput{EmployeeID: 1, DiaSemana: "Miércoles", HoraInicio: "09:00:00", HoraFin: "17:00"})
	require.NoError(t, err)
	assert.Equal(t, "Miércoles", created.DiaSemana)
}

func TestUpdatePartial(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	created, err := svc.Create(context.Background(), CreateInput{EmployeeID: 1, DiaSemana: "Lunes", HoraInicio: "09:00", HoraFin: "17:00"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{HoraFin: ptr("18:00")})
	require.NoError(t, err)
	assert.Equal(t, "09:00", updated.HoraInicio)
	assert.Equal(t, "18:00", updated.HoraFin)

	_, err = svc.Update(context.Background(), created.ID, UpdateInput{EmployeeID: ptr(int64(42))})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	assert.Equal(t, int64(1), store.rows[created.ID].EmployeeID)

	_, err = svc.Update(context.Background(), 999, UpdateInput{HoraFin: ptr("18:00")})
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	_, err = svc.Update(context.Background(), created.ID, UpdateInput{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestDeleteMissing(t *testing.T) {
	svc := NewService(newFakeStore())
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrScheduleNotFound)
}

func TestListOwn(t *testing.T) {
	svc := NewService(newFakeStore())
	_, err := svc.Create(context.Background(), CreateInput{EmployeeID: 2, DiaSemana: "Viernes", HoraInicio: "08:00", HoraFin: "14:00"})
	require.NoError(t, err)

	own, err := svc.ListOwn(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Viernes", own[0].DiaSemana)

	_, err = svc.ListOwn(context.Background(), 777)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Domingo", WeekdayName(0))
	assert.Equal(t, "Miércoles", WeekdayName(3))
	assert.Equal(t, "Sábado", WeekdayName(6))
}
