package attendance

import (
	"context"
	"strings"
	"time"

	"checador/internal/domain/auth"
	"checador/internal/domain/schedules"
	"checador/internal/platform/apperr"
	"checador/internal/platform/db/postgres"
	"checador/internal/platform/validate"
)

const dateLayout = "2006-01-02"

type Repository interface {
	Clock(ctx context.Context, userID int64, source string) (int64, error)
	EmployeeExistsForUser(ctx context.Context, userID int64) (bool, error)
	Insert(ctx context.Context, in RegisterInput) (Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	Update(ctx context.Context, id int64, in UpdateInput) (Record, error)
	Query(ctx context.Context, f Filter) ([]Listed, error)
	ListForUser(ctx context.Context, userID int64, limit int) ([]Record, error)
	PersonName(ctx context.Context, userID int64) (PersonName, error)
	HasRecordOn(ctx context.Context, userID int64, day string) (bool, error)
	CountSince(ctx context.Context, userID int64, day string) (int, error)
	Latest(ctx context.Context, userID int64) (*LastRecord, error)
	ScheduleFor(ctx context.Context, userID int64, weekday string) (*DaySchedule, error)
}

type Service struct {
	store Repository
	loc   *time.Location
	now   func() time.Time
}

// NewService uses loc to decide what "today" is.
func NewService(store Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc, now: time.Now}
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

// ClockSelf opens today's record for the caller, or closes it on the second call.
func (s *Service) ClockSelf(ctx context.Context, id auth.Identity) (Record, error) {
	recordID, err := s.store.Clock(ctx, id.UserID, SourceEmployee)
	if err != nil {
		if pgErr, ok := postgres.PgError(err); ok && pgErr.Code == postgres.RaiseException && pgErr.Message == completeSignal {
			return Record{}, apperr.Wrap(ErrAlreadyComplete, err)
		}
		return Record{}, apperr.Wrap(ErrRegistration, err)
	}
	return s.store.Get(ctx, recordID)
}

// RegisterFor lets an admin write a record for any user that has an employee row.
func (s *Service) RegisterFor(ctx context.Context, in RegisterInput) (Record, error) {
	in.Fecha = NormalizeDate(in.Fecha)
	in.HoraEntrada = normalizeOptional(in.HoraEntrada)
	in.HoraSalida = normalizeOptional(in.HoraSalida)
	if in.RegistroManual == nil || strings.TrimSpace(*in.RegistroManual) == "" {
		source := SourceAdmin
		in.RegistroManual = &source
	}
	if err := validate.Struct(in); err != nil {
		return Record{}, err
	}

	exists, err := s.store.EmployeeExistsForUser(ctx, in.UsuarioID)
	if err != nil {
		return Record{}, err
	}
	if !exists {
		return Record{}, ErrEmployeeNotFound
	}
	return s.store.Insert(ctx, in)
}

func (s *Service) Query(ctx context.Context, f Filter) ([]Listed, error) {
	c := validate.New()
	if f.UsuarioID != nil && *f.UsuarioID <= 0 {
		c.Add("usuario_id", "must be a positive integer")
	}
	for _, field := range []struct {
		name  string
		value *string
	}{{"fecha", &f.Fecha}, {"fecha_inicio", &f.FechaInicio}, {"fecha_fin", &f.FechaFin}} {
		*field.value = NormalizeDate(*field.value)
		if *field.value != "" {
			c.Date(field.name, *field.value)
		}
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return s.store.Query(ctx, f)
}

func (s *Service) ListOwn(ctx context.Context, id auth.Identity) ([]Record, error) {
	return s.store.ListForUser(ctx, id.UserID, 0)
}

// Update corrects entry, exit or source of an existing record. Empty values are ignored.
func (s *Service) Update(ctx context.Context, recordID int64, in UpdateInput) (Record, error) {
	in.HoraEntrada = normalizeOptional(in.HoraEntrada)
	in.HoraSalida = normalizeOptional(in.HoraSalida)
	if in.RegistroManual != nil && strings.TrimSpace(*in.RegistroManual) == "" {
		in.RegistroManual = nil
	}

	c := validate.New()
	if in.HoraEntrada != nil {
		c.TimeOfDay("hora_entrada", *in.HoraEntrada)
	}
	if in.HoraSalida != nil {
		c.TimeOfDay("hora_salida", *in.HoraSalida)
	}
	if in.RegistroManual != nil && len(*in.RegistroManual) > 100 {
		c.Add("registro_manual", "must be at most 100")
	}
	if err := c.Err(); err != nil {
		return Record{}, err
	}
	return s.store.Update(ctx, recordID, in)
}

// Summary builds the home screen for the caller.
func (s *Service) Summary(ctx context.Context, id auth.Identity) (Summary, error) {
	now := s.today()
	day := now.Format(dateLayout)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc).Format(dateLayout)

	name, err := s.store.PersonName(ctx, id.UserID)
	if err != nil {
		return Summary{}, err
	}
	attended, err := s.store.HasRecordOn(ctx, id.UserID, day)
	if err != nil {
		return Summary{}, err
	}
	window, err := s.store.ScheduleFor(ctx, id.UserID, schedules.WeekdayName(now.Weekday()))
	if err != nil {
		return Summary{}, err
	}
	count, err := s.store.CountSince(ctx, id.UserID, monthStart)
	if err != nil {
		return Summary{}, err
	}
	last, err := s.store.Latest(ctx, id.UserID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		NombreCompleto:    name.FullName(),
		AsistenciaHoy:     attended,
		HorarioDelDia:     window,
		AsistenciasDelMes: count,
		UltimaAsistencia:  last,
		Avisos:            Notice,
	}, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := NormalizeTime(*value)
	if normalized == "" {
		return nil
	}
	return &normalized
}
