package attendancehandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/domain/attendance"
	"checador/internal/domain/audit"
	"checador/internal/domain/auth"
	"checador/internal/platform/apperr"
	"checador/internal/transport/http/middleware"
)

type fakeService struct {
	clockErr   error
	filter     attendance.Filter
	registered attendance.RegisterInput
	updateErr  error
}

func str(v string) *string { return &v }

func (f *fakeService) ClockSelf(_ context.Context, id auth.Identity) (attendance.Record, error) {
	if f.clockErr != nil {
		return attendance.Record{}, f.clockErr
	}
	return attendance.Record{ID: 1, UsuarioID: id.UserID, Fecha: "2024-05-01", HoraEntrada: str("08:00:00")}, nil
}

func (f *fakeService) RegisterFor(_ context.Context, in attendance.RegisterInput) (attendance.Record, error) {
	f.registered = in
	return attendance.Record{ID: 9, UsuarioID: in.UsuarioID, Fecha: in.Fecha}, nil
}

func (f *fakeService) Query(_ context.Context, filter attendance.Filter) ([]attendance.Listed, error) {
	f.filter = filter
	return []attendance.Listed{}, nil
}

func (f *fakeService) ListOwn(_ context.Context, id auth.Identity) ([]attendance.Record, error) {
	return []attendance.Record{{ID: 3, UsuarioID: id.UserID}}, nil
}

func (f *fakeService) Update(_ context.Context, id int64, _ attendance.UpdateInput) (attendance.Record, error) {
	if f.updateErr != nil {
		return attendance.Record{}, f.updateErr
	}
	return attendance.Record{ID: id}, nil
}

func (f *fakeService) Summary(context.Context, auth.Identity) (attendance.Summary, error) {
	return attendance.Summary{NombreCompleto: "Ana Lopez", Avisos: attendance.Notice}, nil
}

type recordingAuditor struct{ actions []string }

func (a *recordingAuditor) Track(_ context.Context, e audit.Entry) { a.actions = append(a.actions, e.Action) }

func serve(svc *fakeService, auditor *recordingAuditor, role auth.Role, method, path, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	NewHandler(svc, auditor).RegisterRoutes(r)
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), auth.Identity{UserID: 4, Role: role, RoleName: role.String()}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestClockSelf(t *testing.T) {
	rec := serve(&fakeService{}, nil, auth.RoleEmployee, http.MethodPost, "/asistencias/registrar-asistencia", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Asistencia registrada correctamente.")
	assert.Contains(t, rec.Body.String(), `"usuario_id":4`)
}

func TestClockSelfThirdCallConflicts(t *testing.T) {
	complete := apperr.Wrap(attendance.ErrAlreadyComplete, &pgconn.PgError{Code: "P0001", Message: "asistencia_completa"})
	rec := serve(&fakeService{clockErr: complete}, nil, auth.RoleEmployee, http.MethodPost, "/asistencias/registrar-asistencia", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterIsAdminOnlyAndAudited(t *testing.T) {
	rec := serve(&fakeService{}, nil, auth.RoleEmployee, http.MethodPost, "/asistencias/registrar", `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	svc := &fakeService{}
	auditor := &recordingAuditor{}
	rec = serve(svc, auditor, auth.RoleAdmin, http.MethodPost, "/asistencias/registrar",
		`{"usuario_id":4,"fecha":"2024-05-01","hora_entrada":"2024-05-01T08:00:00"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(4), svc.registered.UsuarioID)
	assert.Equal(t, []string{audit.ActionAttendanceCreate}, auditor.actions)
}

func TestQueryParsesFilter(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, nil, auth.RoleAdmin, http.MethodGet, "/asistencias/consultar?usuario_id=4&fecha_inicio=2024-05-01&fecha_fin=2024-05-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.UsuarioID)
	assert.Equal(t, int64(4), *svc.filter.UsuarioID)
	assert.True(t, svc.filter.HasRange())

	rec = serve(svc, nil, auth.RoleAdmin, http.MethodGet, "/asistencias/consultar?usuario_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateMissingRecord(t *testing.T) {
	auditor := &recordingAuditor{}
	rec := serve(&fakeService{updateErr: attendance.ErrRecordNotFound}, auditor, auth.RoleAdmin, http.MethodPut, "/asistencias/actualizar/77", `{"hora_salida":"17:00:00"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, auditor.actions)
}

func TestOwnListAndSummary(t *testing.T) {
	rec := serve(&fakeService{}, nil, auth.RoleEmployee, http.MethodGet, "/asistencias/consultar-asistencias", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":3`)

	rec = serve(&fakeService{}, nil, auth.RoleEmployee, http.MethodGet, "/inicio/resumen", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nombre_completo":"Ana Lopez"`)
}
