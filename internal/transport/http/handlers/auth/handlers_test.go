package authhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/domain/auth"
	"checador/internal/transport/http/middleware"
)

type fakeAuth struct {
	username, password string
}

func (f fakeAuth) Authenticate(_ context.Context, username, password string) (auth.LoginResult, error) {
	if username != f.username || password != f.password {
		return auth.LoginResult{}, auth.ErrInvalidCredentials
	}
	return auth.LoginResult{Token: "tok", Role: "admin", Person: auth.PersonSummary{Nombre: "Ana", CURP: "CURP"}}, nil
}

func router(limits ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	NewHandler(fakeAuth{username: "ana", password: "pw"}, limits...).RegisterRoutes(r)
	return r
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:9999"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLoginSuccess(t *testing.T) {
	rec := post(router(), `{"username":"ana","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token   string `json:"token"`
			Rol     string `json:"rol"`
			Persona struct {
				Nombre string `json:"nombre"`
			} `json:"persona"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "tok", body.Data.Token)
	assert.Equal(t, "admin", body.Data.Rol)
	assert.Equal(t, "Ana", body.Data.Persona.Nombre)
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"wrong password", `{"username":"ana","password":"nope"}`, http.StatusUnauthorized, "invalid_credentials"},
		{"unknown user", `{"username":"zoe","password":"pw"}`, http.StatusUnauthorized, "invalid_credentials"},
		{"malformed body", `{"username":`, http.StatusBadRequest, "validation_error"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := post(router(), tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"`+tc.code+`"`)
		})
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	h := router(middleware.RateLimit("login_ip", 2, time.Minute))
	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusUnauthorized, post(h, `{"username":"ana","password":"x"}`).Code)
	}
	rec := post(h, `{"username":"ana","password":"pw"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
