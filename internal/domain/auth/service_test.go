package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialStore struct {
	users map[string]Credentials
	err   error
}

func (f *fakeCredentialStore) FindCredentials(_ context.Context, username string) (Credentials, error) {
	if f.err != nil {
		return Credentials{}, f.err
	}
	creds, ok := f.users[username]
	if !ok {
		return Credentials{}, ErrInvalidCredentials
	}
	return creds, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("secreto")
	require.NoError(t, err)
	correo := "ana@x.com"
	store := &fakeCredentialStore{users: map[string]Credentials{
		"ana1": {
			UserID:       11,
			PersonID:     21,
			PasswordHash: hash,
			RoleName:     RoleNameEmployee,
			Person:       PersonSummary{Nombre: "Ana", ApellidoPaterno: "Ruiz", CURP: "XXXXXXXXXXXXXXXXXX", Correo: &correo},
		},
	}}
	return NewService(store, NewTokens("test-secret", time.Hour))
}

func TestAuthenticateSuccess(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.Authenticate(context.Background(), "ana1", "secreto")
	require.NoError(t, err)
	assert.Equal(t, RoleNameEmployee, res.Role)
	assert.Equal(t, "Ana", res.Person.Nombre)

	id, err := svc.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id.UserID)
	assert.Equal(t, int64(21), id.PersonID)
	assert.Equal(t, RoleEmployee, id.Role)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(t)

	_, unknownErr := svc.Authenticate(context.Background(), "nobody", "secreto")
	_, wrongErr := svc.Authenticate(context.Background(), "ana1", "wrong")
	_, caseErr := svc.Authenticate(context.Background(), "ANA1", "secreto")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.ErrorIs(t, caseErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthenticatePropagatesStorageFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewService(&fakeCredentialStore{err: boom}, NewTokens("s", time.Hour))

	_, err := svc.Authenticate(context.Background(), "ana1", "secreto")
	assert.ErrorIs(t, err, boom)
}
