package auth

import (
	"context"
	"strings"
	"time"

	"checador/internal/platform/apperr"
)

type CredentialStore interface {
	FindCredentials(ctx context.Context, username string) (Credentials, error)
}

type Service struct {
	store  CredentialStore
	tokens *Tokens
}

func NewService(store CredentialStore, tokens *Tokens) *Service {
	return &Service{store: store, tokens: tokens}
}

// Authenticate checks username and password and issues a session token.
// An unknown username and a wrong password produce the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (LoginResult, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	creds, err := s.store.FindCredentials(ctx, username)
	if err != nil {
		if apperr.IsKind(err, apperr.Unauthorized) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}
	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(Identity{
		UserID:   creds.UserID,
		PersonID: creds.PersonID,
		Role:     ParseRole(creds.RoleName),
		RoleName: creds.RoleName,
	})
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		ExpiresAt: expires,
		Role:      creds.RoleName,
		Person:    creds.Person,
	}, nil
}

// Verify is used by the access guard.
func (s *Service) Verify(raw string) (Identity, error) {
	return s.tokens.Parse(raw)
}

func (s *Service) TokenTTL() time.Duration {
	return s.tokens.ttl
}
