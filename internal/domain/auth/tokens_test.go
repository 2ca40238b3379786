package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checador/internal/platform/apperr"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	raw, expires, err := tokens.Issue(Identity{UserID: 7, PersonID: 9, RoleName: RoleNameEmployee})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	id, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.UserID)
	assert.Equal(t, int64(9), id.PersonID)
	assert.Equal(t, RoleEmployee, id.Role)
}

func TestTokensRejectExpired(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	issuedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issuedAt }
	raw, _, err := tokens.Issue(Identity{UserID: 1, RoleName: RoleNameAdmin})
	require.NoError(t, err)

	tokens.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestTokensRejectForeignSecret(t *testing.T) {
	raw, _, err := NewTokens("one", time.Hour).Issue(Identity{UserID: 1, RoleName: RoleNameAdmin})
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensRejectUnsignedToken(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   RoleNameAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokensRejectGarbage(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", hash)
	assert.NoError(t, CheckPassword(hash, "pw"))
	assert.Error(t, CheckPassword(hash, "PW"))
}
