package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"checador/internal/platform/apperr"
)

const PasswordCost = 10

type Claims struct {
	UserID   int64  `json:"uid"`
	Role     string `json:"role"`
	PersonID int64  `json:"pid"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Tokens issues and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(id Identity) (string, time.Time, error) {
	issued := t.now()
	expires := issued.Add(t.ttl)
	claims := Claims{
		UserID:   id.UserID,
		Role:     id.RoleName,
		PersonID: id.PersonID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(issued),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

func (t *Tokens) Parse(raw string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, apperr.Wrap(ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID <= 0 {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		UserID:   claims.UserID,
		PersonID: claims.PersonID,
		Role:     ParseRole(claims.Role),
		RoleName: claims.Role,
	}, nil
}
