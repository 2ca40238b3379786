package auth

import "time"

type Credentials struct {
	UserID       int64
	PersonID     int64
	PasswordHash string
	RoleName     string
	Person       PersonSummary
}

type PersonSummary struct {
	Nombre          string  `json:"nombre"`
	ApellidoPaterno string  `json:"apellido_paterno"`
	ApellidoMaterno *string `json:"apellido_materno"`
	CURP            string  `json:"curp"`
	Correo          *string `json:"correo"`
}

type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Role      string        `json:"rol"`
	Person    PersonSummary `json:"persona"`
}
