package auth

import "strings"

// Role is the permission class carried in every identity.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleEmployee
)

const (
	RoleNameAdmin    = "admin"
	RoleNameEmployee = "employee"
)

// SeedRoles lists the roles every deployment must contain.
var SeedRoles = []string{RoleNameAdmin, RoleNameEmployee}

func ParseRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RoleNameAdmin:
		return RoleAdmin
	case RoleNameEmployee:
		return RoleEmployee
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return RoleNameAdmin
	case RoleEmployee:
		return RoleNameEmployee
	default:
		return "unknown"
	}
}

// Satisfies reports whether a caller holding r may use an operation requiring required.
// RoleEmployee as a requirement means any known role.
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleAdmin:
		return r == RoleAdmin
	case RoleEmployee:
		return r == RoleAdmin || r == RoleEmployee
	default:
		return false
	}
}

// Identity is what the access guard exposes to handlers.
type Identity struct {
	UserID   int64
	PersonID int64
	Role     Role
	RoleName string
}

// Authorize is the single role check shared by every workflow.
func Authorize(id Identity, required Role) error {
	if id.UserID <= 0 {
		return ErrMissingToken
	}
	if !id.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}
