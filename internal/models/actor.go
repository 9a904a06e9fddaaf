package models

import "github.com/google/uuid"

// Role is the acting user's role
type Role string

const (
	RoleMember Role = "MEMBER"
	RoleStore  Role = "STORE"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleStore, RoleAdmin:
		return true
	}
	return false
}

// Actor identifies who is performing an operation
type Actor struct {
	Role Role
	ID   uuid.UUID
}

// IsAdmin reports whether the actor holds admin authority
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
