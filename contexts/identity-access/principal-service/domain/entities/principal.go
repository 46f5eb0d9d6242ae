package entities

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
	RoleParty Role = "party"
	RoleVoter Role = "voter"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleParty, RoleVoter:
		return true
	default:
		return false
	}
}

// LinkedKind is the tagged-variant discriminant for the profile a principal
// owns. A principal links at most one profile and the kind must agree with
// the role; admins carry no link.
type LinkedKind string

const (
	LinkedNone  LinkedKind = ""
	LinkedVoter LinkedKind = "voter"
	LinkedParty LinkedKind = "party"
	LinkedStaff LinkedKind = "staff"
)

// LinkedKindForRole returns the profile kind a role must link.
func LinkedKindForRole(role Role) LinkedKind {
	switch role {
	case RoleVoter:
		return LinkedVoter
	case RoleParty:
		return LinkedParty
	case RoleStaff:
		return LinkedStaff
	case RoleAdmin:
		return LinkedNone
	default:
		return LinkedNone
	}
}

type Principal struct {
	ID           string
	Email        string
	Login        string
	PasswordHash string
	Role         Role
	LinkedKind   LinkedKind
	LinkedID     string
	Active       bool
	CreatedAt    time.Time
}
