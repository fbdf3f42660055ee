package users

import "strings"

// RoleName is the enumerated set of roles the system enforces at request
// time. Role rows in the database carry the same names; unknown names
// normalize to RoleUser so the mapping to authorities stays total.
type RoleName string

const (
	RoleAdmin   RoleName = "ADMIN"
	RoleTeacher RoleName = "TEACHER"
	RoleStudent RoleName = "STUDENT"
	RoleUser    RoleName = "USER"
)

// Authority is the enforceable marker derived from a role and checked by
// the authorization guard.
type Authority string

const authorityPrefix = "ROLE_"

const (
	AuthorityAdmin   Authority = authorityPrefix + "ADMIN"
	AuthorityTeacher Authority = authorityPrefix + "TEACHER"
	AuthorityStudent Authority = authorityPrefix + "STUDENT"
	AuthorityUser    Authority = authorityPrefix + "USER"
)

// ParseRoleName normalizes a stored role name to a known RoleName.
// Unknown values fall back to RoleUser.
func ParseRoleName(name string) RoleName {
	switch RoleName(strings.ToUpper(strings.TrimSpace(name))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleTeacher:
		return RoleTeacher
	case RoleStudent:
		return RoleStudent
	case RoleUser:
		return RoleUser
	default:
		return RoleUser
	}
}

func IsValidRole(name string) bool {
	switch RoleName(strings.ToUpper(strings.TrimSpace(name))) {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleUser:
		return true
	default:
		return false
	}
}

// Authority maps a role to its single authority. The mapping is total:
// every RoleName value, including the ParseRoleName fallback, has one.
func (r RoleName) Authority() Authority {
	switch r {
	case RoleAdmin:
		return AuthorityAdmin
	case RoleTeacher:
		return AuthorityTeacher
	case RoleStudent:
		return AuthorityStudent
	default:
		return AuthorityUser
	}
}

func (r RoleName) String() string { return string(r) }

func (a Authority) String() string { return string(a) }
