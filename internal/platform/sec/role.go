// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// RoleAdmin manages the catalog and every account.
	RoleAdmin UserRole = "admin"

	// RoleModerator may edit or remove any review and comment.
	RoleModerator UserRole = "moderator"

	// RoleUser is the default role for registered accounts.
	RoleUser UserRole = "user"
)

// Roles lists every assignable role as plain strings, in ascending order of privilege.
func Roles() []string {
	return []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Derived Predicates

// IsAdmin reports whether the role/superuser pair grants administrator rights.
// Superusers are administrators regardless of their stored role.
func IsAdmin(role UserRole, superuser bool) bool {
	return role == RoleAdmin || superuser
}

// IsModerator reports whether the role is exactly moderator.
func IsModerator(role UserRole) bool {
	return role == RoleModerator
}

// IsUser reports whether the role is the default user role.
func IsUser(role UserRole) bool {
	return role == RoleUser
}
