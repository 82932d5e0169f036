// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Actor is the identity performing a request.
//
// A nil *Actor is the anonymous actor. Every method is nil-safe so callers can
// pass whatever the request context holds without checking first.
type Actor struct {
	UserID      string
	Username    string
	Role        UserRole
	IsSuperuser bool
}

// IsAuthenticated reports whether the actor represents a known account.
func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.UserID != ""
}

// IsAdmin reports administrator rights (admin role or superuser).
func (a *Actor) IsAdmin() bool {
	return a.IsAuthenticated() && IsAdmin(a.Role, a.IsSuperuser)
}

// IsModerator reports whether the actor holds the moderator role.
func (a *Actor) IsModerator() bool {
	return a.IsAuthenticated() && IsModerator(a.Role)
}

// IsUser reports whether the actor holds the plain user role.
func (a *Actor) IsUser() bool {
	return a.IsAuthenticated() && IsUser(a.Role)
}

// ID returns the actor's user id, or an empty string when anonymous.
func (a *Actor) ID() string {
	if a == nil {
		return ""
	}
	return a.UserID
}
