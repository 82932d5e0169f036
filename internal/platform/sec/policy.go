// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// # Permission Policy

// Resource identifies the family of endpoints a permission check applies to.
type Resource int

const (
	// ResourceCatalog covers categories and genres.
	ResourceCatalog Resource = iota + 1
	// ResourceTitle covers titles.
	ResourceTitle
	// ResourceReview covers reviews of a title.
	ResourceReview
	// ResourceComment covers comments on a review.
	ResourceComment
	// ResourceUsers covers the administrative user collection.
	ResourceUsers
	// ResourceSelf covers the caller's own profile.
	ResourceSelf
)

// Target describes what a request addresses.
type Target struct {
	Resource Resource

	// OwnerID is the author of the addressed object. It is empty for
	// collection-level checks such as creation.
	OwnerID string
}

// IsSafeMethod reports whether the HTTP method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

/*
Allowed decides whether actor may perform method on target.

Rules:
  - Reads on catalog, title, review and comment resources are public.
  - Writes on catalog and title resources require an administrator.
  - Writes on reviews and comments require authentication, and for an existing
    object the actor must be its author, a moderator or an administrator.
  - The users collection is administrator-only for every method.
  - The self profile is open to any authenticated actor.

Parameters:
  - actor: *Actor (nil means anonymous)
  - method: string (HTTP method)
  - target: Target

Returns:
  - bool: true when the request may proceed
*/
func Allowed(actor *Actor, method string, target Target) bool {
	switch target.Resource {
	case ResourceUsers:
		return actor.IsAdmin()

	case ResourceSelf:
		return actor.IsAuthenticated()

	case ResourceCatalog, ResourceTitle:
		if IsSafeMethod(method) {
			return true
		}
		return actor.IsAdmin()

	case ResourceReview, ResourceComment:
		if IsSafeMethod(method) {
			return true
		}
		if !actor.IsAuthenticated() {
			return false
		}
		if target.OwnerID == "" || target.OwnerID == actor.UserID {
			return true
		}
		return actor.IsModerator() || actor.IsAdmin()
	}

	return false
}

// Authorize runs [Allowed] and converts a denial into the matching
// [apperr.AppError]: 401 for anonymous actors, 403 for everyone else.
func Authorize(actor *Actor, method string, target Target) error {
	if Allowed(actor, method, target) {
		return nil
	}
	if !actor.IsAuthenticated() {
		return apperr.Unauthorized("Authentication credentials were not provided")
	}
	return apperr.Forbidden("You do not have permission to perform this action")
}
