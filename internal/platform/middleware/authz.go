// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// TokenVerifier verifies bearer tokens. It is satisfied by [*sec.TokenService].
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// ActorResolver loads the current identity of a token subject.
//
// Resolving on every request means a role change or account deletion takes
// effect immediately instead of when the token expires.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (*sec.Actor, error)
}

// Authenticate turns an optional "Authorization: Bearer <token>" header into
// a [*sec.Actor] stored in the request context.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Malformed header or invalid token: 401.
//  3. Token subject no longer exists: 401.
//  4. Otherwise the resolved actor is injected with [ctxutil.WithActor].
func Authenticate(verifier TokenVerifier, resolver ActorResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 4. Actor Resolution ───────────────────────────────────────────
			actor, err := resolver.ResolveActor(request.Context(), claims.UserID)
			if err != nil {
				if apperr.HasCode(err, "NOT_FOUND") {
					err = apperr.Unauthorized("User not found")
				}
				respond.Error(writer, request, err)
				return
			}

			recordActor(request.Context(), actor.UserID)
			ctx := ctxutil.WithActor(request.Context(), actor)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks anonymous requests with 401.
//
// Must be registered after [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !ctxutil.GetActor(request.Context()).IsAuthenticated() {
			respond.Error(writer, request, apperr.Unauthorized("Authentication credentials were not provided"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// Authorize applies the collection-level permission policy for resource.
//
// Object-level rules that depend on the author of a review or comment are
// checked again by the owning service once the object is loaded.
func Authorize(resource sec.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			actor := ctxutil.GetActor(request.Context())
			if err := sec.Authorize(actor, request.Method, sec.Target{Resource: resource}); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
