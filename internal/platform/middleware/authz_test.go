// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/middleware"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch token {
	case "alice-token":
		return &sec.AuthClaims{UserID: "u-alice"}, nil
	case "admin-token":
		return &sec.AuthClaims{UserID: "u-admin"}, nil
	case "ghost-token":
		return &sec.AuthClaims{UserID: "u-ghost"}, nil
	default:
		return nil, errors.New("bad token")
	}
}

type stubResolver struct{}

func (stubResolver) ResolveActor(_ context.Context, userID string) (*sec.Actor, error) {
	switch userID {
	case "u-alice":
		return &sec.Actor{UserID: userID, Username: "alice", Role: sec.RoleUser}, nil
	case "u-admin":
		return &sec.Actor{UserID: userID, Username: "root", Role: sec.RoleAdmin}, nil
	default:
		return nil, apperr.NotFound("User")
	}
}

// chain builds Authenticate -> Authorize(resource) -> handler that echoes the username.
func chain(resource sec.Resource) http.Handler {
	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		actor := ctxutil.GetActor(request.Context())
		if actor != nil {
			writer.Header().Set("X-Actor", actor.Username)
		}
		writer.WriteHeader(http.StatusOK)
	})

	return middleware.Authenticate(stubVerifier{}, stubResolver{})(
		middleware.Authorize(resource)(final),
	)
}

/*
TestAuthenticate verifies header parsing and actor resolution.
*/
func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
		actor  string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid token", "Bearer alice-token", http.StatusOK, "alice"},
		{"lowercase scheme", "bearer alice-token", http.StatusOK, "alice"},
		{"wrong scheme", "Basic alice-token", http.StatusUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
		{"deleted user", "Bearer ghost-token", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/titles", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			chain(sec.ResourceTitle).ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.actor, recorder.Header().Get("X-Actor"))
		})
	}
}

/*
TestAuthorize verifies collection-level policy enforcement on unsafe methods.
*/
func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		resource sec.Resource
		method   string
		header   string
		status   int
	}{
		{"anonymous read title", sec.ResourceTitle, http.MethodGet, "", http.StatusOK},
		{"anonymous create title", sec.ResourceTitle, http.MethodPost, "", http.StatusUnauthorized},
		{"user create title", sec.ResourceTitle, http.MethodPost, "Bearer alice-token", http.StatusForbidden},
		{"admin create title", sec.ResourceTitle, http.MethodPost, "Bearer admin-token", http.StatusOK},
		{"user create review", sec.ResourceReview, http.MethodPost, "Bearer alice-token", http.StatusOK},
		{"anonymous create review", sec.ResourceReview, http.MethodPost, "", http.StatusUnauthorized},
		{"user lists users", sec.ResourceUsers, http.MethodGet, "Bearer alice-token", http.StatusForbidden},
		{"user reads self", sec.ResourceSelf, http.MethodGet, "Bearer alice-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(tt.method, "/x", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			chain(tt.resource).ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestRequireAuth verifies that anonymous requests are rejected.
*/
func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithActor(request.Context(), &sec.Actor{UserID: "u-1"}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
