// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It hides chi's parameter extraction and the JSON decoding rules so every
handler rejects malformed bodies the same way.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// maxBodyBytes caps request bodies; every YamDB payload is small text.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are ignored. An empty body decodes to the zero value so that
required-field validation, not the decoder, reports what is missing.

Parameters:
  - writer: http.ResponseWriter (used to cap the body size)
  - request: *http.Request
  - target: any (pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return validate.ErrInvalidJSON
	}
	return nil
}

// Param retrieves a named URL parameter from the request.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
UUIDParam retrieves a named URL parameter that must be a UUID.

Returns:
  - string: the identifier
  - error: apperr.NotFound(resource) if the parameter is not a UUID
*/
func UUIDParam(request *http.Request, name, resource string) (string, error) {
	id := chi.URLParam(request, name)
	if !uuid.Valid(id) {
		return "", apperr.NotFound(resource)
	}
	return id, nil
}

// Actor returns the actor resolved by the authenticate middleware, or nil.
func Actor(request *http.Request) *sec.Actor {
	return ctxutil.GetActor(request.Context())
}

/*
RequiredActor ensures the request is authenticated and returns the actor.

Returns:
  - *sec.Actor: the authenticated actor
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredActor(request *http.Request) (*sec.Actor, error) {
	actor := ctxutil.GetActor(request.Context())
	if !actor.IsAuthenticated() {
		return nil, apperr.Unauthorized("Authentication credentials were not provided")
	}
	return actor, nil
}
