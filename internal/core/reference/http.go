// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer of one vocabulary.
type Handler struct {
	vocabulary *Vocabulary
}

// NewHandler constructs a new reference [Handler] for a vocabulary.
func NewHandler(vocabulary *Vocabulary) *Handler {
	return &Handler{vocabulary: vocabulary}
}

// Routes returns a [chi.Router] mounted at /categories or /genres.
//
// # Endpoints
//   - GET    /       : Paginated list, ?search= on name (public)
//   - POST   /       : Create (admin)
//   - DELETE /{slug} : Delete (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authorize(sec.ResourceCatalog))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	return router
}

/*
GET /api/v1/{categories|genres}.

Request:
  - search: string (optional name substring)
  - page, limit: int

Response:
  - 200: Paginated []Term ordered by name
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)
	filter := Filter{Search: request.URL.Query().Get("search")}

	terms, total, err := handler.vocabulary.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, terms, page.Meta(total))
}

/*
POST /api/v1/{categories|genres}.

Request (Body):
  - Term: {name, slug}; slug may be omitted

Response:
  - 201: Term
  - 400: Validation failure or slug already taken
  - 401/403: Not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Term
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	term, err := handler.vocabulary.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, term)
}

/*
DELETE /api/v1/{categories|genres}/{slug}.

Response:
  - 204: No Content
  - 400: Term still used by a title
  - 404: Unknown slug
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.vocabulary.Delete(request.Context(), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
