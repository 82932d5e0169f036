// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/convert"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for titles.
type Handler struct {
	titleService *Service
	nested       func(router chi.Router)
}

// NewHandler constructs a new title [Handler].
//
// nested, if not nil, registers sub-resources under /{titleID}; the review
// tree mounts itself there.
func NewHandler(service *Service, nested func(router chi.Router)) *Handler {
	return &Handler{titleService: service, nested: nested}
}

// Routes returns a [chi.Router] mounted at /titles.
//
// # Endpoints
//   - GET    /          : Paginated list, ?category=&genre=&name=&year= (public)
//   - POST   /          : Create (admin)
//   - GET    /{titleID} : Retrieve (public)
//   - PATCH  /{titleID} : Partial update (admin)
//   - DELETE /{titleID} : Delete with its reviews (admin)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	authorize := middleware.Authorize(sec.ResourceTitle)

	router.With(authorize).Get("/", handler.list)
	router.With(authorize).Post("/", handler.create)

	router.Route("/{titleID}", func(titleRouter chi.Router) {
		titleRouter.Group(func(r chi.Router) {
			r.Use(authorize)
			r.Get("/", handler.get)
			r.Patch("/", handler.update)
			r.Delete("/", handler.delete)
		})

		if handler.nested != nil {
			handler.nested(titleRouter)
		}
	})

	return router
}

/*
GET /api/v1/titles.

Request:
  - category: string (category slug)
  - genre: string (genre slug)
  - name: string (case-insensitive substring)
  - year: int
  - page, limit: int

Response:
  - 200: Paginated []Title ordered by name
  - 400: Malformed year
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	year, ok := convert.OptionalInt(query.Get("year"))
	if !ok {
		respond.Error(writer, request, validate.RequiredError(FieldYear, "Must be an integer"))
		return
	}

	filter := Filter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
		Year:     year,
	}
	page := pagination.FromRequest(request)

	titles, total, err := handler.titleService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, page.Meta(total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.UUIDParam(request, "titleID", resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
POST /api/v1/titles.

Request (Body):
  - {name, year, description, category: slug, genre: [slug]}

Response:
  - 201: Title
  - 400: Validation failure or unresolved slugs
  - 401/403: Not an administrator
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.UUIDParam(request, "titleID", resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.titleService.Update(request.Context(), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.UUIDParam(request, "titleID", resourceTitle)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.titleService.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
