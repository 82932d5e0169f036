// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/middleware"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// Handler implements the HTTP layer for reviews and comments.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Register attaches the review tree to a router that already matched
// /titles/{titleID}. It is passed to the title handler as its nested routes.
//
// # Endpoints
//   - GET    /reviews                                  : Paginated list (public)
//   - POST   /reviews                                  : Create (authenticated)
//   - GET    /reviews/{reviewID}                       : Retrieve (public)
//   - PATCH  /reviews/{reviewID}                       : Update (author, moderator, admin)
//   - DELETE /reviews/{reviewID}                       : Delete (author, moderator, admin)
//   - GET    /reviews/{reviewID}/comments              : Paginated list (public)
//   - POST   /reviews/{reviewID}/comments              : Create (authenticated)
//   - GET    /reviews/{reviewID}/comments/{commentID}  : Retrieve (public)
//   - PATCH  /reviews/{reviewID}/comments/{commentID}  : Update (author, moderator, admin)
//   - DELETE /reviews/{reviewID}/comments/{commentID}  : Delete (author, moderator, admin)
func (handler *Handler) Register(router chi.Router) {
	authorizeReview := middleware.Authorize(sec.ResourceReview)
	authorizeComment := middleware.Authorize(sec.ResourceComment)

	router.Route("/reviews", func(reviews chi.Router) {
		reviews.With(authorizeReview).Get("/", handler.listReviews)
		reviews.With(authorizeReview).Post("/", handler.createReview)

		reviews.Route("/{reviewID}", func(reviewRouter chi.Router) {
			reviewRouter.Group(func(r chi.Router) {
				r.Use(authorizeReview)
				r.Get("/", handler.getReview)
				r.Patch("/", handler.updateReview)
				r.Delete("/", handler.deleteReview)
			})

			reviewRouter.Route("/comments", func(comments chi.Router) {
				comments.Use(authorizeComment)
				comments.Get("/", handler.listComments)
				comments.Post("/", handler.createComment)
				comments.Get("/{commentID}", handler.getComment)
				comments.Patch("/{commentID}", handler.updateComment)
				comments.Delete("/{commentID}", handler.deleteComment)
			})
		})
	})
}

// # Path Parameters

// reviewPath resolves the title and review identifiers of the request path.
func reviewPath(request *http.Request) (titleID, reviewID string, err error) {
	titleID, err = requestutil.UUIDParam(request, "titleID", resourceTitle)
	if err != nil {
		return "", "", err
	}
	if chi.URLParam(request, "reviewID") == "" {
		return titleID, "", nil
	}
	reviewID, err = requestutil.UUIDParam(request, "reviewID", resourceReview)
	if err != nil {
		return "", "", err
	}
	return titleID, reviewID, nil
}

// # Reviews

/*
GET /api/v1/titles/{titleID}/reviews.

Response:
  - 200: Paginated []Review, newest first
  - 404: Unknown title
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, _, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	reviews, total, err := handler.reviewService.ListReviews(request.Context(), titleID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, page.Meta(total))
}

/*
POST /api/v1/titles/{titleID}/reviews.

Request (Body):
  - text: string (required)
  - score: int 1..10 (required)

Response:
  - 201: Review
  - 400: Validation failure or a second review by the same author
  - 401: Anonymous
  - 404: Unknown title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	titleID, _, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.CreateReview(request.Context(), requestutil.Actor(request), titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.reviewService.UpdateReview(request.Context(), requestutil.Actor(request), titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteReview(request.Context(), requestutil.Actor(request), titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comments

func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := pagination.FromRequest(request)
	comments, total, err := handler.reviewService.ListComments(request.Context(), titleID, reviewID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, page.Meta(total))
}

/*
POST /api/v1/titles/{titleID}/reviews/{reviewID}/comments.

Request (Body):
  - text: string (required)

Response:
  - 201: Comment
  - 400: Blank text
  - 401: Anonymous
  - 404: Unknown title, or review not under that title
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := reviewPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.CreateComment(request.Context(), requestutil.Actor(request), titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.reviewService.UpdateComment(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := commentPath(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.reviewService.DeleteComment(request.Context(), requestutil.Actor(request), titleID, reviewID, commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// commentPath resolves all three identifiers of a comment path.
func commentPath(request *http.Request) (titleID, reviewID, commentID string, err error) {
	titleID, reviewID, err = reviewPath(request)
	if err != nil {
		return "", "", "", err
	}
	commentID, err = requestutil.UUIDParam(request, "commentID", resourceComment)
	if err != nil {
		return "", "", "", err
	}
	return titleID, reviewID, commentID, nil
}
