// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"math"
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service implements the review and comment use cases.
//
// Every lookup is scoped by the full path: a review must belong to the title
// in the URL and a comment to the review in the URL.
type Service struct {
	reviewRepository  ReviewRepository
	commentRepository CommentRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(reviewRepo ReviewRepository, commentRepo CommentRepository, logger *slog.Logger) *Service {
	return &Service{
		reviewRepository:  reviewRepo,
		commentRepository: commentRepo,
		logger:            logger,
	}
}

// # Review Queries

// ListReviews returns one page of a title's reviews.
func (service *Service) ListReviews(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error) {
	if err := service.reviewRepository.TitleExists(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.reviewRepository.List(context, titleID, page)
}

// GetReview retrieves one review of a title.
func (service *Service) GetReview(context context.Context, titleID, reviewID string) (*Review, error) {
	return service.reviewRepository.FindByID(context, titleID, reviewID)
}

// # Review Commands

/*
CreateReview posts the actor's review of a title.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID: string (from the path)
  - input: ReviewInput

Returns:
  - *Review: The stored review
  - error: Unauthorized, NotFound (title), ValidationError, or Conflict for a second review
*/
func (service *Service) CreateReview(context context.Context, actor *sec.Actor, titleID string, input ReviewInput) (*Review, error) {
	if err := sec.Authorize(actor, http.MethodPost, sec.Target{Resource: sec.ResourceReview}); err != nil {
		return nil, err
	}

	if err := service.reviewRepository.TitleExists(context, titleID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	text := checkText(validator, input.Text)
	score := checkScore(validator, input.Score)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	review := &Review{
		ID:       uuid.New(),
		TitleID:  titleID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     text,
		Score:    score,
	}

	if err := service.reviewRepository.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", review.ID),
		slog.String("title_id", titleID),
		slog.String("author_id", actor.UserID),
	)
	return review, nil
}

/*
UpdateReview applies a partial change to a review.

Description: Only the author, a moderator or an administrator may change it.
Absent fields keep their value; present fields follow the create rules.

Returns:
  - *Review: The updated review
  - error: NotFound, Unauthorized, Forbidden or ValidationError
*/
func (service *Service) UpdateReview(context context.Context, actor *sec.Actor, titleID, reviewID string, input ReviewInput) (*Review, error) {
	review, err := service.reviewRepository.FindByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	target := sec.Target{Resource: sec.ResourceReview, OwnerID: review.AuthorID}
	if err := sec.Authorize(actor, http.MethodPatch, target); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Text != nil {
		review.Text = checkText(validator, input.Text)
	}
	if input.Score != nil {
		review.Score = checkScore(validator, input.Score)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.reviewRepository.Update(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.String("review_id", review.ID), slog.String("actor_id", actor.ID()))
	return review, nil
}

// DeleteReview removes a review and its comments.
func (service *Service) DeleteReview(context context.Context, actor *sec.Actor, titleID, reviewID string) error {
	review, err := service.reviewRepository.FindByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	target := sec.Target{Resource: sec.ResourceReview, OwnerID: review.AuthorID}
	if err := sec.Authorize(actor, http.MethodDelete, target); err != nil {
		return err
	}

	if err := service.reviewRepository.Delete(context, review.ID); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.String("review_id", review.ID), slog.String("actor_id", actor.ID()))
	return nil
}

// # Validation

// checkText requires a non-blank text and returns it unchanged.
func checkText(validator *validate.Validator, text *string) string {
	value := pointer.Fallback(text, "")
	validator.Required(FieldText, value)
	return value
}

// checkScore requires an integral score within [MinScore, MaxScore].
func checkScore(validator *validate.Validator, score *float64) int {
	if score == nil {
		validator.Custom(FieldScore, true, "This field is required")
		return 0
	}

	value := *score
	if value != math.Trunc(value) || math.IsInf(value, 0) {
		validator.Custom(FieldScore, true, "A valid integer is required")
		return 0
	}

	// Clamp first so that huge values convert safely; Range still rejects them.
	clamped := int(math.Max(MinScore-1, math.Min(value, MaxScore+1)))
	validator.Range(FieldScore, clamped, MinScore, MaxScore)
	return clamped
}
