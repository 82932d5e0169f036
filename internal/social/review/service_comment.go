// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Comment Queries

// ListComments returns one page of comments on a review of a title.
func (service *Service) ListComments(context context.Context, titleID, reviewID string, page pagination.Params) ([]*Comment, int, error) {
	if _, err := service.reviewRepository.FindByID(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.commentRepository.List(context, reviewID, page)
}

// GetComment retrieves one comment, scoped by title and review.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID string) (*Comment, error) {
	if _, err := service.reviewRepository.FindByID(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.commentRepository.FindByID(context, reviewID, commentID)
}

// # Comment Commands

/*
CreateComment replies to a review.

Parameters:
  - context: context.Context
  - actor: *sec.Actor
  - titleID, reviewID: string (from the path)
  - input: CommentInput

Returns:
  - *Comment: The stored comment
  - error: Unauthorized, NotFound (title or review) or ValidationError
*/
func (service *Service) CreateComment(context context.Context, actor *sec.Actor, titleID, reviewID string, input CommentInput) (*Comment, error) {
	if err := sec.Authorize(actor, http.MethodPost, sec.Target{Resource: sec.ResourceComment}); err != nil {
		return nil, err
	}

	if _, err := service.reviewRepository.FindByID(context, titleID, reviewID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	text := checkText(validator, input.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:       uuid.New(),
		ReviewID: reviewID,
		AuthorID: actor.UserID,
		Author:   actor.Username,
		Text:     text,
	}

	if err := service.commentRepository.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("review_id", reviewID),
		slog.String("author_id", actor.UserID),
	)
	return comment, nil
}

// UpdateComment changes the text of a comment. Author, moderator or admin only.
func (service *Service) UpdateComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID string, input CommentInput) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	target := sec.Target{Resource: sec.ResourceComment, OwnerID: comment.AuthorID}
	if err := sec.Authorize(actor, http.MethodPatch, target); err != nil {
		return nil, err
	}

	if input.Text != nil {
		validator := &validate.Validator{}
		comment.Text = checkText(validator, input.Text)
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	if err := service.commentRepository.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.String("comment_id", comment.ID), slog.String("actor_id", actor.ID()))
	return comment, nil
}

// DeleteComment removes a comment. Author, moderator or admin only.
func (service *Service) DeleteComment(context context.Context, actor *sec.Actor, titleID, reviewID, commentID string) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	target := sec.Target{Resource: sec.ResourceComment, OwnerID: comment.AuthorID}
	if err := sec.Authorize(actor, http.MethodDelete, target); err != nil {
		return err
	}

	if err := service.commentRepository.Delete(context, comment.ID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", comment.ID), slog.String("actor_id", actor.ID()))
	return nil
}
