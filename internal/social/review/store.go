// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"

	"github.com/taibuivan/yamdb/pkg/pagination"
)

// ReviewRepository defines persistence for reviews.
type ReviewRepository interface {
	// TitleExists returns NotFound if the title does not exist.
	TitleExists(context context.Context, titleID string) error

	// List returns one page of a title's reviews, newest first, plus the total count.
	List(context context.Context, titleID string, page pagination.Params) ([]*Review, int, error)

	// FindByID retrieves a review scoped to its title.
	FindByID(context context.Context, titleID, reviewID string) (*Review, error)

	// Create inserts a review after checking, in the same transaction, that the
	// title exists and the author has not reviewed it yet.
	Create(context context.Context, review *Review) error

	// Update overwrites the text and score of a review.
	Update(context context.Context, review *Review) error

	// Delete removes a review. Its comments cascade.
	Delete(context context.Context, reviewID string) error
}

// CommentRepository defines persistence for comments.
type CommentRepository interface {
	// List returns one page of a review's comments, oldest first, plus the total count.
	List(context context.Context, reviewID string, page pagination.Params) ([]*Comment, int, error)

	// FindByID retrieves a comment scoped to its review.
	FindByID(context context.Context, reviewID, commentID string) (*Comment, error)

	// Create inserts a comment.
	Create(context context.Context, comment *Comment) error

	// Update overwrites the text of a comment.
	Update(context context.Context, comment *Comment) error

	// Delete removes a comment.
	Delete(context context.Context, commentID string) error
}
