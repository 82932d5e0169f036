// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package review implements the discussion tree under a title: reviews that
score the title and comments that answer a review.

# Rules

  - One review per author and title; the score is an integer from 1 to 10.
  - Parents come from the URL path only: /titles/{titleID}/reviews/{reviewID}/comments.
  - Reading is public. Writing needs an account; changing or removing an
    existing entry needs its author, a moderator or an administrator.
*/
package review

import (
	"time"
)

// # Domain Entities

// Review is a scored opinion about a title.
type Review struct {
	ID        string    `json:"id"`
	TitleID   string    `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	PubDate   time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

// Comment is a reply to a review.
type Comment struct {
	ID        string    `json:"id"`
	ReviewID  string    `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	PubDate   time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}

// # Inputs

// ReviewInput is the payload of a review create or patch. Nil fields are
// missing; on create both are required.
//
// Score decodes as a number so that fractional values reach validation
// instead of failing JSON decoding.
type ReviewInput struct {
	Text  *string  `json:"text"`
	Score *float64 `json:"score"`
}

// CommentInput is the payload of a comment create or patch.
type CommentInput struct {
	Text *string `json:"text"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)

// Score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 10
)

// Resource names used in error messages.
const (
	resourceTitle   = "Title"
	resourceReview  = "Review"
	resourceComment = "Comment"
)

// duplicateReviewMessage is returned when an author reviews a title twice.
const duplicateReviewMessage = "Review has already been posted by this author."
