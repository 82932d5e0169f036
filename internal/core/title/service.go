// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/slice"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Contracts

// Vocabulary resolves catalog slugs. It is satisfied by [*reference.Vocabulary].
type Vocabulary interface {
	Missing(context context.Context, slugs []string) ([]string, error)
}

// # Service Layer

// Service implements the title use cases.
type Service struct {
	titleRepository TitleRepository
	categories      Vocabulary
	genres          Vocabulary
	logger          *slog.Logger
	now             func() time.Time
}

// NewService constructs a new [Service] with its dependencies.
func NewService(titleRepo TitleRepository, categories, genres Vocabulary, logger *slog.Logger) *Service {
	return &Service{
		titleRepository: titleRepo,
		categories:      categories,
		genres:          genres,
		logger:          logger,
		now:             time.Now,
	}
}

// # Inputs

// CreateInput is the payload of a new title. Category and genres are slugs.
type CreateInput struct {
	Name        string   `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateInput is a partial change. Nil fields are left untouched; an empty
// genre list clears genres. A title always keeps a category.
type UpdateInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// # Queries

// List returns one page of titles matching the filter.
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*Title, int, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	return service.titleRepository.List(context, filter, page)
}

// Get retrieves a single title.
func (service *Service) Get(context context.Context, id string) (*Title, error) {
	return service.titleRepository.FindByID(context, id)
}

// # Commands

/*
Create adds a title to the catalog.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: The stored title as the API reads it (rating null)
  - error: ValidationError listing bad fields and unresolved slugs
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		Custom(FieldYear, input.Year == nil, "This field is required")

	record := &Record{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		CategorySlug: normalizeCategory(input.Category),
		GenreSlugs:   slice.Unique(input.Genre),
	}
	if input.Year != nil {
		record.Year = *input.Year
	}

	if err := service.check(context, validator, record); err != nil {
		return nil, err
	}

	if err := service.titleRepository.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("title_created", slog.String("title_id", record.ID))

	return service.titleRepository.FindByID(context, record.ID)
}

/*
Update applies a partial change to a title.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Title: The updated title with its current rating
  - error: NotFound or ValidationError
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Title, error) {
	current, err := service.titleRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	record := &Record{
		ID:          current.ID,
		Name:        current.Name,
		Year:        current.Year,
		Description: current.Description,
		GenreSlugs:  current.GenreSlugs(),
	}
	if current.Category != nil {
		record.CategorySlug = &current.Category.Slug
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		record.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, record.Name)
	}
	if input.Year != nil {
		record.Year = *input.Year
	}
	if input.Description != nil {
		record.Description = input.Description
	}
	if input.Category != nil {
		record.CategorySlug = normalizeCategory(input.Category)
	}
	if input.Genre != nil {
		record.GenreSlugs = slice.Unique(*input.Genre)
	}

	if err := service.check(context, validator, record); err != nil {
		return nil, err
	}

	if err := service.titleRepository.Update(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.String("title_id", record.ID))

	return service.titleRepository.FindByID(context, record.ID)
}

// Delete removes a title together with its reviews.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.titleRepository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.String("title_id", id))
	return nil
}

// # Validation

// check runs the field rules and resolves catalog references.
func (service *Service) check(context context.Context, validator *validate.Validator, record *Record) error {
	validator.MaxLen(FieldName, record.Name, MaxNameLength).
		Custom(FieldYear, record.Year > service.now().Year(), "Year cannot be in the future")

	if record.CategorySlug == nil {
		validator.Custom(FieldCategory, true, "This field is required")
	} else {
		missing, err := service.categories.Missing(context, []string{*record.CategorySlug})
		if err != nil {
			return err
		}
		validator.Custom(FieldCategory, len(missing) > 0,
			fmt.Sprintf("Unknown category slug: %s", *record.CategorySlug))
	}

	missing, err := service.genres.Missing(context, record.GenreSlugs)
	if err != nil {
		return err
	}
	validator.Custom(FieldGenre, len(missing) > 0,
		fmt.Sprintf("Unknown genre slugs: %s", strings.Join(missing, ", ")))

	return validator.Err()
}

// normalizeCategory trims the slug and maps a blank one to nil.
func normalizeCategory(category *string) *string {
	if category == nil || strings.TrimSpace(*category) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*category)
	return &trimmed
}
