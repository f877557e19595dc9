// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/dberr"
	"github.com/gosanz/mangashelfapi/internal/platform/validate"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # Service Layer

// Service orchestrates the catalog use cases: validation, existence checks
// across publishers, series and volumes, and conflict reporting.
type Service struct {
	publisherRepo PublisherRepository
	seriesRepo    SeriesRepository
	volumeRepo    VolumeRepository
	logger        *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(publisherRepo PublisherRepository, seriesRepo SeriesRepository, volumeRepo VolumeRepository, logger *slog.Logger) *Service {
	return &Service{
		publisherRepo: publisherRepo,
		seriesRepo:    seriesRepo,
		volumeRepo:    volumeRepo,
		logger:        logger,
	}
}

// # Publishers

/*
CreatePublisher validates and stores a new publisher.

Returns:
  - *Publisher: the stored record with its id
  - error: ValidationError, or Conflict when the name is taken
*/
func (service *Service) CreatePublisher(context context.Context, input PublisherInput) (*Publisher, error) {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLength)
	if input.Country != nil {
		validator.MaxLen(FieldCountry, *input.Country, maxShortTextLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	publisher := &Publisher{
		Name:     input.Name,
		Country:  input.Country,
		IsActive: input.IsActive == nil || *input.IsActive,
	}

	if err := service.publisherRepo.Create(context, publisher); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("A publisher with this name already exists").WithCause(err)
		}
		return nil, fmt.Errorf("catalog_create_publisher_failed: %w", err)
	}

	service.logger.Info("publisher_created",
		slog.Int64("publisher_id", publisher.ID),
		slog.String("name", publisher.Name),
	)
	return publisher, nil
}

// GetPublisher returns one publisher or NotFound.
func (service *Service) GetPublisher(context context.Context, id int64) (*Publisher, error) {
	publisher, found, err := service.publisherRepo.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("catalog_get_publisher_failed: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("Publisher")
	}
	return publisher, nil
}

// ListPublishers returns a window of publishers ordered by name.
func (service *Service) ListPublishers(context context.Context, window pagination.Window) ([]*Publisher, error) {
	return service.publisherRepo.List(context, window)
}

// SearchPublishers returns publishers whose name contains the term.
func (service *Service) SearchPublishers(context context.Context, term string, window pagination.Window) ([]*Publisher, error) {
	if err := validateSearchTerm(term); err != nil {
		return nil, err
	}
	return service.publisherRepo.Search(context, term, window)
}

// # Helpers

func validateSearchTerm(term string) error {
	validator := &validate.Validator{}
	validator.Required(FieldQuery, term).MaxLen(FieldQuery, term, maxShortTextLength)
	return validator.Err()
}

// translateConflict rewrites a unique violation on a known constraint into a
// domain message. Unknown conflicts pass through untouched.
func translateConflict(err error, messages map[string]string) error {
	for constraint, message := range messages {
		if dberr.IsUniqueViolation(err, constraint) {
			return apperr.Conflict(message).WithCause(err)
		}
	}
	return err
}
