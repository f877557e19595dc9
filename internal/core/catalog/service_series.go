// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/internal/platform/validate"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// # Series

/*
CreateSeries validates and stores a new series.

Description: When a publisher id is given it must reference an existing
publisher. Publication dates, when both present, must be ordered.

Returns:
  - *Series: the stored record
  - error: ValidationError, or NotFound("Publisher")
*/
func (service *Service) CreateSeries(context context.Context, input SeriesInput) (*Series, error) {
	input.Title = strings.TrimSpace(input.Title)

	if err := validateSeriesInput(input); err != nil {
		return nil, err
	}

	if input.PublisherID != nil {
		if _, err := service.GetPublisher(context, *input.PublisherID); err != nil {
			return nil, err
		}
	}

	series := &Series{
		Title:                  input.Title,
		Author:                 input.Author,
		PublisherID:            input.PublisherID,
		EditionType:            input.EditionType,
		TotalVolumes:           input.TotalVolumes,
		IsCompleted:            input.IsCompleted,
		Description:            input.Description,
		CoverImageURL:          input.CoverImageURL,
		StartedPublicationDate: input.StartedPublicationDate,
		EndedPublicationDate:   input.EndedPublicationDate,
	}

	if err := service.seriesRepo.Create(context, series); err != nil {
		return nil, fmt.Errorf("catalog_create_series_failed: %w", err)
	}

	service.logger.Info("series_created",
		slog.Int64("series_id", series.ID),
		slog.String("title", series.Title),
	)
	return series, nil
}

// GetSeries returns one series with its publisher, or NotFound.
func (service *Service) GetSeries(context context.Context, id int64) (*Series, error) {
	series, found, err := service.seriesRepo.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("catalog_get_series_failed: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("Series")
	}
	return series, nil
}

// ListSeries returns a window of series ordered by title.
func (service *Service) ListSeries(context context.Context, window pagination.Window) ([]*Series, error) {
	return service.seriesRepo.List(context, window)
}

// SearchSeries matches the term against title and author.
func (service *Service) SearchSeries(context context.Context, term string, window pagination.Window) ([]*Series, error) {
	if err := validateSearchTerm(term); err != nil {
		return nil, err
	}
	return service.seriesRepo.Search(context, term, window)
}

// ListSeriesByPublisher returns the series of an existing publisher.
func (service *Service) ListSeriesByPublisher(context context.Context, publisherID int64, window pagination.Window) ([]*Series, error) {
	if _, err := service.GetPublisher(context, publisherID); err != nil {
		return nil, err
	}
	return service.seriesRepo.ListByPublisher(context, publisherID, window)
}

/*
DeleteSeries removes a series together with its volumes and every ledger
entry that references them.
*/
func (service *Service) DeleteSeries(context context.Context, id int64) error {
	deleted, err := service.seriesRepo.Delete(context, id)
	if err != nil {
		return fmt.Errorf("catalog_delete_series_failed: %w", err)
	}
	if !deleted {
		return apperr.NotFound("Series")
	}

	service.logger.Warn("series_deleted", slog.Int64("series_id", id))
	return nil
}

func validateSeriesInput(input SeriesInput) error {
	validator := &validate.Validator{}

	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, maxTitleLength)
	if input.Author != nil {
		validator.MaxLen(FieldAuthor, *input.Author, maxNameLength)
	}
	if input.EditionType != nil {
		validator.MaxLen(FieldEditionType, *input.EditionType, maxShortTextLength)
	}
	if input.TotalVolumes != nil {
		validator.Min(FieldTotalVolumes, *input.TotalVolumes, 0)
	}
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, maxDescriptionLength)
	}
	if input.CoverImageURL != nil {
		validator.URL(FieldCoverImageURL, *input.CoverImageURL)
	}
	if input.StartedPublicationDate != nil && input.EndedPublicationDate != nil {
		validator.Custom(FieldEndedDate,
			input.EndedPublicationDate.Before(*input.StartedPublicationDate),
			"Must not be before started_publication_date")
	}

	return validator.Err()
}
