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

var volumeConflicts = map[string]string{
	"manga_volumes_isbn_key":          "A volume with this ISBN already exists",
	"manga_volumes_series_number_key": "This volume number already exists in the series",
}

// # Volumes

/*
CreateVolume validates and stores one volume of an existing series.

Returns:
  - error: ValidationError, NotFound("Series"), or Conflict on a duplicate
    ISBN or volume number
*/
func (service *Service) CreateVolume(context context.Context, input VolumeInput) (*Volume, error) {
	normalizeVolumeInput(&input)

	validator := &validate.Validator{}
	validateVolumeInput(validator, "", input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.GetSeries(context, input.SeriesID); err != nil {
		return nil, err
	}

	volume := newVolume(input)
	if err := service.volumeRepo.Create(context, volume); err != nil {
		return nil, fmt.Errorf("catalog_create_volume_failed: %w", translateConflict(err, volumeConflicts))
	}

	service.logger.Info("volume_created",
		slog.Int64("volume_id", volume.ID),
		slog.Int64("series_id", volume.SeriesID),
		slog.Int("volume_number", volume.VolumeNumber),
	)
	return volume, nil
}

/*
CreateVolumes stores a batch of volumes atomically.

Description: Every item is validated first and every referenced series must
exist. Duplicates inside the batch are reported before touching the
database; duplicates against stored rows abort the whole transaction.

Returns:
  - []*Volume: the stored records in input order
  - error: ValidationError, NotFound("Series"), or Conflict
*/
func (service *Service) CreateVolumes(context context.Context, inputs []VolumeInput) ([]*Volume, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldVolumes, len(inputs) == 0, "At least one volume is required")
	validator.Custom(FieldVolumes, len(inputs) > MaxBulkVolumes, fmt.Sprintf("Maximum %d volumes per request", MaxBulkVolumes))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	type seriesNumber struct {
		seriesID int64
		number   int
	}
	seenNumbers := make(map[seriesNumber]bool, len(inputs))
	seenISBNs := make(map[string]bool, len(inputs))

	for index := range inputs {
		normalizeVolumeInput(&inputs[index])
		input := inputs[index]
		prefix := fmt.Sprintf("%s[%d].", FieldVolumes, index)

		validateVolumeInput(validator, prefix, input)

		key := seriesNumber{input.SeriesID, input.VolumeNumber}
		validator.Custom(prefix+FieldVolumeNumber, seenNumbers[key], "Duplicated in this request")
		seenNumbers[key] = true

		if input.ISBN != nil {
			validator.Custom(prefix+FieldISBN, seenISBNs[*input.ISBN], "Duplicated in this request")
			seenISBNs[*input.ISBN] = true
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	checked := make(map[int64]bool)
	for _, input := range inputs {
		if checked[input.SeriesID] {
			continue
		}
		if _, err := service.GetSeries(context, input.SeriesID); err != nil {
			return nil, err
		}
		checked[input.SeriesID] = true
	}

	volumes := make([]*Volume, len(inputs))
	for index, input := range inputs {
		volumes[index] = newVolume(input)
	}

	if err := service.volumeRepo.CreateBulk(context, volumes); err != nil {
		return nil, fmt.Errorf("catalog_create_volumes_failed: %w", translateConflict(err, volumeConflicts))
	}

	service.logger.Info("volumes_bulk_created", slog.Int("count", len(volumes)))
	return volumes, nil
}

// GetVolume returns one volume with its series, or NotFound.
func (service *Service) GetVolume(context context.Context, id int64) (*Volume, error) {
	volume, found, err := service.volumeRepo.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("catalog_get_volume_failed: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("Volume")
	}
	return volume, nil
}

// GetVolumeByISBN returns the volume with the exact ISBN, or NotFound.
func (service *Service) GetVolumeByISBN(context context.Context, isbn string) (*Volume, error) {
	volume, found, err := service.volumeRepo.FindByISBN(context, strings.TrimSpace(isbn))
	if err != nil {
		return nil, fmt.Errorf("catalog_get_volume_by_isbn_failed: %w", err)
	}
	if !found {
		return nil, apperr.NotFound("Volume")
	}
	return volume, nil
}

// VolumeExists reports whether a volume id is present. The collection
// ledger uses it before inserting an entry.
func (service *Service) VolumeExists(context context.Context, id int64) (bool, error) {
	return service.volumeRepo.Exists(context, id)
}

// ListVolumes returns a window of volumes ordered by id.
func (service *Service) ListVolumes(context context.Context, window pagination.Window) ([]*Volume, error) {
	return service.volumeRepo.List(context, window)
}

// ListVolumesBySeries returns the volumes of an existing series by number.
func (service *Service) ListVolumesBySeries(context context.Context, seriesID int64, window pagination.Window) ([]*Volume, error) {
	if _, err := service.GetSeries(context, seriesID); err != nil {
		return nil, err
	}
	return service.volumeRepo.ListBySeries(context, seriesID, window)
}

// SearchVolumes matches the term against title and ISBN.
func (service *Service) SearchVolumes(context context.Context, term string, window pagination.Window) ([]*Volume, error) {
	if err := validateSearchTerm(term); err != nil {
		return nil, err
	}
	return service.volumeRepo.Search(context, term, window)
}

// DeleteVolume removes a volume and the ledger entries pointing at it.
func (service *Service) DeleteVolume(context context.Context, id int64) error {
	deleted, err := service.volumeRepo.Delete(context, id)
	if err != nil {
		return fmt.Errorf("catalog_delete_volume_failed: %w", err)
	}
	if !deleted {
		return apperr.NotFound("Volume")
	}

	service.logger.Warn("volume_deleted", slog.Int64("volume_id", id))
	return nil
}

// # Helpers

func normalizeVolumeInput(input *VolumeInput) {
	if input.ISBN != nil {
		isbn := strings.TrimSpace(*input.ISBN)
		if isbn == "" {
			input.ISBN = nil
		} else {
			input.ISBN = &isbn
		}
	}
}

func validateVolumeInput(validator *validate.Validator, prefix string, input VolumeInput) {
	validator.Custom(prefix+FieldSeriesID, input.SeriesID <= 0, "Must be a positive integer")
	validator.Min(prefix+FieldVolumeNumber, input.VolumeNumber, 1)

	if input.ISBN != nil {
		validator.ISBN(prefix+FieldISBN, *input.ISBN)
	}
	if input.Title != nil {
		validator.MaxLen(prefix+FieldTitle, *input.Title, maxTitleLength)
	}
	if input.Pages != nil {
		validator.Min(prefix+FieldPages, *input.Pages, 1)
	}
	if input.Chapters != nil {
		validator.MaxLen(prefix+FieldChapters, *input.Chapters, maxShortTextLength)
	}
	if input.CoverImageURL != nil {
		validator.URL(prefix+FieldCoverImageURL, *input.CoverImageURL)
	}
}

func newVolume(input VolumeInput) *Volume {
	return &Volume{
		SeriesID:      input.SeriesID,
		VolumeNumber:  input.VolumeNumber,
		ISBN:          input.ISBN,
		Title:         input.Title,
		Pages:         input.Pages,
		Chapters:      input.Chapters,
		ReleaseDate:   input.ReleaseDate,
		CoverImageURL: input.CoverImageURL,
	}
}
