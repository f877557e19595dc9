// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package collection

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// VolumeLookup is the slice of the catalog the ledger depends on.
type VolumeLookup interface {
	VolumeExists(context context.Context, id int64) (bool, error)
}

// errAlreadyInCollection is returned for a duplicate (user, volume) pair.
var errAlreadyInCollection = apperr.Conflict("Volume already in collection")

// # Service Layer

// Service implements the ledger operations for one authenticated user at a time.
type Service struct {
	repo    Repository
	volumes VolumeLookup
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new [Service]. A nil clock defaults to [time.Now].
func NewService(repo Repository, volumes VolumeLookup, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		volumes: volumes,
		logger:  logger,
		now:     now,
	}
}

// clock returns the current instant at the precision Postgres stores.
func (service *Service) clock() time.Time {
	return service.now().UTC().Truncate(time.Microsecond)
}

/*
AddEntry puts a volume into the user's collection.

Returns:
  - *Entry: the stored entry with its volume embedded
  - error: ValidationError, NotFound("Volume"), or Conflict when the volume is
    already in the collection
*/
func (service *Service) AddEntry(context context.Context, userID string, input AddInput) (*Entry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	exists, err := service.volumes.VolumeExists(context, input.VolumeID)
	if err != nil {
		return nil, fmt.Errorf("collection_add_entry_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Volume")
	}

	held, err := service.repo.Exists(context, userID, input.VolumeID)
	if err != nil {
		return nil, fmt.Errorf("collection_add_entry_failed: %w", err)
	}
	if held {
		return nil, errAlreadyInCollection
	}

	entry := NewEntry(userID, input, service.clock())
	if err := service.repo.Insert(context, entry); err != nil {
		switch {
		case apperr.IsConflict(err):
			// Lost a race against a concurrent add of the same volume.
			return nil, errAlreadyInCollection.WithCause(err)
		case apperr.IsNotFound(err):
			return nil, apperr.NotFound("Volume").WithCause(err)
		}
		return nil, fmt.Errorf("collection_add_entry_failed: %w", err)
	}

	service.logger.Info("collection_entry_added",
		slog.String("user_id", userID),
		slog.Int64("volume_id", entry.VolumeID),
	)

	return service.hydrated(context, entry)
}

/*
GetEntry returns the user's entry for a volume.

Returns:
  - bool: false when the volume is not in the collection; this is not an error
*/
func (service *Service) GetEntry(context context.Context, userID string, volumeID int64) (*Entry, bool, error) {
	entry, found, err := service.repo.Find(context, userID, volumeID)
	if err != nil {
		return nil, false, fmt.Errorf("collection_get_entry_failed: %w", err)
	}
	return entry, found, nil
}

/*
UpdateEntry applies a sparse patch inside a locked transaction.

Returns:
  - *Entry: the entry after the patch
  - error: ValidationError, or NotFound when the volume is not in the collection
*/
func (service *Service) UpdateEntry(context context.Context, userID string, volumeID int64, patch Patch) (*Entry, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	now := service.clock()
	updated, err := service.repo.Update(context, userID, volumeID, func(entry *Entry) {
		patch.ApplyTo(entry, now)
	})
	if err != nil {
		return nil, fmt.Errorf("collection_update_entry_failed: %w", err)
	}
	if !updated {
		return nil, apperr.NotFound("Collection entry")
	}

	service.logger.Info("collection_entry_updated",
		slog.String("user_id", userID),
		slog.Int64("volume_id", volumeID),
	)

	entry, found, err := service.GetEntry(context, userID, volumeID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.NotFound("Collection entry")
	}
	return entry, nil
}

/*
RemoveEntry deletes the user's entry for a volume.

Returns:
  - bool: false when there was nothing to delete; repeating the call is safe
*/
func (service *Service) RemoveEntry(context context.Context, userID string, volumeID int64) (bool, error) {
	removed, err := service.repo.Delete(context, userID, volumeID)
	if err != nil {
		return false, fmt.Errorf("collection_remove_entry_failed: %w", err)
	}

	if removed {
		service.logger.Info("collection_entry_removed",
			slog.String("user_id", userID),
			slog.Int64("volume_id", volumeID),
		)
	}
	return removed, nil
}

// ListByUser returns a window of the user's ledger, oldest additions first.
func (service *Service) ListByUser(context context.Context, userID string, filter Filter, window pagination.Window) ([]*Entry, error) {
	entries, err := service.repo.ListByUser(context, userID, filter, window)
	if err != nil {
		return nil, fmt.Errorf("collection_list_failed: %w", err)
	}
	return entries, nil
}

func (service *Service) hydrated(context context.Context, entry *Entry) (*Entry, error) {
	stored, found, err := service.GetEntry(context, entry.UserID, entry.VolumeID)
	if err != nil {
		return nil, err
	}
	if !found {
		return entry, nil
	}
	return stored, nil
}
