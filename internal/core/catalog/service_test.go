// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosanz/mangashelfapi/internal/core/catalog"
	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/pkg/civil"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
	"github.com/gosanz/mangashelfapi/pkg/pointer"
)

func seedSeries(t *testing.T, service *catalog.Service, title string) *catalog.Series {
	t.Helper()

	publisher, err := service.CreatePublisher(context.Background(), catalog.PublisherInput{Name: "Pub " + title})
	require.NoError(t, err)

	series, err := service.CreateSeries(context.Background(), catalog.SeriesInput{
		Title:        title,
		Author:       pointer.To("Eiichiro Oda"),
		PublisherID:  &publisher.ID,
		TotalVolumes: pointer.To(10),
	})
	require.NoError(t, err)
	return series
}

/*
TestService_CreatePublisher covers validation, defaults and name conflicts.
*/
func TestService_CreatePublisher(t *testing.T) {
	service := newTestService(newMemoryCatalog())
	ctx := context.Background()

	publisher, err := service.CreatePublisher(ctx, catalog.PublisherInput{Name: "  Shueisha ", Country: pointer.To("JP")})
	require.NoError(t, err)
	assert.Equal(t, "Shueisha", publisher.Name)
	assert.True(t, publisher.IsActive)
	assert.NotZero(t, publisher.ID)

	_, err = service.CreatePublisher(ctx, catalog.PublisherInput{Name: "Shueisha"})
	assert.True(t, apperr.IsConflict(err))

	_, err = service.CreatePublisher(ctx, catalog.PublisherInput{Name: "   "})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	inactive, err := service.CreatePublisher(ctx, catalog.PublisherInput{Name: "Norma", IsActive: pointer.To(false)})
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)
}

/*
TestService_CreateSeries checks the publisher reference and field rules.
*/
func TestService_CreateSeries(t *testing.T) {
	tests := []struct {
		name  string
		input catalog.SeriesInput
		code  string
	}{
		{"missing_title", catalog.SeriesInput{Title: " "}, apperr.CodeValidation},
		{"negative_total", catalog.SeriesInput{Title: "Berserk", TotalVolumes: pointer.To(-1)}, apperr.CodeValidation},
		{"bad_cover_url", catalog.SeriesInput{Title: "Berserk", CoverImageURL: pointer.To("ftp://x")}, apperr.CodeValidation},
		{"unknown_publisher", catalog.SeriesInput{Title: "Berserk", PublisherID: pointer.To(int64(999))}, apperr.CodeNotFound},
		{
			"dates_reversed",
			catalog.SeriesInput{
				Title:                  "Berserk",
				StartedPublicationDate: pointer.To(civil.MustParse("1990-01-01")),
				EndedPublicationDate:   pointer.To(civil.MustParse("1989-12-31")),
			},
			apperr.CodeValidation,
		},
		{"valid", catalog.SeriesInput{Title: "Berserk", TotalVolumes: pointer.To(0)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(newMemoryCatalog())

			series, err := service.CreateSeries(context.Background(), tt.input)
			if tt.code == "" {
				require.NoError(t, err)
				assert.NotZero(t, series.ID)
				return
			}
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

/*
TestService_GetSeries_HydratesPublisher verifies the single-series lookup.
*/
func TestService_GetSeries_HydratesPublisher(t *testing.T) {
	service := newTestService(newMemoryCatalog())
	series := seedSeries(t, service, "One Piece")

	found, err := service.GetSeries(context.Background(), series.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Publisher)
	assert.Equal(t, "Pub One Piece", found.Publisher.Name)

	_, err = service.GetSeries(context.Background(), series.ID+100)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_CreateVolume covers the series reference and duplicate rules.
*/
func TestService_CreateVolume(t *testing.T) {
	service := newTestService(newMemoryCatalog())
	ctx := context.Background()
	series := seedSeries(t, service, "One Piece")

	volume, err := service.CreateVolume(ctx, catalog.VolumeInput{
		SeriesID:     series.ID,
		VolumeNumber: 1,
		ISBN:         pointer.To("978-4-08-872509-3"),
	})
	require.NoError(t, err)
	assert.NotZero(t, volume.ID)

	_, err = service.CreateVolume(ctx, catalog.VolumeInput{SeriesID: series.ID, VolumeNumber: 1})
	assert.True(t, apperr.IsConflict(err))

	_, err = service.CreateVolume(ctx, catalog.VolumeInput{SeriesID: series.ID + 50, VolumeNumber: 1})
	assert.True(t, apperr.IsNotFound(err))

	_, err = service.CreateVolume(ctx, catalog.VolumeInput{SeriesID: series.ID, VolumeNumber: 0})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.CreateVolume(ctx, catalog.VolumeInput{SeriesID: series.ID, VolumeNumber: 2, ISBN: pointer.To("not-an-isbn")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	blank, err := service.CreateVolume(ctx, catalog.VolumeInput{SeriesID: series.ID, VolumeNumber: 3, ISBN: pointer.To("  ")})
	require.NoError(t, err)
	assert.Nil(t, blank.ISBN)
}

/*
TestService_CreateVolumes checks the all-or-nothing bulk insert.
*/
func TestService_CreateVolumes(t *testing.T) {
	ctx := context.Background()

	t.Run("stores_all", func(t *testing.T) {
		store := newMemoryCatalog()
		service := newTestService(store)
		series := seedSeries(t, service, "Naruto")

		volumes, err := service.CreateVolumes(ctx, []catalog.VolumeInput{
			{SeriesID: series.ID, VolumeNumber: 1},
			{SeriesID: series.ID, VolumeNumber: 2},
		})
		require.NoError(t, err)
		assert.Len(t, volumes, 2)
		assert.Len(t, store.volumes, 2)
	})

	t.Run("duplicate_in_request", func(t *testing.T) {
		store := newMemoryCatalog()
		service := newTestService(store)
		series := seedSeries(t, service, "Naruto")

		_, err := service.CreateVolumes(ctx, []catalog.VolumeInput{
			{SeriesID: series.ID, VolumeNumber: 1},
			{SeriesID: series.ID, VolumeNumber: 1},
		})
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, apperr.CodeValidation, appError.Code)
		assert.Equal(t, "volumes[1].volume_number", appError.Details[0].Field)
		assert.Empty(t, store.volumes)
	})

	t.Run("conflict_rolls_back", func(t *testing.T) {
		store := newMemoryCatalog()
		service := newTestService(store)
		series := seedSeries(t, service, "Naruto")

		_, err := service.CreateVolume(ctx, catalog.VolumeInput{SeriesID: series.ID, VolumeNumber: 2})
		require.NoError(t, err)

		_, err = service.CreateVolumes(ctx, []catalog.VolumeInput{
			{SeriesID: series.ID, VolumeNumber: 1},
			{SeriesID: series.ID, VolumeNumber: 2},
		})
		assert.True(t, apperr.IsConflict(err))
		assert.Len(t, store.volumes, 1)
	})

	t.Run("empty", func(t *testing.T) {
		service := newTestService(newMemoryCatalog())
		_, err := service.CreateVolumes(ctx, nil)
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})
}

/*
TestService_DeleteSeries removes the volumes with the series.
*/
func TestService_DeleteSeries(t *testing.T) {
	store := newMemoryCatalog()
	service := newTestService(store)
	ctx := context.Background()
	series := seedSeries(t, service, "Bleach")

	volume, err := service.CreateVolume(ctx, catalog.VolumeInput{SeriesID: series.ID, VolumeNumber: 1})
	require.NoError(t, err)

	require.NoError(t, service.DeleteSeries(ctx, series.ID))

	exists, err := service.VolumeExists(ctx, volume.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.True(t, apperr.IsNotFound(service.DeleteSeries(ctx, series.ID)))
}

/*
TestService_Search requires a term and matches case-insensitively.
*/
func TestService_Search(t *testing.T) {
	service := newTestService(newMemoryCatalog())
	ctx := context.Background()
	seedSeries(t, service, "One Piece")
	seedSeries(t, service, "Dragon Ball")

	window := pagination.Search.Clamp(pagination.Window{})

	found, err := service.SearchSeries(ctx, "piece", window)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "One Piece", found[0].Title)

	byAuthor, err := service.SearchSeries(ctx, "oda", window)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	_, err = service.SearchPublishers(ctx, " ", window)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}
