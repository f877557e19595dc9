// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/gosanz/mangashelfapi/internal/core/catalog"
	"github.com/gosanz/mangashelfapi/internal/platform/apperr"
	"github.com/gosanz/mangashelfapi/pkg/pagination"
)

// memoryCatalog backs all three repositories with maps.
type memoryCatalog struct {
	mu         sync.Mutex
	nextID     int64
	publishers map[int64]*catalog.Publisher
	series     map[int64]*catalog.Series
	volumes    map[int64]*catalog.Volume
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		publishers: map[int64]*catalog.Publisher{},
		series:     map[int64]*catalog.Series{},
		volumes:    map[int64]*catalog.Volume{},
	}
}

func newTestService(store *memoryCatalog) *catalog.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(publisherStore{store}, seriesStore{store}, volumeStore{store}, logger)
}

func (store *memoryCatalog) id() int64 {
	store.nextID++
	return store.nextID
}

func windowOf[T any](items []T, window pagination.Window) []T {
	if window.Skip >= len(items) {
		return []T{}
	}
	end := window.Skip + window.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[window.Skip:end]
}

// # Publishers

type publisherStore struct{ *memoryCatalog }

func (store publisherStore) Create(_ context.Context, publisher *catalog.Publisher) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.publishers {
		if existing.Name == publisher.Name {
			return apperr.Conflict("Resource already exists")
		}
	}
	publisher.ID = store.id()
	copied := *publisher
	store.publishers[publisher.ID] = &copied
	return nil
}

func (store publisherStore) FindByID(_ context.Context, id int64) (*catalog.Publisher, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	publisher, ok := store.publishers[id]
	return publisher, ok, nil
}

func (store publisherStore) List(_ context.Context, window pagination.Window) ([]*catalog.Publisher, error) {
	return store.Search(context.Background(), "", window)
}

func (store publisherStore) Search(_ context.Context, term string, window pagination.Window) ([]*catalog.Publisher, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	list := []*catalog.Publisher{}
	for _, publisher := range store.publishers {
		if strings.Contains(strings.ToLower(publisher.Name), strings.ToLower(term)) {
			list = append(list, publisher)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return windowOf(list, window), nil
}

// # Series

type seriesStore struct{ *memoryCatalog }

func (store seriesStore) Create(_ context.Context, series *catalog.Series) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	series.ID = store.id()
	copied := *series
	store.series[series.ID] = &copied
	return nil
}

func (store seriesStore) FindByID(_ context.Context, id int64) (*catalog.Series, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	series, ok := store.series[id]
	if !ok {
		return nil, false, nil
	}
	copied := *series
	if series.PublisherID != nil {
		copied.Publisher = store.publishers[*series.PublisherID]
	}
	return &copied, true, nil
}

func (store seriesStore) List(context context.Context, window pagination.Window) ([]*catalog.Series, error) {
	return store.filter(window, func(*catalog.Series) bool { return true }), nil
}

func (store seriesStore) Search(_ context.Context, term string, window pagination.Window) ([]*catalog.Series, error) {
	needle := strings.ToLower(term)
	return store.filter(window, func(series *catalog.Series) bool {
		author := ""
		if series.Author != nil {
			author = *series.Author
		}
		return strings.Contains(strings.ToLower(series.Title), needle) ||
			strings.Contains(strings.ToLower(author), needle)
	}), nil
}

func (store seriesStore) ListByPublisher(_ context.Context, publisherID int64, window pagination.Window) ([]*catalog.Series, error) {
	return store.filter(window, func(series *catalog.Series) bool {
		return series.PublisherID != nil && *series.PublisherID == publisherID
	}), nil
}

func (store seriesStore) Delete(_ context.Context, id int64) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.series[id]; !ok {
		return false, nil
	}
	delete(store.series, id)
	for volumeID, volume := range store.volumes {
		if volume.SeriesID == id {
			delete(store.volumes, volumeID)
		}
	}
	return true, nil
}

func (store seriesStore) filter(window pagination.Window, keep func(*catalog.Series) bool) []*catalog.Series {
	store.mu.Lock()
	defer store.mu.Unlock()

	list := []*catalog.Series{}
	for _, series := range store.series {
		if keep(series) {
			list = append(list, series)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Title != list[j].Title {
			return list[i].Title < list[j].Title
		}
		return list[i].ID < list[j].ID
	})
	return windowOf(list, window)
}

// # Volumes

type volumeStore struct{ *memoryCatalog }

func (store volumeStore) Create(_ context.Context, volume *catalog.Volume) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.insert(volume)
}

func (store volumeStore) CreateBulk(_ context.Context, volumes []*catalog.Volume) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	snapshot := make(map[int64]*catalog.Volume, len(store.volumes))
	for id, volume := range store.volumes {
		snapshot[id] = volume
	}

	for _, volume := range volumes {
		if err := store.insert(volume); err != nil {
			store.volumes = snapshot
			return err
		}
	}
	return nil
}

func (store volumeStore) insert(volume *catalog.Volume) error {
	for _, existing := range store.volumes {
		if existing.SeriesID == volume.SeriesID && existing.VolumeNumber == volume.VolumeNumber {
			return apperr.Conflict("Resource already exists")
		}
		if existing.ISBN != nil && volume.ISBN != nil && *existing.ISBN == *volume.ISBN {
			return apperr.Conflict("Resource already exists")
		}
	}
	volume.ID = store.id()
	copied := *volume
	store.volumes[volume.ID] = &copied
	return nil
}

func (store volumeStore) FindByID(_ context.Context, id int64) (*catalog.Volume, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	volume, ok := store.volumes[id]
	if !ok {
		return nil, false, nil
	}
	copied := *volume
	copied.Series = store.series[volume.SeriesID]
	return &copied, true, nil
}

func (store volumeStore) FindByISBN(_ context.Context, isbn string) (*catalog.Volume, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, volume := range store.volumes {
		if volume.ISBN != nil && *volume.ISBN == isbn {
			return volume, true, nil
		}
	}
	return nil, false, nil
}

func (store volumeStore) Exists(_ context.Context, id int64) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	_, ok := store.volumes[id]
	return ok, nil
}

func (store volumeStore) List(_ context.Context, window pagination.Window) ([]*catalog.Volume, error) {
	return store.filter(window, func(*catalog.Volume) bool { return true }), nil
}

func (store volumeStore) ListBySeries(_ context.Context, seriesID int64, window pagination.Window) ([]*catalog.Volume, error) {
	return store.filter(window, func(volume *catalog.Volume) bool { return volume.SeriesID == seriesID }), nil
}

func (store volumeStore) Search(_ context.Context, term string, window pagination.Window) ([]*catalog.Volume, error) {
	needle := strings.ToLower(term)
	return store.filter(window, func(volume *catalog.Volume) bool {
		return (volume.Title != nil && strings.Contains(strings.ToLower(*volume.Title), needle)) ||
			(volume.ISBN != nil && strings.Contains(*volume.ISBN, needle))
	}), nil
}

func (store volumeStore) Delete(_ context.Context, id int64) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.volumes[id]; !ok {
		return false, nil
	}
	delete(store.volumes, id)
	return true, nil
}

func (store volumeStore) filter(window pagination.Window, keep func(*catalog.Volume) bool) []*catalog.Volume {
	store.mu.Lock()
	defer store.mu.Unlock()

	list := []*catalog.Volume{}
	for _, volume := range store.volumes {
		if keep(volume) {
			list = append(list, volume)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].SeriesID != list[j].SeriesID {
			return list[i].SeriesID < list[j].SeriesID
		}
		return list[i].VolumeNumber < list[j].VolumeNumber
	})
	return windowOf(list, window)
}
