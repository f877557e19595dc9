// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package stats

import (
	"context"
	"fmt"
)

// # Service Layer

// Service answers the statistics queries of one user.
type Service struct {
	repo Repository
}

// NewService constructs a new statistics [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CollectionSummary returns the headline counters and the total spent.
func (service *Service) CollectionSummary(context context.Context, userID string) (Summary, error) {
	summary, err := service.repo.Summary(context, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("stats_summary_failed: %w", err)
	}
	return summary, nil
}

// TopPublishersByVolumes ranks publishers by owned volume count.
func (service *Service) TopPublishersByVolumes(context context.Context, userID string, limit int) ([]Ranking, error) {
	return service.ranking(context, userID, func(rows []SeriesOwnership) []Ranking {
		return RankByVolumes(rows, ByPublisher, limit)
	})
}

// TopPublishersBySeries ranks publishers by number of distinct owned series.
func (service *Service) TopPublishersBySeries(context context.Context, userID string, limit int) ([]Ranking, error) {
	return service.ranking(context, userID, func(rows []SeriesOwnership) []Ranking {
		return RankBySeries(rows, ByPublisher, limit)
	})
}

// TopAuthorsByVolumes ranks authors by owned volume count.
func (service *Service) TopAuthorsByVolumes(context context.Context, userID string, limit int) ([]Ranking, error) {
	return service.ranking(context, userID, func(rows []SeriesOwnership) []Ranking {
		return RankByVolumes(rows, ByAuthor, limit)
	})
}

// TopAuthorsBySeries ranks authors by number of distinct owned series.
func (service *Service) TopAuthorsBySeries(context context.Context, userID string, limit int) ([]Ranking, error) {
	return service.ranking(context, userID, func(rows []SeriesOwnership) []Ranking {
		return RankBySeries(rows, ByAuthor, limit)
	})
}

// SeriesProgress returns the completion state of the user's owned series.
func (service *Service) SeriesProgress(context context.Context, userID string, limit int) ([]Progress, error) {
	rows, err := service.repo.OwnedSeries(context, userID)
	if err != nil {
		return nil, fmt.Errorf("stats_series_progress_failed: %w", err)
	}
	return SeriesProgress(rows, limit), nil
}

func (service *Service) ranking(context context.Context, userID string, compute func([]SeriesOwnership) []Ranking) ([]Ranking, error) {
	rows, err := service.repo.OwnedSeries(context, userID)
	if err != nil {
		return nil, fmt.Errorf("stats_ranking_failed: %w", err)
	}
	return compute(rows), nil
}
