// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/gosanz/mangashelfapi/pkg/pointer"
	"github.com/gosanz/mangashelfapi/pkg/slice"
)

// Grouping selects the name a series is ranked under. A nil name drops the row.
type Grouping func(SeriesOwnership) *string

var (
	// ByPublisher groups by publisher name.
	ByPublisher Grouping = func(row SeriesOwnership) *string { return row.PublisherName }
	// ByAuthor groups by the series author.
	ByAuthor Grouping = func(row SeriesOwnership) *string { return row.Author }
)

var hundred = decimal.NewFromInt(100)

/*
RankByVolumes sums owned volumes per group.

Sort: count descending, then name ascending. The result holds at most limit
rows.
*/
func RankByVolumes(rows []SeriesOwnership, group Grouping, limit int) []Ranking {
	return rank(rows, group, limit, func(row SeriesOwnership) int { return row.OwnedVolumes })
}

// RankBySeries counts distinct owned series per group, with the same order
// as [RankByVolumes].
func RankBySeries(rows []SeriesOwnership, group Grouping, limit int) []Ranking {
	return rank(rows, group, limit, func(SeriesOwnership) int { return 1 })
}

func rank(rows []SeriesOwnership, group Grouping, limit int, weight func(SeriesOwnership) int) []Ranking {
	counts := make(map[string]int)
	for _, row := range owned(rows) {
		name := group(row)
		if name == nil {
			continue
		}
		counts[*name] += weight(row)
	}

	rankings := make([]Ranking, 0, len(counts))
	for name, count := range counts {
		rankings = append(rankings, Ranking{Name: name, Count: count})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Count != rankings[j].Count {
			return rankings[i].Count > rankings[j].Count
		}
		return rankings[i].Name < rankings[j].Name
	})

	return slice.Take(rankings, limit)
}

/*
SeriesProgress computes the completion percentage of each owned series.

Percentage is round(owned / total * 100, 2) in decimal arithmetic, and 0
when the declared total is unknown or zero. Sort: percentage descending,
owned descending, title ascending, id ascending.
*/
func SeriesProgress(rows []SeriesOwnership, limit int) []Progress {
	progress := slice.Map(owned(rows), func(row SeriesOwnership) Progress {
		return Progress{
			SeriesID:             row.SeriesID,
			Title:                row.Title,
			OwnedVolumes:         row.OwnedVolumes,
			TotalVolumes:         row.TotalVolumes,
			CompletionPercentage: CompletionPercentage(row.OwnedVolumes, row.TotalVolumes),
		}
	})

	sort.Slice(progress, func(i, j int) bool {
		a, b := progress[i], progress[j]
		switch {
		case a.CompletionPercentage != b.CompletionPercentage:
			return a.CompletionPercentage > b.CompletionPercentage
		case a.OwnedVolumes != b.OwnedVolumes:
			return a.OwnedVolumes > b.OwnedVolumes
		case a.Title != b.Title:
			return a.Title < b.Title
		default:
			return a.SeriesID < b.SeriesID
		}
	})

	return slice.Take(progress, limit)
}

// CompletionPercentage returns round(owned/total*100, 2), or 0 when total is
// nil or not positive. Owning more than the declared total yields more than 100.
func CompletionPercentage(owned int, total *int) float64 {
	declared := pointer.Val(total)
	if declared <= 0 {
		return 0
	}

	percentage := decimal.NewFromInt(int64(owned)).
		Mul(hundred).
		DivRound(decimal.NewFromInt(int64(declared)), 2)

	return percentage.InexactFloat64()
}

func owned(rows []SeriesOwnership) []SeriesOwnership {
	return slice.Filter(rows, func(row SeriesOwnership) bool { return row.OwnedVolumes > 0 })
}
