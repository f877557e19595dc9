// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package jobs schedules recurring maintenance work with gocron.
package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/gosanz/mangashelfapi/internal/users/account"
)

// PurgeJobTag identifies the account purge sweep in the scheduler.
const PurgeJobTag = "account-purge"

// sweepTimeout bounds a single purge run.
const sweepTimeout = 10 * time.Minute

// Sweeper purges accounts whose grace period has elapsed.
type Sweeper interface {
	PurgeExpired(context context.Context) (account.PurgeReport, error)
}

/*
NewPurgeScheduler registers the purge sweep to run every interval, starting
immediately. Runs never overlap: a sweep still in progress when the next
tick fires causes that tick to be skipped.

The caller starts the scheduler (StartAsync or StartBlocking) and stops it.
Cancelling the context aborts the sweep in flight.
*/
func NewPurgeScheduler(context context.Context, interval time.Duration, sweeper Sweeper, logger *slog.Logger) (*gocron.Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("jobs: purge interval must be positive")
	}

	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(interval).Tag(PurgeJobTag).Do(func() {
		runPurge(context, sweeper, logger)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("job_scheduled",
		slog.String("job", PurgeJobTag),
		slog.Duration("interval", interval),
	)
	return scheduler, nil
}

func runPurge(parent context.Context, sweeper Sweeper, logger *slog.Logger) {
	context, cancel := context.WithTimeout(parent, sweepTimeout)
	defer cancel()

	started := time.Now()
	report, err := sweeper.PurgeExpired(context)
	if err != nil {
		logger.Error("job_failed",
			slog.String("job", PurgeJobTag),
			slog.Any("error", err),
		)
		return
	}

	logger.Info("job_finished",
		slog.String("job", PurgeJobTag),
		slog.Int("purged", len(report.Purged)),
		slog.Int("failed", len(report.Failed)),
		slog.Duration("took", time.Since(started)),
	)
}
