// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Command shelfctl runs maintenance tasks against the MangaShelf database:
// schema migrations and the account purge sweep, either once or on a
// schedule.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gosanz/mangashelfapi/internal/jobs"
	"github.com/gosanz/mangashelfapi/internal/platform/config"
	"github.com/gosanz/mangashelfapi/internal/platform/constants"
	"github.com/gosanz/mangashelfapi/internal/platform/logger"
	"github.com/gosanz/mangashelfapi/internal/platform/migration"
	pgstore "github.com/gosanz/mangashelfapi/internal/platform/postgres"
	"github.com/gosanz/mangashelfapi/internal/users/account"
)

func main() {
	log := logger.New(os.Stderr, false)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config_load_failed", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Debug {
		log = logger.New(os.Stderr, true)
	}

	context, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:    "shelfctl",
		Usage:   "MangaShelf maintenance tasks",
		Version: constants.AppVersion,
		Commands: []*cli.Command{
			migrateCommand(cfg, log),
			purgeCommand(cfg, log),
			scheduleCommand(cfg, log),
		},
	}

	if err := app.RunContext(context, os.Args); err != nil {
		log.Error("shelfctl_failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// # Migrations

func migrateCommand(cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: func(c *cli.Context) error {
					return migration.RunUp(cfg.DatabaseURL, log)
				},
			},
			{
				Name:  "down",
				Usage: "roll back applied migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					return migration.RunDown(cfg.DatabaseURL, c.Int("steps"), log)
				},
			},
			{
				Name:  "version",
				Usage: "print the applied schema version",
				Action: func(c *cli.Context) error {
					status, err := migration.Version(cfg.DatabaseURL, log)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "version=%d dirty=%t\n", status.Version, status.Dirty)
					return nil
				},
			},
		},
	}
}

// # Account Purge

func purgeCommand(cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "purge accounts whose grace period has elapsed",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "dry-run", Usage: "list the candidates without deleting anything"},
		},
		Action: func(c *cli.Context) error {
			return withAccounts(c.Context, cfg, log, func(service *account.Service) error {
				if c.Bool("dry-run") {
					candidates, err := service.ListPurgeCandidates(c.Context)
					if err != nil {
						return err
					}
					for _, candidate := range candidates {
						fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n",
							candidate.ID, candidate.Username, candidate.DeletedAt.Format(time.RFC3339))
					}
					return nil
				}

				report, err := service.PurgeExpired(c.Context)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.App.Writer, "purged=%d failed=%d\n", len(report.Purged), len(report.Failed))
				if len(report.Failed) > 0 {
					return cli.Exit("some accounts could not be purged", 2)
				}
				return nil
			})
		},
	}
}

func scheduleCommand(cfg *config.Config, log *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "run the purge sweep every PURGE_SCHEDULE_INTERVAL until interrupted",
		Action: func(c *cli.Context) error {
			return withAccounts(c.Context, cfg, log, func(service *account.Service) error {
				scheduler, err := jobs.NewPurgeScheduler(c.Context, cfg.PurgeScheduleInterval, service, log)
				if err != nil {
					return err
				}

				scheduler.StartAsync()
				<-c.Context.Done()
				scheduler.Stop()

				log.Info("scheduler_stopped")
				return nil
			})
		},
	}
}

// withAccounts opens the pool, builds the account service and closes the
// pool after run returns. Session revocation is not needed by the sweep,
// so no Redis connection is made.
func withAccounts(context context.Context, cfg *config.Config, log *slog.Logger, run func(*account.Service) error) error {
	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, log,
		pgstore.WithMaxConns(2),
		pgstore.WithApplicationName("shelfctl"),
	)
	if err != nil {
		return err
	}
	defer pool.Close()

	return run(account.NewService(account.NewRepository(pool), nil, log, nil))
}
