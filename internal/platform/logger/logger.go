// Copyright (c) 2026 MangaShelf. All rights reserved.
// Author: github.com/gosanz

// Package logger builds the process-wide structured JSON logger shared by
// every binary.
package logger

import (
	"io"
	"log/slog"

	"github.com/gosanz/mangashelfapi/internal/platform/constants"
)

// New returns a JSON logger tagged with the application name and sets it as
// the slog default. Debug lowers the level to [slog.LevelDebug].
func New(writer io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}
