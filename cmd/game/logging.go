package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/tomz197/colorcatch/internal/config"
)

// setupLogging builds the game logger. The terminal belongs to the game, so
// logs go to settings.LogFile when set and are discarded otherwise.
// The returned file, if any, must be closed by the caller.
func setupLogging(settings config.Settings) (*log.Logger, *os.File) {
	level, err := log.ParseLevel(settings.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	if settings.LogFile == "" {
		return log.NewWithOptions(io.Discard, log.Options{Level: level}), nil
	}

	if dir := filepath.Dir(settings.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
			return log.NewWithOptions(io.Discard, log.Options{Level: level}), nil
		}
	}

	f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return log.NewWithOptions(io.Discard, log.Options{Level: level}), nil
	}

	logger := log.NewWithOptions(f, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "colorcatch",
	})
	return logger, f
}
