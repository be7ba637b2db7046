package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/tiagokriok/taskboard/internal/config"
)

// newFileLogger sends logs to cfg.Log.File; the terminal belongs to the TUI.
func newFileLogger(cfg *config.Config) (*log.Logger, func(), error) {
	logger := log.New()
	logger.SetLevel(cfg.LogLevel())
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})

	if cfg.Log.File == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, func() { _ = f.Close() }, nil
}

func newStderrLogger(cfg *config.Config) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(cfg.LogLevel())
	if cfg.LogLevel() < log.DebugLevel {
		// only warnings reach the terminal unless --debug is set
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
