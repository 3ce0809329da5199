package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/vi-invaders/config"
)

const (
	logDir      = "logs"
	logFileName = "vi-invaders.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

func defaultLogPath() string {
	return filepath.Join(logDir, logFileName)
}

// setupLogging builds the process logger from cfg
// The terminal front end owns stdout, so logs go to a file or nowhere
// Returns the opened file, nil when logs are discarded
func setupLogging(cfg config.LogConfig) (*slog.Logger, *os.File, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	// Rotate if the file is over maxLogSize
	if info, err := os.Stat(cfg.File); err == nil && info.Size() > maxLogSize {
		base := strings.TrimSuffix(cfg.File, filepath.Ext(cfg.File))
		rotated := fmt.Sprintf("%s_%s.log", base, time.Now().Format("20060102_150405"))
		if err := os.Rename(cfg.File, rotated); err != nil {
			return nil, nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	logger.Info("=== vi-invaders started ===", "version", Version, "pid", os.Getpid())
	return logger, f, nil
}
