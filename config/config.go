// Package config loads vi-invaders settings from YAML, the environment and flags.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-invaders/core"
)

// Leaderboard store kinds
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreNATS   = "nats"
)

// Config represents the complete vi-invaders configuration
type Config struct {
	Game        core.Tuning       `yaml:"game"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Audio       AudioConfig       `yaml:"audio"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Log         LogConfig         `yaml:"log"`
	// Seed fixes the enemy fire sequence; 0 seeds from the clock
	Seed int64 `yaml:"seed"`
}

// LeaderboardConfig selects and configures the score store
type LeaderboardConfig struct {
	// Store is one of memory, file, nats
	Store string `yaml:"store"`
	// Path is the YAML file for the file store
	Path string `yaml:"path"`
	// NATSURL is the server for the nats store
	NATSURL string `yaml:"nats_url"`
	// Bucket and Key locate the shared list in JetStream key-value
	Bucket string `yaml:"bucket"`
	Key    string `yaml:"key"`
}

// AudioConfig configures sound output
type AudioConfig struct {
	Muted bool `yaml:"muted"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	// Addr is the listen address; empty disables the endpoint
	Addr string `yaml:"addr"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is debug, info, warn or error
	Level string `yaml:"level"`
	// File receives logs; empty discards them in the terminal front end
	File string `yaml:"file"`
}

// DefaultConfig returns a Config with stock tuning and a file leaderboard
func DefaultConfig() *Config {
	return &Config{
		Game: core.DefaultTuning(),
		Leaderboard: LeaderboardConfig{
			Store:  StoreFile,
			Path:   defaultLeaderboardPath(),
			Bucket: "VI_INVADERS",
			Key:    "leaderboard",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}

	switch c.Leaderboard.Store {
	case StoreMemory:
	case StoreFile:
		if c.Leaderboard.Path == "" {
			return fmt.Errorf("leaderboard.path is required for the file store")
		}
	case StoreNATS:
		if c.Leaderboard.NATSURL == "" {
			return fmt.Errorf("leaderboard.nats_url is required for the nats store")
		}
	default:
		return fmt.Errorf("leaderboard.store must be one of memory, file, nats; got %q", c.Leaderboard.Store)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to slog
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level must be debug, info, warn or error; got %q", s)
	}
}

// LoadFromFile loads configuration from a YAML file over defaults
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the keys present in path onto c
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// SaveToFile writes the configuration as YAML
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func defaultLeaderboardPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "leaderboard.yaml"
	}
	return filepath.Join(home, ".local", "share", "vi-invaders", "leaderboard.yaml")
}
