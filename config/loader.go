package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// UserConfigDir is the directory for user-level config, relative to home
	UserConfigDir = ".config/vi-invaders"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "VI_INVADERS_"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger   *slog.Logger
	userPath string
	getenv   func(string) string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, userPath: userConfigPath(), getenv: os.Getenv}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/vi-invaders/config.yaml)
// 3. Explicit config file (path, may be empty)
// 4. Environment variables (VI_INVADERS_*)
// Flags are applied by the caller on top of the result
func (l *Loader) Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if l.userPath != "" {
		if err := cfg.mergeFile(l.userPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", l.userPath))
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", l.userPath), slog.String("error", err.Error()))
		}
	}

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", path))
	}

	l.applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from the environment; malformed numbers are ignored with a warning
func (l *Loader) applyEnv(cfg *Config) {
	str := func(name string, dst *string) {
		if v := l.getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	str("STORE", &cfg.Leaderboard.Store)
	str("LEADERBOARD", &cfg.Leaderboard.Path)
	str("NATS_URL", &cfg.Leaderboard.NATSURL)
	str("METRICS_ADDR", &cfg.Metrics.Addr)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FILE", &cfg.Log.File)

	if v := l.getenv(EnvPrefix + "SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		} else {
			l.logger.Warn("Ignoring malformed seed", slog.String("value", v))
		}
	}
	if v := l.getenv(EnvPrefix + "MUTE"); v != "" {
		if muted, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Muted = muted
		} else {
			l.logger.Warn("Ignoring malformed mute flag", slog.String("value", v))
		}
	}
}

// UserConfigPath returns the user-level config file path
func (l *Loader) UserConfigPath() string {
	return l.userPath
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	if l.userPath == "" {
		return nil
	}
	if _, err := os.Stat(l.userPath); err == nil {
		return nil
	}
	if err := DefaultConfig().SaveToFile(l.userPath); err != nil {
		return err
	}
	l.logger.Info("Created default user config", slog.String("path", l.userPath))
	return nil
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}
