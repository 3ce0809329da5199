package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-invaders/audio"
	"github.com/lixenwraith/vi-invaders/config"
	"github.com/lixenwraith/vi-invaders/engine"
	"github.com/lixenwraith/vi-invaders/leaderboard"
	"github.com/lixenwraith/vi-invaders/service"
	"github.com/lixenwraith/vi-invaders/status"
)

// app wires the configured services around one Game
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *status.Metrics
	audio   *audio.AudioService
	board   *leaderboard.Board
	hub     *service.Hub
	game    *engine.Game
	watcher *config.Watcher

	closeStore func()
}

// loadConfig resolves defaults, files and environment, then applies the flags the user set
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	loader := config.NewLoader(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	cfg, err := loader.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	applyFlags(cmd, opts, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with explicitly set flags only, so files and env keep their values otherwise
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if opts.debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = defaultLogPath()
		}
	}
	if flags.Changed("leaderboard") {
		cfg.Leaderboard.Path = opts.leaderboard
		if !flags.Changed("store") {
			cfg.Leaderboard.Store = config.StoreFile
		}
	}
	if flags.Changed("store") {
		cfg.Leaderboard.Store = opts.store
	}
	if flags.Changed("nats-url") {
		cfg.Leaderboard.NATSURL = opts.natsURL
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if flags.Changed("mute") {
		cfg.Audio.Muted = opts.mute
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
}

// openStore connects the configured leaderboard backend; the returned func releases it
func openStore(ctx context.Context, cfg *config.Config) (leaderboard.Store, func(), error) {
	lb := cfg.Leaderboard
	switch lb.Store {
	case config.StoreMemory:
		return leaderboard.NewMemoryStore(), func() {}, nil
	case config.StoreFile:
		return leaderboard.NewFileStore(lb.Path), func() {}, nil
	case config.StoreNATS:
		kv, err := leaderboard.ConnectKVStore(ctx, lb.NATSURL, lb.Bucket, lb.Key)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown leaderboard store %q", lb.Store)
	}
}

// newApp initializes and starts every service, then creates the Game in Menu
// configPath is watched for tuning changes; empty falls back to the user config if present
func newApp(ctx context.Context, cfg *config.Config, configPath string, logger *slog.Logger, audioOpts ...audio.Option) (*app, error) {
	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: status.NewMetrics(),
		hub:     service.NewHub(),
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closeStore = closeStore

	audioCfg := audio.LoadAudioConfig()
	if cfg.Audio.Muted {
		audioCfg.Enabled = false
	}
	a.audio = audio.NewService(audioCfg, append([]audio.Option{audio.WithLogger(logger)}, audioOpts...)...)

	a.board = leaderboard.NewBoard(store,
		leaderboard.WithLogger(logger),
		leaderboard.WithMetrics(a.metrics),
	)

	services := []service.Service{a.audio, a.board}
	if cfg.Metrics.Addr != "" {
		services = append(services, status.NewServer(cfg.Metrics.Addr, a.metrics, logger))
	}
	for _, svc := range services {
		if err := a.hub.Register(svc); err != nil {
			closeStore()
			return nil, err
		}
	}

	if err := a.hub.InitAll(ctx); err != nil {
		closeStore()
		return nil, fmt.Errorf("init services: %w", err)
	}
	if err := a.hub.StartAll(); err != nil {
		closeStore()
		return nil, fmt.Errorf("start services: %w", err)
	}

	picker := engine.NewRandom(cfg.Seed)
	logger.Info("Game configured",
		"store", cfg.Leaderboard.Store,
		"seed", picker.Seed(),
		"silent", a.audio.IsSilent(),
	)

	a.game, err = engine.NewGame(ctx, engine.Options{
		Tuning:  cfg.Game,
		Board:   a.board,
		Sounds:  a.audio,
		Picker:  picker,
		Metrics: a.metrics,
		Logger:  logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	if err := a.watchConfig(ctx, configPath); err != nil {
		// Live reload is optional
		logger.Warn("Config watcher disabled", "error", err)
	}
	return a, nil
}

// watchConfig hands reloaded tuning to the game, applied at the next session
func (a *app) watchConfig(ctx context.Context, path string) error {
	loader := config.NewLoader(a.logger)
	if path == "" {
		path = loader.UserConfigPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	w, err := config.NewWatcher(path, loader, 0, func(cfg *config.Config) {
		if err := a.game.SetTuning(cfg.Game); err != nil {
			a.logger.Warn("Tuning rejected", "error", err)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}
	a.watcher = w
	return nil
}

// Close stops the watcher and services, draining pending leaderboard saves
func (a *app) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Stop())
	}
	errs = append(errs, a.hub.StopAll())
	if a.closeStore != nil {
		a.closeStore()
	}
	return errors.Join(errs...)
}

// setup runs the shared front-end prelude: config, logging, services
func setup(cmd *cobra.Command, opts *options) (*app, *os.File, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, err
	}

	logger, logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)

	a, err := newApp(cmd.Context(), cfg, opts.configPath, logger)
	if err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, nil, err
	}
	return a, logFile, nil
}
