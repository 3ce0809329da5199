package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-invaders/leaderboard"
)

// options holds the persistent flags shared by every subcommand
type options struct {
	configPath  string
	logLevel    string
	logFile     string
	debug       bool
	leaderboard string
	store       string
	natsURL     string
	metricsAddr string
	color       string
	mute        bool
	seed        int64
}

func rootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Space Invaders for the terminal",
		Long: `vi-invaders is a Space Invaders arcade game.

Move with h/l or the arrow keys, fire with space or k. Every third wave
adds a row of enemies and each wave is faster than the last. The ten best
scores are kept in a YAML file or, with --store nats, in a JetStream
key-value bucket shared by every player on the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&opts.debug, "debug", false, "Debug logging to "+defaultLogPath())
	pf.StringVar(&opts.leaderboard, "leaderboard", "", "Leaderboard file for the file store")
	pf.StringVar(&opts.store, "store", "", "Leaderboard store (memory, file, nats)")
	pf.StringVar(&opts.natsURL, "nats-url", "", "NATS server for the nats store")
	pf.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	pf.StringVar(&opts.color, "color", "auto", "Color mode: auto, truecolor, 256")
	pf.BoolVar(&opts.mute, "mute", false, "Start with sound muted")
	pf.Int64Var(&opts.seed, "seed", 0, "Fix the enemy fire sequence (0 seeds from the clock)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "play",
			Short: "Play in the terminal (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPlay(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "gui",
			Short: "Play in a desktop window",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runGUI(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "scores",
			Short: "Print the leaderboard",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runScores(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// runScores loads the configured store once and prints it
func runScores(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, logFile, err := setupLogging(cfg.Log)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	store, closeStore, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	board := leaderboard.NewBoard(store, leaderboard.WithLogger(logger))
	if err := board.Load(cmd.Context()); err != nil {
		return err
	}
	printScores(cmd.OutOrStdout(), board.Entries())
	return nil
}

func printScores(w io.Writer, entries []leaderboard.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores yet")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%2d. %-3s %8d  %s\n", i+1, e.Name, e.Score, e.Date.Local().Format("2006-01-02 15:04"))
	}
}
