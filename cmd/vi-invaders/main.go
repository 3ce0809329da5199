// Package main provides the vi-invaders binary entry point.
// vi-invaders is a Space Invaders arcade game for the terminal and a desktop window,
// with a persistent top-10 leaderboard kept in a file or a NATS key-value bucket.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/vi-invaders/terminal"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "vi-invaders"
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			terminal.ReportCrash(os.Stderr, "VI-INVADERS", r)
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
