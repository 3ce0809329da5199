package main

import (
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-invaders/engine"
	"github.com/lixenwraith/vi-invaders/gui"
)

func runGUI(cmd *cobra.Command, opts *options) error {
	a, logFile, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer a.Close()

	return gui.Run(gui.NewApp(a.game, engine.NewSystemClock(), a.audio, a.logger))
}
