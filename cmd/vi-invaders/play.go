package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/engine"
	"github.com/lixenwraith/vi-invaders/input"
	"github.com/lixenwraith/vi-invaders/render"
	"github.com/lixenwraith/vi-invaders/terminal"
)

func runPlay(cmd *cobra.Command, opts *options) error {
	colorMode, err := terminal.ParseColorMode(opts.color)
	if err != nil {
		return err
	}

	a, logFile, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer a.Close()

	// Initialize terminal
	colorMode.Apply()
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup, runs before services drain
	defer screen.Fini()

	a.logger.Info("Terminal initialized", "color", colorMode.String())
	return a.runTerminal(cmd.Context(), screen, engine.NewSystemClock())
}

// runTerminal is the terminal host loop: one Tick per frame, key events applied as they arrive
// Returns when the player quits, the game exits or ctx is cancelled
func (a *app) runTerminal(ctx context.Context, screen tcell.Screen, clock engine.Clock) error {
	screen.HideCursor()
	screen.Clear()

	renderer := render.NewTerminalRenderer(screen, a.game.Tuning())
	machine := input.NewMachine(nil, nil)

	eventChan := make(chan tcell.Event, 256)
	done := make(chan struct{})
	defer close(done)

	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				terminal.EmergencyReset(os.Stdout)
				terminal.ReportCrash(os.Stderr, "EVENT POLLER", r)
				os.Exit(1)
			}
		}()

		for {
			ev := screen.PollEvent()
			// Screen finalized
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	draw := func() {
		renderer.RenderFrame(render.View{
			Phase:       a.game.Phase(),
			Snapshot:    a.game.Snapshot(),
			Tuning:      a.game.Tuning(),
			FinalScore:  a.game.FinalScore(),
			LossReason:  a.game.LossReason(),
			Name:        machine.Name(),
			Leaderboard: a.game.Leaderboard(),
			Muted:       a.audio.IsMuted(),

			NewHighScore: a.game.NewHighScore(),
		})
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				w, h := ev.Size()
				renderer.Resize(w, h, a.game.Tuning())
				screen.Sync()
			case *tcell.EventKey:
				now := clock.Now()
				action := machine.Handle(ev, a.game.Phase(), now)
				if a.applyAction(action, machine, now) {
					return nil
				}
				if action == input.ActionStart || action == input.ActionPlayAgain {
					// Reloaded tuning may have changed the field size
					w, h := screen.Size()
					renderer.Resize(w, h, a.game.Tuning())
				}
			}
			draw()

		case <-frameTicker.C:
			now := clock.Now()
			a.game.Tick(machine.Keys().Poll(now), now)
			draw()
		}
	}
}

// applyAction performs a phase-level request; reports true when the host should close
func (a *app) applyAction(action input.Action, machine *input.Machine, now time.Time) bool {
	var err error
	switch action {
	case input.ActionStart:
		machine.Keys().Reset()
		machine.ResetName()
		err = a.game.Start(now)

	case input.ActionPlayAgain:
		// The submitted name stays in the buffer until here so GameOver can highlight it
		machine.Keys().Reset()
		machine.ResetName()
		err = a.game.PlayAgain(now)

	case input.ActionSubmit:
		err = a.game.SubmitName(machine.Name(), now)

	case input.ActionToggleMute:
		a.audio.ToggleMute()

	case input.ActionQuit:
		// Quitting mid-session closes the host without recording a score
		switch a.game.Phase() {
		case engine.PhaseMenu, engine.PhaseGameOver:
			err = a.game.Exit()
		}
		a.logger.Info("Quit requested", "phase", a.game.Phase().String())
		return true
	}

	if err != nil {
		if errors.Is(err, engine.ErrInvalidName) {
			a.logger.Debug("Name rejected", "name", machine.Name())
		} else {
			a.logger.Warn("Action failed", "action", action.String(), "error", err)
		}
	}
	return a.game.Phase() == engine.PhaseExited
}
