package gui

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
	"github.com/lixenwraith/vi-invaders/engine"
	"github.com/lixenwraith/vi-invaders/input"
)

// Muter is the audio control the window exposes on the m key
type Muter interface {
	ToggleMute() bool
	IsMuted() bool
}

// App hosts a Game in an ebiten window; implements ebiten.Game
type App struct {
	game   *engine.Game
	clock  engine.Clock
	keys   core.InputSource
	muter  Muter
	logger *slog.Logger

	justPressed func(ebiten.Key) bool
	name        input.NameBuffer
}

// NewApp creates a window host; muter may be nil
func NewApp(game *engine.Game, clock engine.Clock, muter Muter, logger *slog.Logger) *App {
	if clock == nil {
		clock = engine.NewSystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		game:   game,
		clock:  clock,
		keys:   NewKeyboardInput(),
		muter:  muter,
		logger: logger.With("component", "gui"),

		justPressed: inpututil.IsKeyJustPressed,
	}
}

// Run opens the window and blocks until it is closed
func Run(app *App) error {
	ebiten.SetWindowSize(int(constants.FieldWidth)*constants.WindowScale, int(constants.FieldHeight)*constants.WindowScale)
	ebiten.SetWindowTitle(constants.WindowTitle)
	ebiten.SetTPS(int(1000 / constants.FrameUpdateInterval.Milliseconds()))

	err := ebiten.RunGame(app)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game; one simulation tick per call while Playing
func (a *App) Update() error {
	now := a.clock.Now()
	phase := a.game.Phase()

	// Every key is text while a name is typed; the window close button still works
	if phase != engine.PhaseEnterName && (a.justPressed(ebiten.KeyEscape) || a.justPressed(ebiten.KeyQ)) {
		return a.quit(phase)
	}

	switch phase {
	case engine.PhaseMenu:
		// Space is fire once Playing, so only Enter starts
		if a.justPressed(ebiten.KeyEnter) {
			a.act(a.game.Start(now), "start")
		}
	case engine.PhasePlaying:
		a.game.Tick(a.keys.Poll(now), now)
		if a.game.Phase() == engine.PhaseEnterName {
			a.name.Reset()
		}
	case engine.PhaseEnterName:
		a.editName()
		if a.justPressed(ebiten.KeyEnter) && a.name.Full() {
			a.act(a.game.SubmitName(a.name.String(), now), "submit")
		}
		return nil
	case engine.PhaseGameOver:
		if a.justPressed(ebiten.KeyEnter) || a.justPressed(ebiten.KeyR) {
			a.act(a.game.PlayAgain(now), "play again")
		}
	}

	if a.justPressed(ebiten.KeyM) && a.muter != nil {
		a.muter.ToggleMute()
	}
	return nil
}

// quit closes the window; a running session is abandoned without a score
func (a *App) quit(phase engine.Phase) error {
	if phase == engine.PhaseMenu || phase == engine.PhaseGameOver {
		a.act(a.game.Exit(), "exit")
	}
	a.logger.Info("quit requested", "phase", phase.String())
	return ebiten.Termination
}

func (a *App) editName() {
	for _, r := range ebiten.AppendInputChars(nil) {
		a.name.Insert(r)
	}
	if a.justPressed(ebiten.KeyBackspace) {
		a.name.Backspace()
	}
}

func (a *App) act(err error, what string) {
	if err != nil {
		a.logger.Warn("action rejected", "action", what, "error", err)
	}
}

// Draw implements ebiten.Game
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	snap := a.game.Snapshot()
	muted := a.muter != nil && a.muter.IsMuted()
	drawHUD(screen, snap, muted)

	switch a.game.Phase() {
	case engine.PhaseMenu:
		drawCentered(screen, "V I - I N V A D E R S", 120, colorTitle)
		drawCentered(screen, "ENTER start   arrows move   SPACE fire   m mute   q quit", 150, colorLabel)
		drawLeaderboard(screen, 200, a.game.Leaderboard(), -1)
	case engine.PhasePlaying:
		drawField(screen, snap, a.game.Tuning())
	case engine.PhaseEnterName:
		drawField(screen, snap, a.game.Tuning())
		name := a.name.String() + strings.Repeat("_", constants.NameLength-a.name.Len())
		drawCentered(screen, "FINAL SCORE "+strconv.Itoa(a.game.FinalScore()), 280, colorHighlight)
		if a.game.NewHighScore() {
			drawCentered(screen, "NEW HIGH SCORE", 250, colorTitle)
		}
		drawCentered(screen, "ENTER YOUR INITIALS: "+name, 310, colorText)
	case engine.PhaseGameOver:
		drawCentered(screen, "G A M E   O V E R", 120, colorBulletDown)
		drawCentered(screen, "ENTER play again   q quit", 150, colorLabel)
		drawLeaderboard(screen, 200, a.game.Leaderboard(), highlightIndex(a.game.Leaderboard(), a.name.String(), a.game.FinalScore()))
	}
}

// Layout implements ebiten.Game; the logical screen is the field
func (a *App) Layout(int, int) (int, int) {
	return int(constants.FieldWidth), int(constants.FieldHeight)
}

func highlightIndex(entries []core.LeaderboardEntry, name string, score int) int {
	for i, e := range entries {
		if e.Name == name && e.Score == score {
			return i
		}
	}
	return -1
}
