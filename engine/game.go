package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/vi-invaders/core"
	"github.com/lixenwraith/vi-invaders/leaderboard"
	"github.com/lixenwraith/vi-invaders/status"
	"github.com/lixenwraith/vi-invaders/systems"
)

// Options configures a Game; zero values select in-memory defaults
type Options struct {
	Tuning  core.Tuning
	Board   *leaderboard.Board
	Sounds  core.SoundPlayer
	Picker  systems.Picker
	Metrics *status.Metrics
	Logger  *slog.Logger
}

// Game is the state machine driving one player's sessions
// Hosts call Tick once per frame and the action methods from UI events
type Game struct {
	mu sync.Mutex

	phase   Phase
	sim     *systems.Simulation
	picker  systems.Picker
	pending *core.Tuning // Applied on the next transition into Playing

	session    *core.Session
	finalScore int
	lossReason core.LossReason
	scores     []leaderboard.Entry

	board   *leaderboard.Board
	sounds  core.SoundPlayer
	metrics *status.Metrics
	logger  *slog.Logger
}

// NewGame enters Menu and preloads the leaderboard
func NewGame(ctx context.Context, opts Options) (*Game, error) {
	if opts.Tuning == (core.Tuning{}) {
		opts.Tuning = core.DefaultTuning()
	}
	if err := opts.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Picker == nil {
		opts.Picker = NewRandom(0)
	}
	if opts.Sounds == nil {
		opts.Sounds = core.SoundFunc(func(core.SoundType) bool { return true })
	}
	if opts.Board == nil {
		opts.Board = leaderboard.NewBoard(leaderboard.NewMemoryStore(),
			leaderboard.WithLogger(opts.Logger), leaderboard.WithMetrics(opts.Metrics))
	}

	g := &Game{
		phase:   PhaseMenu,
		sim:     systems.NewSimulation(opts.Tuning, opts.Picker),
		picker:  opts.Picker,
		board:   opts.Board,
		sounds:  opts.Sounds,
		metrics: opts.Metrics,
		logger:  opts.Logger.With("component", "game"),
	}

	g.board.Preload(ctx)
	g.scores = g.board.Entries()
	return g, nil
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Start begins a session from Menu
func (g *Game) Start(now time.Time) error {
	return g.beginSession(PhaseMenu, now)
}

// PlayAgain begins a fresh session from GameOver
func (g *Game) PlayAgain(now time.Time) error {
	return g.beginSession(PhaseGameOver, now)
}

func (g *Game) beginSession(from Phase, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != from || !CanTransition(g.phase, PhasePlaying) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.phase, PhasePlaying)
	}

	if g.pending != nil {
		g.sim = systems.NewSimulation(*g.pending, g.picker)
		g.pending = nil
		g.logger.Info("tuning applied")
	}

	g.session = g.sim.Reset(now)
	g.finalScore = 0
	g.lossReason = core.LossNone
	g.phase = PhasePlaying
	g.logger.Info("session started", "session", g.session.ID)
	return nil
}

// Tick runs one simulation step when Playing and reports whether it ran
// A loss moves the game to EnterName within the same call
func (g *Game) Tick(in core.Input, now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return false
	}

	res := g.sim.Step(g.session, in, now)
	g.metrics.ObserveTick(g.session, res.Events)
	g.playEvents(res.Events)

	if res.Outcome == core.OutcomeLost {
		g.finalScore = g.session.Score
		g.lossReason = res.Reason
		g.phase = PhaseEnterName
		g.play(core.SoundLose)
		g.metrics.ObserveGameOver(g.finalScore, res.Reason)
		g.logger.Info("session lost",
			"session", g.session.ID,
			"reason", res.Reason.String(),
			"score", g.finalScore,
			"wave", g.session.Wave,
			"frames", g.session.Frame,
		)
	}
	return true
}

// SubmitName records the final score under name and moves to GameOver
// Invalid names leave the game in EnterName
func (g *Game) SubmitName(name string, now time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseEnterName {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.phase, PhaseGameOver)
	}
	if !core.ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	entry := leaderboard.Entry{Name: name, Score: g.finalScore, Date: now}
	g.scores = g.board.Submit(entry)
	g.play(core.SoundSubmit)
	g.phase = PhaseGameOver
	g.logger.Info("score submitted", "session", g.session.ID, "name", name, "score", g.finalScore)
	return nil
}

// Exit closes the game from Menu or GameOver
func (g *Game) Exit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !CanTransition(g.phase, PhaseExited) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, g.phase, PhaseExited)
	}
	g.phase = PhaseExited
	return nil
}

// SetTuning schedules new tuning for the next session; the running one is unaffected
func (g *Game) SetTuning(t core.Tuning) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("tuning: %w", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &t
	return nil
}

// Tuning returns the values of the current or most recent session
func (g *Game) Tuning() core.Tuning {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sim.Tuning()
}

// Snapshot returns the render-visible state; zero before the first session
func (g *Game) Snapshot() core.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return core.Snapshot{}
	}
	return g.session.Snapshot()
}

// FinalScore returns the score captured at the last loss
func (g *Game) FinalScore() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.finalScore
}

// LossReason returns why the last session ended
func (g *Game) LossReason() core.LossReason {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lossReason
}

// NewHighScore reports whether the score awaiting a name would enter the leaderboard
func (g *Game) NewHighScore() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase == PhaseEnterName && leaderboard.Qualifies(g.scores, g.finalScore)
}

// Leaderboard returns the list as of the last preload or submit
func (g *Game) Leaderboard() []leaderboard.Entry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]leaderboard.Entry(nil), g.scores...)
}

// Session returns a copy of the current session, nil before the first start
func (g *Game) Session() *core.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return nil
	}
	return g.session.Clone()
}

func (g *Game) playEvents(events []core.Event) {
	for _, ev := range events {
		switch ev.Type {
		case core.EventShotFired:
			g.play(core.SoundShot)
		case core.EventEnemyDestroyed:
			g.play(core.SoundExplosion)
		}
	}
}

func (g *Game) play(s core.SoundType) {
	if !g.sounds.Play(s) {
		g.metrics.ObserveSoundDropped()
	}
}
