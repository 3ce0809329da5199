package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-invaders/audio"
	"github.com/lixenwraith/vi-invaders/config"
	"github.com/lixenwraith/vi-invaders/engine"
	"github.com/lixenwraith/vi-invaders/input"
	"github.com/lixenwraith/vi-invaders/leaderboard"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func quietSink(beep.Streamer) {}

func newTestApp(t *testing.T, cfg *config.Config) *app {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.Leaderboard.Store = config.StoreMemory
	}
	a, err := newApp(context.Background(), cfg, "", discardLogger(), audio.WithSink(quietSink))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "vi-invaders version "+Version)
}

func TestScoresCommand_Empty(t *testing.T) {
	home := isolateHome(t)

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"scores", "--leaderboard", filepath.Join(home, "none.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "No scores yet\n", out.String())
}

func TestScoresCommand_PrintsFileStore(t *testing.T) {
	home := isolateHome(t)
	path := filepath.Join(home, "scores.yaml")

	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, leaderboard.NewFileStore(path).Save(context.Background(), []leaderboard.Entry{
		{Name: "ACE", Score: 900, Date: day},
		{Name: "BOB", Score: 300, Date: day},
	}))

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"scores", "--leaderboard", path})

	require.NoError(t, cmd.Execute())
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), " 1. ACE      900")
	assert.Contains(t, string(lines[1]), " 2. BOB      300")
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	home := isolateHome(t)

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{
		"--leaderboard", filepath.Join(home, "lb.yaml"),
		"--seed", "7",
		"--mute",
		"--debug",
	}))

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, config.StoreFile, cfg.Leaderboard.Store)
	assert.Equal(t, filepath.Join(home, "lb.yaml"), cfg.Leaderboard.Path)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.True(t, cfg.Audio.Muted)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, defaultLogPath(), cfg.Log.File)
}

func TestLoadConfig_UnsetFlagsKeepFileValues(t *testing.T) {
	home := isolateHome(t)

	file := config.DefaultConfig()
	file.Leaderboard.Store = config.StoreMemory
	file.Seed = 42
	path := filepath.Join(home, "custom.yaml")
	require.NoError(t, file.SaveToFile(path))

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Leaderboard.Store)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadConfig_RejectsUnknownStore(t *testing.T) {
	isolateHome(t)

	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--store", "redis"}))

	_, err := loadConfig(cmd, opts)
	assert.Error(t, err)
}

func TestNewApp_WiresServices(t *testing.T) {
	isolateHome(t)

	cfg := config.DefaultConfig()
	cfg.Leaderboard.Store = config.StoreMemory
	cfg.Metrics.Addr = "127.0.0.1:0"
	cfg.Audio.Muted = true

	a := newTestApp(t, cfg)

	assert.Equal(t, engine.PhaseMenu, a.game.Phase())
	assert.True(t, a.audio.IsMuted())
	for _, name := range []string{"audio", "leaderboard", "metrics"} {
		_, ok := a.hub.Get(name)
		assert.True(t, ok, name)
	}
}

func TestApplyAction(t *testing.T) {
	isolateHome(t)
	a := newTestApp(t, nil)
	machine := input.NewMachine(nil, nil)
	now := time.Now()

	assert.False(t, a.applyAction(input.ActionStart, machine, now))
	assert.Equal(t, engine.PhasePlaying, a.game.Phase())

	muted := a.audio.IsMuted()
	assert.False(t, a.applyAction(input.ActionToggleMute, machine, now))
	assert.Equal(t, !muted, a.audio.IsMuted())

	// Submitting outside EnterName is rejected and ignored
	assert.False(t, a.applyAction(input.ActionSubmit, machine, now))
	assert.Equal(t, engine.PhasePlaying, a.game.Phase())

	// Quit mid-session closes the host without an exit transition
	assert.True(t, a.applyAction(input.ActionQuit, machine, now))
	assert.Equal(t, engine.PhasePlaying, a.game.Phase())
}

func TestApplyAction_QuitFromMenuExits(t *testing.T) {
	isolateHome(t)
	a := newTestApp(t, nil)

	assert.True(t, a.applyAction(input.ActionQuit, input.NewMachine(nil, nil), time.Now()))
	assert.Equal(t, engine.PhaseExited, a.game.Phase())
}

func TestRunTerminal_StartThenQuit(t *testing.T) {
	isolateHome(t)
	a := newTestApp(t, nil)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 30)
	defer screen.Fini()

	clock := engine.NewManualClock(time.Now())
	done := make(chan error, 1)
	go func() { done <- a.runTerminal(context.Background(), screen, clock) }()

	screen.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)
	require.Eventually(t, func() bool {
		return a.game.Phase() == engine.PhasePlaying
	}, 2*time.Second, 10*time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("host loop did not return after quit")
	}
}

func TestRunTerminal_ContextCancel(t *testing.T) {
	isolateHome(t)
	a := newTestApp(t, nil)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.runTerminal(ctx, screen, engine.NewSystemClock()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("host loop ignored cancellation")
	}
}
