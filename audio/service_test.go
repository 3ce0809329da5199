package audio

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

// recordingSink counts streams handed to the output
type recordingSink struct {
	mu      sync.Mutex
	streams int
	release chan struct{}
}

func (r *recordingSink) sink(beep.Streamer) {
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	r.streams++
	r.mu.Unlock()
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.streams
}

func newTestService(t *testing.T, enabled bool, rec *recordingSink) *AudioService {
	t.Helper()
	cfg := DefaultAudioConfig()
	cfg.Enabled = enabled
	s := NewService(cfg, WithSink(rec.sink))
	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Start())
	return s
}

func TestServicePlaysEffects(t *testing.T) {
	rec := &recordingSink{}
	s := newTestService(t, true, rec)

	assert.True(t, s.Play(core.SoundShot))
	assert.True(t, s.Play(core.SoundExplosion))
	require.NoError(t, s.Stop())

	assert.Equal(t, 2, rec.count())
	assert.False(t, s.IsRunning())
}

func TestServiceMuted(t *testing.T) {
	rec := &recordingSink{}
	s := newTestService(t, false, rec)
	assert.True(t, s.IsMuted())

	assert.True(t, s.Play(core.SoundShot))
	assert.False(t, s.ToggleMute())
	assert.True(t, s.Play(core.SoundShot))
	require.NoError(t, s.Stop())

	assert.Equal(t, 1, rec.count())
}

func TestServiceDropsWhenQueueFull(t *testing.T) {
	rec := &recordingSink{release: make(chan struct{})}
	s := newTestService(t, true, rec)

	dropped := 0
	start := time.Now()
	for i := 0; i < constants.SoundQueueSize+2; i++ {
		if !s.Play(core.SoundShot) {
			dropped++
		}
	}
	assert.Less(t, time.Since(start), time.Second, "Play never blocks")
	assert.GreaterOrEqual(t, dropped, 1)

	close(rec.release)
	require.NoError(t, s.Stop())
}

func TestServiceNotStarted(t *testing.T) {
	s := NewService(DefaultAudioConfig(), WithSink(func(beep.Streamer) {}))
	assert.True(t, s.Play(core.SoundLose))
	assert.NoError(t, s.Stop())
}

func TestServiceStartTwice(t *testing.T) {
	s := newTestService(t, true, &recordingSink{})
	assert.Error(t, s.Start())
	require.NoError(t, s.Stop())
}
