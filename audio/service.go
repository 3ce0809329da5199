package audio

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

// Sink receives ready-to-play streams; the speaker is the default sink
type Sink func(beep.Streamer)

// AudioService plays synthesized effects without blocking the game loop
// Handles graceful degradation when no output device is available
type AudioService struct {
	config  *AudioConfig
	cache   *soundCache
	logger  *slog.Logger

	sink   Sink
	queue  chan core.SoundType
	sendMu sync.Mutex
	wg     sync.WaitGroup

	ownsSpeaker bool

	running    atomic.Bool
	muted      atomic.Bool
	silentMode atomic.Bool
}

// Option configures an AudioService
type Option func(*AudioService)

// WithSink replaces the speaker output, used by tests and headless hosts
func WithSink(sink Sink) Option {
	return func(s *AudioService) { s.sink = sink }
}

// WithLogger sets the service logger
func WithLogger(l *slog.Logger) Option {
	return func(s *AudioService) { s.logger = l }
}

// NewService creates an audio service; a nil config loads from the environment
func NewService(cfg *AudioConfig, opts ...Option) *AudioService {
	if cfg == nil {
		cfg = LoadAudioConfig()
	}
	s := &AudioService{
		config: cfg,
		cache:  newSoundCache(beep.SampleRate(cfg.SampleRate)),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "audio")
	s.muted.Store(!cfg.Enabled)
	return s
}

// Name implements service.Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements service.Service by rendering every effect
func (s *AudioService) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.preload()
	return nil
}

// Start implements service.Service
// A missing output device switches to silent mode instead of failing
func (s *AudioService) Start() error {
	if s.running.Load() {
		return fmt.Errorf("audio service already running")
	}

	if s.sink == nil {
		rate := beep.SampleRate(s.config.SampleRate)
		if err := speaker.Init(rate, rate.N(constants.SpeakerBuffer)); err != nil {
			s.silentMode.Store(true)
			s.logger.Warn("audio disabled", "error", fmt.Errorf("%w: %v", ErrNoAudio, err))
		} else {
			s.sink = func(st beep.Streamer) { speaker.Play(st) }
			s.ownsSpeaker = true
		}
	}

	s.sendMu.Lock()
	s.queue = make(chan core.SoundType, constants.SoundQueueSize)
	s.running.Store(true)
	s.sendMu.Unlock()

	s.wg.Add(1)
	go s.loop(s.queue)
	return nil
}

// Stop implements service.Service
func (s *AudioService) Stop() error {
	s.sendMu.Lock()
	if !s.running.Load() {
		s.sendMu.Unlock()
		return nil
	}
	s.running.Store(false)
	close(s.queue)
	s.sendMu.Unlock()

	s.wg.Wait()
	if s.ownsSpeaker {
		speaker.Close()
		s.ownsSpeaker = false
		s.sink = nil
	}
	return nil
}

// Play requests an effect and never blocks
// Returns false only when the request was dropped because the queue is full
func (s *AudioService) Play(st core.SoundType) bool {
	if s.muted.Load() || s.silentMode.Load() {
		return true
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if !s.running.Load() {
		return true
	}
	select {
	case s.queue <- st:
		return true
	default:
		return false
	}
}

// ToggleMute flips the mute state and returns the new value
func (s *AudioService) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			s.logger.Debug("mute toggled", "muted", !old)
			return !old
		}
	}
}

// IsMuted reports whether effects are suppressed
func (s *AudioService) IsMuted() bool {
	return s.muted.Load()
}

// IsSilent reports whether the output device failed to open
func (s *AudioService) IsSilent() bool {
	return s.silentMode.Load()
}

// IsRunning reports whether the playback loop is active
func (s *AudioService) IsRunning() bool {
	return s.running.Load()
}

func (s *AudioService) loop(queue <-chan core.SoundType) {
	defer s.wg.Done()
	for st := range queue {
		if s.silentMode.Load() || s.sink == nil {
			continue
		}
		stream := s.cache.get(st)
		if stream == nil {
			continue
		}
		s.sink(newVolume(stream, s.config.Volume(st)))
	}
}
