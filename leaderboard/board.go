package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/status"
)

// Board is the single writer for a shared leaderboard
// Submit merges in memory and returns at once; persistence runs on one
// writer goroutine so read-modify-write cycles never interleave
type Board struct {
	store   Store
	logger  *slog.Logger
	metrics *status.Metrics
	timeout time.Duration

	mu      sync.RWMutex
	entries []Entry
	loaded  bool

	// sendMu guards queue and running together so Stop cannot close a channel mid-send
	sendMu  sync.Mutex
	queue   chan Entry
	running bool
	wg      sync.WaitGroup
}

// BoardOption configures a Board
type BoardOption func(*Board)

// WithLogger sets the board logger
func WithLogger(l *slog.Logger) BoardOption {
	return func(b *Board) { b.logger = l }
}

// WithMetrics sets the metrics sink
func WithMetrics(m *status.Metrics) BoardOption {
	return func(b *Board) { b.metrics = m }
}

// WithSaveTimeout bounds each persistence attempt
func WithSaveTimeout(d time.Duration) BoardOption {
	return func(b *Board) { b.timeout = d }
}

// NewBoard creates a board over store
func NewBoard(store Store, opts ...BoardOption) *Board {
	b := &Board{
		store:   store,
		logger:  slog.Default(),
		timeout: constants.SaveTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "leaderboard")
	return b
}

// Name implements service.Service
func (b *Board) Name() string { return "leaderboard" }

// Dependencies implements service.Service
func (b *Board) Dependencies() []string { return nil }

// Init implements service.Service by preloading the persisted list
// A failed load leaves an empty board and is not fatal
func (b *Board) Init(ctx context.Context) error {
	b.Preload(ctx)
	return nil
}

// Preload loads the persisted list once; later calls are no-ops
// A failed load is logged; plain stores reload before their next save
func (b *Board) Preload(ctx context.Context) {
	b.mu.RLock()
	loaded := b.loaded
	b.mu.RUnlock()
	if loaded {
		return
	}
	if err := b.Load(ctx); err != nil {
		b.logger.Warn("leaderboard preload failed, starting empty", "error", err)
	}
}

// Start implements service.Service by launching the writer
func (b *Board) Start() error {
	b.sendMu.Lock()
	defer b.sendMu.Unlock()
	if b.running {
		return fmt.Errorf("leaderboard writer already running")
	}
	b.queue = make(chan Entry, constants.SaveQueueSize)
	b.running = true

	b.wg.Add(1)
	go b.writer(b.queue)
	return nil
}

// Stop implements service.Service; pending saves are drained before return
func (b *Board) Stop() error {
	b.sendMu.Lock()
	if !b.running {
		b.sendMu.Unlock()
		return nil
	}
	b.running = false
	close(b.queue)
	b.sendMu.Unlock()

	b.wg.Wait()
	return nil
}

// Load replaces the in-memory list with the persisted one
func (b *Board) Load(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	entries, err := b.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load leaderboard: %w", err)
	}

	b.mu.Lock()
	b.entries = Normalize(entries)
	b.loaded = true
	n := len(b.entries)
	b.mu.Unlock()

	b.logger.Debug("leaderboard loaded", "entries", n)
	return nil
}

// Entries returns a copy of the current list
func (b *Board) Entries() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Entry(nil), b.entries...)
}

// Submit merges e and schedules persistence
// The merged list is returned immediately; save failures never reach the caller
func (b *Board) Submit(e Entry) []Entry {
	b.mu.Lock()
	b.entries = Merge(b.entries, e)
	merged := append([]Entry(nil), b.entries...)
	b.mu.Unlock()

	b.sendMu.Lock()
	if b.running {
		select {
		case b.queue <- e:
			b.sendMu.Unlock()
			return merged
		default:
			b.sendMu.Unlock()
			b.logger.Warn("leaderboard save queue full, persisting inline", "name", e.Name, "score", e.Score)
		}
	} else {
		b.sendMu.Unlock()
	}

	// No writer running: persist on the caller's goroutine
	b.persist(e)
	return merged
}

func (b *Board) writer(queue <-chan Entry) {
	defer b.wg.Done()
	for e := range queue {
		b.persist(e)
	}
}

// persist writes the board through the store, preferring atomic updates
func (b *Board) persist(e Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	var (
		err error
		n   int
	)
	if u, ok := b.store.(Updater); ok {
		var stored []Entry
		stored, err = u.Update(ctx, func(current []Entry) []Entry {
			return Merge(current, e)
		})
		if err == nil {
			// Entries from other writers become visible; local ones merged later are kept
			b.mu.Lock()
			b.entries = union(stored, b.entries)
			b.loaded = true
			n = len(b.entries)
			b.mu.Unlock()
		}
	} else {
		var snapshot []Entry
		snapshot, err = b.resync(ctx)
		if err == nil {
			n = len(snapshot)
			err = b.store.Save(ctx, snapshot)
		}
	}

	b.metrics.ObserveSave(err, n)
	if err != nil {
		b.logger.Warn("leaderboard save failed", "name", e.Name, "score", e.Score, "error", err)
		return
	}
	b.logger.Debug("leaderboard saved", "name", e.Name, "score", e.Score, "entries", n)
}

// resync returns the list to save through a plain Store
// Until the persisted list has been read once, it is loaded and unioned in first;
// saving without it would overwrite entries this board never saw
func (b *Board) resync(ctx context.Context) ([]Entry, error) {
	b.mu.RLock()
	loaded := b.loaded
	b.mu.RUnlock()
	if loaded {
		return b.Entries(), nil
	}

	stored, err := b.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("save skipped, persisted list unreadable: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = union(Normalize(stored), b.entries)
	b.loaded = true
	return append([]Entry(nil), b.entries...), nil
}

// union merges two normalized lists, dropping exact duplicates
func union(a, b []Entry) []Entry {
	out := append([]Entry(nil), a...)
	for _, e := range b {
		dup := false
		for _, x := range out {
			if x.Name == e.Name && x.Score == e.Score && x.Date.Equal(e.Date) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return normalize(out)
}
