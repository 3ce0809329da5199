package status

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/vi-invaders/core"
)

const namespace = "vi_invaders"

// Metrics is the central metrics facade
// All methods are nil-safe so components can run without instrumentation
type Metrics struct {
	registry *prometheus.Registry

	ticks          prometheus.Counter
	shots          *prometheus.CounterVec
	kills          prometheus.Counter
	wavesCleared   prometheus.Counter
	gamesFinished  *prometheus.CounterVec
	saves          *prometheus.CounterVec
	soundsDropped  prometheus.Counter
	score          prometheus.Gauge
	wave           prometheus.Gauge
	finalScore     prometheus.Histogram
	leaderboardLen prometheus.Gauge
}

// NewMetrics registers all collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "ticks_total",
			Help: "Simulation ticks executed.",
		}),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "shots_total",
			Help: "Bullets fired by owner.",
		}, []string{"owner"}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "enemies_destroyed_total",
			Help: "Enemies destroyed by player bullets.",
		}),
		wavesCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "waves_cleared_total",
			Help: "Waves cleared across all sessions.",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "games_finished_total",
			Help: "Finished games by loss reason.",
		}, []string{"reason"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "leaderboard_saves_total",
			Help: "Leaderboard persistence attempts by result.",
		}, []string{"result"}),
		soundsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sounds_dropped_total",
			Help: "Sound requests dropped because the queue was full.",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "session_score",
			Help: "Score of the current session.",
		}),
		wave: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "session_wave",
			Help: "Wave number of the current session.",
		}),
		finalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "final_score",
			Help:    "Distribution of final scores.",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		}),
		leaderboardLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "leaderboard_entries",
			Help: "Entries currently held by the leaderboard.",
		}),
	}

	m.registry.MustRegister(
		m.ticks, m.shots, m.kills, m.wavesCleared, m.gamesFinished,
		m.saves, m.soundsDropped, m.score, m.wave, m.finalScore, m.leaderboardLen,
	)
	return m
}

// Registry exposes the underlying registry for HTTP exposition and tests
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveTick records one executed tick and its events
func (m *Metrics) ObserveTick(s *core.Session, events []core.Event) {
	if m == nil {
		return
	}
	m.ticks.Inc()
	for _, ev := range events {
		switch ev.Type {
		case core.EventShotFired:
			m.shots.WithLabelValues(core.OwnerPlayer.String()).Inc()
		case core.EventEnemyFired:
			m.shots.WithLabelValues(core.OwnerEnemy.String()).Inc()
		case core.EventEnemyDestroyed:
			m.kills.Inc()
		case core.EventWaveCleared:
			m.wavesCleared.Inc()
		}
	}
	m.score.Set(float64(s.Score))
	m.wave.Set(float64(s.Wave))
}

// ObserveGameOver records a finished game
func (m *Metrics) ObserveGameOver(score int, reason core.LossReason) {
	if m == nil {
		return
	}
	m.gamesFinished.WithLabelValues(reason.String()).Inc()
	m.finalScore.Observe(float64(score))
}

// ObserveSave records a leaderboard persistence attempt
func (m *Metrics) ObserveSave(err error, entries int) {
	if m == nil {
		return
	}
	if err != nil {
		m.saves.WithLabelValues("error").Inc()
		return
	}
	m.saves.WithLabelValues("ok").Inc()
	m.leaderboardLen.Set(float64(entries))
}

// ObserveSoundDropped records a sound request the audio queue could not take
func (m *Metrics) ObserveSoundDropped() {
	if m == nil {
		return
	}
	m.soundsDropped.Inc()
}
