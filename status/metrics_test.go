package status

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-invaders/core"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTick(&core.Session{}, nil)
		m.ObserveGameOver(10, core.LossHit)
		m.ObserveSave(nil, 1)
		m.ObserveSoundDropped()
		_ = m.Registry()
	})
}

func TestObserveTickCountsEvents(t *testing.T) {
	m := NewMetrics()
	s := &core.Session{Score: 30, Wave: 2}
	m.ObserveTick(s, []core.Event{
		{Type: core.EventShotFired},
		{Type: core.EventShotFired},
		{Type: core.EventEnemyFired},
		{Type: core.EventEnemyDestroyed},
		{Type: core.EventWaveCleared},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.shots.WithLabelValues("player")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shots.WithLabelValues("enemy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.kills))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wavesCleared))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.score))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.wave))
}

func TestObserveSaveAndGameOver(t *testing.T) {
	m := NewMetrics()
	m.ObserveSave(nil, 4)
	m.ObserveSave(errors.New("disk full"), 0)
	m.ObserveGameOver(120, core.LossInvasion)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saves.WithLabelValues("error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.leaderboardLen))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gamesFinished.WithLabelValues("invasion")))
}

func TestServerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.ObserveTick(&core.Session{Wave: 1}, nil)

	srv := NewServer("127.0.0.1:0", m, nil)
	require.NoError(t, srv.Init(context.Background()))
	require.NoError(t, srv.Start())
	defer srv.Stop()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "vi_invaders_ticks_total 1")

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop(), "stop must be idempotent")
}

func TestServerStartWithoutInit(t *testing.T) {
	srv := NewServer("127.0.0.1:0", NewMetrics(), nil)
	assert.Error(t, srv.Start())
	assert.NoError(t, srv.Stop())
}
