package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionFreshValues(t *testing.T) {
	tun := DefaultTuning()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewSession(tun, now)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, s.Wave)
	assert.Zero(t, s.Score)
	assert.Equal(t, tun.FieldWidth/2, s.Player.X)
	assert.Equal(t, tun.PlayerY, s.Player.Y)
	assert.Empty(t, s.Bullets)
	assert.Equal(t, 1.0, s.Direction)
	assert.True(t, s.LastPlayerShot.IsZero())
	assert.Equal(t, now, s.LastEnemyShot)

	other := NewSession(tun, now)
	assert.NotEqual(t, s.ID, other.ID, "session IDs must be unique")
}

func TestSnapshotFiltersDeadAndDoesNotAlias(t *testing.T) {
	s := NewSession(DefaultTuning(), time.Now())
	s.Enemies = []Enemy{
		{X: 1, Y: 1, Alive: true},
		{X: 2, Y: 2, Alive: false},
		{X: 3, Y: 3, Alive: true, Type: 2},
	}
	s.Bullets = append(s.Bullets, Bullet{X: 5, Y: 5, Owner: OwnerEnemy})

	snap := s.Snapshot()
	require.Len(t, snap.Enemies, 2)
	assert.Equal(t, 2, snap.Enemies[1].Type)
	assert.Equal(t, 2, s.AliveCount())

	snap.Bullets[0].X = 99
	snap.Enemies[0].X = 99
	assert.Equal(t, 5.0, s.Bullets[0].X)
	assert.Equal(t, 1.0, s.Enemies[0].X)
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSession(DefaultTuning(), time.Now())
	s.Enemies = []Enemy{{X: 1, Alive: true}}
	c := s.Clone()
	c.Enemies[0].Alive = false
	c.Bullets = append(c.Bullets, Bullet{})
	assert.True(t, s.Enemies[0].Alive)
	assert.Empty(t, s.Bullets)
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"AB1", true},
		{"abc", true},
		{"000", true},
		{"AB", false},
		{"ABCD", false},
		{"AB!", false},
		{"A B", false},
		{"ÄBC", false},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.valid, ValidName(tc.name), "name %q", tc.name)
	}
}

func TestDefaultTuningValid(t *testing.T) {
	require.NoError(t, DefaultTuning().Validate())

	bad := DefaultTuning()
	bad.RowCap = bad.BaseRows - 1
	assert.Error(t, bad.Validate())

	bad = DefaultTuning()
	bad.PlayerY = bad.FieldHeight + 1
	assert.Error(t, bad.Validate())

	bad = DefaultTuning()
	bad.MinFireInterval = 0
	assert.Error(t, bad.Validate())
}

func TestSoundNames(t *testing.T) {
	for s := SoundShot; s < SoundTypeCount; s++ {
		got, ok := ParseSoundType(s.String())
		require.True(t, ok, "sound %d", s)
		assert.Equal(t, s, got)
	}
	_, ok := ParseSoundType("kazoo")
	assert.False(t, ok)
}
