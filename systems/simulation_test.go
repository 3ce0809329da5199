package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-invaders/core"
)

const frame = 16 * time.Millisecond

// TestBasicKill verifies a player bullet on top of an enemy kills it, scores, and is consumed
func TestBasicKill(t *testing.T) {
	sim, s, _ := newTestSim()
	target := s.Enemies[0]
	s.Bullets = append(s.Bullets, core.Bullet{X: target.X, Y: target.Y, Owner: core.OwnerPlayer})

	res := sim.Step(s, core.Input{}, testEpoch.Add(frame))

	assert.Equal(t, core.OutcomeContinue, res.Outcome)
	assert.False(t, s.Enemies[0].Alive)
	assert.Equal(t, sim.Tuning().BaseKillScore*1, s.Score)
	assert.Empty(t, s.Bullets)
	assert.Equal(t, 1, countEvents(res, core.EventEnemyDestroyed))
	assert.Equal(t, len(s.Enemies)-1, s.AliveCount())
}

// TestKillScoreScalesWithWave verifies the kill reward multiplies by the wave number
func TestKillScoreScalesWithWave(t *testing.T) {
	sim, s, _ := newTestSim()
	s.Wave = 4
	target := s.Enemies[3]
	s.Bullets = append(s.Bullets, core.Bullet{X: target.X, Y: target.Y, Owner: core.OwnerPlayer})

	sim.Step(s, core.Input{}, testEpoch.Add(frame))
	assert.Equal(t, sim.Tuning().BaseKillScore*4, s.Score)
}

// TestBulletKillsOnlyOneEnemy verifies a bullet overlapping two enemies consumes on the first
func TestBulletKillsOnlyOneEnemy(t *testing.T) {
	sim, s, _ := newTestSim()
	killAllBut(s, -1)
	s.Enemies[0] = core.Enemy{X: 400, Y: 200, Alive: true}
	s.Enemies[1] = core.Enemy{X: 405, Y: 200, Alive: true}
	s.Bullets = append(s.Bullets, core.Bullet{X: 402, Y: 200, Owner: core.OwnerPlayer})

	sim.Step(s, core.Input{}, testEpoch.Add(frame))
	assert.Equal(t, 1, s.AliveCount())
	assert.Empty(t, s.Bullets)
}

// TestWaveClear verifies killing the last enemy advances the wave in the same tick
func TestWaveClear(t *testing.T) {
	sim, s, _ := newTestSim()
	killAllBut(s, 5)
	last := s.Enemies[5]
	s.Bullets = append(s.Bullets,
		core.Bullet{X: last.X, Y: last.Y, Owner: core.OwnerPlayer},
		core.Bullet{X: 700, Y: 300, Owner: core.OwnerPlayer},
		core.Bullet{X: 50, Y: 300, Owner: core.OwnerEnemy},
	)
	s.Direction = -1

	res := sim.Step(s, core.Input{}, testEpoch.Add(frame))

	require.Equal(t, core.OutcomeContinue, res.Outcome)
	assert.Equal(t, 2, s.Wave)
	assert.Equal(t, sim.Tuning().BaseKillScore, s.Score, "score carries over")

	expected := GenerateWave(sim.Tuning(), 2)
	assert.Equal(t, expected.Enemies, s.Enemies)
	assert.Equal(t, expected.Speed, s.Speed)
	assert.Equal(t, 1.0, s.Direction)
	assert.Equal(t, 1, countEvents(res, core.EventWaveCleared))

	// In-flight bullets survive the wave change
	require.Len(t, s.Bullets, 2)
	assert.Equal(t, core.OwnerPlayer, s.Bullets[0].Owner)
	assert.Equal(t, core.OwnerEnemy, s.Bullets[1].Owner)
}

// TestLossByEnemyBullet verifies an overlapping enemy bullet ends the tick immediately
func TestLossByEnemyBullet(t *testing.T) {
	sim, s, _ := newTestSim()
	s.Score = 70
	killAllBut(s, -1)
	s.Bullets = append(s.Bullets, core.Bullet{X: s.Player.X, Y: s.Player.Y, Owner: core.OwnerEnemy})

	res := sim.Step(s, core.Input{}, testEpoch.Add(frame))

	assert.Equal(t, core.OutcomeLost, res.Outcome)
	assert.Equal(t, core.LossHit, res.Reason)
	assert.Equal(t, 70, s.Score)
	assert.Equal(t, 1, s.Wave, "wave-clear check must be skipped after a loss")
	assert.Equal(t, 1, countEvents(res, core.EventPlayerHit))
}

func TestEnemyBulletNearMiss(t *testing.T) {
	sim, s, _ := newTestSim()
	tun := sim.Tuning()
	// After advancing, horizontal distance equals the sum of half-widths exactly
	x := s.Player.X + (tun.BulletWidth+tun.PlayerWidth)/2
	s.Bullets = append(s.Bullets, core.Bullet{X: x, Y: s.Player.Y, Owner: core.OwnerEnemy})

	res := sim.Step(s, core.Input{}, testEpoch.Add(frame))
	assert.Equal(t, core.OutcomeContinue, res.Outcome)
}

// TestLossByInvasion verifies a drop below the threshold ends the game before collisions
func TestLossByInvasion(t *testing.T) {
	sim, s, _ := newTestSim()
	tun := sim.Tuning()
	killAllBut(s, 7)
	threshold := s.Player.Y - tun.InvasionMargin
	s.Enemies[7].X = tun.FieldWidth - tun.EnemyWidth/2 - 1
	s.Enemies[7].Y = threshold - tun.DropDistance/2

	// Bullet will sit on the dropped enemy, but collision must not run
	afterX := s.Enemies[7].X + s.Speed
	afterY := s.Enemies[7].Y + tun.DropDistance
	s.Bullets = append(s.Bullets, core.Bullet{X: afterX, Y: afterY + tun.BulletSpeed, Owner: core.OwnerPlayer})

	res := sim.Step(s, core.Input{}, testEpoch.Add(frame))

	assert.Equal(t, core.OutcomeLost, res.Outcome)
	assert.Equal(t, core.LossInvasion, res.Reason)
	assert.True(t, s.Enemies[7].Alive)
	assert.Zero(t, s.Score)
	assert.Len(t, s.Bullets, 1)
	assert.Equal(t, -1.0, s.Direction)
}

// TestFormationBounce verifies edge detection, reversal and drop of living enemies only
func TestFormationBounce(t *testing.T) {
	sim, s, _ := newTestSim()
	tun := sim.Tuning()
	killAllBut(s, 7)
	dead := s.Enemies[0]
	s.Enemies[7].X = tun.FieldWidth - tun.EnemyWidth/2 - 1
	s.Enemies[7].Y = 100

	sim.Step(s, core.Input{}, testEpoch.Add(frame))
	assert.Equal(t, -1.0, s.Direction)
	assert.Equal(t, 100+tun.DropDistance, s.Enemies[7].Y)
	assert.Equal(t, dead, s.Enemies[0], "dead enemies never move")

	// Next tick moves back inside the bound without dropping again
	sim.Step(s, core.Input{}, testEpoch.Add(2*frame))
	assert.Equal(t, -1.0, s.Direction)
	assert.Equal(t, 100+tun.DropDistance, s.Enemies[7].Y)
}

func TestFormationBounceLeftEdge(t *testing.T) {
	sim, s, _ := newTestSim()
	tun := sim.Tuning()
	killAllBut(s, 0)
	s.Direction = -1
	s.Enemies[0].X = tun.EnemyWidth/2 + 1

	sim.Step(s, core.Input{}, testEpoch.Add(frame))
	assert.Equal(t, 1.0, s.Direction)
	assert.Equal(t, tun.GridTop+tun.DropDistance, s.Enemies[0].Y)
}

// TestFormationMovesRigidly verifies all living enemies share one displacement
func TestFormationMovesRigidly(t *testing.T) {
	sim, s, _ := newTestSim()
	before := append([]core.Enemy(nil), s.Enemies...)

	sim.Step(s, core.Input{}, testEpoch.Add(frame))
	for i := range s.Enemies {
		assert.InDelta(t, before[i].X+s.Speed, s.Enemies[i].X, 1e-9)
		assert.Equal(t, before[i].Y, s.Enemies[i].Y)
	}
}

func TestPlayerMovement(t *testing.T) {
	sim, s, _ := newTestSim()
	tun := sim.Tuning()
	minX := tun.PlayerWidth / 2
	maxX := tun.FieldWidth - tun.PlayerWidth/2

	tests := []struct {
		name  string
		start float64
		in    core.Input
		want  float64
	}{
		{"left", 400, core.Input{Left: true}, 400 - tun.PlayerSpeed},
		{"right", 400, core.Input{Right: true}, 400 + tun.PlayerSpeed},
		{"left clamp", minX + 2, core.Input{Left: true}, minX},
		{"right clamp", maxX - 2, core.Input{Right: true}, maxX},
		{"both centre", 400, core.Input{Left: true, Right: true}, 400},
		{"both at left edge", minX, core.Input{Left: true, Right: true}, minX + tun.PlayerSpeed},
		{"both at right edge", maxX, core.Input{Left: true, Right: true}, maxX},
		{"none", 123, core.Input{}, 123},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.Player.X = tc.start
			sim.movePlayer(s, tc.in)
			assert.InDelta(t, tc.want, s.Player.X, 1e-9)
		})
	}
}

// TestPlayerFireRateLimit verifies holding fire yields a steady stream at the interval
func TestPlayerFireRateLimit(t *testing.T) {
	sim, s, _ := newTestSim()

	shots := 0
	for i := 0; i < 63; i++ {
		res := sim.Step(s, core.Input{Fire: true}, testEpoch.Add(time.Duration(i)*frame))
		require.Equal(t, core.OutcomeContinue, res.Outcome)
		shots += countEvents(res, core.EventShotFired)
	}
	// Shots at 0, 256, 512 and 768ms
	assert.Equal(t, 4, shots)
}

// TestPlayerFireVariableFrames verifies rate limiting uses elapsed time, not frame counts
func TestPlayerFireVariableFrames(t *testing.T) {
	sim, s, _ := newTestSim()
	interval := sim.Tuning().MinFireInterval

	deltas := []time.Duration{5, 40, 100, 7, 300, 1, 249, 250, 16, 16, 500, 3, 260}
	now := testEpoch
	var shotTimes []time.Time
	for _, d := range deltas {
		now = now.Add(d * time.Millisecond)
		res := sim.Step(s, core.Input{Fire: true}, now)
		if countEvents(res, core.EventShotFired) > 0 {
			shotTimes = append(shotTimes, now)
		}
	}

	require.GreaterOrEqual(t, len(shotTimes), 4)
	for i := 1; i < len(shotTimes); i++ {
		assert.GreaterOrEqual(t, shotTimes[i].Sub(shotTimes[i-1]), interval)
	}
}

func TestPlayerBulletSpawnsAtPlayer(t *testing.T) {
	sim, s, _ := newTestSim()
	s.Player.X = 250
	sim.Step(s, core.Input{Fire: true}, testEpoch.Add(frame))

	require.Len(t, s.Bullets, 1)
	b := s.Bullets[0]
	assert.Equal(t, core.OwnerPlayer, b.Owner)
	assert.Equal(t, 250.0, b.X)
	assert.Equal(t, s.Player.Y-sim.Tuning().BulletSpeed, b.Y, "bullet advances in its spawn tick")
}

// TestEnemyFireSelection verifies the picker indexes over living enemies only
func TestEnemyFireSelection(t *testing.T) {
	sim, s, picker := newTestSim(2)
	s.Enemies[0].Alive = false
	s.Enemies[1].Alive = false
	shooter := s.Enemies[4]
	now := testEpoch.Add(sim.Tuning().EnemyFireInterval)

	res := sim.Step(s, core.Input{}, now)

	require.Equal(t, []int{len(s.Enemies) - 2}, picker.calls)
	require.Len(t, s.Bullets, 1)
	b := s.Bullets[0]
	assert.Equal(t, core.OwnerEnemy, b.Owner)
	assert.Equal(t, shooter.X, b.X)
	assert.Equal(t, shooter.Y+sim.Tuning().BulletSpeed*sim.Tuning().EnemyBulletSpeedFactor, b.Y)
	assert.Equal(t, now, s.LastEnemyShot)
	assert.Equal(t, 1, countEvents(res, core.EventEnemyFired))

	// Interval not yet elapsed again
	sim.Step(s, core.Input{}, now.Add(frame))
	assert.Len(t, picker.calls, 1)
}

// TestEnemyFireRateConstantAcrossWaves verifies enemy fire does not escalate
func TestEnemyFireRateConstantAcrossWaves(t *testing.T) {
	for _, wave := range []int{1, 5, 30} {
		sim, s, picker := newTestSim()
		s.Wave = wave
		interval := sim.Tuning().EnemyFireInterval

		sim.Step(s, core.Input{}, testEpoch.Add(interval-time.Millisecond))
		assert.Empty(t, picker.calls, "wave %d fired early", wave)

		sim.Step(s, core.Input{}, testEpoch.Add(interval))
		assert.Len(t, picker.calls, 1, "wave %d did not fire on interval", wave)
	}
}

func TestNoEnemyFireWithoutLivingEnemies(t *testing.T) {
	sim, s, picker := newTestSim()
	killAllBut(s, -1)

	res := sim.Step(s, core.Input{}, testEpoch.Add(2*time.Second))
	assert.Empty(t, picker.calls)
	assert.Zero(t, countEvents(res, core.EventEnemyFired))
	assert.Equal(t, 2, s.Wave)
}

// TestBulletsLeaveField verifies out-of-bounds bullets are dropped in both directions
func TestBulletsLeaveField(t *testing.T) {
	sim, s, _ := newTestSim()
	tun := sim.Tuning()
	s.Bullets = append(s.Bullets,
		core.Bullet{X: 790, Y: 3, Owner: core.OwnerPlayer},
		core.Bullet{X: 0, Y: tun.FieldHeight - 2, Owner: core.OwnerEnemy},
		core.Bullet{X: 790, Y: 300, Owner: core.OwnerPlayer},
		core.Bullet{X: 0, Y: 300, Owner: core.OwnerEnemy},
	)

	sim.advanceBullets(s)

	require.Len(t, s.Bullets, 2)
	assert.Equal(t, 300-tun.BulletSpeed, s.Bullets[0].Y)
	assert.Equal(t, 300+tun.BulletSpeed*tun.EnemyBulletSpeedFactor, s.Bullets[1].Y)
}

// TestCollisionBoundary verifies touching edges do not count as overlap
func TestCollisionBoundary(t *testing.T) {
	// Half-extent sums: x = (4+40)/2 = 22, y = (10+30)/2 = 20
	assert.False(t, Overlaps(0, 0, 4, 10, 22, 0, 40, 30), "exact x boundary")
	assert.False(t, Overlaps(0, 0, 4, 10, 0, 20, 40, 30), "exact y boundary")
	assert.True(t, Overlaps(0, 0, 4, 10, 21.999, 19.999, 40, 30))
	assert.True(t, Overlaps(5, 5, 4, 10, 5, 5, 40, 30))
	assert.False(t, Overlaps(0, 0, 4, 10, -22, 0, 40, 30))
}

func TestFrameCounter(t *testing.T) {
	sim, s, _ := newTestSim()
	for i := 1; i <= 5; i++ {
		sim.Step(s, core.Input{}, testEpoch.Add(time.Duration(i)*frame))
	}
	assert.Equal(t, uint64(5), s.Frame)
}

// TestTickDeterminism verifies identical seeds and inputs produce identical sessions
func TestTickDeterminism(t *testing.T) {
	run := func() (*core.Session, int) {
		sim := NewSimulation(core.DefaultTuning(), rand.New(rand.NewSource(7)))
		s := sim.Reset(testEpoch)
		s.ID = ""
		ticks := 0
		for i := 0; i < 3000; i++ {
			in := core.Input{
				Left:  i%7 < 3,
				Right: i%11 < 5,
				Fire:  i%3 == 0,
			}
			ticks++
			if sim.Step(s, in, testEpoch.Add(time.Duration(i)*frame)).Outcome == core.OutcomeLost {
				break
			}
		}
		return s, ticks
	}

	a, ticksA := run()
	b, ticksB := run()
	assert.Equal(t, ticksA, ticksB)
	assert.Equal(t, a, b)
}
