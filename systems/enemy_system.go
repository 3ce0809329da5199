package systems

import (
	"time"

	"github.com/lixenwraith/vi-invaders/core"
)

// fireEnemy picks one living enemy uniformly at random every EnemyFireInterval
// The interval is constant across waves
func (sim *Simulation) fireEnemy(s *core.Session, now time.Time, res *core.StepResult) {
	if now.Sub(s.LastEnemyShot) < sim.tuning.EnemyFireInterval {
		return
	}

	alive := s.AliveCount()
	if alive == 0 {
		return
	}

	k := sim.picker.Intn(alive)
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive {
			continue
		}
		if k == 0 {
			s.Bullets = append(s.Bullets, core.Bullet{X: e.X, Y: e.Y, Owner: core.OwnerEnemy})
			s.LastEnemyShot = now
			res.Events = append(res.Events, core.Event{Type: core.EventEnemyFired, X: e.X, Y: e.Y})
			return
		}
		k--
	}
}

// advanceFormation shifts every living enemy by Speed*Direction
// Returns true when any living enemy is outside the horizontal bounds afterwards
func (sim *Simulation) advanceFormation(s *core.Session) bool {
	t := sim.tuning
	minX := t.EnemyWidth / 2
	maxX := t.FieldWidth - t.EnemyWidth/2
	dx := s.Speed * s.Direction

	mustDrop := false
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive {
			continue
		}
		e.X += dx
		if e.X > maxX || e.X < minX {
			mustDrop = true
		}
	}
	return mustDrop
}

// dropFormation reverses direction and lowers every living enemy
// Returns true when the formation has reached the player row
func (sim *Simulation) dropFormation(s *core.Session) bool {
	t := sim.tuning
	threshold := s.Player.Y - t.InvasionMargin

	s.Direction = -s.Direction
	landed := false
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive {
			continue
		}
		e.Y += t.DropDistance
		if e.Y > threshold {
			landed = true
		}
	}
	return landed
}

// checkWaveClear advances to the next wave once no enemy is alive
// Score and in-flight bullets carry over
func (sim *Simulation) checkWaveClear(s *core.Session, res *core.StepResult) {
	if s.AliveCount() > 0 {
		return
	}

	s.Wave++
	w := GenerateWave(sim.tuning, s.Wave)
	s.Enemies = w.Enemies
	s.Speed = w.Speed
	s.Direction = 1
	res.Events = append(res.Events, core.Event{Type: core.EventWaveCleared, Wave: s.Wave})
}
