package systems

import (
	"time"

	"github.com/lixenwraith/vi-invaders/core"
)

// movePlayer applies left then right, each clamped to the field
// With both keys held, left is applied first and right second
func (sim *Simulation) movePlayer(s *core.Session, in core.Input) {
	t := sim.tuning
	minX := t.PlayerWidth / 2
	maxX := t.FieldWidth - t.PlayerWidth/2

	if in.Left {
		s.Player.X -= t.PlayerSpeed
		if s.Player.X < minX {
			s.Player.X = minX
		}
	}
	if in.Right {
		s.Player.X += t.PlayerSpeed
		if s.Player.X > maxX {
			s.Player.X = maxX
		}
	}
}

// firePlayer spawns a bullet at most once per MinFireInterval of elapsed time
func (sim *Simulation) firePlayer(s *core.Session, in core.Input, now time.Time, res *core.StepResult) {
	if !in.Fire {
		return
	}
	if now.Sub(s.LastPlayerShot) < sim.tuning.MinFireInterval {
		return
	}

	s.Bullets = append(s.Bullets, core.Bullet{X: s.Player.X, Y: s.Player.Y, Owner: core.OwnerPlayer})
	s.LastPlayerShot = now
	res.Events = append(res.Events, core.Event{Type: core.EventShotFired, X: s.Player.X, Y: s.Player.Y})
}
