package systems

import (
	"math"

	"github.com/lixenwraith/vi-invaders/core"
)

// Overlaps tests two centred axis-aligned boxes given full widths and heights
// Touching edges (distance equal to the sum of half-extents) do not overlap
func Overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return math.Abs(ax-bx) < (aw+bw)/2 && math.Abs(ay-by) < (ah+bh)/2
}

// resolvePlayerHits kills enemies struck by player bullets
// Each bullet kills at most one enemy and is consumed
func (sim *Simulation) resolvePlayerHits(s *core.Session, res *core.StepResult) {
	t := sim.tuning

	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.Owner != core.OwnerPlayer {
			kept = append(kept, b)
			continue
		}

		hit := false
		for i := range s.Enemies {
			e := &s.Enemies[i]
			if !e.Alive {
				continue
			}
			if Overlaps(b.X, b.Y, t.BulletWidth, t.BulletHeight, e.X, e.Y, t.EnemyWidth, t.EnemyHeight) {
				e.Alive = false
				points := t.BaseKillScore * s.Wave
				s.Score += points
				res.Events = append(res.Events, core.Event{Type: core.EventEnemyDestroyed, X: e.X, Y: e.Y, Points: points})
				hit = true
				break
			}
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	s.Bullets = kept
}

// resolveEnemyHits reports whether any enemy bullet overlaps the player
func (sim *Simulation) resolveEnemyHits(s *core.Session, res *core.StepResult) bool {
	t := sim.tuning
	for _, b := range s.Bullets {
		if b.Owner != core.OwnerEnemy {
			continue
		}
		if Overlaps(b.X, b.Y, t.BulletWidth, t.BulletHeight, s.Player.X, s.Player.Y, t.PlayerWidth, t.PlayerHeight) {
			res.Events = append(res.Events, core.Event{Type: core.EventPlayerHit, X: s.Player.X, Y: s.Player.Y})
			return true
		}
	}
	return false
}
