package systems

import "github.com/lixenwraith/vi-invaders/core"

// advanceBullets moves every bullet along its owner's direction and drops those leaving the field
func (sim *Simulation) advanceBullets(s *core.Session) {
	t := sim.tuning
	enemySpeed := t.BulletSpeed * t.EnemyBulletSpeedFactor

	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.Owner == core.OwnerPlayer {
			b.Y -= t.BulletSpeed
		} else {
			b.Y += enemySpeed
		}
		if b.Y < 0 || b.Y > t.FieldHeight {
			continue
		}
		kept = append(kept, b)
	}
	s.Bullets = kept
}
