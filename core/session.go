package core

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-game aggregate, owned by the state machine while playing
type Session struct {
	ID string

	Wave  int
	Score int

	Player  Player
	Enemies []Enemy
	Bullets []Bullet

	// Formation velocity: Speed is per-tick magnitude, Direction is +1 or -1
	Speed     float64
	Direction float64

	LastPlayerShot time.Time
	LastEnemyShot  time.Time

	Frame uint64
}

// NewSession returns a session with fresh values and no enemies
// The caller populates the first wave
func NewSession(t Tuning, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Wave:      1,
		Player:    Player{X: t.FieldWidth / 2, Y: t.PlayerY},
		Bullets:   make([]Bullet, 0, 32),
		Direction: 1,
		// Zero value lets the first player shot through immediately
		LastPlayerShot: time.Time{},
		LastEnemyShot:  now,
	}
}

// AliveCount returns the number of living enemies
func (s *Session) AliveCount() int {
	n := 0
	for i := range s.Enemies {
		if s.Enemies[i].Alive {
			n++
		}
	}
	return n
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	c := *s
	c.Enemies = append([]Enemy(nil), s.Enemies...)
	c.Bullets = append([]Bullet(nil), s.Bullets...)
	return &c
}
