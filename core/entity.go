package core

import "time"

// Owner identifies who fired a bullet and therefore its direction of travel
type Owner int

const (
	OwnerPlayer Owner = iota // Moves up
	OwnerEnemy               // Moves down
)

func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// Player is the ship; Y is fixed for the lifetime of a session
type Player struct {
	X, Y float64
}

// Enemy is one member of the formation
// Position changes only through formation movement, never individually
type Enemy struct {
	X, Y  float64
	Alive bool
	Type  int // Row index mod 4, cosmetic only
}

// Bullet is a projectile; Owner fixes its direction
type Bullet struct {
	X, Y  float64
	Owner Owner
}

// LeaderboardEntry is one finished game result
type LeaderboardEntry struct {
	Name  string    `yaml:"name" json:"name"`
	Score int       `yaml:"score" json:"score"`
	Date  time.Time `yaml:"date" json:"date"`
}

// Input is the held-key snapshot polled once per tick
type Input struct {
	Left, Right, Fire bool
}

// InputSource yields the current held-key snapshot
// Implementations must be cheap and non-blocking
type InputSource interface {
	Poll(now time.Time) Input
}
