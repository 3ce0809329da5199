package core

// Snapshot is the render-visible copy of a session
type Snapshot struct {
	Frame   uint64
	Wave    int
	Score   int
	Player  Player
	Enemies []Enemy // Alive only
	Bullets []Bullet
}

// Snapshot copies the render-visible state; the result does not alias the session
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:   s.Frame,
		Wave:    s.Wave,
		Score:   s.Score,
		Player:  s.Player,
		Enemies: make([]Enemy, 0, len(s.Enemies)),
		Bullets: append([]Bullet(nil), s.Bullets...),
	}
	for _, e := range s.Enemies {
		if e.Alive {
			snap.Enemies = append(snap.Enemies, e)
		}
	}
	return snap
}
