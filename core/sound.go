package core

// SoundType represents different sound effects
type SoundType int

const (
	SoundShot      SoundType = iota // Player shot fired
	SoundExplosion                  // Enemy destroyed
	SoundLose                       // Game lost
	SoundSubmit                     // Score submitted
	SoundTypeCount
)

var soundNames = [...]string{"shot", "explosion", "lose", "submit"}

func (s SoundType) String() string {
	if s >= 0 && int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// ParseSoundType maps a sound name back to its type
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// SoundPlayer triggers named effects; Play must never block the caller
type SoundPlayer interface {
	Play(SoundType) bool
}

// SoundFunc adapts a function to SoundPlayer
type SoundFunc func(SoundType) bool

// Play implements SoundPlayer
func (f SoundFunc) Play(s SoundType) bool { return f(s) }
