package engine

import "errors"

var (
	// ErrInvalidTransition is returned when an action is not allowed in the current phase
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrInvalidName is returned for names that are not exactly three allowed characters
	ErrInvalidName = errors.New("invalid leaderboard name")
)

// Phase is the state of the game state machine
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseEnterName
	PhaseGameOver
	PhaseExited
)

// String returns the phase name for logging and the HUD
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	case PhaseEnterName:
		return "EnterName"
	case PhaseGameOver:
		return "GameOver"
	case PhaseExited:
		return "Exited"
	default:
		return "Unknown"
	}
}

var validTransitions = map[Phase][]Phase{
	PhaseMenu:      {PhasePlaying, PhaseExited},
	PhasePlaying:   {PhaseEnterName},
	PhaseEnterName: {PhaseGameOver},
	PhaseGameOver:  {PhasePlaying, PhaseExited},
}

// CanTransition checks if a phase transition is valid
func CanTransition(from, to Phase) bool {
	for _, phase := range validTransitions[from] {
		if phase == to {
			return true
		}
	}
	return false
}
