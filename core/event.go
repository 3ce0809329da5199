package core

// EventType classifies what happened during a tick
type EventType int

const (
	EventShotFired EventType = iota
	EventEnemyFired
	EventEnemyDestroyed
	EventWaveCleared
	EventPlayerHit
	EventFormationLanded
)

var eventNames = [...]string{"shot_fired", "enemy_fired", "enemy_destroyed", "wave_cleared", "player_hit", "formation_landed"}

func (e EventType) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// Event is one observable occurrence inside a tick
type Event struct {
	Type EventType
	X, Y float64
	// Wave is the wave number after the event (set for EventWaveCleared)
	Wave int
	// Points awarded (set for EventEnemyDestroyed)
	Points int
}

// Outcome is the terminal status of a tick
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeLost
)

// LossReason distinguishes the two designed loss conditions
type LossReason int

const (
	LossNone     LossReason = iota
	LossHit                 // Enemy bullet overlapped the player
	LossInvasion            // Formation reached the player row
)

func (r LossReason) String() string {
	switch r {
	case LossHit:
		return "hit"
	case LossInvasion:
		return "invasion"
	default:
		return "none"
	}
}

// StepResult is returned by a single simulation tick
type StepResult struct {
	Outcome Outcome
	Reason  LossReason
	Events  []Event
}
