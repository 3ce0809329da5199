package input

// Intent is what a key press asks the game to do
type Intent uint8

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentFire
	IntentConfirm // Start, submit or play again depending on phase
	IntentBackspace
	IntentToggleMute
	IntentQuit
)

var intentNames = [...]string{"none", "left", "right", "fire", "confirm", "backspace", "toggle_mute", "quit"}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// Action is a phase-level request produced by the Machine for the host
type Action uint8

const (
	ActionNone Action = iota
	ActionStart
	ActionSubmit
	ActionPlayAgain
	ActionToggleMute
	ActionQuit
)

var actionNames = [...]string{"none", "start", "submit", "play_again", "toggle_mute", "quit"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}
