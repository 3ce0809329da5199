package constants

import "time"

// Terminal Input
const (
	// KeyHoldWindow is how long a key counts as held after its last press or auto-repeat.
	// Terminals report no key release; the window must exceed the typical repeat delay.
	KeyHoldWindow = 180 * time.Millisecond
)

// Terminal Layout
const (
	// HUDRows is the number of terminal rows reserved above the field
	HUDRows = 1

	// StatusRows is the number of terminal rows reserved below the field
	StatusRows = 1
)

// Window (GUI) Layout
const (
	WindowTitle = "vi-invaders"
	WindowScale = 1
)
