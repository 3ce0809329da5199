package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

// KeyState derives held keys from terminal press and repeat events
// Terminals report no key release, so a key counts as held until
// holdWindow passes without another press or auto-repeat
type KeyState struct {
	mu         sync.Mutex
	holdWindow time.Duration
	lastLeft   time.Time
	lastRight  time.Time
	fireQueued bool
	lastFire   time.Time
}

// NewKeyState creates a tracker; zero window selects the default
func NewKeyState(holdWindow time.Duration) *KeyState {
	if holdWindow <= 0 {
		holdWindow = constants.KeyHoldWindow
	}
	return &KeyState{holdWindow: holdWindow}
}

// Press records a movement or fire intent at now
func (k *KeyState) Press(intent Intent, now time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	switch intent {
	case IntentLeft:
		k.lastLeft = now
		k.lastRight = time.Time{} // Reversing direction releases the other key
	case IntentRight:
		k.lastRight = now
		k.lastLeft = time.Time{}
	case IntentFire:
		k.fireQueued = true
		k.lastFire = now
	}
}

// Poll implements core.InputSource
// A single fire tap is reported at least once even if it is older than the window
func (k *KeyState) Poll(now time.Time) core.Input {
	k.mu.Lock()
	defer k.mu.Unlock()

	in := core.Input{
		Left:  k.held(k.lastLeft, now),
		Right: k.held(k.lastRight, now),
		Fire:  k.fireQueued || k.held(k.lastFire, now),
	}
	k.fireQueued = false
	return in
}

// Reset releases every key
func (k *KeyState) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.lastLeft, k.lastRight, k.lastFire = time.Time{}, time.Time{}, time.Time{}
	k.fireQueued = false
}

func (k *KeyState) held(last, now time.Time) bool {
	return !last.IsZero() && now.Sub(last) < k.holdWindow
}
