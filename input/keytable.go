package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps terminal keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter)
	SpecialKeys map[tcell.Key]Intent

	// Rune bindings outside name entry
	Runes map[rune]Intent
}

// DefaultKeyTable returns arrow and vi-style bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyLeft:       IntentLeft,
			tcell.KeyRight:      IntentRight,
			tcell.KeyUp:         IntentFire,
			tcell.KeyEnter:      IntentConfirm,
			tcell.KeyBackspace:  IntentBackspace,
			tcell.KeyBackspace2: IntentBackspace,
			tcell.KeyEscape:     IntentQuit,
			tcell.KeyCtrlC:      IntentQuit,
			tcell.KeyCtrlQ:      IntentQuit,
		},
		Runes: map[rune]Intent{
			'h': IntentLeft,
			'a': IntentLeft,
			'l': IntentRight,
			'd': IntentRight,
			' ': IntentFire,
			'k': IntentFire,
			'm': IntentToggleMute,
			'q': IntentQuit,
		},
	}
}

// Lookup resolves ev to an intent, IntentNone when unbound
func (t *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return t.Runes[ev.Rune()]
	}
	return t.SpecialKeys[ev.Key()]
}
