package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-invaders/engine"
)

// Machine routes terminal key events according to the game phase
// Movement feeds the KeyState, typing feeds the NameBuffer, the rest become Actions
type Machine struct {
	table *KeyTable
	keys  *KeyState
	name  NameBuffer
}

// NewMachine creates a router over table; nil selects the default bindings
func NewMachine(table *KeyTable, keys *KeyState) *Machine {
	if table == nil {
		table = DefaultKeyTable()
	}
	if keys == nil {
		keys = NewKeyState(0)
	}
	return &Machine{table: table, keys: keys}
}

// Keys returns the held-key tracker polled by the host loop
func (m *Machine) Keys() *KeyState {
	return m.keys
}

// Name returns the name typed so far
func (m *Machine) Name() string {
	return m.name.String()
}

// ResetName clears the name buffer, called when a new session starts
func (m *Machine) ResetName() {
	m.name.Reset()
}

// Handle processes one key event in phase
func (m *Machine) Handle(ev *tcell.EventKey, phase engine.Phase, now time.Time) Action {
	// Ctrl+C always quits, even mid-name
	if ev.Key() == tcell.KeyCtrlC {
		return ActionQuit
	}

	if phase == engine.PhaseEnterName {
		return m.handleName(ev)
	}

	intent := m.table.Lookup(ev)
	switch phase {
	case engine.PhaseMenu:
		switch intent {
		case IntentConfirm, IntentFire:
			return ActionStart
		case IntentQuit:
			return ActionQuit
		case IntentToggleMute:
			return ActionToggleMute
		}

	case engine.PhasePlaying:
		switch intent {
		case IntentLeft, IntentRight, IntentFire:
			m.keys.Press(intent, now)
		case IntentToggleMute:
			return ActionToggleMute
		case IntentQuit:
			return ActionQuit
		}

	case engine.PhaseGameOver:
		switch intent {
		case IntentConfirm:
			m.keys.Reset()
			return ActionPlayAgain
		case IntentQuit:
			return ActionQuit
		case IntentToggleMute:
			return ActionToggleMute
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'r' {
			m.keys.Reset()
			return ActionPlayAgain
		}
	}
	return ActionNone
}

// handleName edits the name buffer; every printable key is text here
func (m *Machine) handleName(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyRune:
		m.name.Insert(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		m.name.Backspace()
	case tcell.KeyEnter:
		if m.name.Full() {
			return ActionSubmit
		}
	}
	return ActionNone
}
