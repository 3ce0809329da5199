package input

import (
	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

// NameBuffer collects leaderboard initials
type NameBuffer struct {
	runes []rune
}

// Insert appends r if it is allowed and the buffer is not full
func (b *NameBuffer) Insert(r rune) bool {
	if !core.IsNameRune(r) || len(b.runes) >= constants.NameLength {
		return false
	}
	b.runes = append(b.runes, r)
	return true
}

// Backspace removes the last character
func (b *NameBuffer) Backspace() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// Full reports whether the buffer holds a complete name
func (b *NameBuffer) Full() bool {
	return len(b.runes) == constants.NameLength
}

// Len returns the number of characters entered
func (b *NameBuffer) Len() int {
	return len(b.runes)
}

func (b *NameBuffer) String() string {
	return string(b.runes)
}

// Reset clears the buffer
func (b *NameBuffer) Reset() {
	b.runes = b.runes[:0]
}
