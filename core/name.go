package core

import (
	"strings"

	"github.com/lixenwraith/vi-invaders/constants"
)

// IsNameRune reports whether r may appear in a leaderboard name
func IsNameRune(r rune) bool {
	return r < 128 && strings.ContainsRune(constants.NameAlphabet, r)
}

// ValidName reports whether name is exactly NameLength allowed characters
func ValidName(name string) bool {
	n := 0
	for _, r := range name {
		if !IsNameRune(r) {
			return false
		}
		n++
	}
	return n == constants.NameLength
}
