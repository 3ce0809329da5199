package leaderboard

import (
	"sort"

	"github.com/lixenwraith/vi-invaders/constants"
	"github.com/lixenwraith/vi-invaders/core"
)

// Entry is one leaderboard row
type Entry = core.LeaderboardEntry

// MaxEntries caps every leaderboard
const MaxEntries = constants.MaxLeaderboardEntries

// Merge appends e, stable-sorts descending by score and keeps the top MaxEntries
// The input slice is never modified or aliased
func Merge(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, e)
	return normalize(out)
}

// Normalize sorts and caps a list read from an external store
func Normalize(entries []Entry) []Entry {
	return normalize(append([]Entry(nil), entries...))
}

func normalize(out []Entry) []Entry {
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

// Qualifies reports whether score would enter the board
func Qualifies(entries []Entry, score int) bool {
	if len(entries) < MaxEntries {
		return true
	}
	return score > entries[len(entries)-1].Score
}
