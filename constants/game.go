package constants

import "time"

// Game Loop Timing Constants
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS), one simulation tick per frame
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the elapsed time a host reports after a stall
	MaxFrameDelta = 250 * time.Millisecond

	// SaveTimeout bounds a single leaderboard persistence attempt
	SaveTimeout = 3 * time.Second

	// SaveQueueSize is the number of pending leaderboard writes buffered by the board
	SaveQueueSize = 16
)

// Play Field
const (
	// FieldWidth is the logical play-field width in pixels
	FieldWidth = 800.0

	// FieldHeight is the logical play-field height in pixels
	FieldHeight = 600.0
)

// Name Entry
const (
	// NameLength is the exact length of a leaderboard name
	NameLength = 3

	// NameAlphabet lists characters accepted in a leaderboard name
	NameAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// MaxLeaderboardEntries caps the persisted leaderboard
	MaxLeaderboardEntries = 10
)
