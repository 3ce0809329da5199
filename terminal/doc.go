// Package terminal restores the tty after a crash and picks the color depth
// the tcell screen should use. tcell owns the terminal during normal play.
package terminal
