//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package terminal

import "os"

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	return detectFromEnv(os.Getenv)
}

// resetTerminalMode is a no-op where termios does not exist
func resetTerminalMode() {}
