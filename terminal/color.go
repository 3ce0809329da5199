package terminal

import (
	"fmt"
	"os"
	"strings"
)

// ColorMode is the color depth requested from the screen
type ColorMode uint8

const (
	ColorMode256 ColorMode = iota
	ColorModeTrueColor
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves the --color flag; auto detects from the environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DetectColorMode(), nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	default:
		return ColorMode256, fmt.Errorf("color mode must be auto, truecolor or 256; got %q", s)
	}
}

// Apply configures tcell for mode; must run before the screen is created
func (m ColorMode) Apply() {
	if m == ColorMode256 {
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}
}

func detectFromEnv(getenv func(string) string) ColorMode {
	colorterm := getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if getenv("KITTY_WINDOW_ID") != "" ||
		getenv("KONSOLE_VERSION") != "" ||
		getenv("ITERM_SESSION_ID") != "" ||
		getenv("ALACRITTY_WINDOW_ID") != "" ||
		getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
