package terminal

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// Restore sequences, written in this order by EmergencyReset
var (
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiSGR0           = []byte("\x1b[0m")
	csiAutoWrapOn     = []byte("\x1b[?7h")
	csiRIS            = []byte("\x1bc") // Reset to Initial State
)

var resetSequence = [][]byte{
	csiMouseMotionOff, csiMouseDragOff, csiMouseClickOff, csiMouseSGROff,
	csiCursorShow, csiAltScreenExit, csiSGR0, csiAutoWrapOn, csiRIS,
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery when the screen cannot be finalized normally
func EmergencyReset(w io.Writer) {
	for _, seq := range resetSequence {
		w.Write(seq)
	}

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// ReportCrash writes a panic value and stack in raw-mode safe line endings
func ReportCrash(w io.Writer, what string, r any) {
	fmt.Fprintf(w, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", what, r)
	fmt.Fprintf(w, "Stack Trace:\r\n%s\r\n", debug.Stack())
}
