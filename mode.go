package quell

import "os"

// captureMode decides whether the capture hook takes a backtrace for a
// protected call. The mode is fixed by the entry point (Catch,
// CatchBacktrace, CatchNoBacktrace) so the choice is visible at the call
// site rather than buried in a parameter.
type captureMode byte

const (
	captureAuto captureMode = iota
	captureAlways
	captureNever
)

func (m captureMode) String() string {
	switch m {
	case captureAuto:
		return "AUTO"
	case captureAlways:
		return "ALWAYS"
	case captureNever:
		return "NEVER"
	default:
		return "UNKNOWN"
	}
}

// enabled resolves the mode for a single call. Auto follows the runtime's
// own traceback convention: GOTRACEBACK=none (or 0) disables capture,
// anything else enables it.
func (m captureMode) enabled() bool {
	switch m {
	case captureAlways:
		return true
	case captureNever:
		return false
	}

	switch os.Getenv("GOTRACEBACK") {
	case "none", "0":
		return false
	}

	return true
}
