package quell

import "fmt"

// PanicData describes a panic caught by one of the Catch variants: the value
// the panic carried, the source position it was raised at, and an optional
// backtrace captured while the panic was unwinding.
//
// PanicData implements error, so a caught panic can flow through ordinary
// error handling.
type PanicData struct {
	// Payload is the value that was passed to panic. It is not guaranteed
	// to be any particular type.
	Payload any

	// Location is the source position of the panic statement, or nil if it
	// could not be determined.
	Location *PanicLocation

	// Backtrace is the call stack captured at the moment of the panic, or
	// nil if capture was skipped by policy or failed.
	Backtrace *Backtrace
}

func (d *PanicData) Error() string {
	if d.Location != nil {
		return fmt.Sprintf("panic: %v at %s", d.Payload, d.Location)
	}

	return fmt.Sprintf("panic: %v", d.Payload)
}

// PayloadAsString returns the payload if it is a string, and reports whether
// it was one.
func (d *PanicData) PayloadAsString() (string, bool) {
	s, ok := d.Payload.(string)
	return s, ok
}

// PanicLocation is the source position a panic was raised at. It has no
// identity beyond its fields: two locations with equal fields are equal.
type PanicLocation struct {
	File string
	Line int
	// Col is always 1: the runtime resolves positions to line granularity.
	Col int
}

func (l PanicLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}
