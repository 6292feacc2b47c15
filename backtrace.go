package quell

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
)

//go:generate mockgen -source=backtrace.go -package=mocks -destination=mocks/backtracer.go Backtracer

// maxBacktraceDepth bounds the number of frames a captured backtrace holds.
const maxBacktraceDepth = 128

// Backtracer captures the calling goroutine's stack. It is the primitive the
// capture hook invokes when a protected call asks for a backtrace; a failed
// capture must be cheap and is folded into "no backtrace".
type Backtracer interface {
	// Capture returns the calling goroutine's stack, skipping skip frames
	// above the Capture call itself.
	Capture(skip int) (*Backtrace, error)
}

// BacktracerFunc adapts a function to the Backtracer interface.
type BacktracerFunc func(skip int) (*Backtrace, error)

func (f BacktracerFunc) Capture(skip int) (*Backtrace, error) {
	return f(skip)
}

var backtracer atomic.Pointer[Backtracer]

// SetBacktracer replaces the backtrace primitive used by the capture hook
// and returns the previous one. Passing nil restores the runtime-based
// default.
func SetBacktracer(b Backtracer) Backtracer {
	prev := loadBacktracer()

	if b == nil {
		backtracer.Store(nil)
		return prev
	}

	backtracer.Store(&b)

	return prev
}

func loadBacktracer() Backtracer {
	if p := backtracer.Load(); p != nil {
		return *p
	}

	return runtimeBacktracer{}
}

var errEmptyBacktrace = errors.New("empty backtrace")

// runtimeBacktracer resolves frames with runtime.Callers.
type runtimeBacktracer struct{}

func (runtimeBacktracer) Capture(skip int) (*Backtrace, error) {
	pcs := make([]uintptr, maxBacktraceDepth)

	n := runtime.Callers(skip+2, pcs) // +2 skips runtime.Callers and Capture itself
	if n == 0 {
		return nil, errEmptyBacktrace
	}

	iter := runtime.CallersFrames(pcs[:n])
	frames := make([]Frame, 0, n)

	for {
		fr, more := iter.Next()

		if fr.Function != "" || fr.File != "" {
			frames = append(frames, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}

		if !more {
			break
		}
	}

	if len(frames) == 0 {
		return nil, errEmptyBacktrace
	}

	return &Backtrace{frames: frames}, nil
}

// Frame is a single resolved call-stack entry of a Backtrace.
type Frame struct {
	Function string
	File     string
	Line     int
}

// Backtrace is an opaque call stack captured at the moment of a panic. It is
// written once by the capture hook and read-only afterwards.
type Backtrace struct {
	frames []Frame
}

// NewBacktrace builds a Backtrace from already-resolved frames. It is meant
// for Backtracer implementations that source frames from somewhere other
// than the calling goroutine's stack.
func NewBacktrace(frames []Frame) *Backtrace {
	return &Backtrace{frames: slices.Clone(frames)}
}

// Frames returns the captured frames, innermost call first.
func (b *Backtrace) Frames() []Frame {
	return slices.Clone(b.frames)
}

// String renders the backtrace in the runtime's traceback style.
func (b *Backtrace) String() string {
	var sb strings.Builder

	for _, f := range b.frames {
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}

	return sb.String()
}

// trimToPanicSite drops the recovery machinery above the panic site so the
// trace starts at the frame that panicked. Traces without a recognizable
// panic frame are returned unchanged.
func (b *Backtrace) trimToPanicSite() *Backtrace {
	for i, f := range b.frames {
		if f.Function != "runtime.gopanic" {
			continue
		}

		rest := b.frames[i+1:]
		for len(rest) > 0 && strings.HasPrefix(rest[0].Function, "runtime.") {
			rest = rest[1:]
		}

		if len(rest) == 0 {
			return b
		}

		return &Backtrace{frames: rest}
	}

	return b
}
