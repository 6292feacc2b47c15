// Package quell catches panics the way a deferred recover does, but hands
// back a typed result instead of a bare payload: the value the panic
// carried, the source position it was raised at, and optionally a backtrace.
// The diagnostic text an uncaught panic would print is fully suppressed for
// caught panics; callers that want it back print the returned PanicData
// themselves.
//
//	v, data := quell.Catch(func() int {
//		return riskyComputation()
//	})
//	if data != nil {
//		log.Printf("computation panicked: %v", data)
//	}
//
// Panics that occur outside a protected call can be routed through the same
// reporting-hook chain with Report, and the hook itself can be replaced with
// SetHook. Multiple goroutines may enter protected calls concurrently and
// without coordination; quell manages the shared hook slot internally.
package quell

import (
	"runtime"
	"strings"
)

// Catch invokes fn and returns its result, or the panic it raised as a
// *PanicData. Backtrace capture follows the GOTRACEBACK environment
// variable; use CatchBacktrace or CatchNoBacktrace to decide at the call
// site instead.
func Catch[T any](fn func() T) (T, *PanicData) {
	return protect(fn, captureAuto)
}

// CatchBacktrace is Catch with backtrace capture always on.
func CatchBacktrace[T any](fn func() T) (T, *PanicData) {
	return protect(fn, captureAlways)
}

// CatchNoBacktrace is Catch with backtrace capture always off.
func CatchNoBacktrace[T any](fn func() T) (T, *PanicData) {
	return protect(fn, captureNever)
}

// Try runs fn for its side effects and returns the panic it raised, if any.
func Try(fn func()) *PanicData {
	_, data := Catch(func() any {
		fn()
		return nil
	})

	return data
}

// Report routes a panic payload recovered outside a protected call through
// the reporting-hook chain, producing the same diagnostic an uncaught panic
// would (or reaching a hook installed via SetHook). Intended for deferred
// recovery at goroutine boundaries:
//
//	defer func() {
//		if r := recover(); r != nil {
//			quell.Report(r)
//		}
//	}()
func Report(payload any) {
	if payload == nil {
		return
	}

	invokeHook(HookInfo{Payload: payload, Location: panicSite()})
}

// protect is the shared body of the Catch variants: register interest in the
// capture hook, run fn under a deferred recover, and turn whatever the hook
// stashed in this goroutine's frame into a PanicData.
func protect[T any](fn func() T, mode captureMode) (val T, data *PanicData) {
	gid := goroutineID()

	if stacks.push(gid, mode) {
		registry.acquire()
	}

	defer func() {
		r := recover()
		if r != nil {
			// The frame is still on the stack here, so the capture hook
			// records into it before the pop below.
			invokeHook(HookInfo{Payload: r, Location: panicSite()})
		}

		fr, outermost := stacks.pop(gid)
		if outermost {
			registry.release()
		}

		if r != nil {
			data = &PanicData{Payload: r, Location: fr.location, Backtrace: fr.backtrace}
		}
	}()

	val = fn()

	return val, nil
}

// panicSite walks the current stack for the frame that raised the panic now
// being handled: the first non-runtime frame below runtime.gopanic. Returns
// nil when the goroutine is not panicking.
func panicSite() *PanicLocation {
	pcs := make([]uintptr, maxBacktraceDepth)
	n := runtime.Callers(2, pcs)

	iter := runtime.CallersFrames(pcs[:n])
	panicking := false

	for {
		fr, more := iter.Next()

		switch {
		case panicking && !strings.HasPrefix(fr.Function, "runtime."):
			return &PanicLocation{File: fr.File, Line: fr.Line, Col: 1}
		case fr.Function == "runtime.gopanic":
			panicking = true
		}

		if !more {
			return nil
		}
	}
}
