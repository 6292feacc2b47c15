package quell

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"
)

// The maximum stack buffer rendered by the default hook (64K). This is the
// same value used by net/http's conn.serve.
const maxStackBufferSize = 64 << 10

// HookInfo carries what is known about a panic when the reporting hook runs:
// the payload and, when it can be determined, the source position the panic
// was raised at.
type HookInfo struct {
	Payload  any
	Location *PanicLocation
}

// Hook is the process-wide reporting callback invoked for every panic that
// reaches one of this package's recovery points, before the payload is
// handed to whoever catches it.
type Hook func(HookInfo)

var currentHook atomic.Pointer[Hook]

// SetHook replaces the reporting hook and returns the previous one. Panics
// recovered outside a protected call and routed through Report reach the
// installed hook even while Catch calls are in flight; quell coordinates
// internally so user hooks and its own capture hook never fight over the
// slot. SetHook(nil) restores the default stderr diagnostic.
func SetHook(h Hook) Hook {
	if h == nil {
		h = defaultHook
	}

	return registry.setHook(h)
}

func loadHook() Hook {
	if p := currentHook.Load(); p != nil {
		return *p
	}

	return defaultHook
}

// storeHook publishes a new hook. Callers must hold registry.mu; reads are
// lock-free so a panicking goroutine never contends with hook management.
func storeHook(h Hook) {
	currentHook.Store(&h)
}

// invokeHook runs the active hook, dropping any panic it raises: a failure
// inside panic reporting must not replace the panic being handled.
func invokeHook(info HookInfo) {
	defer func() {
		_ = recover()
	}()

	loadHook()(info)
}

// panicWriter is where the default hook writes its diagnostic.
var panicWriter io.Writer = os.Stderr

// defaultHook mirrors the runtime's uncaught-panic output: the payload, the
// panic site when known, and the current goroutine's stack.
func defaultHook(info HookInfo) {
	stack := make([]byte, maxStackBufferSize)
	n := runtime.Stack(stack, false)

	if info.Location != nil {
		fmt.Fprintf(panicWriter, "panic: %v\n\t%s\n\n%s\n", info.Payload, info.Location, stack[:n])
		return
	}

	fmt.Fprintf(panicWriter, "panic: %v\n\n%s\n", info.Payload, stack[:n])
}

// captureHook is the replacement reporting hook. For a goroutine inside a
// protected call it writes nothing and stashes the panic's location (and a
// backtrace, per the call's policy) in that goroutine's pending frame. Any
// other panic is forwarded untouched to the previously installed hook.
func captureHook(info HookInfo) {
	fr := stacks.top(goroutineID())
	if fr == nil {
		registry.delegate(info)
		return
	}

	fr.location = info.Location

	if !fr.mode.enabled() {
		return
	}

	bt, err := loadBacktracer().Capture(1)
	if err != nil {
		// degrade to no backtrace
		return
	}

	fr.backtrace = bt.trimToPanicSite()
}
