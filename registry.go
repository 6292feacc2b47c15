package quell

import "sync"

// hookRegistry tracks whether the capture hook owns the process-wide
// reporting-hook slot and how many goroutines currently rely on it. The hook
// that was active before the takeover is kept so unprotected panics still
// reach it.
type hookRegistry struct {
	mu        sync.Mutex
	installed bool
	refcount  uint64
	prev      Hook
}

var registry hookRegistry

// acquire makes the capture hook the active reporting hook, installing it
// only on the 0->1 transition, and records one more goroutine relying on it.
func (r *hookRegistry) acquire() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.installed {
		r.prev = loadHook()
		storeHook(captureHook)
		r.installed = true
	}

	r.refcount++
}

// release drops one goroutine's claim on the capture hook. The hook itself
// stays installed for the remainder of the process: uninstalling here could
// race an unrelated panic on another goroutine against a half-swapped hook
// slot, so the slot is never written again after install. The cost of that
// trade is only that a panic racing the tail of the last protected call is
// handled by the delegate hook instead of being captured.
func (r *hookRegistry) release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refcount == 0 {
		panic("quell: hook release without matching acquire")
	}

	r.refcount--
}

// delegate forwards a panic report to the hook that was active before the
// capture hook took over.
func (r *hookRegistry) delegate(info HookInfo) {
	r.mu.Lock()
	prev := r.prev
	r.mu.Unlock()

	if prev == nil {
		prev = defaultHook
	}

	prev(info)
}

// setHook replaces the hook panics are reported to and returns the old one.
// Once the capture hook owns the slot, the replacement becomes the delegate
// target instead, so user hooks and the capture hook never fight over the
// slot itself.
func (r *hookRegistry) setHook(h Hook) Hook {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.installed {
		old := r.prev
		r.prev = h
		return old
	}

	old := loadHook()
	storeHook(h)

	return old
}
