package quell

import (
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// catchFrame is one goroutine's pending capture slot for a single protected
// call. The capture hook fills location and backtrace while the panic is
// unwinding; the orchestrator consumes them when it pops the frame.
type catchFrame struct {
	mode      captureMode
	location  *PanicLocation
	backtrace *Backtrace
}

// catchStacks keys capture-slot stacks by goroutine identity. Go has no
// goroutine-local storage, so the map plays that role. The mutex guards only
// the map structure: a frame is touched exclusively by its own goroutine,
// both in the orchestrator and in the capture hook.
type catchStacks struct {
	mu    sync.Mutex
	byGID map[uint64][]*catchFrame
}

var stacks = catchStacks{byGID: make(map[uint64][]*catchFrame)}

// push appends a fresh frame for the goroutine and reports whether it is the
// goroutine's outermost protected call.
func (s *catchStacks) push(gid uint64, mode captureMode) (outermost bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := s.byGID[gid]
	s.byGID[gid] = append(frames, &catchFrame{mode: mode})

	return len(frames) == 0
}

// pop removes and returns the goroutine's innermost frame, reporting whether
// the goroutine has now left its outermost protected call. The map entry is
// deleted on the way out so finished goroutines leave nothing behind.
func (s *catchStacks) pop(gid uint64) (fr *catchFrame, outermost bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := s.byGID[gid]
	fr = frames[len(frames)-1]
	frames = frames[:len(frames)-1]

	if len(frames) == 0 {
		delete(s.byGID, gid)
		return fr, true
	}

	s.byGID[gid] = frames

	return fr, false
}

// top returns the goroutine's innermost pending frame, or nil if the
// goroutine is not inside a protected call.
func (s *catchStacks) top(gid uint64) *catchFrame {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := s.byGID[gid]
	if len(frames) == 0 {
		return nil
	}

	return frames[len(frames)-1]
}

// goroutineID extracts the current goroutine's id from the runtime.Stack
// header ("goroutine 42 [running]:"); there is no public API for it.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	header := strings.TrimPrefix(string(buf[:n]), "goroutine ")

	i := strings.IndexByte(header, ' ')
	if i <= 0 {
		return 0
	}

	id, err := strconv.ParseUint(header[:i], 10, 64)
	if err != nil {
		return 0
	}

	return id
}
