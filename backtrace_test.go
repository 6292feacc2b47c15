package quell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuntimeBacktracerCapturesCaller(t *testing.T) {
	bt, err := runtimeBacktracer{}.Capture(0)
	require.NoError(t, err)
	require.NotEmpty(t, bt.Frames())
	require.Contains(t, bt.Frames()[0].Function, "TestRuntimeBacktracerCapturesCaller")
}

func TestBacktracerFuncAdapter(t *testing.T) {
	want := NewBacktrace([]Frame{{Function: "fn", File: "f.go", Line: 1}})

	bt, err := BacktracerFunc(func(int) (*Backtrace, error) {
		return want, nil
	}).Capture(3)
	require.NoError(t, err)
	require.Equal(t, want, bt)

	_, err = BacktracerFunc(func(int) (*Backtrace, error) {
		return nil, errors.New("nope")
	}).Capture(0)
	require.Error(t, err)
}

func TestTrimToPanicSite(t *testing.T) {
	bt := &Backtrace{frames: []Frame{
		{Function: "github.com/kucherenkovova/quell.captureHook"},
		{Function: "runtime.gopanic"},
		{Function: "runtime.goPanicIndex"},
		{Function: "main.work"},
		{Function: "main.main"},
	}}

	frames := bt.trimToPanicSite().Frames()
	require.Len(t, frames, 2)
	require.Equal(t, "main.work", frames[0].Function)

	// traces without a panic frame come back unchanged
	plain := &Backtrace{frames: []Frame{{Function: "main.main"}}}
	require.Equal(t, plain, plain.trimToPanicSite())

	// all-runtime tails are left alone rather than emptied
	tail := &Backtrace{frames: []Frame{
		{Function: "runtime.gopanic"},
		{Function: "runtime.goexit"},
	}}
	require.Equal(t, tail, tail.trimToPanicSite())
}

func TestBacktraceString(t *testing.T) {
	bt := NewBacktrace([]Frame{{Function: "main.work", File: "/src/main.go", Line: 12}})
	require.Equal(t, "main.work\n\t/src/main.go:12\n", bt.String())
}

func TestBacktraceFramesAreACopy(t *testing.T) {
	bt := NewBacktrace([]Frame{{Function: "main.work"}})

	frames := bt.Frames()
	frames[0].Function = "mutated"

	require.Equal(t, "main.work", bt.Frames()[0].Function)
}
