package quell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureDiagnostics(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	orig := panicWriter
	panicWriter = &buf
	t.Cleanup(func() { panicWriter = orig })

	return &buf
}

func TestCaughtPanicWritesNothing(t *testing.T) {
	buf := captureDiagnostics(t)

	require.NotNil(t, Try(func() { panic("silent") }))
	require.Zero(t, buf.Len())
}

func TestReportedPanicUsesDefaultDiagnostic(t *testing.T) {
	buf := captureDiagnostics(t)

	prev := SetHook(nil)
	t.Cleanup(func() { SetHook(prev) })

	func() {
		defer func() {
			if r := recover(); r != nil {
				Report(r)
			}
		}()
		panic("loud")
	}()

	out := buf.String()
	require.Contains(t, out, "panic: loud")
	require.Contains(t, out, "goroutine")
	// the panic site is resolved and rendered on its own line
	require.Contains(t, out, "hook_test.go:")
}

func TestReportOutsidePanicHasNoLocation(t *testing.T) {
	var got HookInfo

	prev := SetHook(func(info HookInfo) { got = info })
	t.Cleanup(func() { SetHook(prev) })

	Report("not panicking")

	require.Equal(t, "not panicking", got.Payload)
	require.Nil(t, got.Location)
}

func TestReportNilIsNoop(t *testing.T) {
	buf := captureDiagnostics(t)

	prev := SetHook(nil)
	t.Cleanup(func() { SetHook(prev) })

	Report(nil)

	require.Zero(t, buf.Len())
}

func TestHookPanicDoesNotEscape(t *testing.T) {
	prev := SetHook(func(HookInfo) { panic("hook gone wrong") })
	t.Cleanup(func() { SetHook(prev) })

	require.NotPanics(t, func() { Report("boom") })
}

func TestSetHookNilRestoresDefault(t *testing.T) {
	buf := captureDiagnostics(t)

	prev := SetHook(func(HookInfo) {})
	t.Cleanup(func() { SetHook(prev) })

	Report("swallowed by the custom hook")
	require.Zero(t, buf.Len())

	SetHook(nil)

	Report("printed by the default hook")
	require.True(t, strings.Contains(buf.String(), "printed by the default hook"))
}
