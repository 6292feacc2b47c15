package quell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaptureModeString(t *testing.T) {
	require.Equal(t, "AUTO", captureAuto.String())
	require.Equal(t, "ALWAYS", captureAlways.String())
	require.Equal(t, "NEVER", captureNever.String())
	require.Equal(t, "UNKNOWN", captureMode(42).String())
}

func TestCaptureModeEnabled(t *testing.T) {
	t.Setenv("GOTRACEBACK", "none")
	require.False(t, captureAuto.enabled())
	require.True(t, captureAlways.enabled())
	require.False(t, captureNever.enabled())

	t.Setenv("GOTRACEBACK", "0")
	require.False(t, captureAuto.enabled())

	t.Setenv("GOTRACEBACK", "all")
	require.True(t, captureAuto.enabled())
	require.False(t, captureNever.enabled())
}
