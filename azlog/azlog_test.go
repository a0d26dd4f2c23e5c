package azlog

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitReadsEnvVarCaseInsensitively(t *testing.T) {
	orig := os.Getenv("AZAUDIO_LOG_LEVEL")
	defer os.Setenv("AZAUDIO_LOG_LEVEL", orig)
	defer SetLevel(Error)

	os.Setenv("AZAUDIO_LOG_LEVEL", "TrAcE")
	Init()
	require.Equal(t, Trace, CurrentLevel())
}

func TestInitLeavesDefaultOnUnknownValue(t *testing.T) {
	orig := os.Getenv("AZAUDIO_LOG_LEVEL")
	defer os.Setenv("AZAUDIO_LOG_LEVEL", orig)
	defer SetLevel(Error)

	SetLevel(Info)
	os.Setenv("AZAUDIO_LOG_LEVEL", "garbage")
	Init()
	require.Equal(t, Info, CurrentLevel())
}

func TestSetLevelNoneSuppressesLogf(t *testing.T) {
	defer SetLevel(Error)
	SetLevel(None)
	require.Equal(t, None, CurrentLevel())
	// Logf must not panic even though nothing is logged.
	Logf(Error, "unreachable %d", 1)
}

func TestLevelStringCoversAllValues(t *testing.T) {
	require.Equal(t, "none", None.String())
	require.Equal(t, "error", Error.String())
	require.Equal(t, "info", Info.String())
	require.Equal(t, "trace", Trace.String())
}
