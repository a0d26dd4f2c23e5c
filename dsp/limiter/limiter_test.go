package limiter

import (
	"testing"

	"github.com/azaudio-go/azaudio/buffer"
	"github.com/stretchr/testify/require"
)

func TestLookaheadSpikeAppearsAfterFullDelay(t *testing.T) {
	d := New(Config{GainInput: 0, GainOutput: 0})
	buf := buffer.Alloc(256, buffer.Mono(), 48000)
	buf.Samples[0] = 1.0

	require.True(t, d.Process(buf, nil).Ok())

	peakFrame := -1
	peakVal := float32(0)
	for i, s := range buf.Samples {
		if abs32(s) > peakVal {
			peakVal = abs32(s)
			peakFrame = i
		}
	}
	require.InDelta(t, LookaheadSamples, peakFrame, 1)
	require.LessOrEqual(t, peakVal, float32(1.0)+1e-4)
}

func TestOutputNeverExceedsUnityForFullScaleInput(t *testing.T) {
	d := New(Config{GainInput: 0, GainOutput: 0})
	buf := buffer.Alloc(512, buffer.Stereo(), 48000)
	for i := 0; i < 512; i++ {
		buf.Set(i, 0, 1)
		buf.Set(i, 1, -1)
	}
	require.True(t, d.Process(buf, nil).Ok())
	for _, s := range buf.Samples {
		require.LessOrEqual(t, abs32(s), float32(1.0)+1e-4)
	}
}

func TestSilenceStaysSilent(t *testing.T) {
	d := New(Config{})
	buf := buffer.Alloc(64, buffer.Mono(), 48000)
	require.True(t, d.Process(buf, nil).Ok())
	for _, s := range buf.Samples {
		require.Equal(t, float32(0), s)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
