package filter

import (
	"testing"

	"github.com/azaudio-go/azaudio/buffer"
	"github.com/stretchr/testify/require"
)

func impulse(frames int) buffer.Buffer {
	b := buffer.Alloc(frames, buffer.Mono(), 48000)
	b.Samples[0] = 1
	return b
}

func TestLowPassDCGainApproachesOne(t *testing.T) {
	d := New(Config{Kind: LowPass, Frequency: 200, DryMix: 0})
	buf := buffer.Alloc(4096, buffer.Mono(), 48000)
	for i := range buf.Samples {
		buf.Samples[i] = 1
	}
	require.True(t, d.Process(buf, nil).Ok())
	require.InDelta(t, 1.0, buf.Samples[len(buf.Samples)-1], 1e-3)
}

func TestHighPassRemovesDC(t *testing.T) {
	d := New(Config{Kind: HighPass, Frequency: 200, DryMix: 0})
	buf := buffer.Alloc(4096, buffer.Mono(), 48000)
	for i := range buf.Samples {
		buf.Samples[i] = 1
	}
	require.True(t, d.Process(buf, nil).Ok())
	require.InDelta(t, 0.0, buf.Samples[len(buf.Samples)-1], 1e-3)
}

func TestDryMixOneIsBypass(t *testing.T) {
	d := New(Config{Kind: LowPass, Frequency: 500, DryMix: 1})
	buf := impulse(16)
	before := append([]float32(nil), buf.Samples...)
	require.True(t, d.Process(buf, nil).Ok())
	require.Equal(t, before, buf.Samples)
}

func TestPerChannelStateIsIndependent(t *testing.T) {
	d := New(Config{Kind: LowPass, Frequency: 500, DryMix: 0})
	buf := buffer.Alloc(8, buffer.Stereo(), 48000)
	for i := 0; i < 8; i++ {
		buf.Set(i, 0, 1)
		buf.Set(i, 1, 0)
	}
	require.True(t, d.Process(buf, nil).Ok())
	require.NotEqual(t, buf.At(7, 0), buf.At(7, 1))
}

func TestDecayForIsBoundedZeroToOne(t *testing.T) {
	require.GreaterOrEqual(t, decayFor(20000, 48000), float32(0))
	require.LessOrEqual(t, decayFor(1, 48000), float32(1))
}
