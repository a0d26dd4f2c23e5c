package mixer

import (
	"testing"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/scratch"
	"github.com/stretchr/testify/require"
)

// constSource is a test-only dsp.Effect that fills every sample with a
// fixed value, standing in for a signal-generating source track's chain.
type constSource struct {
	header dsp.Header
	value  float32
}

func (c *constSource) Header() *dsp.Header { return &c.header }

func (c *constSource) Process(buf buffer.Buffer, _ *scratch.Pool) azerr.Code {
	for i := range buf.Samples {
		buf.Samples[i] = c.value
	}
	return azerr.Success
}

func TestInitWiresEveryTrackIntoOutputAtUnity(t *testing.T) {
	m, code := Init(Config{TrackCount: 2, BufferFrames: 64}, buffer.Mono(), 48000)
	require.True(t, code.Ok())
	require.Len(t, m.Output.Receives, 2)
	for _, r := range m.Output.Receives {
		require.Equal(t, float32(0), r.GainDB)
	}
}

func TestInitRejectsZeroBufferFrames(t *testing.T) {
	_, code := Init(Config{TrackCount: 1, BufferFrames: 0}, buffer.Mono(), 48000)
	require.False(t, code.Ok())
}

// Concrete scenario: A->B, B->C, C->A, A->O. Process must
// report MixerRoutingCycle and leave every track buffer untouched.
func TestProcessDetectsCycleAndLeavesBuffersUntouched(t *testing.T) {
	m, code := Init(Config{TrackCount: 3, BufferFrames: 16}, buffer.Mono(), 48000)
	require.True(t, code.Ok())

	a, b, c := m.Tracks[0], m.Tracks[1], m.Tracks[2]
	for i := range a.Buffer().Samples {
		a.Buffer().Samples[i] = 0.42
	}
	snapshot := append([]float32(nil), a.Buffer().Samples...)

	b.Connect(a, 0)
	c.Connect(b, 0)
	a.Connect(c, 0)

	got := m.Process(16, 48000)
	require.Equal(t, azerr.MixerRoutingCycle, got)
	require.Equal(t, snapshot, a.Buffer().Samples)
}

// Concrete scenario: T1 constant 0.25, T2 constant 0.5, both
// sent to the output at 0dB, no output DSP -> every output sample is 0.75.
func TestProcessPullOrderMixesReceivesBeforeOutputRuns(t *testing.T) {
	m, code := Init(Config{TrackCount: 2, BufferFrames: 64}, buffer.Mono(), 48000)
	require.True(t, code.Ok())

	t1, t2 := m.Tracks[0], m.Tracks[1]
	t1.DSPChain = &constSource{value: 0.25}
	t2.DSPChain = &constSource{value: 0.5}

	require.True(t, m.Process(64, 48000).Ok())
	for _, v := range m.Output.Buffer().Samples {
		require.InDelta(t, 0.75, v, 1e-5)
	}
}

func TestCallbackAliasesDeviceBufferAndRestoresOwnAfterward(t *testing.T) {
	m, code := Init(Config{TrackCount: 1, BufferFrames: 32}, buffer.Mono(), 48000)
	require.True(t, code.Ok())

	original := m.Output.Buffer()
	device := buffer.Alloc(32, buffer.Mono(), 48000)
	require.True(t, m.Callback(device).Ok())
	require.Equal(t, &original.Samples[0], &m.Output.Buffer().Samples[0])
}
