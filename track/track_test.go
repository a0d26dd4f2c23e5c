package track

import (
	"testing"

	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/dsp/filter"
	"github.com/azaudio-go/azaudio/internal/scratch"
	"github.com/stretchr/testify/require"
)

func newTrack(t *testing.T) *Track {
	t.Helper()
	return New(64, buffer.Mono(), 48000)
}

func TestProcessWithNoReceivesAndNoChainZeroes(t *testing.T) {
	tr := newTrack(t)
	for i := range tr.buf.Samples {
		tr.buf.Samples[i] = 1
	}
	pool := &scratch.Pool{}
	require.True(t, tr.Process(64, 48000, pool).Ok())
	for _, v := range tr.buf.Samples {
		require.Equal(t, float32(0), v)
	}
}

func TestConnectAddsReceiveAndProcessMixesIt(t *testing.T) {
	src := newTrack(t)
	for i := range src.buf.Samples {
		src.buf.Samples[i] = 1
	}
	dst := newTrack(t)
	dst.Connect(src, 0) // 0dB = unity gain

	pool := &scratch.Pool{}
	require.True(t, dst.Process(64, 48000, pool).Ok())
	for _, v := range dst.buf.Samples {
		require.InDelta(t, 1, v, 1e-5)
	}
}

func TestConnectTwiceUpdatesGainInPlace(t *testing.T) {
	src := newTrack(t)
	dst := newTrack(t)
	dst.Connect(src, -6)
	require.Len(t, dst.Receives, 1)
	dst.Connect(src, -12)
	require.Len(t, dst.Receives, 1)
	require.Equal(t, float32(-12), dst.Receives[0].GainDB)
}

func TestDisconnectRemovesReceive(t *testing.T) {
	src := newTrack(t)
	dst := newTrack(t)
	dst.Connect(src, 0)
	dst.Disconnect(src)
	require.Empty(t, dst.Receives)
}

func TestCheckRoutingAcceptsAcyclicGraph(t *testing.T) {
	a := newTrack(t)
	b := newTrack(t)
	c := newTrack(t)
	b.Connect(a, 0)
	c.Connect(b, 0)
	require.True(t, c.CheckRouting().Ok())
}

func TestCheckRoutingDetectsDirectCycle(t *testing.T) {
	a := newTrack(t)
	b := newTrack(t)
	a.Connect(b, 0)
	b.Connect(a, 0)
	require.False(t, a.CheckRouting().Ok())
}

func TestCheckRoutingDetectsSelfLoop(t *testing.T) {
	a := newTrack(t)
	a.Connect(a, 0)
	require.False(t, a.CheckRouting().Ok())
}

func TestCheckRoutingAllowsDiamondWithoutCycle(t *testing.T) {
	// out <- {left, right} <- shared. Not a cycle: shared is visited twice
	// but never re-entered while on the stack.
	shared := newTrack(t)
	left := newTrack(t)
	right := newTrack(t)
	out := newTrack(t)
	left.Connect(shared, 0)
	right.Connect(shared, 0)
	out.Connect(left, 0)
	out.Connect(right, 0)
	require.True(t, out.CheckRouting().Ok())
}

func TestAppendAndPrependDSPBuildChain(t *testing.T) {
	tr := newTrack(t)
	require.Nil(t, tr.DSPChain)

	appended := filter.New(filter.Config{Kind: filter.LowPass})
	prepended := filter.New(filter.Config{Kind: filter.HighPass})
	tr.AppendDSP(appended)
	tr.PrependDSP(prepended)
	require.Same(t, dsp.Effect(prepended), tr.DSPChain)
	require.Same(t, dsp.Effect(appended), prepended.Header().Next)
	require.Equal(t, 2, dsp.Len(tr.DSPChain))
}
