package dsp

import (
	"testing"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/internal/scratch"
	"github.com/stretchr/testify/require"
)

// recordingEffect adds a constant to every sample and records its own name
// into a shared log, so chain order and short-circuiting are observable.
type recordingEffect struct {
	header Header
	name   string
	log    *[]string
	add    float32
	fail   azerr.Code
}

func (e *recordingEffect) Header() *Header { return &e.header }

func (e *recordingEffect) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	*e.log = append(*e.log, e.name)
	if !e.fail.Ok() {
		return e.fail
	}
	for i := range buf.Samples {
		buf.Samples[i] += e.add
	}
	return azerr.Success
}

func TestProcessWalksChainInOrder(t *testing.T) {
	var log []string
	a := &recordingEffect{name: "a", log: &log, add: 1}
	b := &recordingEffect{name: "b", log: &log, add: 2}
	c := &recordingEffect{name: "c", log: &log, add: 3}
	a.header.Next = b
	b.header.Next = c

	buf := buffer.Alloc(4, buffer.Mono(), 48000)
	code := Process(buf, a, nil)

	require.True(t, code.Ok())
	require.Equal(t, []string{"a", "b", "c"}, log)
	for _, s := range buf.Samples {
		require.Equal(t, float32(6), s)
	}
}

func TestProcessStopsOnFirstError(t *testing.T) {
	var log []string
	a := &recordingEffect{name: "a", log: &log, add: 1}
	b := &recordingEffect{name: "b", log: &log, fail: azerr.InvalidDSPKind}
	c := &recordingEffect{name: "c", log: &log, add: 3}
	a.header.Next = b
	b.header.Next = c

	buf := buffer.Alloc(4, buffer.Mono(), 48000)
	code := Process(buf, a, nil)

	require.Equal(t, azerr.InvalidDSPKind, code)
	require.Equal(t, []string{"a", "b"}, log)
}

func TestProcessRejectsInvalidBuffer(t *testing.T) {
	var log []string
	a := &recordingEffect{name: "a", log: &log, add: 1}
	var buf buffer.Buffer
	code := Process(buf, a, nil)
	require.Equal(t, azerr.NullPointer, code)
	require.Empty(t, log)
}

func TestAppendOntoNilHeadReturnsTail(t *testing.T) {
	tail := &recordingEffect{name: "tail"}
	require.Same(t, Effect(tail), Append(nil, tail))
}

func TestAppendLinksOntoChainTail(t *testing.T) {
	a := &recordingEffect{name: "a"}
	b := &recordingEffect{name: "b"}
	c := &recordingEffect{name: "c"}
	a.header.Next = b

	Append(a, c)
	require.Same(t, Effect(c), b.header.Next)
	require.Equal(t, 3, Len(a))
}

func TestPrependMakesNewHead(t *testing.T) {
	a := &recordingEffect{name: "a"}
	b := &recordingEffect{name: "b"}

	head := Prepend(a, b)
	require.Same(t, Effect(b), head)
	require.Same(t, Effect(a), b.header.Next)
}

func TestLenCountsChain(t *testing.T) {
	require.Equal(t, 0, Len(nil))
	a := &recordingEffect{name: "a"}
	require.Equal(t, 1, Len(a))
}

func TestKindStringCoversAllValues(t *testing.T) {
	kinds := []Kind{
		KindNone, KindRMS, KindFilter, KindLimiter, KindCompressor,
		KindGate, KindDelay, KindDelayDynamic, KindReverb, KindSampler, KindSpatial,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		require.NotEmpty(t, s)
		require.False(t, seen[s], "duplicate Kind string %q", s)
		seen[s] = true
	}
}
