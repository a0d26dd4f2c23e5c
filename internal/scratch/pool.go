// Package scratch implements the realtime-safe scratch buffer pool: a
// stack-disciplined set of reusable float buffers used by multi-pass DSP
// effects (reverb, delay, gate sidechain, spatializer) so the audio thread
// never touches a general allocator once warmed up.
//
// A Pool is not safe for concurrent use — it models C's thread-local
// storage explicitly: each audio callback thread owns exactly one Pool
// (typically stashed on the stream or mixer that drives it) and every
// push/pop pair on it happens from that single goroutine.
package scratch

import "github.com/azaudio-go/azaudio/buffer"

// MaxDepth is the maximum number of live (pushed, not yet popped) buffers a
// Pool tracks. Exceeding it is a programming error, not a recoverable one —
// it means a process() call leaked a push without a matching pop.
const MaxDepth = 64

type slot struct {
	samples  []float32
	frames   int
	channels int
	stride   int
}

// Pool is a LIFO stack of reusable buffers. The zero value is ready to use.
type Pool struct {
	slots  [MaxDepth]slot
	active int
}

// Active returns the number of currently live (pushed) buffers.
func (p *Pool) Active() int { return p.active }

// Push returns the next stack slot sized for frames*channels samples,
// growing its backing storage only if the existing capacity is
// insufficient. The caller must pop() it (directly or via pop_n) before the
// pool is reused for anything below this depth.
func (p *Pool) Push(frames, channels, samplerate int) buffer.Buffer {
	if p.active >= MaxDepth {
		panic("scratch: pool exceeded MaxDepth live buffers — a push was never popped")
	}
	s := &p.slots[p.active]
	needed := frames * channels
	if cap(s.samples) < needed {
		s.samples = make([]float32, needed)
	} else {
		s.samples = s.samples[:needed]
	}
	s.frames = frames
	s.channels = channels
	s.stride = channels
	p.active++
	return buffer.Buffer{
		Samples:    s.samples,
		Frames:     frames,
		Stride:     channels,
		Layout:     buffer.Layout{Count: uint8(channels)},
		Samplerate: samplerate,
	}
}

// PushZero pushes a buffer and zeroes it.
func (p *Pool) PushZero(frames, channels, samplerate int) buffer.Buffer {
	b := p.Push(frames, channels, samplerate)
	buffer.Zero(b)
	return b
}

// PushCopy pushes a buffer sized to match src and copies src into it,
// honoring src's stride.
func (p *Pool) PushCopy(src buffer.Buffer) buffer.Buffer {
	b := p.Push(src.Frames, int(src.Layout.Count), src.Samplerate)
	buffer.Copy(b, src)
	return b
}

// Pop releases the top slot.
func (p *Pool) Pop() {
	p.popN(1)
}

// PopN releases the top k slots.
func (p *Pool) PopN(k int) {
	p.popN(k)
}

func (p *Pool) popN(k int) {
	if k > p.active {
		panic("scratch: pop_n exceeds active depth")
	}
	p.active -= k
}
