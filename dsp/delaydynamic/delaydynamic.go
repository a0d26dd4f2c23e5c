// Package delaydynamic implements a variable-delay line with sub-sample
// positioning via Lanczos kernel convolution, letting the delay time glide
// smoothly within a block instead of jumping discretely between blocks.
package delaydynamic

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// Config is the user-facing knob set.
type Config struct {
	GainDB    float32
	GainDryDB float32
	// DelayMaxMs bounds the buffer depth; per-channel delay times below
	// must never exceed it.
	DelayMaxMs float32
	Feedback   float32
	Pingpong   float32
	// WetEffects, if set, processes the input copy before it's written into
	// the delay buffers (the chain runs before the
	// shift-back, which this mirrors by running it before priming).
	WetEffects dsp.Effect
	// Kernel selects the interpolation kernel; nil uses
	// azmath.DefaultLanczosKernel.
	Kernel *azmath.LanczosKernel
}

type channelState struct {
	// startMs is this channel's delay time at the start of the next block
	// (carried over from endMs of the previous block, for continuity).
	// endMs is the glide target for the end of the next block, settable
	// per block via SetChannelDelay; Process interpolates start -> end
	// across the block so the delay can move within a single call instead
	// of only jumping between calls.
	startMs float32
	endMs   float32
	buffer  []float32
}

// Data is a stateful dynamic delay line chained onto other effects.
type Data struct {
	header      dsp.Header
	Config      Config
	channels    []channelState
	delayMaxLen int
}

func New(cfg Config) *Data {
	d := &Data{Config: cfg}
	d.header.Kind = dsp.KindDelayDynamic
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func (d *Data) kernel() *azmath.LanczosKernel {
	if d.Config.Kernel != nil {
		return d.Config.Kernel
	}
	return azmath.DefaultLanczosKernel
}

// SetChannelDelay sets channel c's glide target delay time (in ms) for the
// upcoming Process call, growing the tracked channel slice if needed. The
// block interpolates from the channel's current delay (the previous
// block's end, or 0 before the first call) to this target, producing an
// intra-block glide instead of a jump between blocks. Call before Process.
func (d *Data) SetChannelDelay(c int, ms float32) {
	d.ensureChannels(c + 1)
	d.channels[c].endMs = ms
}

func (d *Data) ensureChannels(n int) {
	for len(d.channels) < n {
		d.channels = append(d.channels, channelState{})
	}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (d *Data) sampleWithKernel(buf []float32, pos float32) float32 {
	k := d.kernel()
	length := int(k.Length)
	var start, end int
	if k.Symmetrical {
		start = int(pos) - length + 1
		end = int(pos) + length
	} else {
		start = int(pos)
		end = int(pos) + length
	}
	var result float32
	maxIdx := len(buf) - 1
	for i := start; i < end; i++ {
		idx := clampInt(i, 0, maxIdx)
		result += buf[idx] * float32(k.Sample(float64(i)-float64(pos)))
	}
	return result
}

// Process taps each channel's delay buffer at an interpolated, glided
// position, mixes feedback and ping-pong back into a fresh input copy, then
// shifts the per-channel buffer to absorb this block as the new tail.
func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	if pool == nil {
		return azerr.NullPointer
	}
	channels := buf.Channels()
	d.ensureChannels(channels)

	delayMaxSamples := azmath.MsToSamples(float64(d.Config.DelayMaxMs), buf.Samplerate)
	needed := delayMaxSamples + buf.Frames
	for c := 0; c < channels; c++ {
		if len(d.channels[c].buffer) < needed {
			grown := make([]float32, needed)
			copy(grown[needed-len(d.channels[c].buffer):], d.channels[c].buffer)
			d.channels[c].buffer = grown
		}
	}

	input := pool.PushCopy(buf)
	defer pool.Pop()
	if d.Config.WetEffects != nil {
		if code := dsp.Process(input, d.Config.WetEffects, pool); !code.Ok() {
			return code
		}
	}

	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		c2 := (c + 1) % channels
		start := float32(delayMaxSamples) - float32(azmath.MsToSamples(float64(st.startMs), buf.Samplerate))
		end := float32(delayMaxSamples) - float32(azmath.MsToSamples(float64(st.endMs), buf.Samplerate))
		for i := 0; i < buf.Frames; i++ {
			t := float32(i) / float32(buf.Frames)
			index := lerp(start, end, t)
			s := i*input.Stride + c
			toAdd := input.Samples[s]
			if d.Config.Feedback != 0 {
				toAdd += d.sampleWithKernel(st.buffer, index) * d.Config.Feedback
			}
			input.Samples[i*input.Stride+c] += toAdd * (1 - d.Config.Pingpong)
			input.Samples[i*input.Stride+c2] += toAdd * d.Config.Pingpong
		}
	}

	// Prime: shift each channel's buffer back by Frames, then append this
	// block's (post-feedback) input at the tail.
	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		copy(st.buffer, st.buffer[buf.Frames:])
		tail := st.buffer[len(st.buffer)-buf.Frames:]
		for i := 0; i < buf.Frames; i++ {
			tail[i] = input.Samples[i*input.Stride+c]
		}
	}

	amount := float32(azmath.DBToAmp(float64(d.Config.GainDB)))
	amountDry := float32(azmath.DBToAmp(float64(d.Config.GainDryDB)))
	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		start := float32(delayMaxSamples) - float32(azmath.MsToSamples(float64(st.startMs), buf.Samplerate))
		end := float32(delayMaxSamples) - float32(azmath.MsToSamples(float64(st.endMs), buf.Samplerate))
		for i := 0; i < buf.Frames; i++ {
			t := float32(i) / float32(buf.Frames)
			// Frame i of this block sits at delayMaxSamples+i after priming.
			index := float32(i) + lerp(start, end, t)
			s := i*buf.Stride + c
			wet := d.sampleWithKernel(st.buffer, index)
			buf.Samples[s] = wet*amount + buf.Samples[s]*amountDry
		}
		st.startMs = st.endMs
	}
	return azerr.Success
}
