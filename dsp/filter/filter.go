// Package filter implements the single-pole high/low/band-pass filters used
// throughout the mixer for tone shaping and the reverb's damping stage.
package filter

import (
	"math"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

type Kind int

const (
	HighPass Kind = iota
	LowPass
	BandPass
)

const tau = 2 * math.Pi

// Config is the user-facing knob set; DryMix blends the filtered output
// back toward the dry input, where 1 is fully dry and 0 is fully wet.
type Config struct {
	Kind      Kind
	Frequency float32
	DryMix    float32
}

type channelState struct {
	outputs [2]float32
}

// Data is a stateful single-pole filter chained onto other effects.
type Data struct {
	header   dsp.Header
	Config   Config
	channels []channelState
}

func New(cfg Config) *Data {
	d := &Data{Config: cfg}
	d.header.Kind = dsp.KindFilter
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func (d *Data) ensureChannels(n int) {
	for len(d.channels) < n {
		d.channels = append(d.channels, channelState{})
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func decayFor(freq float32, samplerate int) float32 {
	return clamp01(float32(math.Exp(float64(-tau * (freq / float32(samplerate))))))
}

func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	channels := buf.Channels()
	d.ensureChannels(channels)
	amount := clamp01(1 - d.Config.DryMix)
	amountDry := clamp01(d.Config.DryMix)
	decay := decayFor(d.Config.Frequency, buf.Samplerate)

	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		switch d.Config.Kind {
		case HighPass:
			for i := 0; i < buf.Frames; i++ {
				s := i*buf.Stride + c
				x := buf.Samples[s]
				st.outputs[0] = x + decay*(st.outputs[0]-x)
				buf.Samples[s] = (x-st.outputs[0])*amount + x*amountDry
			}
		case LowPass:
			for i := 0; i < buf.Frames; i++ {
				s := i*buf.Stride + c
				x := buf.Samples[s]
				st.outputs[0] = x + decay*(st.outputs[0]-x)
				buf.Samples[s] = st.outputs[0]*amount + x*amountDry
			}
		case BandPass:
			for i := 0; i < buf.Frames; i++ {
				s := i*buf.Stride + c
				x := buf.Samples[s]
				st.outputs[0] = x + decay*(st.outputs[0]-x)
				st.outputs[1] = st.outputs[0] + decay*(st.outputs[1]-st.outputs[0])
				buf.Samples[s] = (st.outputs[0]-st.outputs[1])*2*amount + x*amountDry
			}
		}
	}
	return azerr.Success
}
