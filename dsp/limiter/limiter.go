// Package limiter implements a lookahead peak limiter: it looks
// AZAUDIO_LOOKAHEAD_SAMPLES samples ahead to decide how much to attenuate
// the signal before the peak actually arrives, trading latency for fewer
// audible clamps than a naive sample-by-sample limiter.
package limiter

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// LookaheadSamples is the fixed lookahead window, matching the original
// engine's AZAUDIO_LOOKAHEAD_SAMPLES.
const LookaheadSamples = 128

// Config is the user-facing knob set.
type Config struct {
	// GainInput in dB, applied before peak detection.
	GainInput float32
	// GainOutput in dB; the limiter should never let a peak exceed this.
	GainOutput float32
}

type channelState struct {
	valBuffer [LookaheadSamples]float32
}

// Data is a stateful lookahead limiter chained onto other effects.
type Data struct {
	header    dsp.Header
	Config    Config
	gainRing  [LookaheadSamples]float32
	index     int
	sum       float32
	channels  []channelState
}

func New(cfg Config) *Data {
	d := &Data{Config: cfg}
	d.header.Kind = dsp.KindLimiter
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func (d *Data) ensureChannels(n int) {
	for len(d.channels) < n {
		d.channels = append(d.channels, channelState{})
	}
}

func dbToAmp32(db float32) float32 { return float32(azmath.DBToAmp(float64(db))) }
func ampToDB32(amp float32) float32 {
	if amp <= 0 {
		return -120
	}
	return float32(azmath.AmpToDB(float64(amp)))
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Process limits buf in place, one shared gain envelope across all channels
// (the loudest channel per frame drives the envelope) and independent
// lookahead ring buffers per channel so each channel's own delayed signal is
// what gets attenuated.
func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	channels := buf.Channels()
	d.ensureChannels(channels)

	var owned buffer.Buffer
	if pool != nil {
		owned = pool.PushZero(buf.Frames, 1, buf.Samplerate)
		defer pool.Pop()
	} else {
		owned = buffer.Alloc(buf.Frames, buffer.Mono(), buf.Samplerate)
	}
	gain := owned.Samples

	index := d.index
	for i := 0; i < buf.Frames; i++ {
		peakSample := float32(0)
		for c := 0; c < channels; c++ {
			s := absf(buf.Samples[i*buf.Stride+c])
			if s > peakSample {
				peakSample = s
			}
		}
		g := d.Config.GainInput
		peak := clamp32(ampToDB32(peakSample)+g, 0, 1e30)
		d.sum += peak - d.gainRing[index]
		average := d.sum / LookaheadSamples
		if average > peak {
			d.sum += average - peak
			peak = average
		}
		d.gainRing[index] = peak

		index = (index + 1) % LookaheadSamples

		if average > d.gainRing[index] {
			g -= average
		} else {
			g -= d.gainRing[index]
		}
		gain[i] = dbToAmp32(g)
	}

	// Each frame's write and its delayed read advance the ring together
	// (position i frames past d.index), so every call's samples get a
	// distinct slot instead of colliding on one.
	outputAmp := dbToAmp32(d.Config.GainOutput)
	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		for i := 0; i < buf.Frames; i++ {
			s := i*buf.Stride + c
			writeAt := (d.index + i) % LookaheadSamples
			readAt := (d.index + i + 1) % LookaheadSamples
			st.valBuffer[writeAt] = buf.Samples[s]
			out := clamp32(st.valBuffer[readAt]*gain[i], -1, 1)
			buf.Samples[s] = out * outputAmp
		}
	}
	d.index = index
	return azerr.Success
}
