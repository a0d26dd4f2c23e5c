// Package reverb implements a fixed-topology feedback-delay-network reverb:
// an input pre-delay feeding 30 prime-length delay taps split into an early
// "combined bus" stage and a diffuse feedback stage, each stage low-passed
// to simulate high-frequency air absorption.
package reverb

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/dsp/delay"
	"github.com/azaudio-go/azaudio/dsp/filter"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// TapCount is the fixed number of delay lines in the network.
const TapCount = 30

// tapSamplesAt48k are the prime-ish sample lengths the original engine
// tuned at 48kHz; they're converted to ms so they scale with samplerate.
var tapSamplesAt48k = [TapCount]int{
	2111, 2129, 2017, 2029, 1753, 1733, 1699, 1621, 1447, 1429,
	1361, 1319, 1201, 1171, 1129, 1117, 1063, 1051, 1039, 1009,
	977, 919, 857, 773, 743, 719, 643, 641, 631, 619,
}

// Config is the user-facing knob set.
type Config struct {
	// GainDB/GainDryDB are effect/dry gains in dB.
	GainDB    float32
	GainDryDB float32
	// Roomsize affects feedback decay; roughly 1..100 for reasonable results.
	Roomsize float32
	// Color affects high-frequency damping; roughly 1..5.
	Color float32
	// DelayMs is the pre-delay before first reflections.
	DelayMs float32
}

// Data is a stateful reverb chained onto other effects.
type Data struct {
	header     dsp.Header
	Config     Config
	inputDelay *delay.Data
	taps       [TapCount]*delay.Data
	filters    [TapCount]*filter.Data
}

// New builds the fixed tap topology at the given nominal samplerate ms
// conversion; tap delay times are derived from tapSamplesAt48k via
// samples-to-ms at 48kHz so the network's character is samplerate-invariant.
func New(cfg Config) *Data {
	d := &Data{Config: cfg}
	d.header.Kind = dsp.KindReverb
	d.inputDelay = delay.New(delay.Config{
		GainDB: 0, GainDryDB: -120, DelayMs: cfg.DelayMs, Feedback: 0, Pingpong: 0,
	})
	for i := 0; i < TapCount; i++ {
		ms := float32(azmath.SamplesToMs(tapSamplesAt48k[i], 48000))
		d.taps[i] = delay.New(delay.Config{GainDB: 0, GainDryDB: -120, DelayMs: ms, Pingpong: 0.05})
		d.filters[i] = filter.New(filter.Config{Kind: filter.LowPass, Frequency: 1000, DryMix: 0})
	}
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	if pool == nil {
		return azerr.NullPointer
	}
	channels := buf.Channels()

	input := pool.PushCopy(buf)
	defer pool.Pop()
	if code := d.inputDelay.Process(input, pool); !code.Ok() {
		return code
	}

	combined := pool.PushZero(buf.Frames, channels, buf.Samplerate)
	defer pool.Pop()
	early := pool.PushZero(buf.Frames, channels, buf.Samplerate)
	defer pool.Pop()
	diffuse := pool.PushZero(buf.Frames, channels, buf.Samplerate)
	defer pool.Pop()

	feedback := 0.985 - 0.2/float64(d.Config.Roomsize)
	color := d.Config.Color * 4000

	earlyCount := TapCount * 2 / 3
	for tap := 0; tap < earlyCount; tap++ {
		d.taps[tap].Config.Feedback = float32(feedback)
		d.filters[tap].Config.Frequency = color
		if code := buffer.Copy(early, input); !code.Ok() {
			return code
		}
		if code := d.filters[tap].Process(early, pool); !code.Ok() {
			return code
		}
		if code := d.taps[tap].Process(early, pool); !code.Ok() {
			return code
		}
		buffer.Mix(combined, 1, early, 1.0/float32(TapCount))
	}
	for tap := earlyCount; tap < TapCount; tap++ {
		d.taps[tap].Config.Feedback = float32(tap+TapCount) / float32(TapCount*2)
		d.filters[tap].Config.Frequency = color * 4
		if code := buffer.Copy(diffuse, combined); !code.Ok() {
			return code
		}
		if code := d.filters[tap].Process(diffuse, pool); !code.Ok() {
			return code
		}
		if code := d.taps[tap].Process(diffuse, pool); !code.Ok() {
			return code
		}
		buffer.Mix(combined, 1, diffuse, 1.0/float32(TapCount))
	}

	amount := float32(azmath.DBToAmp(float64(d.Config.GainDB)))
	amountDry := float32(azmath.DBToAmp(float64(d.Config.GainDryDB)))
	buffer.Mix(buf, amountDry, combined, amount)
	return azerr.Success
}
