// Package gate implements a noise gate: signal below threshold is
// attenuated, with an optional side-chain effect applied to a private copy
// of the input before the gate measures it (so e.g. a band-pass can key the
// gate off a specific frequency range without affecting the gated output).
package gate

import (
	"math"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/dsp/rms"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// Config is the user-facing knob set.
type Config struct {
	// Threshold in dB below which the signal is attenuated.
	Threshold float32
	Attack    float32
	Decay     float32
	// ActivationEffects, if set, processes a private copy of the input
	// before the gate's RMS detector measures it.
	ActivationEffects dsp.Effect
}

// Data is a stateful gate chained onto other effects.
type Data struct {
	header      dsp.Header
	Config      Config
	rms         *rms.Data
	attenuation float32
	Gain        float32
}

func New(cfg Config) *Data {
	d := &Data{Config: cfg, rms: rms.New(rms.Config{WindowSamples: 128})}
	d.header.Kind = dsp.KindGate
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func dbToAmp32(db float32) float32  { return float32(azmath.DBToAmp(float64(db))) }
func ampToDB32(amp float32) float32 { return float32(azmath.AmpToDB(float64(amp))) }

func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	if pool == nil {
		return azerr.NullPointer
	}
	rmsBuf := pool.PushZero(buf.Frames, 1, buf.Samplerate)
	defer pool.Pop()

	activation := buf
	if d.Config.ActivationEffects != nil {
		activation = pool.PushCopy(buf)
		defer pool.Pop()
		if code := dsp.Process(activation, d.Config.ActivationEffects, pool); !code.Ok() {
			return code
		}
	}

	if code := d.rms.Combined(rmsBuf, activation, rms.Max); !code.Ok() {
		return code
	}

	t := float32(buf.Samplerate) / 1000.0
	attackFactor := float32(math.Exp(float64(-1.0 / (d.Config.Attack * t))))
	decayFactor := float32(math.Exp(float64(-1.0 / (d.Config.Decay * t))))

	channels := buf.Channels()
	for i := 0; i < buf.Frames; i++ {
		r := ampToDB32(rmsBuf.Samples[i])
		if r < -120 {
			r = -120
		}
		if r > d.Config.Threshold {
			d.attenuation = r + attackFactor*(d.attenuation-r)
		} else {
			d.attenuation = r + decayFactor*(d.attenuation-r)
		}
		var gain float32
		if d.attenuation <= d.Config.Threshold {
			gain = -10 * (d.Config.Threshold - d.attenuation)
		}
		d.Gain = gain
		amp := dbToAmp32(gain)
		for c := 0; c < channels; c++ {
			buf.Samples[i*buf.Stride+c] *= amp
		}
	}
	return azerr.Success
}
