// Package compressor implements a feed-forward dynamics compressor: an
// RMS envelope of the input drives attack/decay smoothed gain reduction
// above a threshold.
package compressor

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
	// Threshold in dB above which gain reduction kicks in.
	Threshold float32
	// Ratio > 1 allows 1/Ratio of the overvolume through; Ratio < 0
	// subtracts overvolume*Ratio instead (a "negative ratio" expansion).
	Ratio float32
	// Attack/Decay time constants in ms.
	Attack float32
	Decay  float32
}

// Data is a stateful compressor chained onto other effects.
type Data struct {
	header      dsp.Header
	Config      Config
	rms         *rms.Data
	attenuation float32
	// Gain is the most recently applied gain reduction in dB, exposed for
	// metering/debugging.
	Gain float32
}

func New(cfg Config) *Data {
	d := &Data{Config: cfg, rms: rms.New(rms.Config{WindowSamples: 128}), attenuation: -120}
	d.header.Kind = dsp.KindCompressor
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
	if code := d.rms.Combined(rmsBuf, buf, rms.Max); !code.Ok() {
		return code
	}

	t := float32(buf.Samplerate) / 1000.0
	attackFactor := float32(math.Exp(float64(-1.0 / (d.Config.Attack * t))))
	decayFactor := float32(math.Exp(float64(-1.0 / (d.Config.Decay * t))))

	var overgain float32
	switch {
	case d.Config.Ratio > 1:
		overgain = 1 - 1/d.Config.Ratio
	case d.Config.Ratio < 0:
		overgain = -d.Config.Ratio
	default:
		overgain = 0
	}

	channels := buf.Channels()
	for i := 0; i < buf.Frames; i++ {
		r := ampToDB32(rmsBuf.Samples[i])
		if r < -120 {
			r = -120
		}
		if r > d.attenuation {
			d.attenuation = r + attackFactor*(d.attenuation-r)
		} else {
			d.attenuation = r + decayFactor*(d.attenuation-r)
		}
		var gain float32
		if d.attenuation > d.Config.Threshold {
			gain = overgain * (d.Config.Threshold - d.attenuation)
		}
		d.Gain = gain
		amp := dbToAmp32(gain)
		for c := 0; c < channels; c++ {
			buf.Samples[i*buf.Stride+c] *= amp
		}
	}
	return azerr.Success
}
