// Package sampler implements sample playback of a source buffer at an
// adjustable, glided speed: cubic interpolation at or below native speed,
// integer-window oversampling above it.
package sampler

import (
	"math"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// TransitionFrames is the one-pole glide time constant for speed/gain
// changes, matching AZAUDIO_SAMPLER_TRANSITION_FRAMES.
const TransitionFrames = 128

// Config is the user-facing knob set.
type Config struct {
	// Source is the buffer being played back. Must have the same channel
	// count as the destination buffer passed to Process.
	Source *buffer.Buffer
	// Speed is the playback rate multiple (1 == native speed).
	Speed float32
	// GainDB is the playback volume in dB.
	GainDB float32
}

// Data is a stateful sampler chained onto other effects. frame uses
// float64 for the phase accumulator (a deliberate precision upgrade over
// the source's float32 accumulator, which drifts audibly over long loops).
// gain is the glided linear amplitude; it starts at 0 so the first output
// frame is silent.
type Data struct {
	header dsp.Header
	Config Config
	frame  float64
	speed  float32
	gain   float32
}

func New(cfg Config) *Data {
	d := &Data{Config: cfg, speed: cfg.Speed, gain: 0}
	d.header.Kind = dsp.KindSampler
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func cubic(a, b, c, e, t float32) float32 {
	t2 := t * t
	a0 := e - c - a + b
	a1 := a - b - a0
	a2 := c - a
	a3 := b
	return a0*t*t2 + a1*t2 + a2*t + a3
}

func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	src := d.Config.Source
	if src == nil {
		return azerr.NullPointer
	}
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	if code := src.Validate(); !code.Ok() {
		return code
	}
	if buf.Channels() != src.Channels() {
		return azerr.MismatchedChannelCount
	}
	channels := buf.Channels()
	srcFrames := src.Frames

	transition := float32(math.Exp(-1.0 / TransitionFrames))
	// speed·(buffer_rate/out_rate): a source recorded at a lower rate than
	// the destination advances its own frame index more slowly per output
	// frame, not faster.
	samplerateFactor := float32(src.Samplerate) / float32(buf.Samplerate)
	targetGain := float32(azmath.DBToAmp(float64(d.Config.GainDB)))

	for i := 0; i < buf.Frames; i++ {
		d.speed = d.Config.Speed + transition*(d.speed-d.Config.Speed)
		volume := d.gain
		d.gain = targetGain + transition*(d.gain-targetGain)

		speed := d.speed * samplerateFactor

		frameInt := int(math.Floor(d.frame))
		frameFraction := float32(d.frame - math.Floor(d.frame))

		for c := 0; c < channels; c++ {
			var sample float32
			if speed <= 1 {
				var abcd [4]float32
				start := frameInt + srcFrames - 2
				for k := 0; k < 4; k++ {
					idx := mod(start+k, srcFrames)
					abcd[k] = src.Samples[idx*src.Stride+c]
				}
				sample = cubic(abcd[0], abcd[1], abcd[2], abcd[3], frameFraction)
			} else {
				window := int(d.Config.Speed)
				if window < 1 {
					window = 1
				}
				total := src.Samples[mod(frameInt, srcFrames)*src.Stride+c] * (1 - frameFraction)
				for k := 1; k < window; k++ {
					total += src.Samples[mod(frameInt+k, srcFrames)*src.Stride+c]
				}
				total += src.Samples[mod(frameInt+window, srcFrames)*src.Stride+c] * frameFraction
				sample = total / float32(window)
			}
			buf.Samples[i*buf.Stride+c] = sample * volume
		}

		d.frame += float64(speed)
		if d.frame >= float64(srcFrames) {
			d.frame -= float64(srcFrames)
		}
	}
	return azerr.Success
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
