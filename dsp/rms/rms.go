// Package rms implements a running root-mean-square tracker over a sliding
// window, the building block the gate and compressor use for envelope
// detection.
package rms

import (
	"math"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// Op combines a new squared sample into a running accumulator slot. Sum
// adds every channel's squared sample (total power across channels); Max
// keeps only the loudest channel's, so Combined tracks the RMS of the
// loudest channel, the single envelope a gate/compressor derives.
type Op func(acc *float32, v float32)

func Sum(acc *float32, v float32) { *acc += v }
func Max(acc *float32, v float32) {
	if v > *acc {
		*acc = v
	}
}

type channelState struct {
	window      []float32
	squaredSum  float32
	index       int
}

// Config configures a window length in samples. 128 matches the original
// RMS window used by the compressor and gate.
type Config struct {
	WindowSamples int
}

// Data is a per-chain RMS tracker, one channelState per channel, each
// holding its own ring of squared samples.
type Data struct {
	header   dsp.Header
	Config   Config
	channels []channelState
}

// New constructs an RMS tracker. WindowSamples defaults to 128 if unset.
func New(cfg Config) *Data {
	if cfg.WindowSamples <= 0 {
		cfg.WindowSamples = 128
	}
	d := &Data{Config: cfg}
	d.header.Kind = dsp.KindRMS
	return d
}

func (d *Data) Header() *dsp.Header { return &d.header }

func (d *Data) ensureChannels(n int) {
	for len(d.channels) < n {
		d.channels = append(d.channels, channelState{window: make([]float32, d.Config.WindowSamples)})
	}
}

// Process replaces buf in place with the running RMS of its own input,
// one independent tracker per channel.
func (d *Data) Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	channels := buf.Channels()
	d.ensureChannels(channels)
	for c := 0; c < channels; c++ {
		st := &d.channels[c]
		for i := 0; i < buf.Frames; i++ {
			s := i*buf.Stride + c
			st.squaredSum -= st.window[st.index]
			sq := buf.Samples[s] * buf.Samples[s]
			st.window[st.index] = sq
			st.squaredSum += sq
			if st.squaredSum < 0 {
				st.squaredSum = 0
			}
			st.index++
			if st.index >= len(st.window) {
				st.index = 0
			}
			buf.Samples[s] = sqrtf(st.squaredSum / float32(d.Config.WindowSamples))
		}
	}
	return azerr.Success
}

// Combined writes a single-channel running RMS of src (reduced across
// channels via op) into dst, which must be a one-channel buffer with the
// same frame count as src. It is used by the compressor/gate sidechain,
// which need one envelope value per frame regardless of src's channel count.
func (d *Data) Combined(dst, src buffer.Buffer, op Op) azerr.Code {
	if code := dst.Validate(); !code.Ok() {
		return code
	}
	if code := src.Validate(); !code.Ok() {
		return code
	}
	d.ensureChannels(1)
	st := &d.channels[0]
	for i := 0; i < src.Frames; i++ {
		st.squaredSum -= st.window[st.index]
		st.window[st.index] = 0
		for c := 0; c < src.Channels(); c++ {
			v := src.Samples[i*src.Stride+c]
			op(&st.window[st.index], v*v)
		}
		st.squaredSum += st.window[st.index]
		if st.squaredSum < 0 {
			st.squaredSum = 0
		}
		dst.Samples[i*dst.Stride] = sqrtf(st.squaredSum / float32(d.Config.WindowSamples))
		st.index++
		if st.index >= len(st.window) {
			st.index = 0
		}
	}
	return azerr.Success
}

func sqrtf(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(v)))
}
