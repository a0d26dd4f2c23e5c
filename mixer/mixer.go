// Package mixer owns a fixed pool of tracks plus a distinguished output
// track, runs the routing-cycle check ahead of every process call, and
// pulls the output track to render a block.
package mixer

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/internal/scratch"
	"github.com/azaudio-go/azaudio/track"
)

// Config controls a mixer's shape. BufferFrames is the maximum block size
// any track buffer must hold; every track is allocated to it at Init.
type Config struct {
	TrackCount   int
	BufferFrames int
}

// Mixer owns TrackCount regular tracks plus one output track. Every
// non-output track is wired into the output at 0dB by Init (wire-once
// default); callers rewire with track.Connect/Disconnect afterward.
type Mixer struct {
	Config Config
	Tracks []*track.Track
	Output *track.Track
	pool   scratch.Pool
}

// Init allocates Config.TrackCount tracks plus an output track, all sized
// to Config.BufferFrames in layout, and wires every regular track into the
// output at 0dB.
func Init(cfg Config, layout buffer.Layout, samplerate int) (*Mixer, azerr.Code) {
	if cfg.TrackCount < 0 || cfg.BufferFrames < 1 {
		return nil, azerr.InvalidConfiguration
	}
	m := &Mixer{
		Config: cfg,
		Output: track.New(cfg.BufferFrames, layout, samplerate),
	}
	m.Tracks = make([]*track.Track, cfg.TrackCount)
	for i := range m.Tracks {
		m.Tracks[i] = track.New(cfg.BufferFrames, layout, samplerate)
		m.Output.Connect(m.Tracks[i], 0)
	}
	return m, azerr.Success
}

// CheckRouting runs the three-state DFS from the output track, reporting
// MixerRoutingCycle on any back-edge.
func (m *Mixer) CheckRouting() azerr.Code {
	return m.Output.CheckRouting()
}

// Process validates the routing graph, then pulls the output track for
// frames samples at samplerate. No track buffer is modified if
// CheckRouting fails.
func (m *Mixer) Process(frames, samplerate int) azerr.Code {
	if code := m.CheckRouting(); !code.Ok() {
		return code
	}
	return m.Output.Process(frames, samplerate, &m.pool)
}

// Callback aliases the output track's buffer to deviceBuf for the duration
// of the call (so the mixer renders directly into the device's buffer with
// no extra copy), runs Process, then restores the output track's own
// buffer.
func (m *Mixer) Callback(deviceBuf buffer.Buffer) azerr.Code {
	original := m.Output.Buffer()
	m.Output.SetBuffer(deviceBuf)
	defer m.Output.SetBuffer(original)
	return m.Process(deviceBuf.Frames, deviceBuf.Samplerate)
}
