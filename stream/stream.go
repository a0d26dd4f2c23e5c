// Package stream pairs a backend.Backend's device-side callback with a
// user-side mix callback, and negotiates the config fields a mixer needs
// before it can allocate tracks.
package stream

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/backend"
)

// CommitFlags selects which negotiated fields Open binds into the returned
// Stream's Config after the backend settles on a real device format.
type CommitFlags int

const (
	CommitNone CommitFlags = 0

	CommitDeviceName    CommitFlags = 1 << 0
	CommitSamplerate    CommitFlags = 1 << 1
	CommitChannelLayout CommitFlags = 1 << 2

	CommitAll = CommitDeviceName | CommitSamplerate | CommitChannelLayout
)

// MixFunc is the user-side callback a Stream drives once per block. It
// receives the interleaved float32 data for frames frames at the stream's
// negotiated channel count.
type MixFunc func(userdata any, data []float32, frames int) azerr.Code

// Config is both the stream's request (fields the caller wants) and, after
// Open, its negotiated state for whichever fields CommitFlags selects.
type Config struct {
	DeviceName   string
	Samplerate   int
	Channels     int
	BufferFrames int
	CommitFlags  CommitFlags
}

// Stream is opaque to callers beyond its exported Config/Direction: the
// backend handle, callback, and userdata are set at Open and read only by
// Stream's own methods.
type Stream struct {
	Config    Config
	Direction backend.Direction

	mixCB    MixFunc
	userdata any

	backend backend.Backend
	handle  backend.StreamHandle
}

// Open negotiates cfg against be, wiring fn as the user-side callback.
// After a successful Open, the fields of s.Config selected by
// cfg.CommitFlags hold the realized format, and s.Config.BufferFrames
// always holds the negotiated block size; the caller's cfg is a copy and
// is left unchanged.
func Open(be backend.Backend, dir backend.Direction, cfg Config, fn MixFunc, userdata any) (*Stream, azerr.Code) {
	if be == nil || fn == nil {
		return nil, azerr.NullPointer
	}
	s := &Stream{
		Config:    cfg,
		Direction: dir,
		mixCB:     fn,
		userdata:  userdata,
		backend:   be,
	}

	beCfg := backend.StreamConfig{
		Direction:    dir,
		Samplerate:   cfg.Samplerate,
		Channels:     cfg.Channels,
		BufferFrames: cfg.BufferFrames,
		DeviceName:   cfg.DeviceName,
	}
	handle, format, code := be.OpenStream(beCfg, s.deviceCallback)
	if !code.Ok() {
		return nil, code
	}
	s.handle = handle

	if cfg.CommitFlags&CommitDeviceName != 0 {
		s.Config.DeviceName = format.DeviceName
	}
	if cfg.CommitFlags&CommitSamplerate != 0 {
		s.Config.Samplerate = format.Samplerate
	}
	if cfg.CommitFlags&CommitChannelLayout != 0 {
		s.Config.Channels = format.Channels
	}
	s.Config.BufferFrames = format.BufferFrames
	return s, azerr.Success
}

// deviceCallback adapts the backend's raw-slice callback into the stream's
// user-facing MixFunc, called from the backend's audio thread.
func (s *Stream) deviceCallback(data []float32, frames int) azerr.Code {
	return s.mixCB(s.userdata, data, frames)
}

// SetActive starts or stops the backend's audio thread driving this
// stream's callback.
func (s *Stream) SetActive(active bool) azerr.Code {
	return s.backend.SetActive(s.handle, active)
}

// Close tears the stream down, deactivating first if necessary.
func (s *Stream) Close() azerr.Code {
	return s.backend.CloseStream(s.handle)
}
