// Package backend defines the capability interface the core requires from
// a device-audio backend: stream lifecycle, device enumeration, and the
// negotiated format a stream settled on. The core (stream, mixer) depends
// only on this interface; concrete backends live in their own packages
// (e.g. backend/ebitenbackend) so the core never imports a device library
// directly.
package backend

import "github.com/azaudio-go/azaudio/azerr"

// Direction is which way audio flows through a stream.
type Direction int

const (
	Playback Direction = iota
	Capture
)

// DeviceInfo describes one enumerable device for one direction.
type DeviceInfo struct {
	Name     string
	Channels int
}

// StreamHandle is an opaque per-open-stream token a backend returns from
// OpenStream and must accept back into every other stream-scoped method.
// The core never inspects its contents.
type StreamHandle interface{}

// Callback is invoked by the backend's audio thread once per block. data is
// interleaved float32 at the negotiated stride; the backend owns data's
// memory for the duration of the call only.
type Callback func(data []float32, frames int) azerr.Code

// StreamConfig is what the core asks a backend to negotiate. Backends are
// free to return a different Samplerate/Channels/BufferFrames than
// requested (zero values mean "let the backend choose"); the realized
// values are reported back via NegotiatedFormat.
type StreamConfig struct {
	Direction    Direction
	Samplerate   int
	Channels     int
	BufferFrames int
	DeviceName   string // empty selects the platform default
}

// Format is what a stream actually settled on after negotiation.
type Format struct {
	Samplerate   int
	Channels     int
	BufferFrames int
	DeviceName   string
}

// Backend is the capability surface the core requires. Every method
// reports azerr.Code rather than panicking or returning a Go error, so a
// backend failure at init time can be retried against the next candidate
// backend in platform order.
type Backend interface {
	// Name identifies the backend for logging and candidate-order records.
	Name() string

	// Init performs one-time, non-realtime setup (device probing, library
	// loading). Only Init's result decides whether the core moves on to
	// the next candidate; a backend whose Init succeeded stays selected
	// even if it later fails to open a stream.
	Init() azerr.Code

	// Deinit releases everything Init acquired. Safe to call even if no
	// stream was ever opened.
	Deinit() azerr.Code

	// EnumerateDevices lists the devices available for dir.
	EnumerateDevices(dir Direction) ([]DeviceInfo, azerr.Code)

	// OpenStream negotiates cfg against a device and returns a handle plus
	// the realized format. The stream starts inactive; SetActive(handle,
	// true) begins calling cb from the backend's audio thread.
	OpenStream(cfg StreamConfig, cb Callback) (StreamHandle, Format, azerr.Code)

	// CloseStream tears down a stream opened by OpenStream. Deactivates
	// first if still active.
	CloseStream(h StreamHandle) azerr.Code

	// SetActive starts or stops the backend's audio thread calling cb for
	// this stream. Calling it redundantly (already in the requested state)
	// is a no-op, not an error.
	SetActive(h StreamHandle, active bool) azerr.Code
}
