// Package ebitenbackend implements backend.Backend on top of
// github.com/hajimehoshi/ebiten/v2/audio, the one backend this module
// ships a real, exercised implementation for, so cmd/azaplay can actually
// make sound; the core itself keeps the backend interface abstract and
// treats concrete device backends as out of scope.
//
// ebiten's audio.Context drives playback by pulling from an io.Reader of
// raw interleaved PCM bytes; streamReader adapts that pull model onto this
// module's float32-sample Callback.
package ebitenbackend

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/azlog"
	"github.com/azaudio-go/azaudio/backend"
)

const channels = 2 // ebiten's audio.Context only ever negotiates stereo output
const bytesPerSample = 4 // float32

// Backend drives playback through a single process-wide ebiten
// audio.Context, matching ebiten's own one-context-per-process contract.
type Backend struct {
	ctx *audio.Context
}

// New returns an unitialized Backend; call Init before OpenStream.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "ebiten" }

func (b *Backend) Init() azerr.Code {
	return azerr.Success
}

func (b *Backend) Deinit() azerr.Code {
	b.ctx = nil
	return azerr.Success
}

// EnumerateDevices always reports one synthetic playback device: ebiten's
// audio.Context has no device-selection API of its own.
func (b *Backend) EnumerateDevices(dir backend.Direction) ([]backend.DeviceInfo, azerr.Code) {
	if dir != backend.Playback {
		return nil, azerr.NoDevicesAvailable
	}
	return []backend.DeviceInfo{{Name: "ebiten default output", Channels: channels}}, azerr.Success
}

type streamHandle struct {
	player *audio.Player
}

// streamReader adapts the module's block-pull Callback onto io.Reader,
// the shape ebiten's audio.Player reads from.
type streamReader struct {
	cb      backend.Callback
	scratch []float32
}

func (r *streamReader) Read(p []byte) (int, error) {
	frameBytes := channels * bytesPerSample
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	needed := frames * channels
	if cap(r.scratch) < needed {
		r.scratch = make([]float32, needed)
	}
	samples := r.scratch[:needed]

	if code := r.cb(samples, frames); !code.Ok() {
		azlog.Logf(azlog.Error, "ebitenbackend: stream callback returned %s", code)
		for i := range samples {
			samples[i] = 0
		}
	}

	for i, v := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	return frames * frameBytes, nil
}

func (b *Backend) OpenStream(cfg backend.StreamConfig, cb backend.Callback) (backend.StreamHandle, backend.Format, azerr.Code) {
	if cfg.Direction != backend.Playback {
		return nil, backend.Format{}, azerr.BackendError
	}
	samplerate := cfg.Samplerate
	if samplerate == 0 {
		samplerate = 48000
	}
	if b.ctx == nil {
		b.ctx = audio.NewContext(samplerate)
	}

	reader := &streamReader{cb: cb}
	player, err := b.ctx.NewPlayerF32(reader)
	if err != nil {
		azlog.Logf(azlog.Error, "ebitenbackend: NewPlayerF32 failed: %v", err)
		return nil, backend.Format{}, azerr.BackendError
	}

	bufferFrames := cfg.BufferFrames
	if bufferFrames == 0 {
		bufferFrames = 1024
	}
	format := backend.Format{
		Samplerate:   samplerate,
		Channels:     channels,
		BufferFrames: bufferFrames,
		DeviceName:   "ebiten default output",
	}
	return &streamHandle{player: player}, format, azerr.Success
}

func (b *Backend) CloseStream(h backend.StreamHandle) azerr.Code {
	sh, ok := h.(*streamHandle)
	if !ok || sh == nil {
		return azerr.NullPointer
	}
	if err := sh.player.Close(); err != nil {
		return azerr.BackendError
	}
	return azerr.Success
}

func (b *Backend) SetActive(h backend.StreamHandle, active bool) azerr.Code {
	sh, ok := h.(*streamHandle)
	if !ok || sh == nil {
		return azerr.NullPointer
	}
	if active {
		sh.player.Play()
	} else {
		sh.player.Pause()
	}
	return azerr.Success
}
