package stream

import (
	"testing"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/backend"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a minimal in-memory backend.Backend used to exercise
// Stream's negotiation and callback wiring without any real device.
type fakeBackend struct {
	negotiated backend.Format
	active     bool
	cb         backend.Callback
	openErr    azerr.Code
}

func (f *fakeBackend) Name() string     { return "fake" }
func (f *fakeBackend) Init() azerr.Code { return azerr.Success }
func (f *fakeBackend) Deinit() azerr.Code { return azerr.Success }

func (f *fakeBackend) EnumerateDevices(backend.Direction) ([]backend.DeviceInfo, azerr.Code) {
	return []backend.DeviceInfo{{Name: "fake out", Channels: 2}}, azerr.Success
}

func (f *fakeBackend) OpenStream(cfg backend.StreamConfig, cb backend.Callback) (backend.StreamHandle, backend.Format, azerr.Code) {
	if !f.openErr.Ok() {
		return nil, backend.Format{}, f.openErr
	}
	f.cb = cb
	format := f.negotiated
	if format.Samplerate == 0 {
		format.Samplerate = 48000
	}
	if format.Channels == 0 {
		format.Channels = 2
	}
	if format.BufferFrames == 0 {
		format.BufferFrames = 256
	}
	if format.DeviceName == "" {
		format.DeviceName = "fake out"
	}
	return "handle", format, azerr.Success
}

func (f *fakeBackend) CloseStream(backend.StreamHandle) azerr.Code { return azerr.Success }

func (f *fakeBackend) SetActive(h backend.StreamHandle, active bool) azerr.Code {
	if h != "handle" {
		return azerr.NullPointer
	}
	f.active = active
	return azerr.Success
}

func TestOpenNegotiatesAndCommitsSelectedFields(t *testing.T) {
	be := &fakeBackend{negotiated: backend.Format{Samplerate: 96000, Channels: 6, BufferFrames: 512, DeviceName: "real device"}}
	cfg := Config{Samplerate: 44100, Channels: 2, BufferFrames: 128, CommitFlags: CommitAll}

	s, code := Open(be, backend.Playback, cfg, func(any, []float32, int) azerr.Code { return azerr.Success }, nil)
	require.True(t, code.Ok())
	require.Equal(t, 96000, s.Config.Samplerate)
	require.Equal(t, 6, s.Config.Channels)
	require.Equal(t, "real device", s.Config.DeviceName)
	require.Equal(t, 512, s.Config.BufferFrames)
}

func TestOpenWithoutCommitFlagsLeavesRequestedFieldsAlone(t *testing.T) {
	be := &fakeBackend{negotiated: backend.Format{Samplerate: 96000, Channels: 6}}
	cfg := Config{Samplerate: 44100, Channels: 2, CommitFlags: CommitNone}

	s, code := Open(be, backend.Playback, cfg, func(any, []float32, int) azerr.Code { return azerr.Success }, nil)
	require.True(t, code.Ok())
	require.Equal(t, 44100, s.Config.Samplerate)
	require.Equal(t, 2, s.Config.Channels)
}

func TestOpenPropagatesBackendError(t *testing.T) {
	be := &fakeBackend{openErr: azerr.BackendUnavailable}
	_, code := Open(be, backend.Playback, Config{}, func(any, []float32, int) azerr.Code { return azerr.Success }, nil)
	require.Equal(t, azerr.BackendUnavailable, code)
}

func TestOpenRejectsNilCallback(t *testing.T) {
	be := &fakeBackend{}
	_, code := Open(be, backend.Playback, Config{}, nil, nil)
	require.Equal(t, azerr.NullPointer, code)
}

func TestDeviceCallbackInvokesUserMixFuncWithUserdata(t *testing.T) {
	be := &fakeBackend{}
	type userCtx struct{ sum float32 }
	ctx := &userCtx{}

	fn := func(ud any, data []float32, frames int) azerr.Code {
		u := ud.(*userCtx)
		for _, v := range data {
			u.sum += v
		}
		return azerr.Success
	}
	_, code := Open(be, backend.Playback, Config{}, fn, ctx)
	require.True(t, code.Ok())

	require.True(t, be.cb([]float32{1, 2, 3}, 1).Ok())
	require.Equal(t, float32(6), ctx.sum)
}

func TestSetActiveDelegatesToBackend(t *testing.T) {
	be := &fakeBackend{}
	s, code := Open(be, backend.Playback, Config{}, func(any, []float32, int) azerr.Code { return azerr.Success }, nil)
	require.True(t, code.Ok())

	require.True(t, s.SetActive(true).Ok())
	require.True(t, be.active)
	require.True(t, s.SetActive(false).Ok())
	require.False(t, be.active)
}
