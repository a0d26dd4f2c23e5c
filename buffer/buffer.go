package buffer

import "github.com/azaudio-go/azaudio/azerr"

// Buffer is a planar-interleaved view over sample storage: sample c of
// frame i lives at Samples[i*Stride+c]. A Buffer does not own its storage
// unless constructed by Alloc; views produced by Slice/OneChannel only
// adjust the offset/stride/layout, never copy.
type Buffer struct {
	Samples    []float32
	Frames     int
	Stride     int
	Layout     Layout
	Samplerate int
}

// Channels is a convenience accessor for Layout.Count as an int.
func (b Buffer) Channels() int { return int(b.Layout.Count) }

// Alloc allocates an owned buffer of the given shape with stride equal to
// the channel count (no padding).
func Alloc(frames int, layout Layout, samplerate int) Buffer {
	return Buffer{
		Samples:    make([]float32, frames*int(layout.Count)),
		Frames:     frames,
		Stride:     int(layout.Count),
		Layout:     layout,
		Samplerate: samplerate,
	}
}

// At returns the sample at frame i, channel c.
func (b Buffer) At(i, c int) float32 {
	return b.Samples[i*b.Stride+c]
}

// Set writes the sample at frame i, channel c.
func (b Buffer) Set(i, c int, v float32) {
	b.Samples[i*b.Stride+c] = v
}

// Validate checks the contract every DSP handler validates on entry
// entry: a non-nil backing slice, channels >= 1, frames >= 1.
func (b Buffer) Validate() azerr.Code {
	if b.Samples == nil {
		return azerr.NullPointer
	}
	if b.Layout.Count < 1 {
		return azerr.InvalidChannelCount
	}
	if b.Frames < 1 {
		return azerr.InvalidFrameCount
	}
	return azerr.Success
}

// Slice returns a view over [offset, offset+frames) without copying.
func (b Buffer) Slice(offset, frames int) Buffer {
	out := b
	out.Samples = b.Samples[offset*b.Stride:]
	out.Frames = frames
	return out
}

// OneChannel returns a single-channel view over channel c. The returned
// buffer keeps the original stride (so consecutive samples of that channel
// are Stride apart, not contiguous) and carries a one-channel Layout.
func (b Buffer) OneChannel(c int) Buffer {
	out := b
	out.Samples = b.Samples[c:]
	out.Layout = b.Layout.OneChannel(c)
	return out
}

// Channel0 aliases OneChannel(0), the common case of pulling out a mono
// sidechain view from a multi-channel buffer.
func (b Buffer) Channel0() Buffer {
	return b.OneChannel(0)
}
