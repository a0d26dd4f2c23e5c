package buffer

import "github.com/azaudio-go/azaudio/azerr"

func checkMatch(dst, src Buffer) azerr.Code {
	if dst.Frames != src.Frames {
		return azerr.MismatchedFrameCount
	}
	if dst.Layout.Count != src.Layout.Count {
		return azerr.MismatchedChannelCount
	}
	return azerr.Success
}

// Mix adds src*volSrc into dst*volDst, in place, requiring matching frame
// and channel counts (not stride). The four corner cases of
// (volDst, volSrc) ∈ {0,1}×{0,1} are specialized to avoid multiplies on the
// common pass-through paths.
func Mix(dst Buffer, volDst float32, src Buffer, volSrc float32) azerr.Code {
	if code := checkMatch(dst, src); !code.Ok() {
		return code
	}
	channels := dst.Channels()
	switch {
	case volDst == 0 && volSrc == 0:
		Zero(dst)
	case volDst == 1 && volSrc == 0:
		// identity on dst
	case volDst == 0 && volSrc == 1:
		for i := 0; i < dst.Frames; i++ {
			for c := 0; c < channels; c++ {
				dst.Samples[i*dst.Stride+c] = src.Samples[i*src.Stride+c]
			}
		}
	case volDst == 1 && volSrc == 1:
		for i := 0; i < dst.Frames; i++ {
			for c := 0; c < channels; c++ {
				dst.Samples[i*dst.Stride+c] += src.Samples[i*src.Stride+c]
			}
		}
	default:
		for i := 0; i < dst.Frames; i++ {
			for c := 0; c < channels; c++ {
				di := i*dst.Stride + c
				si := i*src.Stride + c
				dst.Samples[di] = dst.Samples[di]*volDst + src.Samples[si]*volSrc
			}
		}
	}
	return azerr.Success
}

// MixFade linearly interpolates the dst/src gains across the block. If both
// endpoints coincide for both gains it degenerates to Mix.
func MixFade(dst Buffer, v0d, v1d float32, src Buffer, v0s, v1s float32) azerr.Code {
	if code := checkMatch(dst, src); !code.Ok() {
		return code
	}
	if v0d == v1d && v0s == v1s {
		return Mix(dst, v0d, src, v0s)
	}
	channels := dst.Channels()
	n := dst.Frames
	for i := 0; i < n; i++ {
		t := float32(0)
		if n > 1 {
			t = float32(i) / float32(n-1)
		}
		vd := v0d + (v1d-v0d)*t
		vs := v0s + (v1s-v0s)*t
		for c := 0; c < channels; c++ {
			di := i*dst.Stride + c
			si := i*src.Stride + c
			dst.Samples[di] = dst.Samples[di]*vd + src.Samples[si]*vs
		}
	}
	return azerr.Success
}

// Copy copies src into dst sample-for-sample, honoring each buffer's own
// stride. Requires matching frame and channel counts.
func Copy(dst, src Buffer) azerr.Code {
	if code := checkMatch(dst, src); !code.Ok() {
		return code
	}
	channels := dst.Channels()
	for i := 0; i < dst.Frames; i++ {
		for c := 0; c < channels; c++ {
			dst.Samples[i*dst.Stride+c] = src.Samples[i*src.Stride+c]
		}
	}
	return azerr.Success
}

// CopyChannel copies channel csrc of src into channel cdst of dst.
func CopyChannel(dst Buffer, cdst int, src Buffer, csrc int) azerr.Code {
	if dst.Frames != src.Frames {
		return azerr.MismatchedFrameCount
	}
	for i := 0; i < dst.Frames; i++ {
		dst.Samples[i*dst.Stride+cdst] = src.Samples[i*src.Stride+csrc]
	}
	return azerr.Success
}

// Zero clears every sample in the buffer's view (not the whole backing
// slice, if the view is a slice/single-channel view over a bigger buffer).
func Zero(b Buffer) {
	channels := b.Channels()
	for i := 0; i < b.Frames; i++ {
		for c := 0; c < channels; c++ {
			b.Samples[i*b.Stride+c] = 0
		}
	}
}
