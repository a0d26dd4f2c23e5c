// Package spatial implements angle-based spatialization of a moving mono
// source into a destination buffer's channel layout.
//
// Unlike the other dsp packages, Mix does not implement dsp.Effect: it
// reads one (mono) buffer and writes into a different (multi-channel)
// buffer, so it doesn't fit the single-buffer-in-place chain contract the
// rest of the package family shares. Callers (typically a track's send
// path) invoke it directly.
package spatial

import (
	"math"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/world"
)

// direction returns the unit vector for azimuth/elevation in degrees.
// x is right, y is up, z is forward (matching the channel-position table
// below, which is itself derived from the original engine's floor/ceiling
// diagram in dsp.h).
func direction(azimuthDeg, elevationDeg float64) azmath.Vec3 {
	az := azimuthDeg * math.Pi / 180
	el := elevationDeg * math.Pi / 180
	cosEl := math.Cos(el)
	return azmath.Vec3{
		X: math.Sin(az) * cosEl,
		Y: math.Sin(el),
		Z: math.Cos(az) * cosEl,
	}
}

var positionDirection = map[buffer.Position]azmath.Vec3{
	buffer.PosLeftFront:         direction(-30, 0),
	buffer.PosRightFront:        direction(30, 0),
	buffer.PosCenterFront:       direction(0, 0),
	buffer.PosLeftBack:          direction(-140, 0),
	buffer.PosRightBack:         direction(140, 0),
	buffer.PosLeftCenterFront:   direction(-15, 0),
	buffer.PosRightCenterFront:  direction(15, 0),
	buffer.PosCenterBack:        direction(180, 0),
	buffer.PosLeftSide:          direction(-90, 0),
	buffer.PosRightSide:         direction(90, 0),
	buffer.PosCenterTop:         direction(0, 90),
	buffer.PosLeftFrontTop:      direction(-30, 45),
	buffer.PosCenterFrontTop:    direction(0, 45),
	buffer.PosRightFrontTop:     direction(30, 45),
	buffer.PosLeftBackTop:       direction(-140, 45),
	buffer.PosCenterBackTop:     direction(180, 45),
	buffer.PosRightBackTop:      direction(140, 45),
}

func hasAerial(layout buffer.Layout) bool {
	aerials := []buffer.Position{
		buffer.PosCenterTop, buffer.PosLeftFrontTop, buffer.PosCenterFrontTop,
		buffer.PosRightFrontTop, buffer.PosLeftBackTop, buffer.PosCenterBackTop, buffer.PosRightBackTop,
	}
	for _, p := range aerials {
		if layout.Has(p) {
			return true
		}
	}
	return false
}

type endpoint struct {
	dir  azmath.Vec3
	norm float64
}

func resolveEndpoint(w world.World, srcPos azmath.Vec3) endpoint {
	head := w.ToHeadSpace(srcPos)
	n := head.Norm()
	if n < 0.5 {
		return endpoint{dir: azmath.Vec3{}, norm: n}
	}
	return endpoint{dir: head.Mul(1 / n), norm: n}
}

// Mix spatializes a mono src into dst (which must carry dstLayout, already
// matching dst.Layout — passed explicitly so callers can route a view with
// a different nominal layout than its buffer's own, mirroring the
// original's separate dstChannelLayout parameter) blending with dst's
// existing contents. w nil uses world.DefaultWorld().
func Mix(dst buffer.Buffer, dstLayout buffer.Layout, src buffer.Buffer, srcPosStart, srcPosEnd azmath.Vec3, srcAmpStart, srcAmpEnd float32, w *world.World) azerr.Code {
	if code := dst.Validate(); !code.Ok() {
		return code
	}
	if code := src.Validate(); !code.Ok() {
		return code
	}
	if src.Channels() != 1 {
		return azerr.InvalidChannelCount
	}
	if dst.Frames != src.Frames {
		return azerr.MismatchedFrameCount
	}
	effectiveWorld := world.DefaultWorld()
	if w != nil {
		effectiveWorld = *w
	}

	startEP := resolveEndpoint(effectiveWorld, srcPosStart)
	endEP := resolveEndpoint(effectiveWorld, srcPosEnd)

	channels := int(dstLayout.Count)
	subIdx := dstLayout.IndexOf(buffer.PosSubwoofer)
	minChannels := 2
	if hasAerial(dstLayout) {
		minChannels = 3
	}

	// Fixed MAX=22 stack arrays, matching the original engine's per-call
	// channel-position tables: no heap allocation on the audio-thread path.
	var ampStartArr, ampEndArr [buffer.MaxChannelPositions]float32
	ampStart := ampStartArr[:channels]
	ampEnd := ampEndArr[:channels]
	nonSubCount := 0
	for c := 0; c < channels; c++ {
		if c == subIdx {
			continue
		}
		nonSubCount++
	}
	if nonSubCount == 0 {
		return azerr.Success
	}
	allAddStart := float32(0.5-startEP.norm) * 2
	if startEP.norm >= 0.5 {
		allAddStart = 0
	}
	allAddEnd := float32(0.5-endEP.norm) * 2
	if endEP.norm >= 0.5 {
		allAddEnd = 0
	}

	for c := 0; c < channels; c++ {
		if c == subIdx {
			continue
		}
		dir, ok := positionDirection[dstLayout.Positions[c]]
		if !ok {
			dir = direction(0, 0)
		}
		ampStart[c] = 0.5*float32(startEP.norm) + 0.5*float32(startEP.dir.Dot(dir)) + allAddStart/float32(nonSubCount)
		ampEnd[c] = 0.5*float32(endEP.norm) + 0.5*float32(endEP.dir.Dot(dir)) + allAddEnd/float32(nonSubCount)
	}

	if nonSubCount > 2 {
		remapWindow(ampStart, subIdx, minChannels, allAddStart/float32(nonSubCount))
		remapWindow(ampEnd, subIdx, minChannels, allAddEnd/float32(nonSubCount))
	}

	var sumStart, sumEnd float32
	for c := 0; c < channels; c++ {
		if c == subIdx {
			continue
		}
		sumStart += ampStart[c]
		sumEnd += ampEnd[c]
	}
	if sumStart == 0 {
		sumStart = 1
	}
	if sumEnd == 0 {
		sumEnd = 1
	}

	for c := 0; c < channels; c++ {
		dstChan := dst.OneChannel(c)
		if c == subIdx {
			buffer.MixFade(dstChan, 1, 1, src, srcAmpStart, srcAmpEnd)
			continue
		}
		v0 := ampStart[c] / sumStart * srcAmpStart
		v1 := ampEnd[c] / sumEnd * srcAmpEnd
		buffer.MixFade(dstChan, 1, 1, src, v0, v1)
	}
	return azerr.Success
}

// remapWindow takes the top minChannels amplitudes (2 or 3; aerials bump it
// to 3) as a linear window [min,max], and remaps every non-subwoofer
// amplitude through linstep(a, min, max) + uniformAdd, preserving original
// channel order. minChannels is always small (<=3), so the top-K is tracked
// in a fixed-size array instead of sorting a heap-allocated slice.
func remapWindow(amps []float32, subIdx, minChannels int, uniformAdd float32) {
	const maxTop = 3
	var top [maxTop]float32
	count := 0
	for i, v := range amps {
		if i == subIdx {
			continue
		}
		count++
		// Insert v into the descending top[0:min(count,maxTop)] window.
		k := minChannels
		if k > maxTop {
			k = maxTop
		}
		if count <= k || v > top[k-1] {
			pos := k - 1
			if count < k {
				pos = count - 1
			}
			for pos > 0 && top[pos-1] < v {
				top[pos] = top[pos-1]
				pos--
			}
			top[pos] = v
		}
	}
	if count == 0 {
		return
	}
	k := minChannels
	if k > count {
		k = count
	}
	if k < 1 {
		return
	}
	aMax := top[0]
	aMin := top[k-1]
	for i, v := range amps {
		if i == subIdx {
			continue
		}
		amps[i] = float32(azmath.Linstep(float64(v), float64(aMin), float64(aMax))) + uniformAdd
	}
}
