// Package azmath holds the small leaf-level math the rest of the engine
// builds on: dB/amplitude and ms/sample conversions, the Vec3/Mat3 pair used
// by the spatializer, and Lanczos kernel tabulation used by the resampling
// delay line.
package azmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vec3 is the listener/source position type. golang/geo's r3.Vector already
// gives us Add/Sub/Dot/Cross/Norm; we alias it rather than redefine it.
type Vec3 = r3.Vector

// DBToAmp converts a decibel value to a linear amplitude multiplier.
func DBToAmp(db float64) float64 {
	return math.Pow(10, db/20)
}

// AmpToDB converts a linear amplitude multiplier to decibels. Zero and
// negative amplitudes map to -Inf (never NaN); callers (limiter,
// compressor) clamp the result against their own floor.
func AmpToDB(amp float64) float64 {
	if amp <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(amp)
}

// MsToSamples converts a duration in milliseconds to an integer sample
// count at the given samplerate, rounding to the nearest sample.
func MsToSamples(ms float64, samplerate int) int {
	return int(math.Round(ms * float64(samplerate) / 1000.0))
}

// SamplesToMs converts an integer sample count to milliseconds at the given
// samplerate.
func SamplesToMs(samples int, samplerate int) float64 {
	return float64(samples) * 1000.0 / float64(samplerate)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Linstep maps a into [0,1] given the window [lo, hi], clamping outside it.
// a == lo maps to 0, a == hi maps to 1.
func Linstep(a, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return Clamp((a-lo)/(hi-lo), 0, 1)
}

// Mat3 is a row-major 3x3 matrix. golang/geo ships r3.Vector but no general
// 3x3 matrix type, so this is hand-rolled; see DESIGN.md for why no pack
// library covers it.
type Mat3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// MulVec multiplies m by v: m*v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// Transpose returns m^T.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j][i] = m[i][j]
		}
	}
	return t
}

// TransposeMulVec computes m^T * v without materializing the transpose;
// this is the spatializer's hot-path operation (world.orientation^T applied
// to a source position each block).
func (m Mat3) TransposeMulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[1][0]*v.Y + m[2][0]*v.Z,
		Y: m[0][1]*v.X + m[1][1]*v.Y + m[2][1]*v.Z,
		Z: m[0][2]*v.X + m[1][2]*v.Y + m[2][2]*v.Z,
	}
}
