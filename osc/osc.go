// Package osc precomputes a single-cycle sine table, used anywhere the
// engine needs a cheap oscillator (demo tone generation in cmd/azaplay)
// without calling math.Sin per sample.
package osc

import "math"

// SineSamples is the table resolution: one extra guard sample past a full
// cycle lets Sine interpolate the wraparound without a modulo branch.
const SineSamples = 4096

var sineTable [SineSamples + 1]float32

func init() {
	for i := 0; i <= SineSamples; i++ {
		sineTable[i] = float32(math.Sin(float64(i) / SineSamples * 2 * math.Pi))
	}
}

// Sine returns sin(2*pi*phase) via a linearly-interpolated table lookup.
// phase is in cycles (not radians) and wraps to [0, 1) for any input.
func Sine(phase float32) float32 {
	p := phase - float32(math.Floor(float64(phase)))
	pos := p * SineSamples
	i := int(pos)
	frac := pos - float32(i)
	return sineTable[i] + (sineTable[i+1]-sineTable[i])*frac
}
