// Package world models the listener's pose in a 3-D space: origin,
// orientation, and the speed of sound, used by the spatializer to steer
// mono sources into a destination channel layout. A process-wide default
// exists; any spatializer call can override it with its own World.
package world

import "github.com/azaudio-go/azaudio/internal/azmath"

// SpeedOfSoundDefault is dry air at 20°C, in meters/second (matching units
// consistently is the caller's responsibility; the engine only cares about
// the ratio between distances and this constant where Doppler/propagation
// delay matters).
const SpeedOfSoundDefault = 343.0

// World is a listener pose: where the ears are, which way they're facing,
// and how fast sound travels through the medium.
type World struct {
	Origin      azmath.Vec3
	Orientation azmath.Mat3
	SpeedOfSound float32
}

// Default returns the engine's process-wide default world: origin at the
// space's origin, identity orientation, dry air at 20°C.
func Default() World {
	return World{
		Origin:       azmath.Vec3{X: 0, Y: 0, Z: 0},
		Orientation:  azmath.Identity3(),
		SpeedOfSound: SpeedOfSoundDefault,
	}
}

// ToHeadSpace transforms a world-space point into the listener's head
// space: translate by -Origin, then rotate by Orientation^T.
func (w World) ToHeadSpace(p azmath.Vec3) azmath.Vec3 {
	return w.Orientation.TransposeMulVec(p.Sub(w.Origin))
}

var defaultWorld = Default()

// DefaultWorld returns the process-wide default world. A spatializer with
// no explicit World override uses this.
func DefaultWorld() World { return defaultWorld }

// SetDefaultWorld replaces the process-wide default world. Callers must not
// do this concurrently with in-flight spatializer calls on other
// goroutines; like the rest of the engine's process-wide state, it's meant
// to be set once during setup.
func SetDefaultWorld(w World) { defaultWorld = w }
