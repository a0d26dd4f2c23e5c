// Package azerr defines the engine's single enumerated error/status domain.
//
// Every DSP, mixer, track, and stream operation reports status through a
// Code instead of an ad-hoc error value, so callers on the audio thread can
// switch on a closed set without allocating. Code implements error so it can
// still be returned and wrapped normally off the audio thread.
package azerr

import "fmt"

// Code is a stable-ordered status. The order matches the wire-exposed
// enumeration; do not reorder existing values.
type Code int

const (
	Success Code = iota
	OutOfMemory
	BackendUnavailable
	BackendLoadError
	BackendError
	NoDevicesAvailable
	NullPointer
	InvalidChannelCount
	InvalidFrameCount
	InvalidConfiguration
	InvalidDSPKind
	MismatchedChannelCount
	MismatchedFrameCount
	MismatchedSamplerate
	DSPInterfaceExpectedSingle
	DSPInterfaceExpectedDual
	DSPInterfaceNotGeneric
	MixerRoutingCycle

	codeCount
)

var names = [codeCount]string{
	Success:                    "success",
	OutOfMemory:                "out of memory",
	BackendUnavailable:         "backend unavailable",
	BackendLoadError:           "backend load error",
	BackendError:               "backend error",
	NoDevicesAvailable:         "no devices available",
	NullPointer:                "null pointer",
	InvalidChannelCount:        "invalid channel count",
	InvalidFrameCount:          "invalid frame count",
	InvalidConfiguration:       "invalid configuration",
	InvalidDSPKind:             "invalid dsp kind",
	MismatchedChannelCount:     "mismatched channel count",
	MismatchedFrameCount:       "mismatched frame count",
	MismatchedSamplerate:       "mismatched samplerate",
	DSPInterfaceExpectedSingle: "dsp interface expected single",
	DSPInterfaceExpectedDual:   "dsp interface expected dual",
	DSPInterfaceNotGeneric:     "dsp interface not generic",
	MixerRoutingCycle:          "mixer routing cycle",
}

// Ok reports whether the code represents success.
func (c Code) Ok() bool { return c == Success }

// Error implements the error interface so Code can be returned and compared
// with errors.Is without an extra allocation in the common case.
func (c Code) Error() string {
	return String(c)
}

// String returns the stable static string for a known code. Unlike Message,
// it never touches a caller-supplied buffer.
func String(c Code) string {
	if c < 0 || c >= codeCount {
		return fmt.Sprintf("unknown azaudio error %d", int(c))
	}
	return names[c]
}

// Message mirrors the C azaErrorString(error, buffer, len) contract: known
// codes return a static string with scratch left untouched; unknown codes
// are formatted into scratch and that backing array is returned as a
// string, so only the fallback path allocates by growing scratch.
func Message(c Code, scratch []byte) string {
	if c >= 0 && c < codeCount {
		return names[c]
	}
	scratch = fmt.Appendf(scratch[:0], "unknown azaudio error %d", int(c))
	return string(scratch)
}
