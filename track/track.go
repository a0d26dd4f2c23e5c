// Package track implements an audio track: an owned buffer, an optional
// DSP effect chain, and a list of receives (gain-weighted sends from
// upstream tracks) that are pulled and mixed in before the chain runs.
package track

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/internal/azmath"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// mark is the three-state tag used during cycle detection.
type mark int

const (
	unvisited mark = iota
	onStack
	done
)

// Receive is a gain-weighted send from an upstream track.
type Receive struct {
	Source *Track
	GainDB float32
}

// Track owns its buffer and DSP chain head, and references (without
// owning) the upstream tracks it receives from.
type Track struct {
	buf       buffer.Buffer
	DSPChain  dsp.Effect
	Receives  []Receive
	Name      string
	mark      mark
}

// New allocates a track's buffer at the given shape.
func New(frames int, layout buffer.Layout, samplerate int) *Track {
	return &Track{buf: buffer.Alloc(frames, layout, samplerate)}
}

// Buffer returns the track's own buffer view (not a copy).
func (t *Track) Buffer() buffer.Buffer { return t.buf }

// SetBuffer replaces the track's buffer view entirely, used by the mixer's
// output-aliasing trick to point the output track straight at the device
// buffer for the duration of a callback.
func (t *Track) SetBuffer(b buffer.Buffer) { t.buf = b }

// AppendDSP splices effect onto the end of the chain.
func (t *Track) AppendDSP(effect dsp.Effect) {
	t.DSPChain = dsp.Append(t.DSPChain, effect)
}

// PrependDSP makes effect the new chain head.
func (t *Track) PrependDSP(effect dsp.Effect) {
	t.DSPChain = dsp.Prepend(t.DSPChain, effect)
}

// Connect adds a send from src into t at gainDB, or updates the gain in
// place if a send from src already exists.
func (t *Track) Connect(src *Track, gainDB float32) *Receive {
	for i := range t.Receives {
		if t.Receives[i].Source == src {
			t.Receives[i].GainDB = gainDB
			return &t.Receives[i]
		}
	}
	t.Receives = append(t.Receives, Receive{Source: src, GainDB: gainDB})
	return &t.Receives[len(t.Receives)-1]
}

// Disconnect removes any send from src into t.
func (t *Track) Disconnect(src *Track) {
	for i := range t.Receives {
		if t.Receives[i].Source == src {
			t.Receives = append(t.Receives[:i], t.Receives[i+1:]...)
			return
		}
	}
}

// resetMarks clears cycle-detection marks on t and everything reachable
// from it, ahead of a fresh CheckRouting pass.
func (t *Track) resetMarks(visited map[*Track]bool) {
	if visited[t] {
		return
	}
	visited[t] = true
	t.mark = unvisited
	for _, r := range t.Receives {
		r.Source.resetMarks(visited)
	}
}

// CheckRouting runs a three-state DFS from t (expected to be a mixer's
// output track) and reports MixerRoutingCycle if a back-edge exists.
func (t *Track) CheckRouting() azerr.Code {
	t.resetMarks(make(map[*Track]bool))
	return t.checkRoutingDFS()
}

func (t *Track) checkRoutingDFS() azerr.Code {
	switch t.mark {
	case onStack:
		return azerr.MixerRoutingCycle
	case done:
		return azerr.Success
	}
	t.mark = onStack
	for _, r := range t.Receives {
		if code := r.Source.checkRoutingDFS(); !code.Ok() {
			return code
		}
	}
	t.mark = done
	return azerr.Success
}

// Process implements the pull model: slice the track's own
// buffer to frames at samplerate, zero it, recursively pull and mix every
// receive, then run the DSP chain in place.
func (t *Track) Process(frames, samplerate int, pool *scratch.Pool) azerr.Code {
	view := t.buf.Slice(0, frames)
	view.Samplerate = samplerate
	buffer.Zero(view)

	for _, r := range t.Receives {
		if code := r.Source.Process(frames, samplerate, pool); !code.Ok() {
			return code
		}
		srcView := r.Source.buf.Slice(0, frames)
		gain := float32(azmath.DBToAmp(float64(r.GainDB)))
		if code := buffer.Mix(view, 1, srcView, gain); !code.Ok() {
			return code
		}
	}

	if t.DSPChain != nil {
		return dsp.Process(view, t.DSPChain, pool)
	}
	return azerr.Success
}
