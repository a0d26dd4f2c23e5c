// Package dsp defines the effect-chain framework shared by every concrete
// DSP algorithm (dsp/rms, dsp/filter, dsp/limiter, ...): a tagged-variant
// header every effect embeds, and a chain walker that strings a sequence of
// effects together without any dynamic allocation per block.
package dsp

import (
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/internal/scratch"
)

// Kind tags which concrete effect a Header belongs to. It exists so a chain
// can be introspected (logging, debugging tools) without a type switch over
// every concrete type.
type Kind int

const (
	KindNone Kind = iota
	KindRMS
	KindFilter
	KindLimiter
	KindCompressor
	KindGate
	KindDelay
	KindDelayDynamic
	KindReverb
	KindSampler
	KindSpatial
)

func (k Kind) String() string {
	switch k {
	case KindRMS:
		return "rms"
	case KindFilter:
		return "filter"
	case KindLimiter:
		return "limiter"
	case KindCompressor:
		return "compressor"
	case KindGate:
		return "gate"
	case KindDelay:
		return "delay"
	case KindDelayDynamic:
		return "delaydynamic"
	case KindReverb:
		return "reverb"
	case KindSampler:
		return "sampler"
	case KindSpatial:
		return "spatial"
	default:
		return "none"
	}
}

// Header is embedded by every concrete effect's data struct. It carries the
// effect's Kind (for introspection) and the link to the next effect in a
// chain; Next is nil at the tail.
type Header struct {
	Kind Kind
	Next Effect
}

// Effect is implemented by every concrete DSP algorithm's data struct. Process
// runs exactly this effect's transform over buf in place; it must not walk
// Next itself — that's Process's (the package function's) job.
type Effect interface {
	Header() *Header
	Process(buf buffer.Buffer, pool *scratch.Pool) azerr.Code
}

// Process validates buf, then walks the chain starting at e, running each
// effect's own Process over buf in place and stopping at the first error or
// at the end of the chain (Next == nil).
func Process(buf buffer.Buffer, e Effect, pool *scratch.Pool) azerr.Code {
	if code := buf.Validate(); !code.Ok() {
		return code
	}
	for e != nil {
		if code := e.Process(buf, pool); !code.Ok() {
			return code
		}
		e = e.Header().Next
	}
	return azerr.Success
}

// Append walks from head to its tail and links tail onto the end. Passing a
// nil head just returns tail.
func Append(head, tail Effect) Effect {
	if head == nil {
		return tail
	}
	cur := head
	for cur.Header().Next != nil {
		cur = cur.Header().Next
	}
	cur.Header().Next = tail
	return head
}

// Prepend makes newHead the new chain start, pointing its Next at the
// previous head.
func Prepend(head, newHead Effect) Effect {
	newHead.Header().Next = head
	return newHead
}

// Len counts the effects in the chain starting at e.
func Len(e Effect) int {
	n := 0
	for e != nil {
		n++
		e = e.Header().Next
	}
	return n
}
