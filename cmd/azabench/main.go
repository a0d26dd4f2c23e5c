// Command azabench is a headless block-rate benchmark: it drives a mixer
// directly (no backend, no device) for a fixed number of blocks and reports
// elapsed time and realtime headroom, a headless harness in the same
// spirit as a CPU-stepping benchmark but stepping a mixer instead.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/azlog"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/dsp/compressor"
	"github.com/azaudio-go/azaudio/dsp/filter"
	"github.com/azaudio-go/azaudio/dsp/reverb"
	"github.com/azaudio-go/azaudio/internal/scratch"
	"github.com/azaudio-go/azaudio/mixer"
)

type cliFlags struct {
	Samplerate   int
	BufferFrames int
	Blocks       int
	TrackCount   int
}

func parseFlags() cliFlags {
	var f cliFlags
	pflag.IntVarP(&f.Samplerate, "samplerate", "r", 48000, "samplerate to benchmark at")
	pflag.IntVarP(&f.BufferFrames, "buffer-frames", "b", 256, "block size")
	pflag.IntVarP(&f.Blocks, "blocks", "n", 2000, "number of blocks to render")
	pflag.IntVarP(&f.TrackCount, "tracks", "t", 8, "number of source tracks feeding the output")
	pflag.Parse()
	return f
}

// noiseSource is a dsp.Effect standing in for a real signal-generating
// source, deterministic so benchmark runs are repeatable.
type noiseSource struct {
	header dsp.Header
	state  uint32
}

func (n *noiseSource) Header() *dsp.Header { return &n.header }

func (n *noiseSource) Process(buf buffer.Buffer, _ *scratch.Pool) azerr.Code {
	for i := range buf.Samples {
		n.state = n.state*1664525 + 1013904223
		buf.Samples[i] = (float32(n.state>>8) / float32(1<<24)) - 0.5
	}
	return azerr.Success
}

func main() {
	f := parseFlags()
	azlog.SetLevel(azlog.Info)

	m, code := mixer.Init(mixer.Config{TrackCount: f.TrackCount, BufferFrames: f.BufferFrames}, buffer.Stereo(), f.Samplerate)
	if !code.Ok() {
		fmt.Fprintf(os.Stderr, "azabench: mixer init failed: %s\n", code)
		os.Exit(1)
	}

	for i, tr := range m.Tracks {
		tr.PrependDSP(&noiseSource{state: uint32(i*2654435761 + 1)})
		tr.AppendDSP(filter.New(filter.Config{Kind: filter.LowPass, Frequency: 4000, DryMix: 0}))
	}
	m.Output.AppendDSP(compressor.New(compressor.Config{Threshold: -12, Ratio: 4, Attack: 5, Decay: 100}))
	rv := reverb.New(reverb.Config{GainDB: -18, GainDryDB: 0, Roomsize: 1, Color: 1, DelayMs: 10})
	m.Output.AppendDSP(rv)

	start := time.Now()
	for i := 0; i < f.Blocks; i++ {
		if code := m.Process(f.BufferFrames, f.Samplerate); !code.Ok() {
			fmt.Fprintf(os.Stderr, "azabench: process failed at block %d: %s\n", i, code)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	rendered := time.Duration(f.Blocks) * time.Duration(f.BufferFrames) * time.Second / time.Duration(f.Samplerate)
	headroom := float64(rendered) / float64(elapsed)
	fmt.Printf("azabench: tracks=%d blocks=%d buffer=%d samplerate=%d\n", f.TrackCount, f.Blocks, f.BufferFrames, f.Samplerate)
	fmt.Printf("rendered=%s wall=%s realtime_headroom=%.2fx\n", rendered, elapsed.Truncate(time.Microsecond), headroom)
}
