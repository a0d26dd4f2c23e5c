// Command azaplay is a small demo wiring a mixer and a synthesized
// oscillator track through the ebiten backend: flag parsing, config
// defaulting, then handing off to a run loop.
package main

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/azaudio-go/azaudio"
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/azlog"
	"github.com/azaudio-go/azaudio/backend"
	"github.com/azaudio-go/azaudio/backend/ebitenbackend"
	"github.com/azaudio-go/azaudio/buffer"
	"github.com/azaudio-go/azaudio/dsp"
	"github.com/azaudio-go/azaudio/dsp/filter"
	"github.com/azaudio-go/azaudio/internal/scratch"
	"github.com/azaudio-go/azaudio/mixer"
	"github.com/azaudio-go/azaudio/osc"
	"github.com/azaudio-go/azaudio/stream"
)

// cliFlags is a plain options bag filled by flag parsing, distinct from
// the InitOptions the library itself takes.
type cliFlags struct {
	Samplerate   int
	BufferFrames int
	ToneHz       float64
	DurationSec  float64
	LogLevel     string
	PresetOut    string
	PresetIn     string
}

func parseFlags() cliFlags {
	var f cliFlags
	pflag.IntVarP(&f.Samplerate, "samplerate", "r", 48000, "output sample rate")
	pflag.IntVarP(&f.BufferFrames, "buffer-frames", "b", 512, "device callback block size")
	pflag.Float64VarP(&f.ToneHz, "tone-hz", "t", 220, "demo oscillator frequency")
	pflag.Float64VarP(&f.DurationSec, "duration", "d", 3, "seconds to play before exiting")
	pflag.StringVarP(&f.LogLevel, "log-level", "l", "info", "none|error|info|trace")
	pflag.StringVar(&f.PresetOut, "save-preset", "", "write the demo track-graph preset to this path and exit")
	pflag.StringVar(&f.PresetIn, "load-preset", "", "load a track-graph preset from this path (only its tone frequency is applied)")
	pflag.Parse()
	return f
}

// preset is the gob-serializable fixture cmd/azaplay can snapshot and
// reload: a demo track-graph configuration, not core runtime state (the
// engine itself persists nothing). Only ToneHz is applied to the demo
// graph; FilterHz, FilterKind and GainSendDB are saved and loaded but do
// not change what plays.
type preset struct {
	ToneHz      float64
	FilterHz    float32
	FilterKind  filter.Kind
	GainSendDB  float32
}

func defaultPreset() preset {
	return preset{ToneHz: 220, FilterHz: 2000, FilterKind: filter.LowPass, GainSendDB: 0}
}

func savePreset(path string, p preset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(p)
}

func loadPreset(path string) (preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return preset{}, err
	}
	defer f.Close()
	var p preset
	err = gob.NewDecoder(f).Decode(&p)
	return p, err
}

// toneSource is a dsp.Effect that fills its buffer with a sine wave at a
// fixed frequency, standing in for a real sample-playback source track.
type toneSource struct {
	header dsp.Header
	hz     float64
	phase  float32
}

func (t *toneSource) Header() *dsp.Header { return &t.header }

func (t *toneSource) Process(buf buffer.Buffer, _ *scratch.Pool) azerr.Code {
	step := float32(t.hz) / float32(buf.Samplerate)
	channels := buf.Channels()
	for i := 0; i < buf.Frames; i++ {
		v := osc.Sine(t.phase) * 0.2
		for c := 0; c < channels; c++ {
			buf.Set(i, c, v)
		}
		t.phase += step
	}
	return azerr.Success
}

func main() {
	f := parseFlags()

	if f.PresetOut != "" {
		if err := savePreset(f.PresetOut, defaultPreset()); err != nil {
			fmt.Fprintf(os.Stderr, "azaplay: save preset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote preset to %s\n", f.PresetOut)
		return
	}

	p := defaultPreset()
	if f.PresetIn != "" {
		loaded, err := loadPreset(f.PresetIn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "azaplay: load preset: %v\n", err)
			os.Exit(1)
		}
		p = loaded
	} else if f.ToneHz > 0 {
		p.ToneHz = f.ToneHz
	}

	var level azlog.Level
	switch f.LogLevel {
	case "none":
		level = azlog.None
	case "error":
		level = azlog.Error
	case "trace":
		level = azlog.Trace
	default:
		level = azlog.Info
	}

	be := ebitenbackend.New()
	code := azaudio.Init(azaudio.InitOptions{
		Backends:      []backend.Backend{be},
		LogLevel:      level,
		LogLevelIsSet: true,
	})
	if !code.Ok() {
		fmt.Fprintf(os.Stderr, "azaplay: init failed: %s\n", code)
		os.Exit(1)
	}
	defer azaudio.Shutdown()

	m, code := mixer.Init(mixer.Config{TrackCount: 1, BufferFrames: f.BufferFrames}, buffer.Stereo(), f.Samplerate)
	if !code.Ok() {
		fmt.Fprintf(os.Stderr, "azaplay: mixer init failed: %s\n", code)
		os.Exit(1)
	}
	source := m.Tracks[0]
	source.PrependDSP(&toneSource{hz: p.ToneHz})

	s, code := stream.Open(be, backend.Playback, stream.Config{
		Samplerate:   f.Samplerate,
		Channels:     2,
		BufferFrames: f.BufferFrames,
		CommitFlags:  stream.CommitAll,
	}, func(_ any, data []float32, frames int) azerr.Code {
		dst := buffer.Buffer{Samples: data, Frames: frames, Stride: 2, Layout: buffer.Stereo(), Samplerate: f.Samplerate}
		return m.Callback(dst)
	}, nil)
	if !code.Ok() {
		fmt.Fprintf(os.Stderr, "azaplay: stream open failed: %s\n", code)
		os.Exit(1)
	}
	defer s.Close()

	if code := s.SetActive(true); !code.Ok() {
		fmt.Fprintf(os.Stderr, "azaplay: activate failed: %s\n", code)
		os.Exit(1)
	}

	time.Sleep(time.Duration(f.DurationSec * float64(time.Second)))
	s.SetActive(false)
}
