package azaudio

import (
	"github.com/azaudio-go/azaudio/alloc"
	"github.com/azaudio-go/azaudio/azerr"
	"github.com/azaudio-go/azaudio/azlog"
	"github.com/azaudio-go/azaudio/backend"
	"github.com/azaudio-go/azaudio/world"
)

// InitOptions gathers the process-wide options that must be set once,
// before any stream becomes active: candidate backend order, the initial
// log level, the default listener pose, and the allocator.
type InitOptions struct {
	// Backends is tried in order; the first whose Init() succeeds becomes
	// the active backend. Empty means Init() does no backend selection
	// (useful for headless tests/benchmarks that drive a mixer directly).
	Backends []backend.Backend

	LogLevel      azlog.Level
	LogLevelIsSet bool

	DefaultWorld      world.World
	DefaultWorldIsSet bool

	Allocator alloc.Allocator
}

// Defaults fills unset fields with the engine's defaults, following the
// teacher's Config.Defaults() convention.
func (o *InitOptions) Defaults() {
	if !o.LogLevelIsSet {
		o.LogLevel = azlog.Error
	}
	if !o.DefaultWorldIsSet {
		o.DefaultWorld = world.Default()
	}
	// A nil Allocator is left as-is: alloc.Current() already holds a
	// working default and Init only calls SetAllocator when one is given.
}

// Active holds what Init() resolved: the selected backend (nil if none of
// Backends succeeded, or none were offered).
type Active struct {
	Backend backend.Backend
}

var active Active

// Init performs the engine's one-time, non-realtime setup: seeds the log
// level (AZAUDIO_LOG_LEVEL takes precedence over opts.LogLevel if set),
// installs the default world and allocator, and tries opts.Backends in
// order until one's Init() succeeds.
func Init(opts InitOptions) azerr.Code {
	opts.Defaults()

	azlog.SetLevel(opts.LogLevel)
	azlog.Init() // env var wins if present

	world.SetDefaultWorld(opts.DefaultWorld)
	if opts.Allocator != nil {
		alloc.SetAllocator(opts.Allocator)
	}

	active = Active{}
	for _, be := range opts.Backends {
		code := be.Init()
		if code.Ok() {
			azlog.Logf(azlog.Info, "azaudio: backend %q initialized", be.Name())
			active.Backend = be
			return azerr.Success
		}
		azlog.Logf(azlog.Error, "azaudio: backend %q failed to init: %s", be.Name(), code)
	}
	if len(opts.Backends) == 0 {
		return azerr.Success
	}
	return azerr.BackendUnavailable
}

// ActiveBackend returns the backend Init() selected, or nil if none.
func ActiveBackend() backend.Backend {
	return active.Backend
}

// Shutdown deinitializes the active backend, if any, and clears it.
func Shutdown() azerr.Code {
	if active.Backend == nil {
		return azerr.Success
	}
	code := active.Backend.Deinit()
	active = Active{}
	return code
}
