// Package azaudio is a realtime audio mixing and DSP engine: a graph of
// tracks, each carrying an optional chain of DSP effects and a set of
// gain-weighted sends from other tracks, pulled once per device-callback
// block through a Mixer.
//
// The engine is organized around four subsystems:
//
//   - buffer: a non-owning, planar-interleaved view over sample storage,
//     plus the mix/copy primitives every DSP effect and the mixer itself
//     build on.
//   - dsp: the effect-chain framework (a tagged header every concrete
//     effect embeds, and a chain walker), with one package per algorithm
//     family (dsp/rms, dsp/filter, dsp/limiter, dsp/compressor, dsp/gate,
//     dsp/delay, dsp/delaydynamic, dsp/reverb, dsp/sampler, dsp/spatial).
//   - track and mixer: the routing graph (tracks receiving from other
//     tracks at a gain) and the pull-model process loop that walks it,
//     with cycle detection ahead of every block.
//   - stream and backend: the device-callback boundary. The core only
//     depends on the backend.Backend interface; concrete device backends
//     (backend/ebitenbackend) live outside the core and are selected at
//     Init.
//
// Process-wide state — the allocator (alloc), the logging threshold
// (azlog), the sine table (osc), and the default listener pose (world) —
// is configured once by Init and treated as read-only once a stream is
// active, matching the concurrency model: a stream's audio callback
// thread exclusively owns that stream's mixer, tracks, and DSP state for
// as long as the stream is active.
package azaudio
