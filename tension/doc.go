// Package tension implements the elastic time-warp engine: a variable-speed
// stereo delay driven by a gesture generator, colored by a spectral drag
// stage, widened by a mid/side space stage, and steered by a dual-source
// modulation matrix.
//
// The engine is created once per audio-stream activation at a fixed sample
// rate and processes fixed-size blocks in place. Every numeric path is
// clamped rather than fallible; rendering never errors and never allocates.
// The engine owns all of its mutable state and must be called from a single
// goroutine; parameter edits reach it only through the immutable
// params.Settings snapshot passed to Render.
package tension
