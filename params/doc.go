// Package params provides the host-facing parameter layer for the tension
// field engine.
//
// It defines the enumerated parameter types with their stable numeric
// encoding, an atomic parameter store safe for concurrent automation writes
// and audio-thread reads, and the immutable Settings snapshot the engine
// consumes once per block. The numeric encoding of enumerated parameters is
// part of the host contract and must not change between releases.
package params
