// Package analysis provides offline measurement helpers for the tension
// field engine: aggregation of per-block render reports and a simple
// FFT-based spectral balance measure used by the render CLI and tests.
package analysis
