package tension

import (
	"math"

	"github.com/cwbudde/algo-tensionfield/params"
)

// PreEmphasis is light high-band shaping applied before the elastic buffer.
type PreEmphasis struct {
	lowState float64
}

// Process conditions one sample. Boost rises as continuity falls; the split
// point follows the tension drive.
func (p *PreEmphasis) Process(input, tension, continuity float64) float64 {
	coeff := clamp(0.016+(1-tension)*0.03, 0.006, 0.08)
	p.lowState += (input - p.lowState) * coeff
	high := input - p.lowState
	boost := 0.06 + (1-continuity)*0.2
	return input + high*boost
}

// WarpControl holds the per-sample inputs of the spectral warp stage.
type WarpControl struct {
	// Tension is the gesture tension drive.
	Tension float64
	// Diffusion sets allpass density.
	Diffusion float64
	// Elasticity feeds the first diffuser coefficient.
	Elasticity float64
	// AirDamping is the high-band damping amount.
	AirDamping float64
	// AirCompensation re-adds damped high-band energy.
	AirCompensation bool
	// DriftPhaseInc advances the drift oscillator.
	DriftPhaseInc float64
	// WarpMotion scales drift and diffuser motion.
	WarpMotion float64
	// Color biases the damping.
	Color params.WarpColor
	// Character scales the drift amplitude.
	Character params.CharacterMode
}

// SpectralWarp is the drag coloration stage: a one-pole low/high split, two
// cascaded allpass diffusers, and a slow drift modulation of the high band.
// Channel instances use distinct allpass lengths to reduce inter-channel
// coherence.
type SpectralWarp struct {
	lowState   float64
	allpassA   allpassDelay
	allpassB   allpassDelay
	driftPhase float64
}

// NewSpectralWarp creates a warp stage with the given diffuser lengths.
func NewSpectralWarp(sizeA, sizeB int) *SpectralWarp {
	return &SpectralWarp{
		allpassA: newAllpassDelay(sizeA),
		allpassB: newAllpassDelay(sizeB),
	}
}

// Process colors one sample.
func (w *SpectralWarp) Process(input float64, control WarpControl) float64 {
	var colorBias float64
	switch control.Color {
	case params.ColorDarkDrag:
		colorBias = 0.18
	case params.ColorBrightShear:
		colorBias = -0.15
	}

	damping := clamp(control.AirDamping*(0.3+control.Tension*0.7)+colorBias, 0, 0.98)
	lowCoeff := 0.012 + (1-damping)*0.12
	w.lowState += (input - w.lowState) * lowCoeff

	high := input - w.lowState
	var compensation float64
	if control.AirCompensation {
		colorBoost := 1.0
		switch control.Color {
		case params.ColorDarkDrag:
			colorBoost = 0.75
		case params.ColorBrightShear:
			colorBoost = 1.2
		}
		compensation = damping * 0.72 * colorBoost
	}
	tone := w.lowState + high*(1-damping*0.9+compensation)

	g1 := clamp(0.12+control.Diffusion*(0.45+control.Elasticity*0.22+control.WarpMotion*0.24), 0.05, 0.9)
	g2 := clamp(0.1+control.Diffusion*(0.38+control.Tension*0.3+control.WarpMotion*0.2), 0.05, 0.9)

	output := w.allpassA.process(tone, g1)
	output = w.allpassB.process(output, g2)

	w.driftPhase = fract(w.driftPhase + control.DriftPhaseInc)
	characterScale := 0.35
	switch control.Character {
	case params.CharacterDirty:
		characterScale = 1
	case params.CharacterCrush:
		characterScale = 1.2
	}
	drift := math.Sin(w.driftPhase*2*math.Pi) *
		(0.004 + control.Tension*0.02 + control.WarpMotion*0.018) * characterScale

	return output + high*drift
}

// allpassDelay is a Schroeder allpass with a fixed-length delay buffer.
type allpassDelay struct {
	buffer []float64
	index  int
}

func newAllpassDelay(length int) allpassDelay {
	if length < 2 {
		length = 2
	}
	return allpassDelay{buffer: make([]float64, length)}
}

func (a *allpassDelay) process(input, gain float64) float64 {
	delayed := a.buffer[a.index]
	output := -gain*input + delayed
	a.buffer[a.index] = input + gain*output
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}
	return output
}

// shortDelay is a plain fixed-length delay used for side decorrelation.
type shortDelay struct {
	buffer []float64
	index  int
}

func newShortDelay(length int) shortDelay {
	if length < 2 {
		length = 2
	}
	return shortDelay{buffer: make([]float64, length)}
}

func (d *shortDelay) process(input float64) float64 {
	delayed := d.buffer[d.index]
	d.buffer[d.index] = input
	d.index++
	if d.index >= len(d.buffer) {
		d.index = 0
	}
	return delayed
}
