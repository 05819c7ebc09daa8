package tension

import (
	"math"

	"github.com/cwbudde/algo-tensionfield/params"
)

const (
	// matrixDeadZone suppresses sub-audible destination deltas.
	matrixDeadZone = 0.0005
	// matrixDecay is the per-sample decay factor while the matrix is off.
	matrixDecay = 0.98
	// envelopeAttack is the input-follower coefficient of Envelope sources.
	envelopeAttack = 0.06
)

// modSourceState is the runtime state of one modulation source.
type modSourceState struct {
	phase         float64
	previousPhase float64
	walkState     float64
	envState      float64
}

// ModMatrix routes two slow modulation sources through a signed depth matrix
// to six destinations, with per-destination curve shaping and smoothing.
type ModMatrix struct {
	sourceA  modSourceState
	sourceB  modSourceState
	smoothed [params.DestCount]float64
	noise    lcgNoise
}

// NewModMatrix creates a matrix with the given noise seed. A zero seed
// selects the default.
func NewModMatrix(seed uint32) *ModMatrix {
	return &ModMatrix{noise: newLCGNoise(seed)}
}

// Next generates one sample of smoothed destination offsets. inputEnvelope
// is the engine's input-level follower, consumed by Envelope sources.
func (m *ModMatrix) Next(settings params.ModSettings, clock ClockFrame, inputEnvelope, sampleRate float64) [params.DestCount]float64 {
	if !settings.Run {
		for i := range m.smoothed {
			m.smoothed[i] *= matrixDecay
		}
		return m.smoothed
	}

	a := m.sourceValue(settings.SourceA, &m.sourceA, clock, inputEnvelope, sampleRate)
	b := m.sourceValue(settings.SourceB, &m.sourceB, clock, inputEnvelope, sampleRate)

	var raw [params.DestCount]float64
	for index := range raw {
		combined := a*settings.RouteDepths[0][index] + b*settings.RouteDepths[1][index]
		raw[index] = destinationCurve(params.ModDestination(index), combined)
	}

	for index, value := range raw {
		delta := value - m.smoothed[index]
		if math.Abs(delta) < matrixDeadZone {
			continue
		}
		m.smoothed[index] += delta * destinationSmoothing(params.ModDestination(index))
	}

	return m.smoothed
}

func (m *ModMatrix) sourceValue(settings params.ModSourceSettings, state *modSourceState, clock ClockFrame, inputEnvelope, sampleRate float64) float64 {
	var phase float64
	switch settings.RateMode {
	case params.ModRateSyncDivision:
		phase = clock.PhaseForDivision(settings.RateDivision, 0)
		state.phase = phase
	default:
		increment := clamp(settings.RateHz/math.Max(sampleRate, 1), 1e-5, 0.25)
		state.phase = fract(state.phase + increment)
		phase = state.phase
	}

	// A decreasing phase marks a cycle boundary in synced mode.
	wrapped := phase < state.previousPhase
	state.previousPhase = phase

	var core float64
	switch settings.Shape {
	case params.ModTriangle:
		core = triangle(phase)
	case params.ModRandomWalk:
		var walkScale float64
		if settings.RateMode == params.ModRateFreeHz {
			walkScale = settings.RateHz * 0.6 / math.Max(sampleRate, 1)
		} else if wrapped {
			walkScale = 1
		}

		if walkScale > 0 {
			state.walkState = clamp(state.walkState+m.noise.nextSigned()*(0.8*walkScale+0.05), -1, 1)
		}
		core = state.walkState
	case params.ModEnvelope:
		target := clamp(inputEnvelope, 0, 1)
		state.envState += (target - state.envState) * envelopeAttack
		core = state.envState*2 - 1
	default:
		core = math.Sin(phase * 2 * math.Pi)
	}

	return core * clamp(settings.Depth, 0, 1)
}

// destinationCurve applies a softened mid-bias power curve to the
// perceptually sensitive destinations and identity elsewhere.
func destinationCurve(dest params.ModDestination, value float64) float64 {
	clamped := clamp(value, -1, 1)
	switch dest {
	case params.DestTension, params.DestWarpMotion, params.DestFeedback:
		return sign(clamped) * math.Pow(math.Abs(clamped), 0.75)
	default:
		return clamped
	}
}

func destinationSmoothing(dest params.ModDestination) float64 {
	switch dest {
	case params.DestTension:
		return 0.07
	case params.DestDirection:
		return 0.06
	case params.DestWarpMotion:
		return 0.08
	case params.DestFeedback:
		return 0.09
	default:
		return 0.05
	}
}

func triangle(phase float64) float64 {
	p := fract(phase)
	if p < 0.5 {
		return p*4 - 1
	}
	return 3 - p*4
}
