package tension

import (
	"math"

	"github.com/cwbudde/algo-tensionfield/params"
)

// oneShotSeconds is the fixed impulse window started by a trigger launch.
const oneShotSeconds = 0.11

// GestureInput holds the per-sample control inputs for the gesture engine.
type GestureInput struct {
	// Tension is the base tension amount.
	Tension float64
	// TimeMode selects free versus synced timing.
	TimeMode params.TimeMode
	// PullRateHz is the free-running rate in Hertz.
	PullRateHz float64
	// PullDivision is the synced cycle length.
	PullDivision params.PullDivision
	// Swing is the synced-timing swing amount.
	Swing float64
	// PullShape is the gesture waveform.
	PullShape params.PullShape
	// PullTrigger is the momentary pull trigger.
	PullTrigger bool
	// PullLatch holds the gesture engaged between trigger edges.
	PullLatch bool
	// PullQuantize aligns trigger launches to a musical grid.
	PullQuantize params.PullQuantize
	// Rebound shapes the release.
	Rebound float64
	// ReleaseSnap speeds the release further.
	ReleaseSnap float64
	// PullDirection is the direction bias in [-1, 1].
	PullDirection float64
	// Elasticity is the viscous-to-spring response amount.
	Elasticity float64
}

// GestureFrame is the per-sample gesture output consumed by the DSP stages.
type GestureFrame struct {
	// DelaySamples is the elastic-buffer target delay length.
	DelaySamples float64
	// Velocity is the signed motion velocity used for pitch coupling.
	Velocity float64
	// TensionDrive is the 0..1 tension drive amount.
	TensionDrive float64
	// DriftPhaseInc is the drift phase increment used by warp motion.
	DriftPhaseInc float64
}

// GestureEngine generates the pull motion: a shaped periodic generator, a
// trigger/latch/quantize state machine, and an asymmetric envelope with a
// bounded random-walk component.
type GestureEngine struct {
	freePhase         float64
	pullEnv           float64
	randomWalk        float64
	previousDirection float64
	wasPullPressed    bool
	latchedActive     bool
	pendingQuantized  bool
	oneShotSamples    int
	previousBeatPos   float64
	hasPreviousBeat   bool
	noise             xorshift32
}

// NewGestureEngine creates a gesture engine with the given noise seed.
// A zero seed selects the default.
func NewGestureEngine(seed uint32) *GestureEngine {
	return &GestureEngine{noise: newXorshift32(seed)}
}

// Next generates one gesture frame at the current sample.
func (g *GestureEngine) Next(input GestureInput, sampleRate float64, clock ClockFrame) GestureFrame {
	risingEdge := input.PullTrigger && !g.wasPullPressed
	g.wasPullPressed = input.PullTrigger

	if !input.PullLatch {
		g.latchedActive = false
	}

	if risingEdge {
		if input.PullLatch {
			g.latchedActive = true
		}

		if _, quantized := input.PullQuantize.Beats(); !quantized || !clock.Playing {
			g.startPull(sampleRate)
		} else {
			g.pendingQuantized = true
		}
	}

	if g.pendingQuantized {
		if gridBeats, quantized := input.PullQuantize.Beats(); quantized {
			if g.crossedQuantizeBoundary(clock.BeatPosition, gridBeats) {
				g.startPull(sampleRate)
				g.pendingQuantized = false
			}
		} else {
			g.startPull(sampleRate)
			g.pendingQuantized = false
		}
	}

	var phase float64
	switch input.TimeMode {
	case params.TimeSyncDivision:
		phase = clock.PhaseForDivision(input.PullDivision, input.Swing)
	default:
		increment := clamp(input.PullRateHz/math.Max(sampleRate, 1), 1e-5, 0.25)
		g.freePhase = fract(g.freePhase + increment)
		phase = g.freePhase
	}

	var envelopeTarget float64
	switch {
	case input.PullLatch:
		if g.latchedActive {
			envelopeTarget = 1
		}
	case input.PullTrigger:
		envelopeTarget = 1
	}

	oneShotActive := g.oneShotSamples > 0
	if g.oneShotSamples > 0 {
		g.oneShotSamples--
	}

	target := envelopeTarget
	if oneShotActive && target < 1 {
		target = 1
	}

	attack := 0.006 + input.Elasticity*0.028
	release := 0.0009 + input.Rebound*0.028 + input.ReleaseSnap*0.05
	smoothing := release
	if target > g.pullEnv {
		smoothing = attack
	}
	g.pullEnv += (target - g.pullEnv) * smoothing

	walkAmount := 0.0012 + input.Elasticity*0.005
	g.randomWalk = clamp(g.randomWalk+g.noise.nextSigned()*walkAmount, -1, 1)

	shapeValue := evaluateShape(input.PullShape, phase)
	motion := shapeValue*(0.3+g.pullEnv*0.7) + g.randomWalk*(0.04+input.Elasticity*0.1)

	directional := clamp(motion*0.7+input.PullDirection*0.65, -1, 1)
	velocity := directional - g.previousDirection
	g.previousDirection = directional

	tensionDrive := clamp(input.Tension*(0.2+math.Abs(directional)*0.8), 0, 1)
	centerDelay := sampleRate * (0.05 + input.Tension*0.2)
	delaySwing := sampleRate * (0.004 + input.Elasticity*0.075)
	delaySamples := math.Max(centerDelay+directional*delaySwing, 12)

	driftPhaseInc := clamp(0.0002+math.Abs(velocity)*0.018+tensionDrive*0.008, 0.0001, 0.08)

	g.previousBeatPos = clock.BeatPosition
	g.hasPreviousBeat = true

	return GestureFrame{
		DelaySamples:  delaySamples,
		Velocity:      velocity,
		TensionDrive:  tensionDrive,
		DriftPhaseInc: driftPhaseInc,
	}
}

func (g *GestureEngine) startPull(sampleRate float64) {
	g.oneShotSamples = int(math.Round(sampleRate * oneShotSeconds))
}

func (g *GestureEngine) crossedQuantizeBoundary(beatPosition, gridBeats float64) bool {
	previous := beatPosition
	if g.hasPreviousBeat {
		previous = g.previousBeatPos
	}
	return math.Floor(beatPosition/gridBeats) > math.Floor(previous/gridBeats)
}

// evaluateShape evaluates one gesture waveform at a phase in [0, 1).
func evaluateShape(shape params.PullShape, phase float64) float64 {
	phase = fract(phase)
	switch shape {
	case params.PullRubber:
		s := math.Sin(phase * 2 * math.Pi)
		return sign(s) * math.Pow(math.Abs(s), 0.6)
	case params.PullRatchet:
		const steps = 6.0
		stepped := (math.Floor(phase*steps)/(steps-1))*2 - 1
		softener := math.Sin(phase*2*math.Pi) * 0.18
		return clamp(stepped*0.86+softener, -1, 1)
	case params.PullWave:
		return math.Sin(phase * 2 * math.Pi)
	case params.PullPulse:
		switch {
		case phase < 0.2:
			return 1
		case phase < 0.45:
			return -0.2
		case phase < 0.65:
			return 0.6
		default:
			return -1
		}
	default:
		return phase*2 - 1
	}
}

func sign(value float64) float64 {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}
