package tension

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tensionfield/params"
)

const (
	maxFeedback = 0.7
	// trimSmoothing eases output trim changes across blocks.
	trimSmoothing = 0.002
	// energySmoothing tracks output energy for the energy ceiling.
	energySmoothing = 0.002
	// ceilingGainSmoothing eases ceiling gain changes.
	ceilingGainSmoothing = 0.01
)

// Report carries the per-block smoothed 0..1 activity and peak values
// consumed by the metering collaborator.
type Report struct {
	// InputLeft is the left input activity.
	InputLeft float64
	// InputRight is the right input activity.
	InputRight float64
	// ElasticActivity is the elastic stage activity.
	ElasticActivity float64
	// WarpActivity is the warp stage activity.
	WarpActivity float64
	// SpaceActivity is the space stage activity.
	SpaceActivity float64
	// FeedbackActivity is the feedback path activity.
	FeedbackActivity float64
	// OutputLeft is the left output activity.
	OutputLeft float64
	// OutputRight is the right output activity.
	OutputRight float64
	// TensionActivity is the tension drive activity.
	TensionActivity float64
}

// Option mutates engine construction parameters.
type Option func(*engineConfig) error

type engineConfig struct {
	gestureSeed uint32
	elasticSeed uint32
	matrixSeed  uint32
}

// WithGestureSeed seeds the gesture engine's noise generator.
func WithGestureSeed(seed uint32) Option {
	return func(cfg *engineConfig) error {
		if seed == 0 {
			return fmt.Errorf("gesture seed must be nonzero")
		}
		cfg.gestureSeed = seed
		return nil
	}
}

// WithElasticSeed seeds the elastic buffer's jitter generator.
func WithElasticSeed(seed uint32) Option {
	return func(cfg *engineConfig) error {
		if seed == 0 {
			return fmt.Errorf("elastic seed must be nonzero")
		}
		cfg.elasticSeed = seed
		return nil
	}
}

// WithMatrixSeed seeds the modulation matrix's noise generator.
func WithMatrixSeed(seed uint32) Option {
	return func(cfg *engineConfig) error {
		if seed == 0 {
			return fmt.Errorf("matrix seed must be nonzero")
		}
		cfg.matrixSeed = seed
		return nil
	}
}

// Engine is the complete elastic time-warp processor. One instance serves
// one audio stream at a fixed sample rate for its whole lifetime; there is
// no reset operation, so deactivating and reactivating a stream without
// reconstructing the engine keeps prior buffer and filter state.
type Engine struct {
	sampleRate float64
	clock      *TransportClock
	preLeft    PreEmphasis
	preRight   PreEmphasis
	gesture    *GestureEngine
	modulation *ModMatrix
	elastic    *ElasticBuffer
	warpLeft   *SpectralWarp
	warpRight  *SpectralWarp
	space      *SpaceStage

	feedbackLeft  float64
	feedbackRight float64
	inputEnv      float64
	outputGain    float64
	energyEnv     float64
	ceilingGain   float64
}

// New creates an engine for the given sample rate. All buffers are sized
// here; rendering allocates nothing.
func New(sampleRate float64, opts ...Option) (*Engine, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("engine sample rate must be > 0 and finite: %f", sampleRate)
	}

	var cfg engineConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Engine{
		sampleRate: sampleRate,
		clock:      NewTransportClock(sampleRate),
		gesture:    NewGestureEngine(cfg.gestureSeed),
		modulation: NewModMatrix(cfg.matrixSeed),
		elastic:    NewElasticBuffer(sampleRate, cfg.elasticSeed),
		warpLeft:   NewSpectralWarp(37, 73),
		warpRight:  NewSpectralWarp(43, 79),
		space:      NewSpaceStage(),
		outputGain:  1,
		ceilingGain: 1,
	}, nil
}

// SampleRate returns the fixed sample rate the engine was built for.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// Render processes one stereo block in place and returns the block's
// metering report. Zero-length input is a no-op. Output samples are always
// finite for finite input; every parameter is re-clamped at point of use.
func (e *Engine) Render(settings params.Settings, left, right []float64, transport TransportState) Report {
	frames := len(left)
	if len(right) < frames {
		frames = len(right)
	}
	if frames == 0 {
		return Report{}
	}

	var (
		inputLeftPeak, inputRightPeak   float64
		elasticPeak, warpPeak           float64
		spacePeak, feedbackPeak         float64
		outputLeftPeak, outputRightPeak float64
		tensionPeak                     float64
	)

	characterDirty := settings.Character != params.CharacterClean
	sampleTransport := transport

	for i := 0; i < frames; i++ {
		inL := left[i]
		inR := right[i]
		inputLeftPeak = math.Max(inputLeftPeak, math.Abs(inL))
		inputRightPeak = math.Max(inputRightPeak, math.Abs(inR))

		inputAbs := math.Max(math.Abs(inL), math.Abs(inR))
		e.inputEnv += (inputAbs - e.inputEnv) * (0.01 + settings.Ducking*0.08)

		clock := e.clock.Tick(sampleTransport)
		// Only the first sample carries the host song position; the clock
		// free-runs across the rest of the block.
		sampleTransport.HasSongPos = false

		modValues := e.modulation.Next(settings.Mod, clock, e.inputEnv, e.sampleRate)

		tension := clamp(settings.Tension+settings.TensionBias+modValues[params.DestTension], 0, 1)
		pullDirection := clamp(settings.PullDirection+modValues[params.DestDirection], -1, 1)
		grain := clamp(settings.GrainContinuity+modValues[params.DestGrain], 0, 1)
		width := clamp(settings.Width+modValues[params.DestWidth], 0, 1)
		warpMotion := clamp(settings.WarpMotion+modValues[params.DestWarpMotion], 0, 1)
		feedback := clamp(settings.Feedback+modValues[params.DestFeedback], 0, maxFeedback)

		gesture := e.gesture.Next(GestureInput{
			Tension:       tension,
			TimeMode:      settings.TimeMode,
			PullRateHz:    settings.PullRateHz,
			PullDivision:  settings.PullDivision,
			Swing:         settings.Swing,
			PullShape:     settings.PullShape,
			PullTrigger:   settings.PullTrigger,
			PullLatch:     settings.PullLatch,
			PullQuantize:  settings.PullQuantize,
			Rebound:       settings.Rebound,
			ReleaseSnap:   settings.ReleaseSnap,
			PullDirection: pullDirection,
			Elasticity:    settings.Elasticity,
		}, e.sampleRate, clock)
		tensionPeak = math.Max(tensionPeak, gesture.TensionDrive)

		duckGain := 1 - settings.Ducking*clamp(e.inputEnv, 0, 1)*0.85
		feedbackL := e.feedbackLeft * feedback * duckGain
		feedbackR := e.feedbackRight * feedback * duckGain
		feedbackPeak = math.Max(feedbackPeak, math.Max(math.Abs(feedbackL), math.Abs(feedbackR)))

		preL := e.preLeft.Process(inL+feedbackL, gesture.TensionDrive, grain)
		preR := e.preRight.Process(inR+feedbackR, gesture.TensionDrive, grain)

		elasticL, elasticR := e.elastic.Process(preL, preR, ElasticControl{
			DelaySamples:  gesture.DelaySamples,
			Velocity:      gesture.Velocity,
			PitchCoupling: settings.PitchCoupling,
			GrainAmount:   grain,
			Elasticity:    settings.Elasticity,
			Dirty:         characterDirty,
		})
		elasticPeak = math.Max(elasticPeak, math.Max(math.Abs(elasticL-preL), math.Abs(elasticR-preR)))

		warpControl := WarpControl{
			Tension:         gesture.TensionDrive,
			Diffusion:       settings.Diffusion,
			Elasticity:      settings.Elasticity,
			AirDamping:      settings.AirDamping,
			AirCompensation: settings.AirCompensation,
			DriftPhaseInc:   gesture.DriftPhaseInc,
			WarpMotion:      warpMotion,
			Color:           settings.WarpColor,
			Character:       settings.Character,
		}
		warpedL := e.warpLeft.Process(elasticL, warpControl)
		warpedR := e.warpRight.Process(elasticR, warpControl)
		warpPeak = math.Max(warpPeak, math.Max(math.Abs(warpedL-elasticL), math.Abs(warpedR-elasticR)))

		spaceL, spaceR := e.space.Process(warpedL, warpedR, width, settings.Diffusion, characterDirty)
		spacePeak = math.Max(spacePeak, math.Max(math.Abs(spaceL-warpedL), math.Abs(spaceR-warpedR)))

		e.outputGain += (dbToGain(settings.OutputTrimDB) - e.outputGain) * trimSmoothing
		outL := spaceL * e.outputGain
		outR := spaceR * e.outputGain

		ceilingGain := e.nextCeilingGain(outL, outR, settings.EnergyCeiling)
		outL *= ceilingGain
		outR *= ceilingGain

		if settings.Character == params.CharacterCrush {
			outL = crush(outL)
			outR = crush(outR)
		}

		outL = softClip(outL)
		outR = softClip(outR)

		left[i] = outL
		right[i] = outR
		outputLeftPeak = math.Max(outputLeftPeak, math.Abs(outL))
		outputRightPeak = math.Max(outputRightPeak, math.Abs(outR))
		e.feedbackLeft = outL
		e.feedbackRight = outR
	}

	return Report{
		InputLeft:        meterNorm(inputLeftPeak),
		InputRight:       meterNorm(inputRightPeak),
		ElasticActivity:  meterNorm(elasticPeak),
		WarpActivity:     meterNorm(warpPeak),
		SpaceActivity:    meterNorm(spacePeak),
		FeedbackActivity: meterNorm(feedbackPeak),
		OutputLeft:       meterNorm(outputLeftPeak),
		OutputRight:      meterNorm(outputRightPeak),
		TensionActivity:  clamp(tensionPeak, 0, 1),
	}
}

// nextCeilingGain tracks output energy and eases a gain toward
// threshold/energy whenever the tracked energy exceeds the ceiling
// threshold. A ceiling of 1 is transparent at ordinary levels.
func (e *Engine) nextCeilingGain(outL, outR, ceiling float64) float64 {
	energy := (outL*outL + outR*outR) * 0.5
	e.energyEnv += (energy - e.energyEnv) * energySmoothing

	threshold := 0.1 + clamp(ceiling, 0, 1)*0.9
	target := 1.0
	if e.energyEnv > threshold {
		target = threshold / e.energyEnv
	}
	e.ceilingGain += (target - e.ceilingGain) * ceilingGainSmoothing

	return clamp(e.ceilingGain, 0, 1)
}
