package params

// ModSourceSettings configures one modulation source.
type ModSourceSettings struct {
	// Shape is the source waveform.
	Shape ModSourceShape
	// RateMode selects free versus synced timing.
	RateMode ModRateMode
	// RateHz is the free-running rate in Hertz.
	RateHz float64
	// RateDivision is the synced cycle length.
	RateDivision PullDivision
	// Depth scales the source output in [0, 1].
	Depth float64
}

// ModSettings configures the dual-source modulation matrix.
type ModSettings struct {
	// Run enables the matrix; when false destinations decay toward zero.
	Run bool
	// SourceA is the first modulation source.
	SourceA ModSourceSettings
	// SourceB is the second modulation source.
	SourceB ModSourceSettings
	// RouteDepths holds signed per-route depths, indexed source then
	// destination (see ModDestination for column order).
	RouteDepths [2][DestCount]float64
}

// Settings is the immutable per-block snapshot consumed by the engine.
//
// The engine re-clamps every field at point of use, so a Settings value built
// by hand does not need to be pre-validated.
type Settings struct {
	// Tension is the overall stretching force in [0, 1].
	Tension float64
	// TensionBias offsets tension in [-0.5, 0.5] before clamping.
	TensionBias float64
	// PullRateHz is the free-running gesture rate.
	PullRateHz float64
	// PullShape is the gesture waveform.
	PullShape PullShape
	// TimeMode selects free versus synced gesture timing.
	TimeMode TimeMode
	// PullDivision is the synced gesture cycle length.
	PullDivision PullDivision
	// Swing warps the synced phase in [0, 1].
	Swing float64
	// PullQuantize aligns trigger launches to a musical grid.
	PullQuantize PullQuantize
	// PullLatch holds the gesture engaged between trigger edges.
	PullLatch bool
	// PullTrigger is the momentary pull trigger.
	PullTrigger bool
	// PullDirection is the direction bias in [-1, 1].
	PullDirection float64
	// Elasticity is the viscous-to-spring response amount in [0, 1].
	Elasticity float64
	// Rebound shapes the gesture release in [0, 1].
	Rebound float64
	// ReleaseSnap speeds the gesture release further in [0, 1].
	ReleaseSnap float64
	// GrainContinuity is the continuity-to-grain texture macro in [0, 1].
	GrainContinuity float64
	// PitchCoupling is the amount of pitch-following behavior in [0, 1].
	PitchCoupling float64
	// Diffusion is the allpass smear density in [0, 1].
	Diffusion float64
	// Width is the stereo decorrelation amount in [0, 1].
	Width float64
	// AirDamping is the high-frequency damping amount in [0, 1].
	AirDamping float64
	// AirCompensation re-adds damped high-band energy.
	AirCompensation bool
	// WarpColor biases spectral damping.
	WarpColor WarpColor
	// WarpMotion is the drift-modulation intensity in [0, 1].
	WarpMotion float64
	// Character is the global coloration mode.
	Character CharacterMode
	// Feedback is the controlled feedback amount in [0, 0.7].
	Feedback float64
	// Ducking attenuates feedback while input is present, in [0, 1].
	Ducking float64
	// OutputTrimDB is the output trim in decibels.
	OutputTrimDB float64
	// EnergyCeiling bounds sustained output energy in [0, 1].
	EnergyCeiling float64
	// Mod configures the modulation matrix.
	Mod ModSettings
}

// DefaultSettings returns the factory snapshot matching the parameter
// defaults in Defs.
func DefaultSettings() Settings {
	return Settings{
		Tension:         0.55,
		PullRateHz:      0.22,
		PullShape:       PullRubber,
		TimeMode:        TimeFreeHz,
		PullDivision:    Div1_4,
		PullQuantize:    QuantizeNone,
		PullDirection:   0.04,
		Elasticity:      0.7,
		Rebound:         0.62,
		GrainContinuity: 0.25,
		PitchCoupling:   0.18,
		Diffusion:       0.58,
		Width:           0.62,
		AirDamping:      0.4,
		AirCompensation: true,
		WarpColor:       ColorNeutral,
		WarpMotion:      0.35,
		Character:       CharacterClean,
		Feedback:        0.1,
		EnergyCeiling:   1,
		Mod: ModSettings{
			SourceA: ModSourceSettings{
				Shape:        ModSine,
				RateMode:     ModRateFreeHz,
				RateHz:       0.5,
				RateDivision: Div1_4,
			},
			SourceB: ModSourceSettings{
				Shape:        ModTriangle,
				RateMode:     ModRateFreeHz,
				RateHz:       0.3,
				RateDivision: Div1_2,
			},
		},
	}
}
