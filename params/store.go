package params

import (
	"fmt"
	"math"
	"sync/atomic"
)

// ID identifies one host-visible parameter. The numeric values are part of
// the host automation and state contract.
type ID int

// Parameter identifiers.
const (
	IDTension ID = iota + 1
	IDTensionBias
	IDPullRate
	IDPullShape
	IDTimeMode
	IDPullDivision
	IDSwing
	IDPullQuantize
	IDPullLatch
	IDPullTrigger
	IDPullDirection
	IDElasticity
	IDRebound
	IDReleaseSnap
	IDGrainContinuity
	IDPitchCoupling
	IDDiffusion
	IDWidth
	IDAirDamping
	IDAirCompensation
	IDWarpColor
	IDWarpMotion
	IDCharacter
	IDFeedback
	IDDucking
	IDOutputTrim
	IDEnergyCeiling
	IDModRun
	IDModAShape
	IDModARateMode
	IDModARate
	IDModADivision
	IDModADepth
	IDModBShape
	IDModBRateMode
	IDModBRate
	IDModBDivision
	IDModBDepth
	idRouteBase
)

// RouteID returns the parameter id of one route-depth cell. source is 0 for
// source A and 1 for source B.
func RouteID(source int, dest ModDestination) ID {
	return idRouteBase + ID(source*DestCount) + ID(dest)
}

// Def describes one host-visible parameter.
type Def struct {
	// ID is the stable parameter identifier.
	ID ID
	// Name is the display name.
	Name string
	// Module is the parameter group shown by hosts.
	Module string
	// Min and Max bound the raw value.
	Min, Max float64
	// Default is the factory raw value.
	Default float64
	// Stepped marks integer-valued (enum or toggle) parameters.
	Stepped bool
}

// Defs lists every host-visible parameter in stable state order.
var Defs = buildDefs()

func buildDefs() []Def {
	defs := []Def{
		{IDTension, "Tension", "Gesture", 0, 1, 0.55, false},
		{IDTensionBias, "Tension Bias", "Gesture", -0.5, 0.5, 0, false},
		{IDPullRate, "Pull Rate", "Gesture", 0.02, 2, 0.22, false},
		{IDPullShape, "Pull Shape", "Gesture", 0, 4, PullRubber.Value(), true},
		{IDTimeMode, "Time Mode", "Gesture", 0, 1, TimeFreeHz.Value(), true},
		{IDPullDivision, "Pull Division", "Gesture", 0, 6, Div1_4.Value(), true},
		{IDSwing, "Swing", "Gesture", 0, 1, 0, false},
		{IDPullQuantize, "Pull Quantize", "Gesture", 0, 3, QuantizeNone.Value(), true},
		{IDPullLatch, "Pull Latch", "Gesture", 0, 1, 0, true},
		{IDPullTrigger, "Pull", "Gesture", 0, 1, 0, true},
		{IDPullDirection, "Pull Direction", "Map", 0, 1, 0.52, false},
		{IDElasticity, "Elasticity", "Map", 0, 1, 0.7, false},
		{IDRebound, "Rebound", "Gesture", 0, 1, 0.62, false},
		{IDReleaseSnap, "Release Snap", "Gesture", 0, 1, 0, false},
		{IDGrainContinuity, "Grain", "Elastic", 0, 1, 0.25, false},
		{IDPitchCoupling, "Pitch Coupling", "Elastic", 0, 1, 0.18, false},
		{IDDiffusion, "Diffusion", "Space", 0, 1, 0.58, false},
		{IDWidth, "Width", "Space", 0, 1, 0.62, false},
		{IDAirDamping, "Air Damping", "Space", 0, 1, 0.4, false},
		{IDAirCompensation, "Air Comp", "Space", 0, 1, 1, true},
		{IDWarpColor, "Warp Color", "Warp", 0, 2, ColorNeutral.Value(), true},
		{IDWarpMotion, "Warp Motion", "Warp", 0, 1, 0.35, false},
		{IDCharacter, "Character", "Character", 0, 2, CharacterClean.Value(), true},
		{IDFeedback, "Feedback", "Character", 0, 0.7, 0.1, false},
		{IDDucking, "Ducking", "Character", 0, 1, 0, false},
		{IDOutputTrim, "Output Trim", "Output", -24, 12, 0, false},
		{IDEnergyCeiling, "Energy Ceiling", "Output", 0, 1, 1, false},
		{IDModRun, "Mod Run", "Mod", 0, 1, 0, true},
		{IDModAShape, "Mod A Shape", "Mod", 0, 3, ModSine.Value(), true},
		{IDModARateMode, "Mod A Mode", "Mod", 0, 1, ModRateFreeHz.Value(), true},
		{IDModARate, "Mod A Rate", "Mod", 0.01, 8, 0.5, false},
		{IDModADivision, "Mod A Division", "Mod", 0, 6, Div1_4.Value(), true},
		{IDModADepth, "Mod A Depth", "Mod", 0, 1, 0, false},
		{IDModBShape, "Mod B Shape", "Mod", 0, 3, ModTriangle.Value(), true},
		{IDModBRateMode, "Mod B Mode", "Mod", 0, 1, ModRateFreeHz.Value(), true},
		{IDModBRate, "Mod B Rate", "Mod", 0.01, 8, 0.3, false},
		{IDModBDivision, "Mod B Division", "Mod", 0, 6, Div1_2.Value(), true},
		{IDModBDepth, "Mod B Depth", "Mod", 0, 1, 0, false},
	}

	sources := [2]string{"A", "B"}
	for source := range sources {
		for dest := ModDestination(0); dest < DestCount; dest++ {
			defs = append(defs, Def{
				ID:     RouteID(source, dest),
				Name:   fmt.Sprintf("Route %s %s", sources[source], dest.Label()),
				Module: "Mod",
				Min:    -1,
				Max:    1,
			})
		}
	}

	return defs
}

// Count returns the number of host-visible parameters.
func Count() int {
	return len(Defs)
}

// StateValueCount is the number of values in an ordered state snapshot.
var StateValueCount = len(Defs)

// Store is thread-safe parameter storage. Automation and UI threads write
// individual values; the audio thread takes one Snapshot per block.
type Store struct {
	values []atomic.Uint64
	byID   map[ID]int
}

// NewStore creates a store initialized to factory defaults.
func NewStore() *Store {
	s := &Store{
		values: make([]atomic.Uint64, len(Defs)),
		byID:   make(map[ID]int, len(Defs)),
	}
	for i, def := range Defs {
		s.byID[def.ID] = i
		s.values[i].Store(math.Float64bits(def.Default))
	}
	return s
}

// Set stores one raw parameter value, clamped to the parameter's range.
// Unknown ids are ignored.
func (s *Store) Set(id ID, value float64) {
	index, ok := s.byID[id]
	if !ok {
		return
	}

	def := Defs[index]
	if math.IsNaN(value) {
		value = def.Default
	}
	value = clamp(value, def.Min, def.Max)
	if def.Stepped {
		value = math.Round(value)
	}
	s.values[index].Store(math.Float64bits(value))
}

// Get returns one raw parameter value for host reads.
func (s *Store) Get(id ID) (float64, bool) {
	index, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	return math.Float64frombits(s.values[index].Load()), true
}

// StateValues returns an ordered snapshot of all raw values for state
// serialization. The order follows Defs and is stable across releases.
func (s *Store) StateValues() []float64 {
	values := make([]float64, len(Defs))
	for i := range Defs {
		values[i] = math.Float64frombits(s.values[i].Load())
	}
	return values
}

// ApplyStateValues applies an ordered raw-value snapshot. Extra values are
// ignored; missing values keep their current setting.
func (s *Store) ApplyStateValues(values []float64) {
	for i, def := range Defs {
		if i >= len(values) {
			return
		}
		s.Set(def.ID, values[i])
	}
}

// Snapshot builds the immutable Settings value for one audio block.
func (s *Store) Snapshot() Settings {
	get := func(id ID) float64 {
		value, _ := s.Get(id)
		return value
	}

	settings := Settings{
		Tension:         get(IDTension),
		TensionBias:     get(IDTensionBias),
		PullRateHz:      get(IDPullRate),
		PullShape:       PullShapeFromValue(get(IDPullShape)),
		TimeMode:        TimeModeFromValue(get(IDTimeMode)),
		PullDivision:    PullDivisionFromValue(get(IDPullDivision)),
		Swing:           get(IDSwing),
		PullQuantize:    PullQuantizeFromValue(get(IDPullQuantize)),
		PullLatch:       get(IDPullLatch) >= 0.5,
		PullTrigger:     get(IDPullTrigger) >= 0.5,
		PullDirection:   get(IDPullDirection)*2 - 1,
		Elasticity:      get(IDElasticity),
		Rebound:         get(IDRebound),
		ReleaseSnap:     get(IDReleaseSnap),
		GrainContinuity: get(IDGrainContinuity),
		PitchCoupling:   get(IDPitchCoupling),
		Diffusion:       get(IDDiffusion),
		Width:           get(IDWidth),
		AirDamping:      get(IDAirDamping),
		AirCompensation: get(IDAirCompensation) >= 0.5,
		WarpColor:       WarpColorFromValue(get(IDWarpColor)),
		WarpMotion:      get(IDWarpMotion),
		Character:       CharacterModeFromValue(get(IDCharacter)),
		Feedback:        get(IDFeedback),
		Ducking:         get(IDDucking),
		OutputTrimDB:    get(IDOutputTrim),
		EnergyCeiling:   get(IDEnergyCeiling),
		Mod: ModSettings{
			Run: get(IDModRun) >= 0.5,
			SourceA: ModSourceSettings{
				Shape:        ModSourceShapeFromValue(get(IDModAShape)),
				RateMode:     ModRateModeFromValue(get(IDModARateMode)),
				RateHz:       get(IDModARate),
				RateDivision: PullDivisionFromValue(get(IDModADivision)),
				Depth:        get(IDModADepth),
			},
			SourceB: ModSourceSettings{
				Shape:        ModSourceShapeFromValue(get(IDModBShape)),
				RateMode:     ModRateModeFromValue(get(IDModBRateMode)),
				RateHz:       get(IDModBRate),
				RateDivision: PullDivisionFromValue(get(IDModBDivision)),
				Depth:        get(IDModBDepth),
			},
		},
	}

	for source := 0; source < 2; source++ {
		for dest := ModDestination(0); dest < DestCount; dest++ {
			settings.Mod.RouteDepths[source][dest] = get(RouteID(source, dest))
		}
	}

	return settings
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
