package params

import "strings"

// PullShape selects the gesture waveform driving the elastic delay target.
type PullShape int

// Pull gesture shape choices.
const (
	// PullLinear is a constant-rate drag ramp.
	PullLinear PullShape = iota
	// PullRubber is a smooth ease-in/out spring profile.
	PullRubber
	// PullRatchet is quantized steps with soft transitions.
	PullRatchet
	// PullWave is a slow sinusoidal pull.
	PullWave
	// PullPulse is a fixed four-segment amplitude pattern.
	PullPulse
)

// PullShapeFromValue decodes a raw host value into a PullShape.
// Out-of-range values fall back to PullLinear.
func PullShapeFromValue(value float64) PullShape {
	switch roundIndex(value) {
	case 1:
		return PullRubber
	case 2:
		return PullRatchet
	case 3:
		return PullWave
	case 4:
		return PullPulse
	default:
		return PullLinear
	}
}

// Value returns the stable numeric encoding used by the host.
func (s PullShape) Value() float64 {
	return float64(s)
}

// Label returns a display name for the shape.
func (s PullShape) Label() string {
	switch s {
	case PullRubber:
		return "Rubber"
	case PullRatchet:
		return "Ratchet"
	case PullWave:
		return "Wave"
	case PullPulse:
		return "Pulse"
	default:
		return "Linear"
	}
}

// ParsePullShape parses a host text value (index or label).
func ParsePullShape(raw string) (PullShape, bool) {
	switch normalize(raw) {
	case "0", "linear":
		return PullLinear, true
	case "1", "rubber":
		return PullRubber, true
	case "2", "ratchet":
		return PullRatchet, true
	case "3", "wave":
		return PullWave, true
	case "4", "pulse":
		return PullPulse, true
	default:
		return PullLinear, false
	}
}

// TimeMode selects between free-running and transport-synced gesture timing.
type TimeMode int

// Gesture timing modes.
const (
	// TimeFreeHz runs the gesture from a free phase accumulator.
	TimeFreeHz TimeMode = iota
	// TimeSyncDivision derives the gesture phase from the transport.
	TimeSyncDivision
)

// TimeModeFromValue decodes a raw host value into a TimeMode.
func TimeModeFromValue(value float64) TimeMode {
	if roundIndex(value) == 1 {
		return TimeSyncDivision
	}
	return TimeFreeHz
}

// Value returns the stable numeric encoding used by the host.
func (m TimeMode) Value() float64 {
	return float64(m)
}

// Label returns a display name for the mode.
func (m TimeMode) Label() string {
	if m == TimeSyncDivision {
		return "Sync"
	}
	return "Free"
}

// ParseTimeMode parses a host text value (index or label).
func ParseTimeMode(raw string) (TimeMode, bool) {
	switch normalize(raw) {
	case "0", "free", "hz":
		return TimeFreeHz, true
	case "1", "sync", "division":
		return TimeSyncDivision, true
	default:
		return TimeFreeHz, false
	}
}

// PullDivision is a musical cycle length for synced gesture and modulation
// timing, expressed in quarter-note beats of a 4/4 bar.
type PullDivision int

// Synced rate divisions from one sixteenth note up to four bars.
const (
	Div1_16 PullDivision = iota
	Div1_8
	Div1_4
	Div1_2
	Div1Bar
	Div2Bars
	Div4Bars
)

// PullDivisionFromValue decodes a raw host value into a PullDivision.
func PullDivisionFromValue(value float64) PullDivision {
	index := roundIndex(value)
	if index < int(Div1_16) || index > int(Div4Bars) {
		return Div1_4
	}
	return PullDivision(index)
}

// Value returns the stable numeric encoding used by the host.
func (d PullDivision) Value() float64 {
	return float64(d)
}

// BeatsPerCycle returns the cycle length in quarter-note beats.
func (d PullDivision) BeatsPerCycle() float64 {
	switch d {
	case Div1_16:
		return 0.25
	case Div1_8:
		return 0.5
	case Div1_4:
		return 1
	case Div1_2:
		return 2
	case Div2Bars:
		return 8
	case Div4Bars:
		return 16
	default:
		return 4
	}
}

// Label returns a display name for the division.
func (d PullDivision) Label() string {
	switch d {
	case Div1_16:
		return "1/16"
	case Div1_8:
		return "1/8"
	case Div1_4:
		return "1/4"
	case Div1_2:
		return "1/2"
	case Div2Bars:
		return "2 Bars"
	case Div4Bars:
		return "4 Bars"
	default:
		return "1 Bar"
	}
}

// ParsePullDivision parses a host text value (index or label).
func ParsePullDivision(raw string) (PullDivision, bool) {
	switch normalize(raw) {
	case "0", "1/16":
		return Div1_16, true
	case "1", "1/8":
		return Div1_8, true
	case "2", "1/4":
		return Div1_4, true
	case "3", "1/2":
		return Div1_2, true
	case "4", "1 bar", "bar":
		return Div1Bar, true
	case "5", "2 bars":
		return Div2Bars, true
	case "6", "4 bars":
		return Div4Bars, true
	default:
		return Div1_4, false
	}
}

// PullQuantize aligns trigger launches to a musical grid.
type PullQuantize int

// Trigger quantization grids.
const (
	// QuantizeNone launches triggers immediately.
	QuantizeNone PullQuantize = iota
	// QuantizeQuarter waits for the next quarter-note boundary.
	QuantizeQuarter
	// QuantizeHalf waits for the next half-note boundary.
	QuantizeHalf
	// QuantizeBar waits for the next bar boundary.
	QuantizeBar
)

// PullQuantizeFromValue decodes a raw host value into a PullQuantize.
func PullQuantizeFromValue(value float64) PullQuantize {
	index := roundIndex(value)
	if index < int(QuantizeNone) || index > int(QuantizeBar) {
		return QuantizeNone
	}
	return PullQuantize(index)
}

// Value returns the stable numeric encoding used by the host.
func (q PullQuantize) Value() float64 {
	return float64(q)
}

// Beats returns the grid length in beats and whether quantization is active.
func (q PullQuantize) Beats() (float64, bool) {
	switch q {
	case QuantizeQuarter:
		return 1, true
	case QuantizeHalf:
		return 2, true
	case QuantizeBar:
		return 4, true
	default:
		return 0, false
	}
}

// Label returns a display name for the grid.
func (q PullQuantize) Label() string {
	switch q {
	case QuantizeQuarter:
		return "1/4"
	case QuantizeHalf:
		return "1/2"
	case QuantizeBar:
		return "Bar"
	default:
		return "Off"
	}
}

// ParsePullQuantize parses a host text value (index or label).
func ParsePullQuantize(raw string) (PullQuantize, bool) {
	switch normalize(raw) {
	case "0", "off", "none":
		return QuantizeNone, true
	case "1", "1/4":
		return QuantizeQuarter, true
	case "2", "1/2":
		return QuantizeHalf, true
	case "3", "bar":
		return QuantizeBar, true
	default:
		return QuantizeNone, false
	}
}

// WarpColor biases the spectral damping of the warp stage.
type WarpColor int

// Warp color choices.
const (
	// ColorNeutral applies no damping bias.
	ColorNeutral WarpColor = iota
	// ColorDarkDrag biases damping upward for a darker drag.
	ColorDarkDrag
	// ColorBrightShear biases damping downward for a brighter shear.
	ColorBrightShear
)

// WarpColorFromValue decodes a raw host value into a WarpColor.
func WarpColorFromValue(value float64) WarpColor {
	switch roundIndex(value) {
	case 1:
		return ColorDarkDrag
	case 2:
		return ColorBrightShear
	default:
		return ColorNeutral
	}
}

// Value returns the stable numeric encoding used by the host.
func (c WarpColor) Value() float64 {
	return float64(c)
}

// Label returns a display name for the color.
func (c WarpColor) Label() string {
	switch c {
	case ColorDarkDrag:
		return "Dark Drag"
	case ColorBrightShear:
		return "Bright Shear"
	default:
		return "Neutral"
	}
}

// ParseWarpColor parses a host text value (index or label).
func ParseWarpColor(raw string) (WarpColor, bool) {
	switch normalize(raw) {
	case "0", "neutral":
		return ColorNeutral, true
	case "1", "dark drag", "dark":
		return ColorDarkDrag, true
	case "2", "bright shear", "bright":
		return ColorBrightShear, true
	default:
		return ColorNeutral, false
	}
}

// CharacterMode is the global coloration mode shared by several stages.
type CharacterMode int

// Character modes.
const (
	// CharacterClean keeps noise and drift contributions minimal.
	CharacterClean CharacterMode = iota
	// CharacterDirty raises jitter, speed noise, drift, and output gain.
	CharacterDirty
	// CharacterCrush adds bit-depth quantization on top of Dirty behavior.
	CharacterCrush
)

// CharacterModeFromValue decodes a raw host value into a CharacterMode.
func CharacterModeFromValue(value float64) CharacterMode {
	switch roundIndex(value) {
	case 1:
		return CharacterDirty
	case 2:
		return CharacterCrush
	default:
		return CharacterClean
	}
}

// Value returns the stable numeric encoding used by the host.
func (m CharacterMode) Value() float64 {
	return float64(m)
}

// Label returns a display name for the mode.
func (m CharacterMode) Label() string {
	switch m {
	case CharacterDirty:
		return "Dirty"
	case CharacterCrush:
		return "Crush"
	default:
		return "Clean"
	}
}

// ParseCharacterMode parses a host text value (index or label).
func ParseCharacterMode(raw string) (CharacterMode, bool) {
	switch normalize(raw) {
	case "0", "clean":
		return CharacterClean, true
	case "1", "dirty":
		return CharacterDirty, true
	case "2", "crush":
		return CharacterCrush, true
	default:
		return CharacterClean, false
	}
}

// ModSourceShape selects the waveform of one modulation source.
type ModSourceShape int

// Modulation source shapes.
const (
	// ModSine is a sine oscillator.
	ModSine ModSourceShape = iota
	// ModTriangle is a triangle oscillator.
	ModTriangle
	// ModRandomWalk is a bounded random walk.
	ModRandomWalk
	// ModEnvelope follows the input level, emitted bipolar.
	ModEnvelope
)

// ModSourceShapeFromValue decodes a raw host value into a ModSourceShape.
func ModSourceShapeFromValue(value float64) ModSourceShape {
	switch roundIndex(value) {
	case 1:
		return ModTriangle
	case 2:
		return ModRandomWalk
	case 3:
		return ModEnvelope
	default:
		return ModSine
	}
}

// Value returns the stable numeric encoding used by the host.
func (s ModSourceShape) Value() float64 {
	return float64(s)
}

// Label returns a display name for the shape.
func (s ModSourceShape) Label() string {
	switch s {
	case ModTriangle:
		return "Triangle"
	case ModRandomWalk:
		return "Random Walk"
	case ModEnvelope:
		return "Envelope"
	default:
		return "Sine"
	}
}

// ParseModSourceShape parses a host text value (index or label).
func ParseModSourceShape(raw string) (ModSourceShape, bool) {
	switch normalize(raw) {
	case "0", "sine":
		return ModSine, true
	case "1", "triangle":
		return ModTriangle, true
	case "2", "random walk", "walk":
		return ModRandomWalk, true
	case "3", "envelope", "env":
		return ModEnvelope, true
	default:
		return ModSine, false
	}
}

// ModRateMode selects free versus synced modulation timing.
type ModRateMode int

// Modulation rate modes.
const (
	// ModRateFreeHz runs the source from a free phase accumulator.
	ModRateFreeHz ModRateMode = iota
	// ModRateSyncDivision derives the source phase from the transport.
	ModRateSyncDivision
)

// ModRateModeFromValue decodes a raw host value into a ModRateMode.
func ModRateModeFromValue(value float64) ModRateMode {
	if roundIndex(value) == 1 {
		return ModRateSyncDivision
	}
	return ModRateFreeHz
}

// Value returns the stable numeric encoding used by the host.
func (m ModRateMode) Value() float64 {
	return float64(m)
}

// Label returns a display name for the mode.
func (m ModRateMode) Label() string {
	if m == ModRateSyncDivision {
		return "Sync"
	}
	return "Free"
}

// ParseModRateMode parses a host text value (index or label).
func ParseModRateMode(raw string) (ModRateMode, bool) {
	switch normalize(raw) {
	case "0", "free", "hz":
		return ModRateFreeHz, true
	case "1", "sync", "division":
		return ModRateSyncDivision, true
	default:
		return ModRateFreeHz, false
	}
}

// ModDestination indexes the six modulation destinations.
type ModDestination int

// Modulation destinations, in route-matrix column order.
const (
	DestTension ModDestination = iota
	DestDirection
	DestGrain
	DestWidth
	DestWarpMotion
	DestFeedback
)

// DestCount is the number of modulation destinations.
const DestCount = 6

// Label returns a display name for the destination.
func (d ModDestination) Label() string {
	switch d {
	case DestDirection:
		return "Direction"
	case DestGrain:
		return "Grain"
	case DestWidth:
		return "Width"
	case DestWarpMotion:
		return "Warp Motion"
	case DestFeedback:
		return "Feedback"
	default:
		return "Tension"
	}
}

func roundIndex(value float64) int {
	if value < 0 {
		return int(value - 0.5)
	}
	return int(value + 0.5)
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
