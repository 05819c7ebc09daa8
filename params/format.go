package params

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue renders a raw parameter value the way hosts display it.
func FormatValue(id ID, value float64) string {
	switch id {
	case IDTension, IDSwing, IDElasticity, IDRebound, IDReleaseSnap,
		IDGrainContinuity, IDPitchCoupling, IDDiffusion, IDWidth,
		IDAirDamping, IDWarpMotion, IDFeedback, IDDucking,
		IDEnergyCeiling, IDModADepth, IDModBDepth:
		return fmt.Sprintf("%.0f%%", value*100)
	case IDTensionBias:
		return fmt.Sprintf("%+.0f%%", value*100)
	case IDPullRate, IDModARate, IDModBRate:
		return fmt.Sprintf("%.2f Hz", value)
	case IDOutputTrim:
		return fmt.Sprintf("%.1f dB", value)
	case IDPullShape:
		return PullShapeFromValue(value).Label()
	case IDTimeMode:
		return TimeModeFromValue(value).Label()
	case IDPullDivision, IDModADivision, IDModBDivision:
		return PullDivisionFromValue(value).Label()
	case IDPullQuantize:
		return PullQuantizeFromValue(value).Label()
	case IDWarpColor:
		return WarpColorFromValue(value).Label()
	case IDCharacter:
		return CharacterModeFromValue(value).Label()
	case IDModAShape, IDModBShape:
		return ModSourceShapeFromValue(value).Label()
	case IDModARateMode, IDModBRateMode:
		return ModRateModeFromValue(value).Label()
	case IDPullLatch, IDPullTrigger, IDAirCompensation, IDModRun:
		if value >= 0.5 {
			return "On"
		}
		return "Off"
	case IDPullDirection:
		if value >= 0.5 {
			return "Forward"
		}
		return "Backward"
	default:
		if id >= idRouteBase {
			return fmt.Sprintf("%+.0f%%", value*100)
		}
		return fmt.Sprintf("%.2f", value)
	}
}

// ParseValue converts host text input into a raw parameter value.
func ParseValue(id ID, text string) (float64, bool) {
	raw := strings.TrimSpace(text)

	switch id {
	case IDPullShape:
		if shape, ok := ParsePullShape(raw); ok {
			return shape.Value(), true
		}
		return 0, false
	case IDTimeMode:
		if mode, ok := ParseTimeMode(raw); ok {
			return mode.Value(), true
		}
		return 0, false
	case IDPullDivision, IDModADivision, IDModBDivision:
		if div, ok := ParsePullDivision(raw); ok {
			return div.Value(), true
		}
		return 0, false
	case IDPullQuantize:
		if quantize, ok := ParsePullQuantize(raw); ok {
			return quantize.Value(), true
		}
		return 0, false
	case IDWarpColor:
		if color, ok := ParseWarpColor(raw); ok {
			return color.Value(), true
		}
		return 0, false
	case IDCharacter:
		if mode, ok := ParseCharacterMode(raw); ok {
			return mode.Value(), true
		}
		return 0, false
	case IDModAShape, IDModBShape:
		if shape, ok := ParseModSourceShape(raw); ok {
			return shape.Value(), true
		}
		return 0, false
	case IDModARateMode, IDModBRateMode:
		if mode, ok := ParseModRateMode(raw); ok {
			return mode.Value(), true
		}
		return 0, false
	case IDPullLatch, IDPullTrigger, IDAirCompensation, IDModRun:
		if enabled, ok := parseToggle(raw); ok {
			if enabled {
				return 1, true
			}
			return 0, true
		}
		return 0, false
	case IDPullDirection:
		switch normalize(raw) {
		case "backward", "left":
			return 0, true
		case "forward", "right":
			return 1, true
		}
	}

	def, ok := lookupDef(id)
	if !ok {
		return 0, false
	}

	percent := strings.Contains(raw, "%")
	numeric := strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(
		strings.TrimSuffix(raw, "%"), "dB"), "Hz"), "hz"))

	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0, false
	}
	if percent {
		value /= 100
	}

	return clamp(value, def.Min, def.Max), true
}

func lookupDef(id ID) (Def, bool) {
	for _, def := range Defs {
		if def.ID == id {
			return def, true
		}
	}
	return Def{}, false
}

func parseToggle(raw string) (bool, bool) {
	switch normalize(raw) {
	case "1", "on", "true", "yes":
		return true, true
	case "0", "off", "false", "no":
		return false, true
	default:
		return false, false
	}
}
