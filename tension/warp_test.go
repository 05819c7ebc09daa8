package tension

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tensionfield/params"
)

func defaultWarpControl() WarpControl {
	return WarpControl{
		Tension:       0.5,
		Diffusion:     0.5,
		Elasticity:    0.5,
		AirDamping:    0.4,
		DriftPhaseInc: 0.002,
		WarpMotion:    0.3,
		Color:         params.ColorNeutral,
		Character:     params.CharacterClean,
	}
}

func TestPreEmphasisBoostsAlternatingSignal(t *testing.T) {
	var pre PreEmphasis

	var peak float64
	for i := 0; i < 512; i++ {
		input := 1.0
		if i%2 == 1 {
			input = -1
		}
		peak = math.Max(peak, math.Abs(pre.Process(input, 0.5, 0.2)))
	}

	if peak <= 1 {
		t.Fatalf("alternating signal peak %g, want boost above unity", peak)
	}
}

func TestPreEmphasisPassesDCThrough(t *testing.T) {
	var pre PreEmphasis

	var out float64
	for i := 0; i < 8192; i++ {
		out = pre.Process(1, 0.5, 0.2)
	}

	if math.Abs(out-1) > 0.01 {
		t.Fatalf("settled DC output %g, want about 1", out)
	}
}

func TestSpectralWarpDampingReducesHighBand(t *testing.T) {
	energy := func(damping float64) float64 {
		warp := NewSpectralWarp(37, 73)
		control := defaultWarpControl()
		control.AirDamping = damping

		var sum float64
		for i := 0; i < 8192; i++ {
			input := 1.0
			if i%2 == 1 {
				input = -1
			}
			out := warp.Process(input, control)
			if i >= 4096 {
				sum += out * out
			}
		}
		return sum
	}

	open := energy(0)
	damped := energy(1)
	if damped >= open {
		t.Fatalf("damping did not reduce high-band energy: %g (damped) vs %g (open)", damped, open)
	}
}

func TestSpectralWarpColorBiasesDamping(t *testing.T) {
	energy := func(color params.WarpColor) float64 {
		warp := NewSpectralWarp(37, 73)
		control := defaultWarpControl()
		control.Color = color

		var sum float64
		for i := 0; i < 8192; i++ {
			input := 1.0
			if i%2 == 1 {
				input = -1
			}
			out := warp.Process(input, control)
			if i >= 4096 {
				sum += out * out
			}
		}
		return sum
	}

	dark := energy(params.ColorDarkDrag)
	bright := energy(params.ColorBrightShear)
	if dark >= bright {
		t.Fatalf("dark drag is not darker than bright shear: %g vs %g", dark, bright)
	}
}

func TestSpectralWarpStaysFiniteAtExtremes(t *testing.T) {
	warp := NewSpectralWarp(43, 79)
	control := WarpControl{
		Tension:         1,
		Diffusion:       1,
		Elasticity:      1,
		AirDamping:      1,
		AirCompensation: true,
		DriftPhaseInc:   0.08,
		WarpMotion:      1,
		Color:           params.ColorBrightShear,
		Character:       params.CharacterCrush,
	}

	for i := 0; i < 16384; i++ {
		out := warp.Process(math.Sin(float64(i)*1.7), control)
		if math.IsNaN(out) || math.IsInf(out, 0) {
			t.Fatalf("non-finite warp output at sample %d", i)
		}
	}
}
