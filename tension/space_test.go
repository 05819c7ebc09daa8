package tension

import (
	"math"
	"testing"
)

func TestSpaceWidthIncreasesSideEnergy(t *testing.T) {
	sideEnergy := func(width float64) float64 {
		space := NewSpaceStage()

		var sum float64
		for i := 0; i < 4096; i++ {
			left := math.Sin(float64(i) * 0.11)
			right := math.Sin(float64(i)*0.13 + 0.7)
			outL, outR := space.Process(left, right, width, 0.3, false)
			if i >= 1024 {
				side := (outL - outR) * 0.5
				sum += side * side
			}
		}
		return sum
	}

	narrow := sideEnergy(0)
	wide := sideEnergy(1)
	if wide <= narrow {
		t.Fatalf("width did not widen the image: side energy %g (wide) vs %g (narrow)", wide, narrow)
	}
}

func TestSpacePreservesMidForMonoInput(t *testing.T) {
	space := NewSpaceStage()

	for i := 0; i < 4096; i++ {
		input := math.Sin(float64(i) * 0.07)
		outL, outR := space.Process(input, input, 1, 0, false)
		mid := (outL + outR) * 0.5
		// Mono input has no side signal; the mid path only passes through
		// the lightly blended diffusers.
		if math.Abs(mid) > math.Abs(input)+0.5 {
			t.Fatalf("mono mid exploded at sample %d: %g for input %g", i, mid, input)
		}
	}
}

func TestSpaceDirtyAppliesFixedGain(t *testing.T) {
	clean := NewSpaceStage()
	dirty := NewSpaceStage()

	for i := 0; i < 256; i++ {
		left := math.Sin(float64(i) * 0.3)
		right := math.Cos(float64(i) * 0.21)

		cleanL, cleanR := clean.Process(left, right, 0.6, 0.5, false)
		dirtyL, dirtyR := dirty.Process(left, right, 0.6, 0.5, true)

		if math.Abs(dirtyL-cleanL*dirtyOutputGain) > 1e-9 ||
			math.Abs(dirtyR-cleanR*dirtyOutputGain) > 1e-9 {
			t.Fatalf("dirty gain mismatch at sample %d", i)
		}
	}
}

func TestSpaceStaysFiniteAtExtremes(t *testing.T) {
	space := NewSpaceStage()

	for i := 0; i < 16384; i++ {
		outL, outR := space.Process(
			10*math.Sin(float64(i)*1.9),
			-10*math.Cos(float64(i)*2.3),
			1, 1, true,
		)
		if math.IsNaN(outL) || math.IsInf(outL, 0) || math.IsNaN(outR) || math.IsInf(outR, 0) {
			t.Fatalf("non-finite space output at sample %d", i)
		}
	}
}
