package tension

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tensionfield/params"
)

func playingTransport() TransportState {
	return TransportState{TempoBPM: 120, Playing: true}
}

func TestNewRejectsBadSampleRate(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatalf("New(0) accepted a zero sample rate")
	}
	if _, err := New(math.NaN()); err == nil {
		t.Fatalf("New(NaN) accepted a NaN sample rate")
	}
	if _, err := New(48000, WithGestureSeed(0)); err == nil {
		t.Fatalf("zero gesture seed accepted")
	}
}

func TestRenderEmptyBlockIsNoOp(t *testing.T) {
	engine, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	report := engine.Render(params.DefaultSettings(), nil, nil, playingTransport())
	if report != (Report{}) {
		t.Fatalf("empty render produced a nonzero report: %+v", report)
	}
}

func TestRenderProcessesMinimumOfBothChannels(t *testing.T) {
	engine, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	left := make([]float64, 64)
	right := make([]float64, 32)
	for i := range left {
		left[i] = 1
	}

	engine.Render(params.DefaultSettings(), left, right, playingTransport())

	for i := 32; i < 64; i++ {
		if left[i] != 1 {
			t.Fatalf("sample %d beyond the shorter channel was touched", i)
		}
	}
}

func TestRenderStaysFiniteUnderExtremeFeedback(t *testing.T) {
	engine, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	settings := params.DefaultSettings()
	settings.Feedback = 0.7
	settings.Ducking = 0

	left := make([]float64, 2048)
	right := make([]float64, 2048)
	left[0] = 1
	right[0] = 1

	for block := 0; block < 64; block++ {
		engine.Render(settings, left, right, playingTransport())
		for i := range left {
			if math.IsNaN(left[i]) || math.IsInf(left[i], 0) {
				t.Fatalf("block %d left sample %d is not finite: %g", block, i, left[i])
			}
			if math.IsNaN(right[i]) || math.IsInf(right[i], 0) {
				t.Fatalf("block %d right sample %d is not finite: %g", block, i, right[i])
			}
		}
	}
}

func TestRenderOutputBoundedBySoftClip(t *testing.T) {
	engine, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	settings := params.DefaultSettings()
	settings.Tension = 1
	settings.Feedback = 0.7
	settings.Character = params.CharacterCrush

	left := make([]float64, 512)
	right := make([]float64, 512)
	for block := 0; block < 32; block++ {
		for i := range left {
			left[i] = 10 * math.Sin(float64(block*512+i)*0.05)
			right[i] = -10 * math.Cos(float64(block*512+i)*0.05)
		}
		engine.Render(settings, left, right, playingTransport())
		for i := range left {
			// softClip(x) = x/(1+0.6|x|) never reaches 1/0.6.
			if math.Abs(left[i]) >= 1/0.6 || math.Abs(right[i]) >= 1/0.6 {
				t.Fatalf("output %g, %g escaped the soft-clip bound", left[i], right[i])
			}
		}
	}
}

func TestRenderReportsActivity(t *testing.T) {
	engine, err := New(48000)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	left := make([]float64, 1024)
	right := make([]float64, 1024)
	for i := range left {
		left[i] = 0.8 * math.Sin(float64(i)*0.02)
		right[i] = 0.8 * math.Sin(float64(i)*0.02+0.4)
	}

	report := engine.Render(params.DefaultSettings(), left, right, playingTransport())

	if report.InputLeft <= 0 || report.InputRight <= 0 {
		t.Fatalf("input meters stayed at zero: %+v", report)
	}
	if report.TensionActivity <= 0 {
		t.Fatalf("tension meter stayed at zero: %+v", report)
	}
	for _, meter := range []float64{
		report.InputLeft, report.InputRight, report.ElasticActivity,
		report.WarpActivity, report.SpaceActivity, report.FeedbackActivity,
		report.OutputLeft, report.OutputRight, report.TensionActivity,
	} {
		if meter < 0 || meter > 1 {
			t.Fatalf("meter value %g outside [0, 1]", meter)
		}
	}
}

func TestModRoutePerturbsRenderedParameter(t *testing.T) {
	// The delay line starts 0.18 s long, so the first blocks render near
	// silence; compare output well past that warmup.
	render := func(withRoute bool) []float64 {
		engine, err := New(48000, WithMatrixSeed(5), WithGestureSeed(5), WithElasticSeed(5))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		settings := params.DefaultSettings()
		settings.Mod.Run = true
		settings.Mod.SourceA.Depth = 1
		settings.Mod.SourceA.RateHz = 4
		if withRoute {
			settings.Mod.RouteDepths[0][params.DestWidth] = 1
		}

		left := make([]float64, 1024)
		right := make([]float64, 1024)

		var tail []float64
		for block := 0; block < 16; block++ {
			for i := range left {
				n := float64(block*1024 + i)
				left[i] = math.Sin(n * 0.03)
				right[i] = math.Sin(n*0.03 + 1.1)
			}
			engine.Render(settings, left, right, playingTransport())
			if block >= 12 {
				tail = append(tail, left...)
			}
		}
		return tail
	}

	base := render(false)
	routed := render(true)

	var diff float64
	for i := range base {
		diff += math.Abs(base[i] - routed[i])
	}
	if diff == 0 {
		t.Fatalf("nonzero route depth left the output untouched")
	}
}

func TestEnergyCeilingLimitsSustainedOutput(t *testing.T) {
	render := func(ceiling float64) float64 {
		engine, err := New(48000, WithMatrixSeed(9), WithGestureSeed(9), WithElasticSeed(9))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		settings := params.DefaultSettings()
		settings.EnergyCeiling = ceiling

		left := make([]float64, 1024)
		right := make([]float64, 1024)

		var lateEnergy float64
		for block := 0; block < 48; block++ {
			for i := range left {
				left[i] = 0.9 * math.Sin(float64(block*1024+i)*0.04)
				right[i] = 0.9 * math.Sin(float64(block*1024+i)*0.04)
			}
			engine.Render(settings, left, right, playingTransport())
			if block >= 40 {
				for i := range left {
					lateEnergy += left[i]*left[i] + right[i]*right[i]
				}
			}
		}
		return lateEnergy
	}

	open := render(1)
	limited := render(0)
	if limited >= open {
		t.Fatalf("energy ceiling did not reduce sustained output: %g (ceiling 0) vs %g (ceiling 1)", limited, open)
	}
}

func TestOutputTrimScalesOutput(t *testing.T) {
	render := func(trimDB float64) float64 {
		engine, err := New(48000, WithMatrixSeed(3), WithGestureSeed(3), WithElasticSeed(3))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		settings := params.DefaultSettings()
		settings.OutputTrimDB = trimDB

		left := make([]float64, 1024)
		right := make([]float64, 1024)

		var peak float64
		for block := 0; block < 24; block++ {
			for i := range left {
				left[i] = 0.5 * math.Sin(float64(block*1024+i)*0.03)
				right[i] = left[i]
			}
			report := engine.Render(settings, left, right, playingTransport())
			if block >= 20 {
				peak = math.Max(peak, report.OutputLeft)
			}
		}
		return peak
	}

	unity := render(0)
	trimmed := render(-24)
	if trimmed >= unity {
		t.Fatalf("output trim did not attenuate: %g (-24 dB) vs %g (0 dB)", trimmed, unity)
	}
}
