package analysis

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tensionfield/params"
	"github.com/cwbudde/algo-tensionfield/tension"
)

func TestSpectralBalanceRejectsBadInput(t *testing.T) {
	block := make([]float64, 1024)

	if _, err := SpectralBalance(block, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := SpectralBalance(block[:16], 48000); err == nil {
		t.Fatal("expected error for short block")
	}
	if _, err := SpectralBalance(block, 48000, WithCrossoverHz(10)); err == nil {
		t.Fatal("expected error for crossover below range")
	}
	if _, err := SpectralBalance(block, 48000, WithCrossoverHz(math.NaN())); err == nil {
		t.Fatal("expected error for NaN crossover")
	}
}

func TestSpectralBalanceLowSineIsDark(t *testing.T) {
	const (
		sampleRate = 48000.0
		size       = 4096
	)

	block := make([]float64, size)
	for i := range block {
		block[i] = math.Sin(2 * math.Pi * 200 * float64(i) / sampleRate)
	}

	balance, err := SpectralBalance(block, sampleRate)
	if err != nil {
		t.Fatalf("SpectralBalance returned error: %v", err)
	}

	if balance.LowEnergy <= balance.HighEnergy {
		t.Fatalf("low = %g, high = %g, want low dominant", balance.LowEnergy, balance.HighEnergy)
	}
	if balance.TiltDB >= 0 {
		t.Fatalf("TiltDB = %g, want negative for a 200 Hz sine", balance.TiltDB)
	}
}

func TestSpectralBalanceHighSineIsBright(t *testing.T) {
	const (
		sampleRate = 48000.0
		size       = 4096
	)

	block := make([]float64, size)
	for i := range block {
		block[i] = math.Sin(2 * math.Pi * 8000 * float64(i) / sampleRate)
	}

	balance, err := SpectralBalance(block, sampleRate)
	if err != nil {
		t.Fatalf("SpectralBalance returned error: %v", err)
	}

	if balance.HighEnergy <= balance.LowEnergy {
		t.Fatalf("low = %g, high = %g, want high dominant", balance.LowEnergy, balance.HighEnergy)
	}
	if balance.TiltDB <= 0 {
		t.Fatalf("TiltDB = %g, want positive for an 8 kHz sine", balance.TiltDB)
	}
}

func TestSpectralBalanceHonorsCrossover(t *testing.T) {
	const (
		sampleRate = 48000.0
		size       = 4096
	)

	block := make([]float64, size)
	for i := range block {
		block[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / sampleRate)
	}

	below, err := SpectralBalance(block, sampleRate, WithCrossoverHz(500))
	if err != nil {
		t.Fatalf("SpectralBalance returned error: %v", err)
	}
	above, err := SpectralBalance(block, sampleRate, WithCrossoverHz(4000))
	if err != nil {
		t.Fatalf("SpectralBalance returned error: %v", err)
	}

	if below.TiltDB <= 0 {
		t.Fatalf("TiltDB = %g with 500 Hz crossover, want positive", below.TiltDB)
	}
	if above.TiltDB >= 0 {
		t.Fatalf("TiltDB = %g with 4 kHz crossover, want negative", above.TiltDB)
	}
}

// Rendering the same material with full air damping must come out spectrally
// darker than with damping disabled.
func TestEngineDampingDarkensSpectrum(t *testing.T) {
	tiltFor := func(damping float64) float64 {
		engine, err := tension.New(48000)
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}

		settings := params.DefaultSettings()
		settings.AirDamping = damping

		transport := tension.TransportState{TempoBPM: 120, Playing: true}

		const blockSize = 4096

		left := make([]float64, blockSize)
		right := make([]float64, blockSize)
		var tail []float64

		for block := 0; block < 16; block++ {
			for i := range left {
				n := float64(block*blockSize + i)
				sample := 0.4 * math.Sin(2*math.Pi*440*n/48000)
				if int(n)%2 == 0 {
					sample += 0.2
				} else {
					sample -= 0.2
				}
				left[i] = sample
				right[i] = sample
			}

			engine.Render(settings, left, right, transport)

			if block == 15 {
				tail = append(tail[:0], left...)
			}
		}

		balance, err := SpectralBalance(tail, 48000)
		if err != nil {
			t.Fatalf("SpectralBalance returned error: %v", err)
		}

		return balance.TiltDB
	}

	damped := tiltFor(1)
	open := tiltFor(0)

	if damped >= open {
		t.Fatalf("tilt damped = %g dB, open = %g dB, want damped darker", damped, open)
	}
}
