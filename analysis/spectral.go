package analysis

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultCrossoverHz = 2000.0

	minCrossoverHz = 50.0
	maxCrossoverHz = 12000.0

	minBalanceFrame = 64
)

// Balance is the low/high band split of one signal block.
type Balance struct {
	// LowEnergy is the summed spectral power below the crossover.
	LowEnergy float64
	// HighEnergy is the summed spectral power at and above the crossover.
	HighEnergy float64
	// TiltDB is the high/low ratio in decibels; negative values are dark.
	TiltDB float64
}

// BalanceOption mutates the spectral balance configuration.
type BalanceOption func(*balanceConfig) error

type balanceConfig struct {
	crossoverHz float64
}

// WithCrossoverHz sets the low/high split frequency in [50, 12000] Hz.
func WithCrossoverHz(crossoverHz float64) BalanceOption {
	return func(cfg *balanceConfig) error {
		if crossoverHz < minCrossoverHz || crossoverHz > maxCrossoverHz ||
			math.IsNaN(crossoverHz) || math.IsInf(crossoverHz, 0) {
			return fmt.Errorf("crossover must be in [%g, %g]: %f",
				minCrossoverHz, maxCrossoverHz, crossoverHz)
		}

		cfg.crossoverHz = crossoverHz

		return nil
	}
}

// SpectralBalance measures the low/high energy split of a block using a
// Hann-windowed FFT over the largest power-of-two prefix of the block.
func SpectralBalance(block []float64, sampleRate float64, opts ...BalanceOption) (Balance, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Balance{}, fmt.Errorf("sample rate must be > 0 and finite: %f", sampleRate)
	}
	if len(block) < minBalanceFrame {
		return Balance{}, fmt.Errorf("block must hold at least %d samples: %d", minBalanceFrame, len(block))
	}

	cfg := balanceConfig{crossoverHz: defaultCrossoverHz}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return Balance{}, err
		}
	}

	frameSize := largestPowerOfTwo(len(block))

	plan, err := algofft.NewPlan64(frameSize)
	if err != nil {
		return Balance{}, fmt.Errorf("spectral balance: failed to create FFT plan: %w", err)
	}

	windowed := make([]float64, frameSize)
	copy(windowed, block[:frameSize])
	vecmath.MulBlockInPlace(windowed, hannWindow(frameSize))

	frame := make([]complex128, frameSize)
	for i, sample := range windowed {
		frame[i] = complex(sample, 0)
	}

	spectrum := make([]complex128, frameSize)
	if err := plan.Forward(spectrum, frame); err != nil {
		return Balance{}, fmt.Errorf("spectral balance: forward FFT: %w", err)
	}

	bins := frameSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(spectrum[k])
		im[k] = imag(spectrum[k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	crossoverBin := int(cfg.crossoverHz / sampleRate * float64(frameSize))
	if crossoverBin < 1 {
		crossoverBin = 1
	}
	if crossoverBin > bins {
		crossoverBin = bins
	}

	var balance Balance
	for k := 1; k < crossoverBin; k++ {
		balance.LowEnergy += power[k]
	}
	for k := crossoverBin; k < bins; k++ {
		balance.HighEnergy += power[k]
	}

	const eps = 1e-20
	balance.TiltDB = 10 * math.Log10((balance.HighEnergy+eps)/(balance.LowEnergy+eps))

	return balance, nil
}

func hannWindow(size int) []float64 {
	coeffs := make([]float64, size)
	for i := range coeffs {
		coeffs[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
	}
	return coeffs
}

func largestPowerOfTwo(n int) int {
	power := 1
	for power*2 <= n {
		power *= 2
	}
	return power
}
