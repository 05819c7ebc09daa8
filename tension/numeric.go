package tension

import "math"

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func dbToGain(db float64) float64 {
	return math.Pow(10, db*0.05)
}

// softClip bounds any finite input to (-1/0.6, 1/0.6) with a smooth knee.
func softClip(input float64) float64 {
	return input / (1 + math.Abs(input)*0.6)
}

// crush quantizes to 128 amplitude steps for the Crush character mode.
func crush(sample float64) float64 {
	return math.Round(sample*128) / 128
}

// meterNorm compresses a peak value into [0, 1] for metering.
func meterNorm(value float64) float64 {
	return clamp(value/(1+value), 0, 1)
}
