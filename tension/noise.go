package tension

import "math"

// xorshift32 is a small seedable noise generator used by the gesture engine
// and elastic buffer. Each component owns its own state; there is no shared
// generator.
type xorshift32 struct {
	state uint32
}

func newXorshift32(seed uint32) xorshift32 {
	if seed == 0 {
		seed = 0x9E3779B9
	}
	return xorshift32{state: seed}
}

// nextSigned returns a uniform value in [-1, 1].
func (n *xorshift32) nextSigned() float64 {
	x := n.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	n.state = x
	return float64(x)/float64(math.MaxUint32)*2 - 1
}

// lcgNoise is the linear-congruential noise source of the modulation matrix.
type lcgNoise struct {
	state uint32
}

func newLCGNoise(seed uint32) lcgNoise {
	if seed == 0 {
		seed = 0xA5A59151
	}
	return lcgNoise{state: seed}
}

// nextSigned returns a value in [-1, 1) from the high generator bits.
func (n *lcgNoise) nextSigned() float64 {
	n.state = n.state*1664525 + 1013904223
	return float64(n.state>>8)/float64(uint32(1)<<24)*2 - 1
}
