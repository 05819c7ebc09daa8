package tension

import "math"

const (
	// elasticBufferSeconds sizes the ring buffers at construction.
	elasticBufferSeconds = 2.75
	// initialDelaySeconds seeds the smoothed delay before the gesture
	// engine takes over.
	initialDelaySeconds = 0.18

	minPlaybackSpeed = 0.35
	maxPlaybackSpeed = 1.65
	// speedCorrection is the proportional gain pulling the read position
	// back toward the requested delay. There is no integral term; the
	// proportional pull alone keeps long-run drift bounded.
	speedCorrection = 0.003
)

// ElasticControl holds the per-sample inputs of the elastic buffer.
type ElasticControl struct {
	// DelaySamples is the requested delay length.
	DelaySamples float64
	// Velocity is the gesture motion velocity.
	Velocity float64
	// PitchCoupling scales how strongly velocity bends playback speed.
	PitchCoupling float64
	// GrainAmount sizes the jitter depth.
	GrainAmount float64
	// Elasticity controls delay smoothing speed.
	Elasticity float64
	// Dirty raises jitter and adds playback-speed noise.
	Dirty bool
}

// ElasticBuffer is the stretch engine: per-channel ring buffers read through
// a self-correcting variable-speed pointer with cubic interpolation.
//
// Buffer length is fixed at construction and never reallocated.
type ElasticBuffer struct {
	left         []float64
	right        []float64
	writeIndex   int
	readPosition float64
	smoothDelay  float64
	jitter       float64
	noise        xorshift32
}

// NewElasticBuffer creates the buffers for the given sample rate. A zero
// seed selects the default jitter seed.
func NewElasticBuffer(sampleRate float64, seed uint32) *ElasticBuffer {
	length := int(math.Ceil(sampleRate*elasticBufferSeconds)) + 4
	initialDelay := sampleRate * initialDelaySeconds
	if seed == 0 {
		seed = 0xA341316C
	}
	return &ElasticBuffer{
		left:         make([]float64, length),
		right:        make([]float64, length),
		readPosition: float64(length) - initialDelay,
		smoothDelay:  initialDelay,
		noise:        newXorshift32(seed),
	}
}

// Len returns the fixed per-channel buffer length in samples.
func (b *ElasticBuffer) Len() int {
	return len(b.left)
}

// Process writes one stereo input sample and reads one stretched output
// sample at the current variable-speed position.
func (b *ElasticBuffer) Process(leftIn, rightIn float64, control ElasticControl) (float64, float64) {
	length := float64(len(b.left))

	b.left[b.writeIndex] = leftIn
	b.right[b.writeIndex] = rightIn

	jitterDepth := 4 + control.GrainAmount*control.GrainAmount*110
	b.jitter = clamp(b.jitter+b.noise.nextSigned()*0.02, -1, 1)
	jitter := b.jitter
	if control.Dirty {
		jitter += b.noise.nextSigned() * 0.25
	}

	targetDelay := math.Max(control.DelaySamples+jitter*jitterDepth, 8)
	delaySmooth := 0.0018 + control.Elasticity*0.01
	b.smoothDelay += (targetDelay - b.smoothDelay) * delaySmooth

	desiredRead := wrapPosition(float64(b.writeIndex)-b.smoothDelay, length)
	err := wrapDelta(desiredRead-b.readPosition, length)

	speed := 1 + err*speedCorrection + control.Velocity*control.PitchCoupling*0.48
	if control.Dirty {
		speed += b.noise.nextSigned() * 0.03 * control.GrainAmount
	}
	speed = clamp(speed, minPlaybackSpeed, maxPlaybackSpeed)

	b.readPosition = wrapPosition(b.readPosition+speed, length)

	outL := readCubic(b.left, b.readPosition)
	outR := readCubic(b.right, b.readPosition)

	b.writeIndex++
	if b.writeIndex >= len(b.left) {
		b.writeIndex = 0
	}

	return outL, outR
}

// wrapPosition folds a fractional position into [0, length).
func wrapPosition(position, length float64) float64 {
	for position < 0 {
		position += length
	}
	for position >= length {
		position -= length
	}
	return position
}

// wrapDelta returns the signed shortest circular distance for a delta on a
// ring of the given length.
func wrapDelta(delta, length float64) float64 {
	for delta > length*0.5 {
		delta -= length
	}
	for delta < -length*0.5 {
		delta += length
	}
	return delta
}

// readCubic reads a fractional buffer position with 4-point Catmull-Rom
// interpolation and modulo-safe neighbor indexing.
func readCubic(buffer []float64, position float64) float64 {
	length := len(buffer)
	base := int(math.Floor(position))
	frac := position - float64(base)

	x0 := buffer[wrapIndex(base-1, length)]
	x1 := buffer[wrapIndex(base, length)]
	x2 := buffer[wrapIndex(base+1, length)]
	x3 := buffer[wrapIndex(base+2, length)]

	a := -0.5*x0 + 1.5*x1 - 1.5*x2 + 0.5*x3
	b := x0 - 2.5*x1 + 2*x2 - 0.5*x3
	c := -0.5*x0 + 0.5*x2
	d := x1

	return ((a*frac+b)*frac+c)*frac + d
}

// wrapIndex is a modulo that stays in [0, length) for negative operands.
func wrapIndex(index, length int) int {
	index %= length
	if index < 0 {
		index += length
	}
	return index
}
