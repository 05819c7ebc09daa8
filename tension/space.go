package tension

const (
	sideDelayALength = 19
	sideDelayBLength = 23
	spaceDiffuserLen = 31
	// dirtyOutputGain is the small fixed lift applied by dirty characters.
	dirtyOutputGain = 1.015
)

// SpaceStage widens the stereo image: mid/side split, cheap side
// decorrelation through two short delays of distinct lengths, and a pair of
// per-channel allpass diffusers blended by diffusion amount.
type SpaceStage struct {
	sideDelayA shortDelay
	sideDelayB shortDelay
	diffLeft   allpassDelay
	diffRight  allpassDelay
}

// NewSpaceStage creates a space stage.
func NewSpaceStage() *SpaceStage {
	return &SpaceStage{
		sideDelayA: newShortDelay(sideDelayALength),
		sideDelayB: newShortDelay(sideDelayBLength),
		diffLeft:   newAllpassDelay(spaceDiffuserLen),
		diffRight:  newAllpassDelay(spaceDiffuserLen),
	}
}

// Process widens one stereo sample.
func (s *SpaceStage) Process(left, right, width, diffusion float64, dirty bool) (float64, float64) {
	mid := (left + right) * 0.5
	side := (left - right) * 0.5

	delayedA := s.sideDelayA.process(side)
	delayedB := s.sideDelayB.process(-side)
	decorrelated := lerp(side, (delayedA-delayedB)*0.5, width*0.82)

	spread := 1 + width*0.78
	outL := mid + decorrelated*spread
	outR := mid - decorrelated*spread

	diffusionGain := clamp(0.14+diffusion*0.56, 0.08, 0.8)
	diffusedL := s.diffLeft.process(outL, diffusionGain)
	diffusedR := s.diffRight.process(outR, diffusionGain*0.95)

	blend := 0.1 + diffusion*0.5
	outL = lerp(outL, diffusedL, blend)
	outR = lerp(outR, diffusedR, blend)

	if dirty {
		outL *= dirtyOutputGain
		outR *= dirtyOutputGain
	}

	return outL, outR
}
