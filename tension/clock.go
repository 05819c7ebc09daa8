package tension

import (
	"math"

	"github.com/cwbudde/algo-tensionfield/params"
)

const (
	minTempoBPM = 20.0
	maxTempoBPM = 300.0
)

// TransportState is the per-block transport snapshot supplied by the host.
type TransportState struct {
	// TempoBPM is the host tempo in beats per minute.
	TempoBPM float64
	// Playing reports active playback.
	Playing bool
	// SongPosBeats is the song position in quarter-note beats, valid only
	// when HasSongPos is set.
	SongPosBeats float64
	// HasSongPos marks SongPosBeats as host-supplied.
	HasSongPos bool
}

// ClockFrame is the per-sample clock snapshot shared by the engine stages.
type ClockFrame struct {
	// BeatPosition is the continuous beat position.
	BeatPosition float64
	// Playing is the playback state flag.
	Playing bool
}

// PhaseForDivision returns the normalized phase within one cycle of the
// division, warped by the swing amount.
func (f ClockFrame) PhaseForDivision(division params.PullDivision, swing float64) float64 {
	beats := math.Max(division.BeatsPerCycle(), 1e-4)
	raw := fract(f.BeatPosition / beats)
	return applySwing(raw, swing)
}

// TransportClock converts host tempo and play state into a continuous
// per-sample beat position, free-running when the host omits timeline data.
type TransportClock struct {
	sampleRate       float64
	fallbackPosition float64
}

// NewTransportClock creates a clock for the given sample rate.
func NewTransportClock(sampleRate float64) *TransportClock {
	return &TransportClock{sampleRate: math.Max(sampleRate, 1)}
}

// Tick advances one sample and returns the transport frame at the current
// sample, before the advance.
func (c *TransportClock) Tick(transport TransportState) ClockFrame {
	tempo := clamp(transport.TempoBPM, minTempoBPM, maxTempoBPM)
	beatIncrement := tempo / (c.sampleRate * 60)

	position := c.fallbackPosition
	if transport.HasSongPos {
		position = transport.SongPosBeats
	}

	if transport.Playing {
		c.fallbackPosition = position + beatIncrement
	} else {
		c.fallbackPosition = position
	}

	return ClockFrame{BeatPosition: position, Playing: transport.Playing}
}

// applySwing warps a phase with the swing amount while preserving [0, 1].
func applySwing(phase, swing float64) float64 {
	p := fract(phase)
	split := clamp(0.5+clamp(swing, 0, 1)*0.24, 0.1, 0.9)
	if p < split {
		return (p / split) * 0.5
	}
	return 0.5 + ((p-split)/(1-split))*0.5
}

func fract(value float64) float64 {
	f := value - math.Trunc(value)
	return f
}
