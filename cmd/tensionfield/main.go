// Command tensionfield renders a stereo WAV file through the elastic
// time-warp engine and prints a JSON run report.
//
// Usage:
//
//	tensionfield [flags] -in input.wav -out output.wav
//
// Examples:
//
//	tensionfield -in drums.wav -out warped.wav
//	tensionfield -in drums.wav -out warped.wav -tension 0.8 -character dirty
//	tensionfield -in pad.wav -out pad-wide.wav -width 0.9 -diffusion 0.7 -tempo 94
//	tensionfield -in loop.wav -out loop-dark.wav -color dark -damping 0.9
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/youpy/go-wav"

	"github.com/cwbudde/algo-tensionfield/analysis"
	"github.com/cwbudde/algo-tensionfield/params"
	"github.com/cwbudde/algo-tensionfield/tension"
)

type runReport struct {
	Input       string          `json:"input"`
	Output      string          `json:"output"`
	SampleRate  float64         `json:"sampleRate"`
	Frames      int             `json:"frames"`
	Blocks      int             `json:"blocks"`
	TempoBPM    float64         `json:"tempoBPM"`
	PeakMeters  tension.Report  `json:"peakMeters"`
	MeanMeters  tension.Report  `json:"meanMeters"`
	TailBalance balanceReport   `json:"tailBalance"`
	Settings    params.Settings `json:"settings"`
}

type balanceReport struct {
	LowEnergy  float64 `json:"lowEnergy"`
	HighEnergy float64 `json:"highEnergy"`
	TiltDB     float64 `json:"tiltDB"`
}

func main() {
	inPath := flag.String("in", "", "input WAV file (required)")
	outPath := flag.String("out", "", "output WAV file (required)")
	blockSize := flag.Int("block", 512, "render block size in frames")
	reportPath := flag.String("report", "", "write the JSON run report to this file instead of stdout")
	tempo := flag.Float64("tempo", 120, "transport tempo in BPM")
	seed := flag.Uint("seed", 0, "override the random seeds (0 keeps the defaults)")

	tensionAmt := flag.Float64("tension", math.NaN(), "pull tension, 0..1")
	rateHz := flag.Float64("rate", math.NaN(), "free pull rate in Hz")
	shape := flag.String("shape", "", "pull shape (linear, rubber, ratchet, wave, pulse)")
	character := flag.String("character", "", "character mode (clean, dirty, crush)")
	color := flag.String("color", "", "warp color (neutral, dark, bright)")
	elasticity := flag.Float64("elasticity", math.NaN(), "time elasticity, 0..1")
	grain := flag.Float64("grain", math.NaN(), "grain continuity macro, 0..1")
	pitch := flag.Float64("pitch", math.NaN(), "pitch coupling, 0..1")
	diffusion := flag.Float64("diffusion", math.NaN(), "space diffusion, 0..1")
	width := flag.Float64("width", math.NaN(), "stereo width, 0..1")
	damping := flag.Float64("damping", math.NaN(), "air damping, 0..1")
	feedback := flag.Float64("feedback", math.NaN(), "feedback amount, 0..0.7")
	trimDB := flag.Float64("trim", math.NaN(), "output trim in dB, -24..12")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tensionfield [flags] -in input.wav -out output.wav\n\n")
		fmt.Fprintf(os.Stderr, "Renders a stereo WAV through the elastic time-warp engine\n")
		fmt.Fprintf(os.Stderr, "and prints a JSON run report on stdout.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		fmt.Fprintf(os.Stderr, "error: -in and -out are required\n")
		flag.Usage()
		os.Exit(1)
	}
	if *blockSize < 16 {
		fmt.Fprintf(os.Stderr, "error: block size must be at least 16 frames\n")
		os.Exit(1)
	}

	settings := params.DefaultSettings()
	applyFloat(&settings.Tension, *tensionAmt, 0, 1)
	applyFloat(&settings.PullRateHz, *rateHz, 0.01, 12)
	applyFloat(&settings.Elasticity, *elasticity, 0, 1)
	applyFloat(&settings.GrainContinuity, *grain, 0, 1)
	applyFloat(&settings.PitchCoupling, *pitch, 0, 1)
	applyFloat(&settings.Diffusion, *diffusion, 0, 1)
	applyFloat(&settings.Width, *width, 0, 1)
	applyFloat(&settings.AirDamping, *damping, 0, 1)
	applyFloat(&settings.Feedback, *feedback, 0, 0.7)
	applyFloat(&settings.OutputTrimDB, *trimDB, -24, 12)

	if *shape != "" {
		parsed, ok := params.ParsePullShape(*shape)
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown pull shape %q\n", *shape)
			os.Exit(1)
		}
		settings.PullShape = parsed
	}
	if *character != "" {
		parsed, ok := params.ParseCharacterMode(*character)
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown character mode %q\n", *character)
			os.Exit(1)
		}
		settings.Character = parsed
	}
	if *color != "" {
		parsed, ok := params.ParseWarpColor(*color)
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown warp color %q\n", *color)
			os.Exit(1)
		}
		settings.WarpColor = parsed
	}

	report, err := run(*inPath, *outPath, settings, *blockSize, *tempo, uint32(*seed))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	dst := os.Stdout
	if *reportPath != "" {
		file, err := os.Create(*reportPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: failed to create report file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		dst = file
	}

	enc := json.NewEncoder(dst)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to encode report: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, settings params.Settings, blockSize int, tempo float64, seed uint32) (runReport, error) {
	left, right, sampleRate, err := readStereoWAV(inPath)
	if err != nil {
		return runReport{}, err
	}
	if len(left) == 0 {
		return runReport{}, fmt.Errorf("input %s holds no samples", inPath)
	}

	var opts []tension.Option
	if seed != 0 {
		opts = append(opts,
			tension.WithGestureSeed(seed),
			tension.WithElasticSeed(seed<<1|1),
			tension.WithMatrixSeed(seed<<2|1),
		)
	}

	engine, err := tension.New(sampleRate, opts...)
	if err != nil {
		return runReport{}, err
	}

	var agg analysis.Aggregate

	beatsPerBlock := tempo / 60 * float64(blockSize) / sampleRate
	blocks := 0

	for offset := 0; offset < len(left); offset += blockSize {
		end := offset + blockSize
		if end > len(left) {
			end = len(left)
		}

		transport := tension.TransportState{
			TempoBPM:     tempo,
			Playing:      true,
			SongPosBeats: float64(blocks) * beatsPerBlock,
			HasSongPos:   true,
		}

		agg.Add(engine.Render(settings, left[offset:end], right[offset:end], transport))

		blocks++
	}

	if err := writeStereoWAV(outPath, left, right, sampleRate); err != nil {
		return runReport{}, err
	}

	tail := left
	if len(tail) > 4096 {
		tail = tail[len(tail)-4096:]
	}

	var balance analysis.Balance
	if b, err := analysis.SpectralBalance(tail, sampleRate); err == nil {
		balance = b
	}

	return runReport{
		Input:      inPath,
		Output:     outPath,
		SampleRate: sampleRate,
		Frames:     len(left),
		Blocks:     blocks,
		TempoBPM:   tempo,
		PeakMeters: agg.Peak(),
		MeanMeters: agg.Mean(),
		TailBalance: balanceReport{
			LowEnergy:  balance.LowEnergy,
			HighEnergy: balance.HighEnergy,
			TiltDB:     balance.TiltDB,
		},
		Settings: settings,
	}, nil
}

func readStereoWAV(path string) (left, right []float64, sampleRate float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	reader := wav.NewReader(file)
	format, err := reader.Format()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("read format of %s: %w", path, err)
	}

	rightChannel := uint(1)
	if format.NumChannels < 2 {
		rightChannel = 0
	}

	for {
		samples, err := reader.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, 0, fmt.Errorf("read samples of %s: %w", path, err)
		}
		for _, sample := range samples {
			left = append(left, reader.FloatValue(sample, 0))
			right = append(right, reader.FloatValue(sample, rightChannel))
		}
	}

	return left, right, float64(format.SampleRate), nil
}

func writeStereoWAV(path string, left, right []float64, sampleRate float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := wav.NewWriter(file, uint32(len(left)), 2, uint32(sampleRate), 16)

	const scale = 1 << 15

	frame := make([]wav.Sample, 1)
	for i := range left {
		frame[0] = wav.Sample{Values: [2]int{pcm16(left[i] * scale), pcm16(right[i] * scale)}}
		if err := writer.WriteSamples(frame); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	return nil
}

func pcm16(scaled float64) int {
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int(scaled)
}

func applyFloat(dst *float64, value, min, max float64) {
	if math.IsNaN(value) {
		return
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	*dst = value
}
