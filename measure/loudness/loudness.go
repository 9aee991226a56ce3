package loudness

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-mixcheck/dsp/core"
	"github.com/cwbudde/algo-mixcheck/dsp/filter/weighting"
	"github.com/cwbudde/algo-mixcheck/dsp/signal"
)

var (
	// ErrEmptyInput is returned for channels without samples.
	ErrEmptyInput = errors.New("loudness: empty input")
	// ErrChannelMismatch is returned when left and right differ in length.
	ErrChannelMismatch = errors.New("loudness: channel length mismatch")
)

// Block is the loudness of one gating block. Blocks are values and are
// never modified after analysis.
type Block struct {
	Loudness   float64 // LUFS, -Inf when MeanSquare is zero
	MeanSquare float64 // sum of K-weighted channel mean squares
	Time       time.Duration
}

// Gating summarises the two-stage gate of the integrated measurement.
type Gating struct {
	TotalBlocks       int
	GatedBlocks       int     // blocks that passed both gates
	AbsoluteThreshold float64 // LUFS
	RelativeThreshold float64 // LUFS, -Inf when nothing passed the absolute gate
}

// Result is the outcome of a loudness analysis.
type Result struct {
	Integrated float64 // LUFS
	ShortTerm  float64 // LUFS, median of the gated short-term series
	Momentary  float64 // LUFS, loudest gated block
	LRA        float64 // LU

	Gating          Gating
	Blocks          []Block
	ShortTermSeries []float64 // LUFS, one value per block position
}

// AnalyzeSignal measures a stereo signal at its own sample rate.
func AnalyzeSignal(sig signal.Stereo, opts ...Option) (Result, error) {
	if err := sig.Validate(); err != nil {
		return Result{}, fmt.Errorf("loudness: %w", err)
	}

	left, right, _ := sig.Float64()
	opts = append([]Option{WithSampleRate(float64(sig.SampleRate))}, opts...)

	return Analyze(left, right, opts...)
}

// Analyze measures integrated, short-term and momentary loudness and the
// loudness range of a stereo pair. Both channels carry weight 1.0. The
// inputs are not modified; non-finite samples are treated as 0.
func Analyze(left, right []float64, opts ...Option) (Result, error) {
	if len(left) != len(right) {
		return Result{}, fmt.Errorf("%w: left=%d right=%d", ErrChannelMismatch, len(left), len(right))
	}

	if len(left) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg := ApplyOptions(opts...)

	left, _ = core.Sanitize(left)
	right, _ = core.Sanitize(right)

	if core.IsSilent(left, right) {
		return silentResult(cfg), nil
	}

	wl, wr := weighting.ApplyStereo(left, right, cfg.SampleRate)

	blocks := gatingBlocks(wl, wr, cfg)
	res := Result{Blocks: blocks}

	var survivors []Block

	res.Integrated, survivors, res.Gating = integrate(blocks, cfg)
	res.Momentary = momentary(survivors)

	res.ShortTermSeries = shortTermSeries(blocks, cfg.shortTermBlocks())
	res.ShortTerm = representativeShortTerm(res.ShortTermSeries, res.Integrated, cfg)
	res.LRA = loudnessRange(res.ShortTermSeries, res.Integrated, cfg)

	return res, nil
}

func silentResult(cfg Config) Result {
	return Result{
		Integrated: math.Inf(-1),
		ShortTerm:  math.Inf(-1),
		Momentary:  math.Inf(-1),
		Gating: Gating{
			AbsoluteThreshold: cfg.AbsoluteGate,
			RelativeThreshold: math.Inf(-1),
		},
	}
}

// gatingBlocks partitions the weighted channels into overlapping blocks. A
// signal shorter than one block yields a single block over all samples.
func gatingBlocks(wl, wr []float64, cfg Config) []Block {
	n := len(wl)
	size := cfg.samples(cfg.BlockDuration)
	hop := cfg.samples(cfg.Hop)

	cumL := cumulativeSquares(wl)
	cumR := cumulativeSquares(wr)

	meanSquare := func(start, end int) float64 {
		count := float64(end - start)
		return (cumL[end]-cumL[start])/count + (cumR[end]-cumR[start])/count
	}

	if n < size {
		ms := meanSquare(0, n)
		return []Block{{Loudness: toLUFS(ms), MeanSquare: ms}}
	}

	count := 1 + (n-size)/hop
	blocks := make([]Block, count)

	for i := range blocks {
		start := i * hop
		ms := meanSquare(start, start+size)
		blocks[i] = Block{
			Loudness:   toLUFS(ms),
			MeanSquare: ms,
			Time:       time.Duration(float64(start) / cfg.SampleRate * float64(time.Second)),
		}
	}

	return blocks
}

func cumulativeSquares(x []float64) []float64 {
	cum := make([]float64, len(x)+1)
	for i, v := range x {
		cum[i+1] = cum[i] + v*v
	}

	return cum
}

// integrate applies the absolute and relative gates and returns the
// integrated loudness together with the blocks that passed both gates.
func integrate(blocks []Block, cfg Config) (float64, []Block, Gating) {
	g := Gating{
		TotalBlocks:       len(blocks),
		AbsoluteThreshold: cfg.AbsoluteGate,
		RelativeThreshold: math.Inf(-1),
	}

	var absolute []Block

	for _, b := range blocks {
		if b.Loudness >= cfg.AbsoluteGate {
			absolute = append(absolute, b)
		}
	}

	if len(absolute) == 0 {
		return math.Inf(-1), nil, g
	}

	preliminary := energyAverage(absolute)
	g.RelativeThreshold = preliminary + cfg.RelativeGate

	var relative []Block

	for _, b := range absolute {
		if b.Loudness >= g.RelativeThreshold {
			relative = append(relative, b)
		}
	}

	if len(relative) == 0 {
		g.GatedBlocks = len(absolute)
		return preliminary, absolute, g
	}

	g.GatedBlocks = len(relative)

	return energyAverage(relative), relative, g
}

func energyAverage(blocks []Block) float64 {
	sum := 0.0
	for _, b := range blocks {
		sum += b.MeanSquare
	}

	return toLUFS(sum / float64(len(blocks)))
}

func momentary(survivors []Block) float64 {
	m := math.Inf(-1)
	for _, b := range survivors {
		m = math.Max(m, b.Loudness)
	}

	return m
}

// shortTermSeries returns one value per block position: the energy
// average of the window blocks ending at that block. Leading positions
// average the blocks seen so far.
func shortTermSeries(blocks []Block, window int) []float64 {
	out := make([]float64, len(blocks))

	sum := 0.0
	for i, b := range blocks {
		sum += b.MeanSquare

		n := window
		if i >= window {
			sum -= blocks[i-window].MeanSquare
		} else {
			n = i + 1
		}

		out[i] = toLUFS(math.Max(sum, 0) / float64(n))
	}

	return out
}

func representativeShortTerm(series []float64, integrated float64, cfg Config) float64 {
	gated := gateSeries(series, cfg.AbsoluteGate, integrated+cfg.RelativeGate)
	if len(gated) == 0 {
		return math.Inf(-1)
	}

	return stat.Quantile(0.5, stat.Empirical, gated, nil)
}

func loudnessRange(series []float64, integrated float64, cfg Config) float64 {
	var values []float64

	if cfg.LegacyLRA {
		for _, v := range series {
			if core.IsFinite(v) {
				values = append(values, v)
			}
		}

		sort.Float64s(values)
	} else {
		values = gateSeries(series, cfg.AbsoluteGate, integrated+cfg.LRARelativeGate)
	}

	if len(values) < 2 {
		return 0
	}

	return percentile(values, 0.95) - percentile(values, 0.10)
}

// gateSeries returns the sorted values that pass both thresholds.
func gateSeries(series []float64, absolute, relative float64) []float64 {
	var out []float64

	for _, v := range series {
		if v >= absolute && v >= relative {
			out = append(out, v)
		}
	}

	sort.Float64s(out)

	return out
}

// percentile returns sorted[floor(p*(n-1))].
func percentile(sorted []float64, p float64) float64 {
	return sorted[int(math.Floor(p*float64(len(sorted)-1)))]
}

// toLUFS converts a summed mean square to loudness; exactly zero is -Inf.
func toLUFS(meanSquare float64) float64 {
	if meanSquare <= 0 {
		return math.Inf(-1)
	}

	return -0.691 + 10.0*math.Log10(meanSquare)
}
