package resample

import (
	"errors"
	"fmt"
	"math"
)

// designPolyphaseFIR designs a lowpass prototype at the input Nyquist
// frequency and splits it into factor phases. Phase p holds taps p,
// p+factor, p+2*factor, ... The prototype is scaled to a DC gain of
// factor, which restores unity gain after zero-stuffing. The prototype has
// odd length so its group delay is a whole number of output samples.
func designPolyphaseFIR(factor int, cfg config) ([]float64, [][]float64, error) {
	if cfg.tapsPerPhase <= 0 {
		return nil, nil, errors.New("resample: taps per phase must be > 0")
	}

	if factor == 1 {
		return []float64{1}, [][]float64{{1}}, nil
	}

	nTaps := cfg.tapsPerPhase*factor + 1

	fc := (0.5 / float64(factor)) * cfg.cutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, nil, fmt.Errorf("resample: invalid cutoff %.6f", fc)
	}

	taps := make([]float64, nTaps)

	center := 0.5 * float64(nTaps-1)
	for n := range nTaps {
		t := float64(n) - center
		taps[n] = 2 * fc * sinc(2*fc*t) * kaiserWindow(n, nTaps, cfg.kaiserBeta)
	}

	var sum float64
	for _, v := range taps {
		sum += v
	}

	if sum == 0 {
		return nil, nil, errors.New("resample: designed zero-sum filter")
	}

	scale := float64(factor) / sum
	for i := range taps {
		taps[i] *= scale
	}

	phases := make([][]float64, factor)
	for p := range factor {
		phase := make([]float64, 0, cfg.tapsPerPhase+1)
		for i := p; i < nTaps; i += factor {
			phase = append(phase, taps[i])
		}

		phases[p] = phase
	}

	return taps, phases, nil
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func kaiserWindow(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	a := math.Sqrt(math.Max(0, 1-t*t))

	return i0(beta*a) / i0(beta)
}

func i0(x float64) float64 {
	// Power series approximation.
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
