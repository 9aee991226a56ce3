package frequency

import (
	"fmt"
	"math"
	"testing"
)

func decaying(n int) []float64 {
	mag := make([]float64, n)
	for i := range mag {
		f := float64(i) / float64(n)
		mag[i] = math.Abs(math.Exp(-3*f) + 0.1*math.Sin(2*math.Pi*5*f))
	}

	return mag
}

func BenchmarkDescribe(b *testing.B) {
	for _, fftSize := range []int{1024, 4096, 16384} {
		mag := decaying(fftSize/2 + 1)

		b.Run(fmt.Sprintf("N=%d", fftSize), func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				Describe(mag, 48000)
			}
		})
	}
}
