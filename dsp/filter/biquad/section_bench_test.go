package biquad

import (
	"fmt"
	"testing"
)

// benchCoeffs is the BS.1770-4 high-shelf stage at 48 kHz.
var benchCoeffs = Coefficients{
	B0: 1.53512485958697, B1: -2.69169618940638, B2: 1.19839281085285,
	A1: -1.69065929318241, A2: 0.73248077421585,
}

func BenchmarkStep(b *testing.B) {
	var st State

	y := 0.0
	for b.Loop() {
		st, y = Step(benchCoeffs, st, 0.5)
	}

	_ = y
}

func BenchmarkChainProcessBlock(b *testing.B) {
	hp := Coefficients{B0: 1, B1: -2, B2: 1, A1: -1.99004745483398, A2: 0.99007225036621}

	for _, size := range []int{4800, 48000} {
		b.Run(fmt.Sprintf("N=%d", size), func(b *testing.B) {
			c := NewChain([]Coefficients{hp, benchCoeffs})
			buf := make([]float64, size)

			for i := range buf {
				buf[i] = float64(i%97) * 0.01
			}

			b.SetBytes(int64(size * 8))

			for b.Loop() {
				c.ProcessBlock(buf)
			}
		})
	}
}
