package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-mixcheck/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleBinIndex() {
	fmt.Println(spectrum.BinIndex(60, 48000, 4096), spectrum.BinIndex(150, 48000, 4096))
	// Output:
	// 5 12
}
