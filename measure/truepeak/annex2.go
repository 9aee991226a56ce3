package truepeak

// annex2Phases is the 48-tap interpolation filter of ITU-R BS.1770-4
// Annex 2, split into four phases of twelve taps.
var annex2Phases = [4][12]float64{
	{
		0.0017089843750, 0.0109863281250, -0.0196533203125, 0.0332031250000,
		-0.0594482421875, 0.1373291015625, 0.9721679687500, -0.1022949218750,
		0.0476074218750, -0.0266113281250, 0.0148925781250, -0.0083007812500,
	},
	{
		-0.0291748046875, 0.0292968750000, -0.0517578125000, 0.0891113281250,
		-0.1665039062500, 0.4650878906250, 0.7797851562500, -0.2003173828125,
		0.1015625000000, -0.0582275390625, 0.0330810546875, -0.0189208984375,
	},
	{
		-0.0189208984375, 0.0330810546875, -0.0582275390625, 0.1015625000000,
		-0.2003173828125, 0.7797851562500, 0.4650878906250, -0.1665039062500,
		0.0891113281250, -0.0517578125000, 0.0292968750000, -0.0291748046875,
	},
	{
		-0.0083007812500, 0.0148925781250, -0.0266113281250, 0.0476074218750,
		-0.1022949218750, 0.9721679687500, 0.1373291015625, -0.0594482421875,
		0.0332031250000, -0.0196533203125, 0.0109863281250, 0.0017089843750,
	},
}

// annex2Peak returns the largest absolute value of the 4x interpolated
// signal. The input is treated as zero outside its bounds and the filter
// tail is flushed so the last samples are fully interpolated.
func annex2Peak(x []float64) float64 {
	const taps = len(annex2Phases[0])

	peak := 0.0

	for n := 0; n < len(x)+taps-1; n++ {
		for p := range annex2Phases {
			h := &annex2Phases[p]

			var y float64

			for k := 0; k < taps; k++ {
				idx := n - k
				if idx < 0 {
					break
				}

				if idx < len(x) {
					y += h[k] * x[idx]
				}
			}

			if y < 0 {
				y = -y
			}

			if y > peak {
				peak = y
			}
		}
	}

	return peak
}
