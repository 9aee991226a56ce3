package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns H(e^jw) at freqHz for sampleRate.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Exp(complex(0, -2*math.Pi*freqHz/sampleRate))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeSquared returns |H(f)|² in closed form, without complex
// arithmetic.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)

	num := (c.B0-c.B2)*(c.B0-c.B2) + c.B1*c.B1 + (c.B1*(c.B0+c.B2)+c.B0*c.B2*cw)*cw
	den := (1-c.A2)*(1-c.A2) + c.A1*c.A1 + (c.A1*(c.A2+1)+c.A2*cw)*cw

	return num / den
}

// MagnitudeDB returns the section gain at freqHz in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// MagnitudeDB returns the cascade gain at freqHz in dB: the chain gain
// plus the sum of the section gains.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 20 * math.Log10(math.Abs(c.gain))
	for i := range c.sections {
		db += c.sections[i].MagnitudeDB(freqHz, sampleRate)
	}

	return db
}
