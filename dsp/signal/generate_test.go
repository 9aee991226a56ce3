package signal

import (
	"errors"
	"math"
	"testing"
)

func TestSineDBFSPeak(t *testing.T) {
	g := NewGenerator(48000)

	s, err := g.SineDBFS(1000, -6, 4800)
	if err != nil {
		t.Fatalf("SineDBFS error: %v", err)
	}

	peak := 0.0
	for _, v := range s {
		peak = math.Max(peak, math.Abs(v))
	}

	want := math.Pow(10, -6.0/20)
	if math.Abs(peak-want) > 1e-3 {
		t.Fatalf("peak = %v, want %v", peak, want)
	}
}

func TestSineRejectsBadArgs(t *testing.T) {
	g := NewGenerator(48000)
	if _, err := g.Sine(1000, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := g.Sine(30000, 1, 10); err == nil {
		t.Fatal("expected error above Nyquist")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	a, _ := NewGenerator(48000, WithSeed(7)).WhiteNoise(1, 64)
	b, _ := NewGenerator(48000, WithSeed(7)).WhiteNoise(1, 64)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at %d", i)
		}
	}
}

func TestWhiteNoiseRMSLevel(t *testing.T) {
	n, err := NewGenerator(48000).WhiteNoiseRMS(-20, 480000)
	if err != nil {
		t.Fatalf("WhiteNoiseRMS error: %v", err)
	}

	sum := 0.0
	for _, v := range n {
		sum += v * v
	}

	rmsDB := 10 * math.Log10(sum/float64(len(n)))
	if math.Abs(rmsDB+20) > 0.1 {
		t.Fatalf("rms = %.3f dBFS, want -20", rmsDB)
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{0.1, -0.5, 0.25}, 1)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if math.Abs(out[1]+1) > 1e-12 {
		t.Fatalf("out[1] = %v, want -1", out[1])
	}
}

func TestStereoValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Stereo
		want error
	}{
		{name: "ok", s: Stereo{Left: []float32{0}, Right: []float32{0}, SampleRate: 48000}},
		{name: "empty", s: Stereo{SampleRate: 48000}, want: ErrEmptySignal},
		{name: "mismatch", s: Stereo{Left: []float32{0}, Right: []float32{0, 0}, SampleRate: 48000}, want: ErrChannelMismatch},
		{name: "rate", s: Stereo{Left: []float32{0}, Right: []float32{0}}, want: ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromMonoDuplicates(t *testing.T) {
	s, err := FromMono([]float32{0.5, -0.5}, 44100)
	if err != nil {
		t.Fatalf("FromMono error: %v", err)
	}
	if s.Left[1] != s.Right[1] || s.Len() != 2 {
		t.Fatalf("unexpected stereo %+v", s)
	}
}

func TestFloat64ReplacesNonFinite(t *testing.T) {
	s := Stereo{
		Left:       []float32{float32(math.Inf(1)), 0.5},
		Right:      []float32{0.25, float32(math.NaN())},
		SampleRate: 48000,
	}

	l, r, bad := s.Float64()
	if bad != 2 {
		t.Fatalf("replaced = %d, want 2", bad)
	}
	if l[0] != 0 || r[1] != 0 || l[1] != 0.5 || r[0] != 0.25 {
		t.Fatalf("unexpected channels %v %v", l, r)
	}
}

func TestDuration(t *testing.T) {
	s := Stereo{Left: make([]float32, 48000), Right: make([]float32, 48000), SampleRate: 48000}
	if s.Duration().Seconds() != 1 {
		t.Fatalf("duration = %v, want 1s", s.Duration())
	}
}
