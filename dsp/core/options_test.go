package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(44100), nil)
	if cfg.SampleRate != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", cfg.SampleRate)
	}

	cfg = ApplyProcessorOptions(WithSampleRate(-1))
	if cfg.SampleRate != 48000 {
		t.Fatalf("invalid sample rate should be ignored, got %v", cfg.SampleRate)
	}
}
