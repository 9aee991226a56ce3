package core

// Float32To64 converts a float32 channel into a new float64 slice.
// Non-finite samples are replaced with 0; the second return value is the
// number of samples replaced.
func Float32To64(src []float32) ([]float64, int) {
	out := make([]float64, len(src))
	bad := 0

	for i, v := range src {
		x := float64(v)
		if !IsFinite(x) {
			bad++
			continue
		}

		out[i] = x
	}

	return out, bad
}

// Sanitize returns a copy of src with NaN and ±Inf replaced by 0, and the
// number of replaced samples. src is never modified.
func Sanitize(src []float64) ([]float64, int) {
	out := make([]float64, len(src))
	bad := 0

	for i, v := range src {
		if !IsFinite(v) {
			bad++
			continue
		}

		out[i] = v
	}

	return out, bad
}

// IsSilent reports whether every sample in every buffer is exactly zero.
func IsSilent(bufs ...[]float64) bool {
	for _, buf := range bufs {
		for _, v := range buf {
			if v != 0 {
				return false
			}
		}
	}

	return true
}

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
