package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// State is the Direct Form I history of one section: the two previous
// inputs and the two previous outputs.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// Step advances st by one input sample and returns the new state and the
// output. It has no side effects.
func Step(c Coefficients, st State, x float64) (State, float64) {
	y := c.B0*x + c.B1*st.X1 + c.B2*st.X2 - c.A1*st.Y1 - c.A2*st.Y2

	return State{X1: x, X2: st.X1, Y1: y, Y2: st.Y1}, y
}

// Section is a single biquad filter with coefficients and the state of
// the one channel it filters. A Section must not be shared between
// channels or goroutines.
type Section struct {
	Coefficients

	st State
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// Process filters one input sample and returns the output.
func (s *Section) Process(x float64) float64 {
	var y float64

	s.st, y = Step(s.Coefficients, s.st, x)

	return y
}

// ProcessBlock filters a block of samples in-place.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	x1, x2, y1, y2 := s.st.X1, s.st.X2, s.st.Y1, s.st.Y2

	for i, x := range buf {
		y := b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2
		x2, x1 = x1, x
		y2, y1 = y1, y
		buf[i] = y
	}

	s.st = State{X1: x1, X2: x2, Y1: y1, Y2: y2}
}

// ProcessBuffer filters in into a newly allocated buffer. The input is not
// modified and the section state carries over to the next call.
func (s *Section) ProcessBuffer(in []float64) []float64 {
	out := append([]float64(nil), in...)
	s.ProcessBlock(out)

	return out
}

// Reset clears the filter history to zero.
func (s *Section) Reset() {
	s.st = State{}
}

// State returns the current filter history.
func (s *Section) State() State {
	return s.st
}

// SetState restores a previously saved filter history.
func (s *Section) SetState(st State) {
	s.st = st
}
