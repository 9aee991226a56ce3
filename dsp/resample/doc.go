// Package resample provides integer-factor oversampling using a polyphase
// Kaiser-windowed sinc interpolator. It backs the windowed-sinc true-peak
// interpolator in measure/truepeak.
//
// Quality modes:
//
//	mode            taps/phase   nominal stopband
//	QualityFast     16           ~55 dB
//	QualityBalanced 32           ~75 dB
//	QualityBest     64           ~90 dB
package resample
