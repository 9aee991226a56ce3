// Package window generates the cosine-sum analysis windows used for STFT
// framing: Rectangular, Hann, Hamming and Blackman, in symmetric or periodic
// form.
package window
