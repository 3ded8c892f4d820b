// {{{ Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2020
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE. }}}

package mode

// Audio is a block of demodulated audio: equal-length Left/Right arrays
// (Right is empty, or a copy of Left, for mono schemes), a Stereo flag
// (true only when a pilot lock was detected this block), and an SNR
// indicator (ratio of in-band to total power, clamped non-negative).
type Audio struct {
	Left, Right []float32
	Stereo      bool
	SNR         float64
}

// Pipeline is the uniform two-argument demodulator contract every scheme
// implements: given a block of I/Q samples captured with a known
// frequencyOffset (the signal of interest minus the tuned frequency, Hz),
// produce a block of demodulated audio.
type Pipeline interface {
	// Demodulate filters and demodulates i/q (which must be equal length)
	// and returns the resulting audio block.
	Demodulate(i, q []float32, frequencyOffset float64) Audio

	// Config returns the pipeline's capability-uniform parameter view.
	Config() *Config

	// AudioSampleRate returns the final audio sample rate this pipeline
	// produces.
	AudioSampleRate() uint
}

// power computes the mean squared magnitude of a real buffer.
func power(xs []float32) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v) * float64(v)
	}
	return sum / float64(len(xs))
}

// snr computes in-band power over total power, clamped to [0, +inf). This
// is a heuristic ordinal indicator, not a formal SNR estimate.
func snr(inBand, total []float32) float64 {
	totalPower := power(total)
	if totalPower <= 0 {
		return 0
	}
	ratio := power(inBand) / totalPower
	if ratio < 0 {
		return 0
	}
	return ratio
}
