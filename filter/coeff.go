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

// Package filter provides the coefficient formulas and the filter
// implementations (FIR, FFT-overlap-save FIR, one-pole/biquad IIR, delay,
// DC blocker, AGC, frequency shifter, pre/de-emphasis, pilot detector) that
// sit on top of them.
package filter

import "math"

// hamming returns the Hamming window value at index i of an N-length window.
func hamming(i, n int) float64 {
	return 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}

// LowPassKernel returns a Hamming-windowed sinc low-pass kernel of odd
// length n, sample rate sampleRate, cutoff f, normalized to unit DC gain
// and then scaled by gain.
func LowPassKernel(sampleRate uint, f float64, n int, gain float64) []float32 {
	if n%2 == 0 {
		n++
	}
	mid := (n - 1) / 2
	fc := f / float64(sampleRate)

	h := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		x := float64(i - mid)
		v := 2 * fc * sinc(2*fc*x) * hamming(i, n)
		h[i] = v
		sum += v
	}

	kernel := make([]float32, n)
	if sum == 0 {
		sum = 1
	}
	for i := range h {
		kernel[i] = float32(h[i] / sum * gain)
	}
	return kernel
}

// HilbertKernel returns an odd-length-n Hilbert transformer kernel: zero at
// even offsets from center, 2/(pi*k) Hamming-windowed at odd offsets k.
func HilbertKernel(n int) []float32 {
	if n%2 == 0 {
		n++
	}
	mid := (n - 1) / 2
	kernel := make([]float32, n)
	for i := 0; i < n; i++ {
		k := i - mid
		if k%2 == 0 {
			kernel[i] = 0
			continue
		}
		kernel[i] = float32(2 / (math.Pi * float64(k)) * hamming(i, n))
	}
	return kernel
}

// OnePoleFromTimeConstant returns the decay coefficient `a` of a one-pole
// low-pass whose step response has time constant tau seconds at the given
// sample rate: y[n] = (1-a)*x[n] + a*y[n-1].
func OnePoleFromTimeConstant(tau float64, sampleRate uint) float32 {
	return float32(math.Exp(-1 / (tau * float64(sampleRate))))
}

// OnePoleFromCorner returns the decay coefficient `a` of a one-pole low-pass
// with -3dB corner frequency f (Hz) at sampleRate.
func OnePoleFromCorner(f float64, sampleRate uint) float32 {
	tau := 1 / (2 * math.Pi * f)
	return OnePoleFromTimeConstant(tau, sampleRate)
}

// OnePoleLowPassBilinear derives (b0, b1, a1) for a first-order low-pass
// with corner f at sampleRate via the bilinear transform of the analog
// prototype 1/(1+s/w0): y[n] = b0*x[n] + b1*x[n-1] - a1*y[n-1].
func OnePoleLowPassBilinear(sampleRate uint, f float64) (b0, b1, a1 float32) {
	k := math.Tan(math.Pi * f / float64(sampleRate))
	return float32(k / (k + 1)), float32(k / (k + 1)), float32((k - 1) / (k + 1))
}

// BiquadCoeffs are the normalized (a0==1) Direct-Form-I coefficients of a
// second-order section: y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2].
type BiquadCoeffs struct {
	B0, B1, B2 float32
	A1, A2     float32
}

// LowPassBiquad computes the standard Audio EQ Cookbook second-order
// low-pass section with corner f and quality factor q at sampleRate.
func LowPassBiquad(sampleRate uint, f, q float64) BiquadCoeffs {
	w0 := 2 * math.Pi * f / float64(sampleRate)
	cosw0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b0 := (1 - cosw0) / 2
	b1 := 1 - cosw0
	b2 := (1 - cosw0) / 2
	a0 := 1 + alpha
	a1 := -2 * cosw0
	a2 := 1 - alpha

	return BiquadCoeffs{
		B0: float32(b0 / a0),
		B1: float32(b1 / a0),
		B2: float32(b2 / a0),
		A1: float32(a1 / a0),
		A2: float32(a2 / a0),
	}
}

// PreEmphasisCoeffs computes a one-zero/one-pole shelving filter boosting
// frequencies above 1/(2*pi*tau) with a fixed high-frequency pole at digital
// angular frequency 0.9*pi to bound the gain near Nyquist, the inverse of
// the de-emphasis corner used on receive.
func PreEmphasisCoeffs(tau float64, sampleRate uint) BiquadCoeffs {
	zero := OnePoleFromTimeConstant(tau, sampleRate) // de-emphasis corner, reused as the zero location
	shelfPole := float32(math.Cos(0.9 * math.Pi))

	return BiquadCoeffs{
		B0: 1,
		B1: -zero,
		B2: 0,
		A1: -shelfPole,
		A2: 0,
	}
}
