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

// Package resample implements integer-ratio decimators: an anti-alias
// filter (FIR for small ratios, FFT-overlap-save for large ones) followed
// by keeping every Nth sample.
package resample

import (
	"errors"
	"fmt"

	"sdrkit.dev/demod/filter"
)

// ErrInvalidRatio is returned when a decimator is constructed with a ratio
// less than 2.
var ErrInvalidRatio = errors.New("resample: ratio must be >= 2")

// fftFilterThreshold is the kernel length above which the FFT-based
// overlap-save filter amortizes its transform cost better than direct-form
// FIR convolution; below it the O(N*taps) FIR loop wins since there's no
// transform setup or block latency to pay for.
const fftFilterThreshold = 64

// newAntiAlias picks a FIR or FFT-overlap-save low-pass filter for a
// decimator's anti-alias stage, based on kernel length.
func newAntiAlias(kernel []float32) filter.Filter {
	if len(kernel) >= fftFilterThreshold {
		return filter.NewFFTFilter(kernel)
	}
	return filter.NewFIR(kernel)
}

// Real decimates a real-valued signal by an integer ratio, low-pass
// filtering first to avoid aliasing.
type Real struct {
	ratio  int
	lp     filter.Filter
	offset int
}

// NewReal builds a decimator that reduces sampleRate by ratio (>=2),
// low-pass filtering at sampleRate/(2*ratio) with an ntaps-tap windowed-
// sinc kernel.
func NewReal(sampleRate uint, ratio, ntaps int) (*Real, error) {
	if ratio < 2 {
		return nil, ErrInvalidRatio
	}
	corner := float64(sampleRate) / float64(2*ratio)
	kernel := filter.LowPassKernel(sampleRate, corner, ntaps, 1.0)
	return &Real{ratio: ratio, lp: newAntiAlias(kernel)}, nil
}

// Delay returns the decimator's group delay in input samples.
func (r *Real) Delay() int { return r.lp.Delay() }

// Decimate filters in and appends every ratio-th output sample to out,
// returning the extended slice.
func (r *Real) Decimate(in []float32, out []float32) []float32 {
	buf := make([]float32, len(in))
	copy(buf, in)
	r.lp.InPlace(buf)

	for n := range buf {
		if (r.offset+n)%r.ratio == 0 {
			out = append(out, buf[n])
		}
	}
	r.offset = (r.offset + len(buf)) % r.ratio
	return out
}

// Complex decimates a complex-valued (I/Q) signal by an integer ratio.
type Complex struct {
	ratio  int
	lpI    filter.Filter
	lpQ    filter.Filter
	offset int
}

// NewComplex builds a complex decimator analogous to NewReal, filtering
// each of I and Q with its own filter instance (so their histories don't
// interleave).
func NewComplex(sampleRate uint, ratio, ntaps int) (*Complex, error) {
	if ratio < 2 {
		return nil, ErrInvalidRatio
	}
	corner := float64(sampleRate) / float64(2*ratio)
	kernel := filter.LowPassKernel(sampleRate, corner, ntaps, 1.0)
	return &Complex{
		ratio: ratio,
		lpI:   newAntiAlias(kernel),
		lpQ:   newAntiAlias(append([]float32(nil), kernel...)),
	}, nil
}

// Delay returns the decimator's group delay in input samples.
func (c *Complex) Delay() int { return c.lpI.Delay() }

// Decimate filters i/q and appends every ratio-th output sample pair to
// outI/outQ, returning the extended slices.
func (c *Complex) Decimate(i, q []float32, outI, outQ []float32) ([]float32, []float32) {
	if len(i) != len(q) {
		panic(fmt.Sprintf("resample: i/q length mismatch: %d vs %d", len(i), len(q)))
	}

	bi := make([]float32, len(i))
	bq := make([]float32, len(q))
	copy(bi, i)
	copy(bq, q)
	c.lpI.InPlace(bi)
	c.lpQ.InPlace(bq)

	for n := range bi {
		if (c.offset+n)%c.ratio == 0 {
			outI = append(outI, bi[n])
			outQ = append(outQ, bq[n])
		}
	}
	c.offset = (c.offset + len(bi)) % c.ratio
	return outI, outQ
}
