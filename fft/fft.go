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

// Package fft implements an in-place radix-2 decimation-in-time complex FFT
// with precomputed twiddle factors and bit-reversal permutation, plus an
// optional pointwise window applied before the forward transform.
package fft

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrNotPowerOfTwo is returned when a transform is asked to run against a
// buffer whose length does not match the FFT's configured length.
var ErrNotPowerOfTwo = errors.New("fft: length must be a power of two")

// MinLength is the smallest transform length supported.
const MinLength = 4

// OfLength rounds n up to the next power of two, with a floor of MinLength.
func OfLength(n int) int {
	if n <= MinLength {
		return MinLength
	}
	p := MinLength
	for p < n {
		p <<= 1
	}
	return p
}

// FFT holds precomputed twiddle factors and a bit-reversal permutation for
// transforms of a fixed length.
type FFT struct {
	n        int
	bits     int
	twiddles [][]complex128 // per-stage twiddle factors
	bitrev   []int
	window   []float32
}

// New builds an FFT plan for exactly n points. n must be a power of two of
// at least MinLength.
func New(n int) (*FFT, error) {
	if n < MinLength || n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}
	bits := 0
	for (1 << bits) < n {
		bits++
	}

	f := &FFT{n: n, bits: bits}
	f.bitrev = make([]int, n)
	for i := 0; i < n; i++ {
		f.bitrev[i] = reverseBits(i, bits)
	}

	f.twiddles = make([][]complex128, bits)
	for stage := 0; stage < bits; stage++ {
		m := 1 << (stage + 1)
		half := m / 2
		tw := make([]complex128, half)
		for j := 0; j < half; j++ {
			theta := -2 * math.Pi * float64(j) / float64(m)
			tw[j] = cmplx.Exp(complex(0, theta))
		}
		f.twiddles[stage] = tw
	}
	return f, nil
}

// NewOfLength is New(OfLength(n)).
func NewOfLength(n int) (*FFT, error) {
	return New(OfLength(n))
}

// Len returns the configured transform length.
func (f *FFT) Len() int { return f.n }

func reverseBits(x, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// SetWindow installs a real-valued pointwise window that scales each complex
// input sample before every Forward call. Pass nil to clear it. Length must equal
// the FFT's length.
func (f *FFT) SetWindow(w []float32) error {
	if w != nil && len(w) != f.n {
		return ErrNotPowerOfTwo
	}
	f.window = w
	return nil
}

// Forward transforms buf in place, dividing the result by N so that the
// sum of output magnitudes equals the DC input. If a window has been set it
// is applied (as a real-valued pointwise multiply) before transforming.
func (f *FFT) Forward(buf []complex64) error {
	if len(buf) != f.n {
		return ErrNotPowerOfTwo
	}
	if f.window != nil {
		for i := range buf {
			buf[i] *= complex(f.window[i], 0)
		}
	}
	f.transform(buf, false)
	scale := complex64(complex(1/float32(f.n), 0))
	for i := range buf {
		buf[i] *= scale
	}
	return nil
}

// Inverse transforms buf in place, unscaled. Forward already applied the
// 1/N scaling, so Forward followed by Inverse returns the original input.
func (f *FFT) Inverse(buf []complex64) error {
	if len(buf) != f.n {
		return ErrNotPowerOfTwo
	}
	f.transform(buf, true)
	return nil
}

// transform runs the iterative Cooley-Tukey DIT butterfly network in place.
func (f *FFT) transform(buf []complex64, inverse bool) {
	n := f.n
	for i := 0; i < n; i++ {
		j := f.bitrev[i]
		if j > i {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}

	for stage := 0; stage < f.bits; stage++ {
		m := 1 << (stage + 1)
		half := m / 2
		tw := f.twiddles[stage]
		for start := 0; start < n; start += m {
			for j := 0; j < half; j++ {
				w := tw[j]
				if inverse {
					w = cmplx.Conj(w)
				}
				even := complex128(buf[start+j])
				odd := complex128(buf[start+j+half]) * w
				buf[start+j] = complex64(even + odd)
				buf[start+j+half] = complex64(even - odd)
			}
		}
	}
}
