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

package filter

import (
	"sdrkit.dev/demod/buffer"
	"sdrkit.dev/demod/fft"
)

// FFTFilter computes the same transfer function as an equivalent FIR, via
// overlap-save: an input ring of transform length L = OfLength(2*N) is
// kept topped up with the latest L samples (buffer.Ring's Store already
// retains "latest wins" semantics), and every time L-(N-1) new samples have
// landed, the window is transformed, multiplied by the precomputed kernel
// spectrum, inverse-transformed, and the valid L-(N-1) tail is published to
// an output ring the caller drains via InPlace.
type FFTFilter struct {
	kernelLen int
	l         int
	f         *fft.FFT
	spectrum  []complex64

	input        *buffer.Ring
	sinceLastRun int

	output *buffer.Ring
}

// NewFFTFilter builds an overlap-save filter equivalent to NewFIR(kernel).
func NewFFTFilter(kernel []float32) *FFTFilter {
	n := len(kernel)
	l := fft.OfLength(2 * n)
	f, err := fft.New(l)
	if err != nil {
		panic(err) // OfLength always returns a valid power of two
	}

	// Kernel spectrum: right-zero-padded copy of the kernel (no reversal
	// needed because buffer.Ring.CopyTo is right-aligned — the newest
	// sample lands at the high index of the window, so k-delay taps align
	// directly with Kpad[k] = kernel[k] for k < N, 0 otherwise).
	padded := make([]complex64, l)
	for i, v := range kernel {
		padded[i] = complex(v, 0)
	}
	if err := f.Forward(padded); err != nil {
		panic(err)
	}

	return &FFTFilter{
		kernelLen: n,
		l:         l,
		f:         f,
		spectrum:  padded,
		input:     buffer.NewRing(l),
		output:    buffer.NewRing(l * 4),
	}
}

// Delay implements Filter: L - (N-1)/2 samples.
func (ff *FFTFilter) Delay() int {
	return ff.l - (ff.kernelLen-1)/2
}

// Clone implements Filter.
func (ff *FFTFilter) Clone() Filter {
	return &FFTFilter{
		kernelLen: ff.kernelLen,
		l:         ff.l,
		f:         ff.f,
		spectrum:  ff.spectrum,
		input:     buffer.NewRing(ff.l),
		output:    buffer.NewRing(ff.l * 4),
	}
}

// InPlace implements Filter. Output lags input by Delay() samples; the
// leading edge of the output stream is zeros while the first block fills.
func (ff *FFTFilter) InPlace(buf []float32) {
	step := ff.l - (ff.kernelLen - 1)
	if ff.output.Available() == 0 {
		// Prime the output with one block of zeros so every input sample has
		// an output sample ready to replace it.
		ff.output.Store(make([]float32, step))
	}

	for i := range buf {
		ff.input.Store(buf[i : i+1])
		ff.sinceLastRun++
		if ff.sinceLastRun == step {
			ff.runBlock(step)
			ff.sinceLastRun = 0
		}
		ff.output.MoveTo(buf[i : i+1])
	}
}

func (ff *FFTFilter) runBlock(step int) {
	window := make([]complex64, ff.l)
	samples := make([]float32, ff.l)
	ff.input.CopyTo(samples)
	for i, v := range samples {
		window[i] = complex(v, 0)
	}

	_ = ff.f.Forward(window)
	for i := range window {
		window[i] *= ff.spectrum[i]
	}
	_ = ff.f.Inverse(window)

	tail := make([]float32, step)
	validStart := ff.l - step
	for i := 0; i < step; i++ {
		// Forward scales both the window and the kernel spectrum by 1/L, and
		// the unscaled Inverse undoes only one of those factors; rescale by L
		// to recover the convolution magnitude.
		tail[i] = float32(real(window[validStart+i])) * float32(ff.l)
	}
	ff.output.Store(tail)
}
