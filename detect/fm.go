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

package detect

import (
	"math"

	"sdrkit.dev/demod/approx"
)

// FM is a quadrature (phase-difference) FM discriminator: it computes
// s[n]*conj(s[n-1]) sample by sample, then takes the phase of that product,
// scaled by maxDeviation.
type FM struct {
	scale        float32 // sampleRate / (2*pi*maxDeviation)
	lastI, lastQ float32
	primed       bool
}

// NewFM builds an FM discriminator at sampleRate whose output is normalized
// so that a deviation of maxDeviation Hz maps to +/-1.
func NewFM(sampleRate uint, maxDeviation float64) *FM {
	return &FM{scale: float32(float64(sampleRate) / (2 * math.Pi * maxDeviation))}
}

// Demodulate writes len(i) discriminated samples into out.
func (f *FM) Demodulate(i, q, out []float32) {
	if !f.primed && len(i) > 0 {
		f.lastI, f.lastQ = i[0], q[0]
		f.primed = true
	}

	for n := range i {
		ci, cq := i[n], q[n]
		prodI := f.lastI*ci + f.lastQ*cq
		prodQ := f.lastI*cq - ci*f.lastQ
		phase := approx.Atan2f(prodQ, prodI)
		out[n] = phase * f.scale
		f.lastI, f.lastQ = ci, cq
	}
	if len(out) > 1 {
		out[0] = out[1]
	}
}
