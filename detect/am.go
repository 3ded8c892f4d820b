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

// Package detect implements the primitive per-sample demodulators (AM
// envelope, FM discriminator, SSB Hilbert combiner, stereo separator) that
// the per-scheme pipelines in package mode wire together.
package detect

import (
	"math"

	"sdrkit.dev/demod/filter"
)

// AM is a DC-free AM envelope detector: for each sample it computes the
// envelope magnitude, tracks carrier amplitude with a half-second time
// constant one-pole smoother, and outputs r/carrier - 1.
type AM struct {
	carrier *filter.OnePole
}

// NewAM builds an AM envelope detector for sampleRate.
func NewAM(sampleRate uint) *AM {
	return &AM{carrier: filter.NewOnePoleFromTimeConstant(0.5, sampleRate)}
}

// Demodulate computes the envelope detector output for the complex input
// i+jq, writing len(i) samples into out.
func (a *AM) Demodulate(i, q, out []float32) {
	env := make([]float32, len(i))
	for n := range i {
		env[n] = float32(math.Sqrt(float64(i[n]*i[n] + q[n]*q[n])))
	}

	carrier := make([]float32, len(env))
	copy(carrier, env)
	a.carrier.InPlace(carrier)

	for n := range out {
		if carrier[n] == 0 {
			out[n] = 0
			continue
		}
		out[n] = env[n]/carrier[n] - 1
	}
}
