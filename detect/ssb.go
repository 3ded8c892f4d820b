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

import "sdrkit.dev/demod/filter"

// SSB demodulates a single sideband by delaying I through the Hilbert
// filter's group delay and combining it with a Hilbert-shifted Q:
// (I_delayed + sign*Q_hilbert)/2, sign = -1 for USB, +1 for LSB.
type SSB struct {
	delay   *filter.Delay
	hilbert *filter.FIR
	sign    float32
}

// NewSSB builds an SSB demodulator. hilbertKernel must come from
// filter.HilbertKernel so Delay() lines up with the Delay filter's length.
func NewSSB(hilbertKernel []float32, upper bool) *SSB {
	h := filter.NewFIR(hilbertKernel)
	sign := float32(1)
	if upper {
		sign = -1
	}
	return &SSB{
		delay:   filter.NewDelay(h.Delay()),
		hilbert: h,
		sign:    sign,
	}
}

// Demodulate writes len(i) demodulated samples into out. q is consumed
// in place (Hilbert-filtered); i is not mutated.
func (s *SSB) Demodulate(i, q, out []float32) {
	delayed := make([]float32, len(i))
	copy(delayed, i)
	s.delay.InPlace(delayed)

	hilbertQ := make([]float32, len(q))
	copy(hilbertQ, q)
	s.hilbert.InPlace(hilbertQ)

	for n := range out {
		out[n] = (delayed[n] + s.sign*hilbertQ[n]) / 2
	}
}
