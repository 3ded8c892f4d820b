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

import "math"

// Shifter multiplies a complex I/Q stream by e^{j*2*pi*f*t/R} using phasor
// recursion (two multiplies per sample) rather than a trig call per
// sample. Running it with a constant, nonzero frequency for a long time
// without renormalizing will drift in amplitude; Renormalize restores unit
// magnitude.
type Shifter struct {
	sampleRate uint
	freq       float64
	cosStep    float32
	sinStep    float32
	cosPhase   float32
	sinPhase   float32
}

// NewShifter builds a frequency shifter for sampleRate, initially shifting
// by freq Hz.
func NewShifter(sampleRate uint, freq float64) *Shifter {
	s := &Shifter{sampleRate: sampleRate, cosPhase: 1, sinPhase: 0}
	s.SetFrequency(freq)
	return s
}

// SetFrequency changes the shift frequency without resetting phase.
func (s *Shifter) SetFrequency(freq float64) {
	s.freq = freq
	w := 2 * math.Pi * freq / float64(s.sampleRate)
	s.cosStep = float32(math.Cos(w))
	s.sinStep = float32(math.Sin(w))
}

// Renormalize rescales the running phasor back to unit magnitude, bounding
// the amplitude drift phasor recursion accumulates over long runs.
func (s *Shifter) Renormalize() {
	mag := float32(math.Sqrt(float64(s.cosPhase*s.cosPhase + s.sinPhase*s.sinPhase)))
	if mag > 0 {
		s.cosPhase /= mag
		s.sinPhase /= mag
	}
}

// ShiftInPlace multiplies the complex samples (i[n] + j*q[n]) by the
// running phasor, advancing it by one step per sample.
func (s *Shifter) ShiftInPlace(i, q []float32) {
	for n := range i {
		ci, cq := i[n], q[n]
		pc, ps := s.cosPhase, s.sinPhase
		i[n] = ci*pc - cq*ps
		q[n] = ci*ps + cq*pc

		s.cosPhase = pc*s.cosStep - ps*s.sinStep
		s.sinPhase = pc*s.sinStep + ps*s.cosStep
	}
}
