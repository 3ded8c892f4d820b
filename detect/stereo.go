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

// Stereo recovers the L-R difference signal from a broadcast-FM composite
// baseband by locking onto the 19kHz pilot, doubling it to reconstruct the
// 38kHz DSB-SC subcarrier, and coherently down-converting the composite
// signal against it.
type Stereo struct {
	pilot *filter.PilotDetector
}

// NewStereo builds a stereo separator for a composite signal at sampleRate,
// whose pilot tone is expected within toleranceHz of 19kHz.
func NewStereo(sampleRate uint, toleranceHz float64) *Stereo {
	return &Stereo{pilot: filter.NewPilotDetector(sampleRate, 19000, toleranceHz)}
}

// Separate demodulates the mono composite signal mpx, recovering the L-R
// difference into diff. It returns whether the pilot was locked over this
// block. mpx and diff must be the same length.
func (s *Stereo) Separate(mpx, diff []float32) bool {
	n := len(mpx)
	i := make([]float32, n)
	q := make([]float32, n)
	copy(i, mpx)
	copy(q, mpx)

	cos := make([]float32, n)
	sin := make([]float32, n)
	found := s.pilot.Process(i, q, cos, sin)

	for k := 0; k < n; k++ {
		// 38kHz subcarrier phase is double the 19kHz pilot phase:
		// sin(2x) = 2 sin(x) cos(x).
		c38 := 2 * cos[k] * sin[k]
		diff[k] = mpx[k] * c38 * 4
	}

	return found
}
