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
	"math"

	"sdrkit.dev/demod/approx"
)

// PilotDetector detects and reconstructs a narrow-band carrier within
// tolerance Hz of target, such as the 19kHz broadcast-FM stereo pilot. It
// downshifts by target, low-passes both I and Q, normalizes to unit
// magnitude, estimates instantaneous frequency by the cross-product
// arctangent trick, smooths that estimate, and upshifts the reconstructed
// carrier back to target.
type PilotDetector struct {
	sampleRate uint
	target     float64
	tolerance  float64

	down *Shifter
	up   *Shifter
	lpI  *Biquad
	lpQ  *Biquad

	lastI, lastQ float32
	smooth       *OnePole
	locked       bool
}

// NewPilotDetector builds a detector for a carrier near target Hz, locking
// within +/- tolerance Hz, at sampleRate.
func NewPilotDetector(sampleRate uint, target, tolerance float64) *PilotDetector {
	corner := 100 * tolerance
	coeffs := LowPassBiquad(sampleRate, corner, 0.707)
	return &PilotDetector{
		sampleRate: sampleRate,
		target:     target,
		tolerance:  tolerance,
		down:       NewShifter(sampleRate, -target),
		up:         NewShifter(sampleRate, target),
		lpI:        NewBiquad(coeffs),
		lpQ:        NewBiquad(coeffs),
		smooth:     NewOnePoleFromDecay(0.995),
		lastI:      1,
		lastQ:      0,
	}
}

// Locked reports whether the most recently processed block ended locked.
func (p *PilotDetector) Locked() bool { return p.locked }

// Process downshifts, filters, and re-upconverts i/q, writing the
// reconstructed unit-magnitude carrier's cosine and sine into outCos and
// outSin (each must be len(i) long). It updates and returns the lock state.
func (p *PilotDetector) Process(i, q, outCos, outSin []float32) bool {
	n := len(i)
	di := make([]float32, n)
	dq := make([]float32, n)
	copy(di, i)
	copy(dq, q)

	p.down.ShiftInPlace(di, dq)
	p.lpI.InPlace(di)
	p.lpQ.InPlace(dq)

	toleranceRad := p.tolerance * 2 * math.Pi / float64(p.sampleRate)

	const noCarrierMag = 1e-6
	for n := range di {
		mag := float32(math.Sqrt(float64(di[n]*di[n] + dq[n]*dq[n])))
		if mag <= noCarrierMag {
			p.locked = false
			outCos[n], outSin[n] = 0, 0
			continue
		}

		ci, cq := di[n]/mag, dq[n]/mag
		speed := approx.Atan2f(cq*p.lastI-ci*p.lastQ, ci*p.lastI+cq*p.lastQ)
		p.lastI, p.lastQ = ci, cq

		smoothed := make([]float32, 1)
		smoothed[0] = speed
		p.smooth.InPlace(smoothed)
		p.locked = math.Abs(float64(smoothed[0])) <= toleranceRad

		outCos[n], outSin[n] = ci, cq
	}

	p.up.ShiftInPlace(outCos, outSin)
	// The upshift's phasor recursion drifts in magnitude; rescale each
	// reconstructed sample back onto the unit circle.
	for n := range outCos {
		if mag := math.Hypot(float64(outCos[n]), float64(outSin[n])); mag > 0 {
			outCos[n] = float32(float64(outCos[n]) / mag)
			outSin[n] = float32(float64(outSin[n]) / mag)
		}
	}
	return p.locked
}
