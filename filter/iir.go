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

// OnePole is a one-pole IIR low-pass in direct form: y[n] = (1-a)x[n] + a*y[n-1].
type OnePole struct {
	a     float32
	state float32
}

// NewOnePoleFromDecay builds a one-pole filter from a raw decay coefficient.
func NewOnePoleFromDecay(a float32) *OnePole { return &OnePole{a: a} }

// NewOnePoleFromTimeConstant builds a one-pole filter with the given time
// constant (seconds) at sampleRate.
func NewOnePoleFromTimeConstant(tau float64, sampleRate uint) *OnePole {
	return &OnePole{a: OnePoleFromTimeConstant(tau, sampleRate)}
}

// Delay implements Filter. A one-pole IIR has no fixed group delay at DC in
// the FIR sense; by convention it reports zero.
func (p *OnePole) Delay() int { return 0 }

// Clone implements Filter: same coefficient, zeroed state.
func (p *OnePole) Clone() Filter { return &OnePole{a: p.a} }

// InPlace implements Filter.
func (p *OnePole) InPlace(buf []float32) {
	y := p.state
	for i, x := range buf {
		y = (1-p.a)*x + p.a*y
		buf[i] = y
	}
	p.state = y
}

// PhaseShift reports the analytic phase response (radians) of this one-pole
// section at frequency f (Hz), sampled at sampleRate — used by the pilot
// detector to compensate for the filters it runs I/Q through.
func (p *OnePole) PhaseShift(f float64, sampleRate uint) float64 {
	w := 2 * math.Pi * f / float64(sampleRate)
	// H(e^jw) = (1-a) / (1 - a*e^-jw); phase = -atan2(a*sin(w), 1-a*cos(w))
	num := float64(p.a) * math.Sin(w)
	den := 1 - float64(p.a)*math.Cos(w)
	return -math.Atan2(num, den)
}

// Biquad is a Direct-Form-I second-order IIR section.
type Biquad struct {
	c      BiquadCoeffs
	x1, x2 float32
	y1, y2 float32
}

// NewBiquad builds a biquad with the given coefficients.
func NewBiquad(c BiquadCoeffs) *Biquad { return &Biquad{c: c} }

// Delay implements Filter; reported as zero (IIR, no fixed FIR-style delay).
func (b *Biquad) Delay() int { return 0 }

// Clone implements Filter: same coefficients, zeroed state.
func (b *Biquad) Clone() Filter { return &Biquad{c: b.c} }

// InPlace implements Filter.
func (b *Biquad) InPlace(buf []float32) {
	c := b.c
	x1, x2, y1, y2 := b.x1, b.x2, b.y1, b.y2
	for i, x0 := range buf {
		y0 := c.B0*x0 + c.B1*x1 + c.B2*x2 - c.A1*y1 - c.A2*y2
		x2, x1 = x1, x0
		y2, y1 = y1, y0
		buf[i] = y0
	}
	b.x1, b.x2, b.y1, b.y2 = x1, x2, y1, y2
}

// PhaseShift reports the analytic phase response (radians) of this section
// at frequency f (Hz) sampled at sampleRate.
func (b *Biquad) PhaseShift(f float64, sampleRate uint) float64 {
	w := 2 * math.Pi * f / float64(sampleRate)
	ejw := complex(math.Cos(w), -math.Sin(w))
	ej2w := ejw * ejw
	num := complex(float64(b.c.B0), 0) + complex(float64(b.c.B1), 0)*ejw + complex(float64(b.c.B2), 0)*ej2w
	den := complex(1, 0) + complex(float64(b.c.A1), 0)*ejw + complex(float64(b.c.A2), 0)*ej2w
	h := num / den
	return math.Atan2(imag(h), real(h))
}
