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

// NewDeEmphasis builds the broadcast-FM de-emphasis filter: a one-pole
// low-pass with corner 1/(2*pi*tau), tau being the regional time constant
// the caller passes (50us in most regions, 75us for US/Korea).
func NewDeEmphasis(tau float64, sampleRate uint) *OnePole {
	return NewOnePoleFromTimeConstant(tau, sampleRate)
}

// NewPreEmphasis builds the inverse high-shelf of NewDeEmphasis for the same
// time constant. Nothing in this module calls it; the test-signal generator
// applies no pre-emphasis.
func NewPreEmphasis(tau float64, sampleRate uint) *Biquad {
	return NewBiquad(PreEmphasisCoeffs(tau, sampleRate))
}
