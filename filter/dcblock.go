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

// DCBlocker is a one-pole high-pass with its corner set so the equivalent
// time constant places -3dB at 0.5 Hz, removing DC offset without audibly
// coloring the passband.
type DCBlocker struct {
	a     float32
	prevX float32
	prevY float32
}

// NewDCBlocker builds a DC blocker for the given sample rate.
func NewDCBlocker(sampleRate uint) *DCBlocker {
	return &DCBlocker{a: OnePoleFromCorner(0.5, sampleRate)}
}

// Delay implements Filter.
func (d *DCBlocker) Delay() int { return 0 }

// Clone implements Filter.
func (d *DCBlocker) Clone() Filter { return &DCBlocker{a: d.a} }

// InPlace implements Filter: y[n] = x[n] - x[n-1] + a*y[n-1].
func (d *DCBlocker) InPlace(buf []float32) {
	x1, y1 := d.prevX, d.prevY
	for i, x0 := range buf {
		y0 := x0 - x1 + d.a*y1
		buf[i] = y0
		x1, y1 = x0, y0
	}
	d.prevX, d.prevY = x1, y1
}
