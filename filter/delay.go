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

// Delay is an integer-sample delay line backed by a short ring.
type Delay struct {
	ring []float32
	pos  int
	d    int
}

// NewDelay builds a delay line of d samples (d may be zero).
func NewDelay(d int) *Delay {
	if d <= 0 {
		return &Delay{d: 0}
	}
	return &Delay{ring: make([]float32, d), d: d}
}

// Delay implements Filter.
func (d *Delay) Delay() int { return d.d }

// Clone implements Filter.
func (d *Delay) Clone() Filter { return NewDelay(d.d) }

// InPlace implements Filter.
func (d *Delay) InPlace(buf []float32) {
	if d.d == 0 {
		return
	}
	for i := range buf {
		out := d.ring[d.pos]
		d.ring[d.pos] = buf[i]
		d.pos = (d.pos + 1) % d.d
		buf[i] = out
	}
}

// FractionalDelay delays by a non-integer number of samples using linear
// interpolation between the two nearest integer-delayed samples. It wraps
// a Delay of int(delay) samples (the integer part, rounded down) and blends
// in the sample one step older by the fractional remainder.
type FractionalDelay struct {
	whole *Delay
	frac  float32
	prev  float32
}

// NewFractionalDelay builds a fractional-sample delay line. delay must be
// non-negative.
func NewFractionalDelay(delay float64) *FractionalDelay {
	whole := int(delay)
	frac := float32(delay - float64(whole))
	return &FractionalDelay{whole: NewDelay(whole), frac: frac}
}

// Delay implements Filter, rounded down to the integer part (the fractional
// remainder does not add a further full-sample delay).
func (fd *FractionalDelay) Delay() int { return fd.whole.Delay() }

// Clone implements Filter.
func (fd *FractionalDelay) Clone() Filter {
	return &FractionalDelay{whole: fd.whole.Clone().(*Delay), frac: fd.frac}
}

// InPlace implements Filter.
func (fd *FractionalDelay) InPlace(buf []float32) {
	fd.whole.InPlace(buf)
	for i := range buf {
		cur := buf[i]
		buf[i] = cur + fd.frac*(fd.prev-cur)
		fd.prev = cur
	}
}
