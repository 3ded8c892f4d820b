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

package buffer

// Ring is a fixed-capacity FIFO of float32 samples with two independent
// read cursors: a non-destructive "latest N" copy and a destructive FIFO
// consume. Overflowing Store silently drops the oldest samples.
type Ring struct {
	data     []float32
	cap      int
	write    int // next write position, mod cap
	avail    int // valid samples currently held, <= cap
	consumed int // samples logically consumed from the oldest end, <= avail
}

// NewRing allocates a ring of the given capacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		panic("buffer: ring capacity must be positive")
	}
	return &Ring{data: make([]float32, capacity), cap: capacity}
}

// Cap returns the ring's fixed capacity.
func (r *Ring) Cap() int { return r.cap }

// Available reports how many valid samples the ring currently holds.
func (r *Ring) Available() int { return r.avail }

// Pending reports how many stored-but-unconsumed samples remain for MoveTo.
func (r *Ring) Pending() int { return r.avail - r.consumed }

// Store appends xs to the ring. If xs is longer than the capacity, only the
// trailing Cap() samples are kept. On overflow, the write head wraps and the
// oldest samples are overwritten; unconsumed samples that get overwritten
// are dropped from Pending, and samples already consumed are never handed
// to MoveTo again.
func (r *Ring) Store(xs []float32) {
	if len(xs) > r.cap {
		xs = xs[len(xs)-r.cap:]
	}
	for _, x := range xs {
		r.data[r.write] = x
		r.write = (r.write + 1) % r.cap
	}
	pending := r.avail - r.consumed + len(xs)
	if pending > r.cap {
		pending = r.cap
	}
	r.avail += len(xs)
	if r.avail > r.cap {
		r.avail = r.cap
	}
	r.consumed = r.avail - pending
}

// CopyTo copies the latest min(len(dst), Available()) samples into dst,
// right-aligned: the most recently stored sample lands at dst[len(dst)-1].
// It does not touch the consume cursor.
func (r *Ring) CopyTo(dst []float32) int {
	n := len(dst)
	if n > r.avail {
		n = r.avail
	}
	// oldest-of-the-copied-range index, counting back from the write head.
	start := (r.write - n + r.cap*2) % r.cap
	off := len(dst) - n
	for i := 0; i < n; i++ {
		dst[off+i] = r.data[(start+i)%r.cap]
	}
	return n
}

// MoveTo consumes the oldest unconsumed samples into dst, in arrival order,
// advancing the consume cursor. It returns the number of samples copied,
// min(len(dst), Pending()).
func (r *Ring) MoveTo(dst []float32) int {
	n := len(dst)
	if p := r.Pending(); n > p {
		n = p
	}
	// oldest unconsumed sample sits `avail-consumed` behind the write head.
	start := (r.write - (r.avail - r.consumed) + r.cap*2) % r.cap
	for i := 0; i < n; i++ {
		dst[i] = r.data[(start+i)%r.cap]
	}
	r.consumed += n
	return n
}
