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

// Package buffer provides reusable sample-array scaffolding: a fixed-size
// pool of growable float32 buffers and a ring buffer with independent
// latest-N and FIFO-consume read semantics.
package buffer

// Pool hands out reusable []float32 buffers so hot paths in the DSP kernel
// don't allocate per block. A buffer returned by Get is only valid until
// the next call to Get on the same slot; callers that need to retain data
// must copy it.
type Pool struct {
	slots [][]float32
	next  int
}

// NewPool preallocates n slots of the given initial size.
func NewPool(n, initialSize int) *Pool {
	slots := make([][]float32, n)
	for i := range slots {
		slots[i] = make([]float32, initialSize)
	}
	return &Pool{slots: slots}
}

// Get returns the next pool slot sized to exactly length. If the slot's
// backing array is smaller than length it is grown; if larger, a sub-view
// of length elements is returned instead of reallocating.
func (p *Pool) Get(length int) []float32 {
	idx := p.next
	p.next = (p.next + 1) % len(p.slots)

	slot := p.slots[idx]
	if cap(slot) < length {
		slot = make([]float32, length)
	} else {
		slot = slot[:length]
	}
	p.slots[idx] = slot
	return slot
}
