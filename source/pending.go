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

package source

import "sync"

// pendingRead is one outstanding ReadSamples call: the requested length
// and the channel its result is delivered on.
type pendingRead struct {
	n      int
	result chan<- pendingResult
}

type pendingResult struct {
	block Block
	err   error
}

// PendingRing is a fixed-capacity FIFO queue of pending reads, shared by
// the pacing and push sources. Add enqueues a new pending read (failing
// synchronously with ErrTooManyReads if full); Resolve dequeues the
// oldest entry and delivers it a block; Cancel rejects every entry with
// ErrTransferCanceled.
type PendingRing struct {
	mu    sync.Mutex
	cap   int
	queue []pendingRead
}

// NewPendingRing builds a pending-read ring of the given capacity (both
// built-in sources use 8).
func NewPendingRing(capacity int) *PendingRing {
	return &PendingRing{cap: capacity}
}

// Add enqueues a read for n samples, returning a channel its result will
// be posted to exactly once. Fails with ErrTooManyReads if the ring is
// already at capacity.
func (r *PendingRing) Add(n int) (<-chan pendingResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) >= r.cap {
		return nil, ErrTooManyReads
	}

	ch := make(chan pendingResult, 1)
	r.queue = append(r.queue, pendingRead{n: n, result: ch})
	return ch, nil
}

// Len reports the number of reads currently pending.
func (r *PendingRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// PeekLen reports the length requested by the oldest pending read, or
// (0, false) if none are pending.
func (r *PendingRing) PeekLen() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return 0, false
	}
	return r.queue[0].n, true
}

// Resolve dequeues the oldest pending read (which must request exactly
// len(block.I) samples) and delivers it block.
func (r *PendingRing) Resolve(block Block) {
	r.mu.Lock()
	if len(r.queue) == 0 {
		r.mu.Unlock()
		return
	}
	head := r.queue[0]
	r.queue = r.queue[1:]
	r.mu.Unlock()

	head.result <- pendingResult{block: block}
}

// Cancel rejects every pending read with ErrTransferCanceled.
func (r *PendingRing) Cancel() {
	r.mu.Lock()
	queue := r.queue
	r.queue = nil
	r.mu.Unlock()

	for _, p := range queue {
		p.result <- pendingResult{err: ErrTransferCanceled}
	}
}
