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

import (
	"context"
	"sync"
)

// Push is a Source driven by an external producer calling PushSamples:
// pending reads are resolved first from leftover stored samples, then
// from each new push; if no reads are pending when a push arrives, the
// pushed samples are simply stored for the next read.
type Push struct {
	sampleRate uint

	pending *PendingRing

	mu      sync.Mutex
	storedI []float32
	storedQ []float32
	freqHz  int64
	closed  bool
}

// NewPush builds a push source at the given initial sample rate.
func NewPush(sampleRate uint) *Push {
	return &Push{sampleRate: sampleRate, pending: NewPendingRing(8)}
}

// SetSampleRate implements Source.
func (p *Push) SetSampleRate(ctx context.Context, r uint) (uint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sampleRate = r
	return r, nil
}

// SetCenterFrequency implements Source.
func (p *Push) SetCenterFrequency(ctx context.Context, f int64) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.freqHz = f
	return f, nil
}

// SetParameter implements Source; Push has no source-specific parameters.
func (p *Push) SetParameter(ctx context.Context, key string, value any) (any, error) {
	return nil, nil
}

// StartReceiving implements Source; Push has no background work to start.
func (p *Push) StartReceiving(ctx context.Context) error { return nil }

// ReadSamples implements Source.
func (p *Push) ReadSamples(ctx context.Context, n int) (Block, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return Block{}, ErrTransferCanceled
	}
	ch, err := p.pending.Add(n)
	if err != nil {
		p.mu.Unlock()
		return Block{}, err
	}
	p.drainLocked()
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return Block{}, ctx.Err()
	case res := <-ch:
		return res.block, res.err
	}
}

// PushSamples offers new I/Q data to the source: it first satisfies any
// pending reads from stored leftovers plus this push, then stores
// whatever remains unconsumed. freqHz, if non-nil, updates the block's
// reported center frequency for reads this push resolves.
func (p *Push) PushSamples(i, q []float32, freqHz *int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if freqHz != nil {
		p.freqHz = *freqHz
	}
	p.storedI = append(p.storedI, i...)
	p.storedQ = append(p.storedQ, q...)
	p.drainLocked()
}

// drainLocked resolves pending reads from storedI/storedQ while enough
// data is available. Caller must hold p.mu.
func (p *Push) drainLocked() {
	for {
		n, ok := p.pending.PeekLen()
		if !ok || len(p.storedI) < n {
			return
		}
		bi := append([]float32(nil), p.storedI[:n]...)
		bq := append([]float32(nil), p.storedQ[:n]...)
		p.storedI = p.storedI[n:]
		p.storedQ = p.storedQ[n:]
		p.pending.Resolve(Block{I: bi, Q: bq, FreqHz: p.freqHz})
	}
}

// Close implements Source.
func (p *Push) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.pending.Cancel()
	return nil
}
