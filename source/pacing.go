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
	"time"

	"sdrkit.dev/demod/buffer"
)

// Generator produces n arbitrary samples of I/Q instantaneously — an
// offline signal model with no notion of wall-clock pacing of its own.
type Generator func(n int) (i, q []float32)

// Pacing wraps a Generator and clocks it to wall time: on each tick it
// advances a virtual stream position and resolves any pending read whose
// requested size has become available, refilling its ring buffers from
// the generator as needed. This turns an "instant" offline generator into
// a realistic, rate-limited sample stream.
type Pacing struct {
	gen        Generator
	sampleRate uint

	pending *PendingRing

	mu          sync.Mutex
	ringI       *buffer.Ring
	ringQ       *buffer.Ring
	t0          time.Time
	started     bool
	curSample   int64
	freqHz      int64
	closed      bool
	tickStopped chan struct{}
}

// NewPacing builds a pacing source around gen, initially clocked at
// sampleRate. Ring capacity is max(65536, sampleRate/10).
func NewPacing(gen Generator, sampleRate uint) *Pacing {
	ringCap := int(sampleRate / 10)
	if ringCap < 65536 {
		ringCap = 65536
	}
	return &Pacing{
		gen:         gen,
		sampleRate:  sampleRate,
		pending:     NewPendingRing(8),
		ringI:       buffer.NewRing(ringCap),
		ringQ:       buffer.NewRing(ringCap),
		tickStopped: make(chan struct{}),
	}
}

// SetSampleRate implements Source.
func (p *Pacing) SetSampleRate(ctx context.Context, r uint) (uint, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sampleRate = r
	return r, nil
}

// SetCenterFrequency implements Source.
func (p *Pacing) SetCenterFrequency(ctx context.Context, f int64) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.freqHz = f
	return f, nil
}

// SetParameter implements Source; the generator-backed pacing source has
// no source-specific parameters, so every key is reported unsupported.
func (p *Pacing) SetParameter(ctx context.Context, key string, value any) (any, error) {
	return nil, nil
}

// StartReceiving implements Source and begins the wall-clock tick loop.
func (p *Pacing) StartReceiving(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return nil
	}
	p.started = true
	p.t0 = time.Now()
	p.mu.Unlock()

	go p.tickLoop(ctx)
	return nil
}

// tickLoop drives Tick on a steady sub-frame cadence until Close.
func (p *Pacing) tickLoop(ctx context.Context) {
	defer close(p.tickStopped)
	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick()
			p.mu.Lock()
			closed := p.closed
			p.mu.Unlock()
			if closed {
				return
			}
		}
	}
}

// Tick advances the virtual stream position to the current wall-clock
// time, stores the samples that have come due since the last tick in the
// ring buffers, and resolves any pending read that has become satisfiable. Exported so callers that prefer to
// drive their own scheduler (rather than the background goroutine
// StartReceiving launches) can call it directly.
func (p *Pacing) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	elapsed := time.Since(p.t0)
	target := int64(elapsed.Seconds() * float64(p.sampleRate))
	need := int(target - p.curSample)
	if need > 0 {
		i, q := p.gen(need)
		p.ringI.Store(i)
		p.ringQ.Store(q)
		p.curSample = target
	}

	for {
		n, ok := p.pending.PeekLen()
		if !ok {
			return
		}
		if p.ringI.Pending() < n {
			return
		}
		bi := make([]float32, n)
		bq := make([]float32, n)
		p.ringI.MoveTo(bi)
		p.ringQ.MoveTo(bq)
		p.pending.Resolve(Block{I: bi, Q: bq, FreqHz: p.freqHz})
	}
}

// ReadSamples implements Source.
func (p *Pacing) ReadSamples(ctx context.Context, n int) (Block, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return Block{}, ErrTransferCanceled
	}
	ch, err := p.pending.Add(n)
	p.mu.Unlock()
	if err != nil {
		return Block{}, err
	}
	select {
	case <-ctx.Done():
		return Block{}, ctx.Err()
	case res := <-ch:
		return res.block, res.err
	}
}

// Close implements Source.
func (p *Pacing) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.pending.Cancel()
	return nil
}
