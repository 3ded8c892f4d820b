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

package receiver

// Counter counts samples received and emits a sample-click callback
// ticksPerSecond times per second of sample-rate-relative time, tolerant
// of sample-rate changes (its count and threshold reset together so a
// rate change never produces a burst of stale ticks).
type Counter struct {
	sampleRate     uint
	ticksPerSecond uint
	count          uint64
	ticks          uint64
	onTick         func()
}

// NewCounter builds a sample counter emitting ticksPerSecond clicks per
// second of received samples at the set sample rate, invoking onTick for
// each one.
func NewCounter(ticksPerSecond uint, onTick func()) *Counter {
	return &Counter{ticksPerSecond: ticksPerSecond, onTick: onTick}
}

// SetSampleRate implements Receiver, resetting the count/tick state so a
// rate change never fires a burst of stale ticks.
func (c *Counter) SetSampleRate(r uint) {
	c.sampleRate = r
	c.count = 0
	c.ticks = 0
}

// Receive implements Receiver.
func (c *Counter) Receive(i, q []float32, freqHz int64, data any) {
	if c.sampleRate == 0 || c.ticksPerSecond == 0 {
		return
	}
	c.count += uint64(len(i))
	threshold := uint64(c.sampleRate / c.ticksPerSecond)
	if threshold == 0 {
		return
	}
	newTicks := c.count / threshold
	for c.ticks < newTicks {
		c.ticks++
		if c.onTick != nil {
			c.onTick()
		}
	}
}
