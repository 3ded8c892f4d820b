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

// AGC is a slow envelope-tracking automatic gain control: a peak-decay
// tracker with a hold window of one second, divided into the signal and
// bounded by MaxGain. Attack is immediate — a sample exceeding 0.9 of the
// tracked peak power resets the hold countdown — release is a one-pole
// decay.
type AGC struct {
	MaxGain float32

	peak    float32
	hold    int
	holdLen int
	release float32
}

// NewAGC builds an AGC for sampleRate with the given max gain.
func NewAGC(sampleRate uint, maxGain float32) *AGC {
	return &AGC{
		MaxGain: maxGain,
		holdLen: int(sampleRate),
		release: OnePoleFromCorner(1.0, sampleRate),
	}
}

// Delay implements Filter.
func (a *AGC) Delay() int { return 0 }

// Clone implements Filter.
func (a *AGC) Clone() Filter {
	return &AGC{MaxGain: a.MaxGain, holdLen: a.holdLen, release: a.release}
}

// InPlace implements Filter.
func (a *AGC) InPlace(buf []float32) {
	for i, x := range buf {
		power := x * x
		if power > 0.9*a.peak {
			a.peak = power
			a.hold = a.holdLen
		} else if a.hold > 0 {
			a.hold--
		} else {
			a.peak = a.release*a.peak + (1-a.release)*power
		}

		env := float32(math.Sqrt(float64(a.peak)))
		gain := a.MaxGain
		if env > 1e-9 {
			g := 1 / env
			if g < gain {
				gain = g
			}
		}
		buf[i] = x * gain
	}
}
