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

// Package receiver implements the sample-receiver side of the radio: the
// sink contract every receiver satisfies, a fanout composite, a
// periodic-tick sample counter, an FFT-backed spectrum receiver, and a
// Demodulator that adapts package mode's pipelines (package radio wires
// its stereo-lock changes to events). The demodulator is the usual
// receiver, but these ancillary receivers can be composed alongside it.
package receiver

// Receiver is the sample-sink contract the radio drives: SetSampleRate is
// called at stream start and on any sample-rate change; Receive is called
// once per block. Implementations must not retain I/Q slice references
// beyond the call; blocks are handed over by reference, not copied.
type Receiver interface {
	SetSampleRate(r uint)
	Receive(i, q []float32, freqHz int64, data any)
}
