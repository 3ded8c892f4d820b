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

import (
	"sync"

	"sdrkit.dev/demod/mode"
)

// AudioSink consumes a demodulated audio block and the RF center frequency
// it was produced from.
type AudioSink func(audio mode.Audio, freqHz int64)

// Demodulator adapts a mode.Pipeline into a Receiver: every received I/Q
// block is demodulated and handed to an AudioSink, and a pilot-lock
// transition (as reported by a WBFM pipeline's Audio.Stereo field) fires
// an optional OnStereoChange callback exactly once per transition.
type Demodulator struct {
	mu             sync.Mutex
	pipeline       mode.Pipeline
	tunedHz        int64
	onAudio        AudioSink
	onStereoChange func(bool)
	lastStereo     bool
	stereoKnown    bool
}

// NewDemodulator wraps pipeline, delivering every demodulated block to
// onAudio. onAudio must not block for long, since it runs on the radio's
// read-transfer goroutine.
func NewDemodulator(pipeline mode.Pipeline, onAudio AudioSink) *Demodulator {
	return &Demodulator{pipeline: pipeline, onAudio: onAudio}
}

// OnStereoChange registers a callback fired whenever the pipeline's
// reported stereo-lock status changes, including the first block (so a
// subscriber always learns the initial status).
func (d *Demodulator) OnStereoChange(fn func(locked bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onStereoChange = fn
}

// SetSampleRate implements Receiver. The RF sample rate is whatever the
// radio negotiated; the pipeline's own audio rate was fixed at
// construction and does not change.
func (d *Demodulator) SetSampleRate(r uint) {}

// Receive implements Receiver: demodulates the block with a frequency
// offset of 0, so the signal demodulated is the one at the source's tuned
// frequency (the Demodulator has no offset setting), then delivers the
// result to onAudio.
func (d *Demodulator) Receive(i, q []float32, freqHz int64, data any) {
	d.mu.Lock()
	d.tunedHz = freqHz
	pipeline := d.pipeline
	sink := d.onAudio
	stereoCb := d.onStereoChange
	d.mu.Unlock()

	audio := pipeline.Demodulate(i, q, 0)

	if stereoCb != nil {
		d.mu.Lock()
		changed := !d.stereoKnown || audio.Stereo != d.lastStereo
		d.lastStereo = audio.Stereo
		d.stereoKnown = true
		d.mu.Unlock()
		if changed {
			stereoCb(audio.Stereo)
		}
	}

	if sink != nil {
		sink(audio, freqHz)
	}
}
