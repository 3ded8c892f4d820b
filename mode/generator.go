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

// Package mode wires the DSP primitives in detect, filter, fft, and
// resample into complete per-scheme demodulator pipelines (WBFM, NBFM, AM,
// SSB, CW) behind a uniform Pipeline interface, plus a registry for
// looking pipelines up by name.
package mode

import "math"

const tau = math.Pi * 2

// ToneGenerator synthesizes a complex baseband carrier, phase-modulated by
// an audio stream, sample by sample. It exists only as a test-signal
// source for this package's own round-trip fixtures (AM/FM/SSB/CW), not as
// a transmit path: this library only demodulates.
//
// There is no phasor recursion: the generator tracks an absolute time
// offset in samples and evaluates the carrier phase fresh each sample with
// math.Cos/math.Sin as cos(tau*carrier*now + beta*audio), generalized from
// FM-only phase
// modulation to plain carrier synthesis with an arbitrary per-sample phase
// offset.
type ToneGenerator struct {
	sampleRate uint
	carrier    float64
	timeOffset uint64
	phaseAccum float64
}

// NewToneGenerator builds a generator of a carrier at carrierHz, sampled
// at sampleRate.
func NewToneGenerator(sampleRate uint, carrierHz float64) *ToneGenerator {
	return &ToneGenerator{sampleRate: sampleRate, carrier: carrierHz}
}

// Carrier fills i/q with a plain, unmodulated carrier tone.
func (g *ToneGenerator) Carrier(i, q []float32) {
	g.PhaseModulated(i, q, nil, 0)
}

// PhaseModulated fills i/q with the carrier, phase-modulated sample by
// sample by beta*audio[n] radians (audio may be nil, or shorter than i/q,
// in which case the remaining samples get zero deviation).
func (g *ToneGenerator) PhaseModulated(i, q []float32, audio []float32, beta float64) {
	for n := range i {
		now := float64(g.timeOffset) / float64(g.sampleRate)
		var dev float64
		if n < len(audio) {
			dev = beta * float64(audio[n])
		}
		phase := tau*g.carrier*now + dev
		i[n] = float32(math.Cos(phase))
		q[n] = float32(math.Sin(phase))
		g.timeOffset++
	}
}

// AmplitudeModulated fills i/q with a carrier amplitude-modulated by
// 1+depth*audio[n] (standard double-sideband AM, matching detect.AM's
// r/carrier-1 envelope-recovery convention).
func (g *ToneGenerator) AmplitudeModulated(i, q []float32, audio []float32, depth float64) {
	for n := range i {
		now := float64(g.timeOffset) / float64(g.sampleRate)
		env := 1.0
		if n < len(audio) {
			env = 1 + depth*float64(audio[n])
		}
		phase := tau * g.carrier * now
		i[n] = float32(env * math.Cos(phase))
		q[n] = float32(env * math.Sin(phase))
		g.timeOffset++
	}
}

// FrequencyModulated fills i/q with the carrier, frequency-modulated by
// audio: unlike PhaseModulated, the instantaneous frequency (carrier +
// deviationHz*audio[n]) is integrated sample by sample into a running
// phase, rather than added to it directly, so a constant audio[n]
// produces a steadily advancing phase instead of a fixed offset.
func (g *ToneGenerator) FrequencyModulated(i, q []float32, audio []float32, deviationHz float64) {
	for n := range i {
		var a float64
		if n < len(audio) {
			a = float64(audio[n])
		}
		freq := g.carrier + deviationHz*a
		g.phaseAccum += tau * freq / float64(g.sampleRate)
		i[n] = float32(math.Cos(g.phaseAccum))
		q[n] = float32(math.Sin(g.phaseAccum))
		g.timeOffset++
	}
}

// SingleSideband fills i/q with an analytic-signal tone at carrier+audioHz
// (upper sideband) for use as an SSB test fixture; LSB fixtures use a
// negative audioHz.
func (g *ToneGenerator) SingleSideband(i, q []float32, audioHz float64) {
	for n := range i {
		now := float64(g.timeOffset) / float64(g.sampleRate)
		phase := tau * (g.carrier + audioHz) * now
		i[n] = float32(math.Cos(phase))
		q[n] = float32(math.Sin(phase))
		g.timeOffset++
	}
}

// Reset zeroes the generator's internal time offset and phase.
func (g *ToneGenerator) Reset() { g.timeOffset = 0; g.phaseAccum = 0 }
