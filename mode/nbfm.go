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

package mode

import (
	"sdrkit.dev/demod/detect"
	"sdrkit.dev/demod/filter"
	"sdrkit.dev/demod/resample"
)

// NBFM is the narrowband FM pipeline used for two-way radio and similar
// traffic: bandwidth is twice the configured max deviation.
type NBFM struct {
	sampleRate uint
	audioRate  uint
	cfg        *Config

	shift     *filter.Shifter
	downToIF  *resample.Complex
	bandpassI filter.Filter
	bandpassQ filter.Filter
	disc      *detect.FM
	downAudio *resample.Real
	agc       *filter.AGC

	ifRate     uint
	lastOffset float64
	lastMaxDev float64
}

// NewNBFM builds an NBFM pipeline for RF samples at sampleRate, producing
// audio at audioRate, with an initial max deviation of maxDeviation Hz.
func NewNBFM(sampleRate, audioRate uint, maxDeviation float64) *NBFM {
	const ifRate = 48000
	ifRatio := int(sampleRate / ifRate)
	if ifRatio < 2 {
		ifRatio = 2
	}
	actualIFRate := sampleRate / uint(ifRatio)
	audioRatio := int(actualIFRate / audioRate)
	if audioRatio < 1 {
		audioRatio = 1
	}

	downToIF, err := resample.NewComplex(sampleRate, ifRatio, 63)
	if err != nil {
		panic(err)
	}

	bandwidth := 2 * maxDeviation
	kernel := filter.LowPassKernel(actualIFRate, bandwidth, 81, 1.0)

	n := &NBFM{
		sampleRate: sampleRate,
		audioRate:  audioRate,
		ifRate:     actualIFRate,
		cfg:        &Config{Mode: Mode{Scheme: SchemeNBFM, MaxDeviation: maxDeviation}},
		shift:      filter.NewShifter(sampleRate, 0),
		downToIF:   downToIF,
		bandpassI:  filter.NewFIR(kernel),
		bandpassQ:  filter.NewFIR(append([]float32(nil), kernel...)),
		disc:       detect.NewFM(actualIFRate, maxDeviation),
		agc:        filter.NewAGC(audioRate, 10),
		lastMaxDev: maxDeviation,
	}
	if audioRatio >= 2 {
		n.downAudio, err = resample.NewReal(actualIFRate, audioRatio, 63)
		if err != nil {
			panic(err)
		}
	}
	return n
}

// Config implements Pipeline.
func (n *NBFM) Config() *Config { return n.cfg }

// AudioSampleRate implements Pipeline.
func (n *NBFM) AudioSampleRate() uint { return n.audioRate }

// Demodulate implements Pipeline.
func (n *NBFM) Demodulate(i, q []float32, frequencyOffset float64) Audio {
	if frequencyOffset != n.lastOffset {
		n.shift.SetFrequency(-frequencyOffset)
		n.lastOffset = frequencyOffset
	}
	if n.cfg.Mode.MaxDeviation != n.lastMaxDev {
		n.disc = detect.NewFM(n.ifRate, n.cfg.Mode.MaxDeviation)
		n.lastMaxDev = n.cfg.Mode.MaxDeviation
	}

	di := make([]float32, len(i))
	dq := make([]float32, len(q))
	copy(di, i)
	copy(dq, q)
	n.shift.ShiftInPlace(di, dq)

	var ifI, ifQ []float32
	ifI, ifQ = n.downToIF.Decimate(di, dq, ifI, ifQ)
	n.bandpassI.InPlace(ifI)
	n.bandpassQ.InPlace(ifQ)

	audio := make([]float32, len(ifI))
	n.disc.Demodulate(ifI, ifQ, audio)

	if n.downAudio != nil {
		var down []float32
		down = n.downAudio.Decimate(audio, down)
		audio = down
	}
	n.agc.InPlace(audio)

	right := make([]float32, len(audio))
	copy(right, audio)

	return Audio{
		Left:  audio,
		Right: right,
		SNR:   snr(ifI, di),
	}
}
