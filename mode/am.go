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

// AM is the envelope-detection AM pipeline: bandwidth directly sets the
// demodulated audio low-pass cutoff.
type AM struct {
	sampleRate uint
	audioRate  uint
	cfg        *Config

	shift     *filter.Shifter
	downToIF  *resample.Complex
	disc      *detect.AM
	lowpass   filter.Filter
	downAudio *resample.Real
	dcBlock   *filter.DCBlocker

	ifRate     uint
	lastOffset float64
	lastBW     float64
}

// NewAM builds an AM pipeline for RF samples at sampleRate, producing audio
// at audioRate, with an initial audio bandwidth of bandwidth Hz.
func NewAM(sampleRate, audioRate uint, bandwidth float64) *AM {
	const ifRate = 48000
	ifRatio := int(sampleRate / ifRate)
	if ifRatio < 2 {
		ifRatio = 2
	}
	actualIFRate := sampleRate / uint(ifRatio)

	downToIF, err := resample.NewComplex(sampleRate, ifRatio, 63)
	if err != nil {
		panic(err)
	}

	audioRatio := int(actualIFRate / audioRate)
	var downAudio *resample.Real
	if audioRatio >= 2 {
		downAudio, err = resample.NewReal(actualIFRate, audioRatio, 63)
		if err != nil {
			panic(err)
		}
	}

	a := &AM{
		sampleRate: sampleRate,
		audioRate:  audioRate,
		ifRate:     actualIFRate,
		cfg:        &Config{Mode: Mode{Scheme: SchemeAM, Bandwidth: bandwidth}},
		shift:      filter.NewShifter(sampleRate, 0),
		downToIF:   downToIF,
		disc:       detect.NewAM(actualIFRate),
		lowpass:    filter.NewFIR(filter.LowPassKernel(actualIFRate, bandwidth, 127, 1.0)),
		downAudio:  downAudio,
		dcBlock:    filter.NewDCBlocker(audioRate),
		lastBW:     bandwidth,
	}
	return a
}

// Config implements Pipeline.
func (a *AM) Config() *Config { return a.cfg }

// AudioSampleRate implements Pipeline.
func (a *AM) AudioSampleRate() uint { return a.audioRate }

// Demodulate implements Pipeline.
func (a *AM) Demodulate(i, q []float32, frequencyOffset float64) Audio {
	if frequencyOffset != a.lastOffset {
		a.shift.SetFrequency(-frequencyOffset)
		a.lastOffset = frequencyOffset
	}
	if a.cfg.Mode.Bandwidth != a.lastBW {
		a.lowpass = filter.NewFIR(filter.LowPassKernel(a.ifRate, a.cfg.Mode.Bandwidth, 127, 1.0))
		a.lastBW = a.cfg.Mode.Bandwidth
	}

	di := make([]float32, len(i))
	dq := make([]float32, len(q))
	copy(di, i)
	copy(dq, q)
	a.shift.ShiftInPlace(di, dq)

	var ifI, ifQ []float32
	ifI, ifQ = a.downToIF.Decimate(di, dq, ifI, ifQ)

	audio := make([]float32, len(ifI))
	a.disc.Demodulate(ifI, ifQ, audio)
	a.lowpass.InPlace(audio)

	if a.downAudio != nil {
		var down []float32
		down = a.downAudio.Decimate(audio, down)
		audio = down
	}
	a.dcBlock.InPlace(audio)

	right := make([]float32, len(audio))
	copy(right, audio)

	return Audio{
		Left:  audio,
		Right: right,
		SNR:   snr(ifI, di),
	}
}
