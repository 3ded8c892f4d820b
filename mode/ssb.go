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

// SSB is the single-sideband pipeline: bandwidth sets the demodulated
// audio low-pass cutoff, and Upper selects USB vs LSB.
type SSB struct {
	sampleRate uint
	audioRate  uint
	cfg        *Config

	shift     *filter.Shifter
	downToIF  *resample.Complex
	disc      *detect.SSB
	lowpass   filter.Filter
	downAudio *resample.Real
	agc       *filter.AGC

	ifRate     uint
	lastOffset float64
	lastBW     float64
	lastUpper  bool
}

// NewSSB builds an SSB pipeline for RF samples at sampleRate, producing
// audio at audioRate, demodulating the given sideband with an initial
// audio bandwidth of bandwidth Hz.
func NewSSB(sampleRate, audioRate uint, upper bool, bandwidth float64) *SSB {
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

	return &SSB{
		sampleRate: sampleRate,
		audioRate:  audioRate,
		ifRate:     actualIFRate,
		cfg:        &Config{Mode: Mode{Scheme: SchemeSSB, Upper: upper, Bandwidth: bandwidth}},
		shift:      filter.NewShifter(sampleRate, 0),
		downToIF:   downToIF,
		disc:       detect.NewSSB(filter.HilbertKernel(65), upper),
		lowpass:    filter.NewFIR(filter.LowPassKernel(actualIFRate, bandwidth, 127, 1.0)),
		downAudio:  downAudio,
		agc:        filter.NewAGC(audioRate, 10),
		lastBW:     bandwidth,
		lastUpper:  upper,
	}
}

// Config implements Pipeline.
func (s *SSB) Config() *Config { return s.cfg }

// AudioSampleRate implements Pipeline.
func (s *SSB) AudioSampleRate() uint { return s.audioRate }

// Demodulate implements Pipeline.
func (s *SSB) Demodulate(i, q []float32, frequencyOffset float64) Audio {
	if frequencyOffset != s.lastOffset {
		s.shift.SetFrequency(-frequencyOffset)
		s.lastOffset = frequencyOffset
	}
	if s.cfg.Mode.Upper != s.lastUpper {
		s.disc = detect.NewSSB(filter.HilbertKernel(65), s.cfg.Mode.Upper)
		s.lastUpper = s.cfg.Mode.Upper
	}
	if s.cfg.Mode.Bandwidth != s.lastBW {
		s.lowpass = filter.NewFIR(filter.LowPassKernel(s.ifRate, s.cfg.Mode.Bandwidth, 127, 1.0))
		s.lastBW = s.cfg.Mode.Bandwidth
	}

	di := make([]float32, len(i))
	dq := make([]float32, len(q))
	copy(di, i)
	copy(dq, q)
	s.shift.ShiftInPlace(di, dq)

	var ifI, ifQ []float32
	ifI, ifQ = s.downToIF.Decimate(di, dq, ifI, ifQ)

	audio := make([]float32, len(ifI))
	s.disc.Demodulate(ifI, ifQ, audio)
	s.lowpass.InPlace(audio)

	if s.downAudio != nil {
		var down []float32
		down = s.downAudio.Decimate(audio, down)
		audio = down
	}
	s.agc.InPlace(audio)

	right := make([]float32, len(audio))
	copy(right, audio)

	return Audio{
		Left:  audio,
		Right: right,
		SNR:   snr(ifI, di),
	}
}
