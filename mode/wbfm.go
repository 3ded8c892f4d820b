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

// wbfmBandwidth is the fixed WBFM channel bandwidth; unlike every other
// scheme it is not user-adjustable.
const wbfmBandwidth = 150000.0

// wbfmIntermediateRate is the rate the RF signal is downconverted to
// before FM discrimination: high enough that the discriminated composite
// signal (mono sum + 19kHz pilot + 38kHz DSB difference, extending to
// ~53kHz) can be stereo-separated without aliasing.
const wbfmIntermediateRate = 336000

// WBFM is the two-stage wideband FM pipeline: downconvert, discriminate at
// the intermediate rate (so the composite audio signal's pilot and 38kHz
// subcarrier survive), optionally separate stereo, then de-emphasize and
// downsample to the final audio rate.
type WBFM struct {
	sampleRate uint
	audioRate  uint
	cfg        *Config

	shift      *filter.Shifter
	downToIF   *resample.Complex
	bandpassI  filter.Filter
	bandpassQ  filter.Filter
	disc       *detect.FM
	stereoSep  *detect.Stereo
	downAudioL *resample.Real
	downAudioR *resample.Real
	deEmphL    *filter.OnePole
	deEmphR    *filter.OnePole

	lastOffset float64
}

// NewWBFM builds a WBFM pipeline for RF samples at sampleRate, producing
// audio at audioRate, de-emphasized with time constant tauSeconds (50e-6
// for most of the world, 75e-6 for US/Korea).
func NewWBFM(sampleRate, audioRate uint, stereo bool, tauSeconds float64) *WBFM {
	ifRatio := int(sampleRate / wbfmIntermediateRate)
	if ifRatio < 2 {
		ifRatio = 2
	}
	ifRate := sampleRate / uint(ifRatio)
	audioRatio := int(ifRate / audioRate)
	if audioRatio < 2 {
		audioRatio = 2
	}

	downToIF, err := resample.NewComplex(sampleRate, ifRatio, 63)
	if err != nil {
		panic(err)
	}
	downAudioL, err := resample.NewReal(ifRate, audioRatio, 63)
	if err != nil {
		panic(err)
	}
	downAudioR, err := resample.NewReal(ifRate, audioRatio, 63)
	if err != nil {
		panic(err)
	}

	kernel := filter.LowPassKernel(ifRate, wbfmBandwidth, 81, 1.0)

	return &WBFM{
		sampleRate: sampleRate,
		audioRate:  audioRate,
		cfg:        &Config{Mode: Mode{Scheme: SchemeWBFM, Stereo: stereo}},
		shift:      filter.NewShifter(sampleRate, 0),
		downToIF:   downToIF,
		bandpassI:  filter.NewFIR(kernel),
		bandpassQ:  filter.NewFIR(append([]float32(nil), kernel...)),
		disc:       detect.NewFM(ifRate, wbfmBandwidth/2),
		stereoSep:  detect.NewStereo(ifRate, 500),
		downAudioL: downAudioL,
		downAudioR: downAudioR,
		deEmphL:    filter.NewDeEmphasis(tauSeconds, audioRate),
		deEmphR:    filter.NewDeEmphasis(tauSeconds, audioRate),
	}
}

// Config implements Pipeline.
func (w *WBFM) Config() *Config { return w.cfg }

// AudioSampleRate implements Pipeline.
func (w *WBFM) AudioSampleRate() uint { return w.audioRate }

// Demodulate implements Pipeline.
func (w *WBFM) Demodulate(i, q []float32, frequencyOffset float64) Audio {
	if frequencyOffset != w.lastOffset {
		w.shift.SetFrequency(-frequencyOffset)
		w.lastOffset = frequencyOffset
	}

	di := make([]float32, len(i))
	dq := make([]float32, len(q))
	copy(di, i)
	copy(dq, q)
	w.shift.ShiftInPlace(di, dq)

	var ifI, ifQ []float32
	ifI, ifQ = w.downToIF.Decimate(di, dq, ifI, ifQ)
	w.bandpassI.InPlace(ifI)
	w.bandpassQ.InPlace(ifQ)

	composite := make([]float32, len(ifI))
	w.disc.Demodulate(ifI, ifQ, composite)

	mono := composite
	var left, right []float32
	stereo := false

	if w.cfg.Mode.Stereo {
		diff := make([]float32, len(composite))
		stereo = w.stereoSep.Separate(composite, diff)
		left = make([]float32, len(composite))
		right = make([]float32, len(composite))
		for n := range composite {
			left[n] = mono[n] + diff[n]
			right[n] = mono[n] - diff[n]
		}
	} else {
		left = mono
		right = mono
	}

	var audioL, audioR []float32
	audioL = w.downAudioL.Decimate(left, audioL)
	audioR = w.downAudioR.Decimate(right, audioR)
	w.deEmphL.InPlace(audioL)
	w.deEmphR.InPlace(audioR)

	return Audio{
		Left:   audioL,
		Right:  audioR,
		Stereo: stereo,
		SNR:    snr(ifI, di),
	}
}
