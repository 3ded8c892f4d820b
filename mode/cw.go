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
	"math"

	"sdrkit.dev/demod/filter"
	"sdrkit.dev/demod/resample"
)

// cwBeatFrequency is the audio tone a zero-beat CW signal is translated to.
const cwBeatFrequency = 600.0

// CW is the continuous-wave pipeline: the RF path is shifted so the tuned
// carrier lands exactly on cwBeatFrequency, and a narrow bandpass (width
// given by the scheme's bandwidth, 50-1000Hz) around that tone recovers
// the Morse beat note.
type CW struct {
	sampleRate uint
	audioRate  uint
	cfg        *Config

	shift     *filter.Shifter
	downAudio *resample.Complex
	bandpass  filter.Filter

	lastOffset float64
	lastBW     float64
}

// NewCW builds a CW pipeline for RF samples at sampleRate, producing audio
// at audioRate, with an initial bandpass width of bandwidth Hz (clamped to
// the 50..1000Hz range the scheme accepts).
func NewCW(sampleRate, audioRate uint, bandwidth float64) *CW {
	bandwidth = clampCWBandwidth(bandwidth)

	ratio := int(sampleRate / audioRate)
	if ratio < 2 {
		ratio = 2
	}
	downAudio, err := resample.NewComplex(sampleRate, ratio, 63)
	if err != nil {
		panic(err)
	}
	actualAudioRate := sampleRate / uint(ratio)

	c := &CW{
		sampleRate: sampleRate,
		audioRate:  actualAudioRate,
		cfg:        &Config{Mode: Mode{Scheme: SchemeCW, Bandwidth: bandwidth}},
		shift:      filter.NewShifter(sampleRate, cwBeatFrequency),
		downAudio:  downAudio,
		bandpass:   filter.NewFIR(bandpassKernel(actualAudioRate, cwBeatFrequency, bandwidth)),
		lastBW:     bandwidth,
	}
	return c
}

func clampCWBandwidth(hz float64) float64 {
	if hz < 50 {
		return 50
	}
	if hz > 1000 {
		return 1000
	}
	return hz
}

// bandpassKernel builds a narrow bandpass centered at centerHz with total
// width widthHz by heterodyning a low-pass prototype of half-width
// widthHz/2 up to centerHz (standard modulated-lowpass bandpass design:
// multiply the symmetric lowpass-sinc kernel by a cosine at the desired
// center frequency).
func bandpassKernel(sampleRate uint, centerHz, widthHz float64) []float32 {
	const n = 255
	proto := filter.LowPassKernel(sampleRate, widthHz/2, n, 1.0)
	mid := n / 2
	out := make([]float32, n)
	for k := range proto {
		theta := 2 * math.Pi * centerHz * float64(k-mid) / float64(sampleRate)
		out[k] = proto[k] * float32(2*math.Cos(theta))
	}
	return out
}

// Config implements Pipeline.
func (c *CW) Config() *Config { return c.cfg }

// AudioSampleRate implements Pipeline.
func (c *CW) AudioSampleRate() uint { return c.audioRate }

// Demodulate implements Pipeline.
func (c *CW) Demodulate(i, q []float32, frequencyOffset float64) Audio {
	offset := cwBeatFrequency - frequencyOffset
	if offset != c.lastOffset {
		c.shift.SetFrequency(offset)
		c.lastOffset = offset
	}
	if c.cfg.Mode.Bandwidth != c.lastBW {
		c.bandpass = filter.NewFIR(bandpassKernel(c.audioRate, cwBeatFrequency, c.cfg.Mode.Bandwidth))
		c.lastBW = c.cfg.Mode.Bandwidth
	}

	di := make([]float32, len(i))
	dq := make([]float32, len(q))
	copy(di, i)
	copy(dq, q)
	c.shift.ShiftInPlace(di, dq)

	var outI, outQ []float32
	outI, outQ = c.downAudio.Decimate(di, dq, outI, outQ)
	_ = outQ

	raw := outI
	audio := make([]float32, len(raw))
	copy(audio, raw)
	c.bandpass.InPlace(audio)

	right := make([]float32, len(audio))
	copy(right, audio)

	return Audio{
		Left:  audio,
		Right: right,
		SNR:   snr(audio, raw),
	}
}

