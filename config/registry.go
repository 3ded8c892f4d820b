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

package config

import "sdrkit.dev/demod/mode"

// defaults mirror mode.newDefaultRegistry's built-in parameters, used
// whenever the corresponding numeric YAML field is left at its zero value.
// The NBFM bandwidth is twice newDefaultRegistry's 5 kHz max deviation.
const (
	defaultDeEmphasisSec = 75e-6
	defaultNBFMBandwidth = 10000.0
	defaultAMBandwidth   = 5000.0
	defaultSSBBandwidth  = 3000.0
	defaultCWBandwidth   = 200.0
)

// BuildRegistry constructs a mode.Registry whose five built-in schemes use
// d's values, falling back to the library defaults for any numeric field
// left at its YAML zero value. The WBFM stereo and SSB upper flags are used
// as given, so leaving them out selects mono WBFM and LSB.
func (d *ModeDefaults) BuildRegistry() *mode.Registry {
	tau := d.WBFM.DeEmphasisSec
	if tau == 0 {
		tau = defaultDeEmphasisSec
	}
	nbfmBW := d.NBFM.BandwidthHz
	if nbfmBW == 0 {
		nbfmBW = defaultNBFMBandwidth
	}
	amBW := d.AM.BandwidthHz
	if amBW == 0 {
		amBW = defaultAMBandwidth
	}
	ssbBW := d.SSB.BandwidthHz
	if ssbBW == 0 {
		ssbBW = defaultSSBBandwidth
	}
	cwBW := d.CW.BandwidthHz
	if cwBW == 0 {
		cwBW = defaultCWBandwidth
	}

	r := mode.NewRegistry()
	r.Register(mode.SchemeWBFM, func(sampleRate, audioRate uint) mode.Pipeline {
		return mode.NewWBFM(sampleRate, audioRate, d.WBFM.Stereo, tau)
	})
	r.Register(mode.SchemeNBFM, func(sampleRate, audioRate uint) mode.Pipeline {
		return mode.NewNBFM(sampleRate, audioRate, nbfmBW/2)
	})
	r.Register(mode.SchemeAM, func(sampleRate, audioRate uint) mode.Pipeline {
		return mode.NewAM(sampleRate, audioRate, amBW)
	})
	r.Register(mode.SchemeSSB, func(sampleRate, audioRate uint) mode.Pipeline {
		return mode.NewSSB(sampleRate, audioRate, d.SSB.Upper, ssbBW)
	})
	r.Register(mode.SchemeCW, func(sampleRate, audioRate uint) mode.Pipeline {
		return mode.NewCW(sampleRate, audioRate, cwBW)
	})
	return r
}
