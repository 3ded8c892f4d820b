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

// Scheme tags the five supported demodulation schemes.
type Scheme int

const (
	SchemeWBFM Scheme = iota
	SchemeNBFM
	SchemeAM
	SchemeSSB
	SchemeCW
)

func (s Scheme) String() string {
	switch s {
	case SchemeWBFM:
		return "wbfm"
	case SchemeNBFM:
		return "nbfm"
	case SchemeAM:
		return "am"
	case SchemeSSB:
		return "ssb"
	case SchemeCW:
		return "cw"
	default:
		return "unknown"
	}
}

// Mode is the tagged variant describing a tuned demodulation scheme and its
// scheme-specific parameters. Squelch is deliberately not part of Mode: it
// lives alongside the demodulator's runtime state (see Config.Squelch).
type Mode struct {
	Scheme Scheme

	// Stereo selects stereo decoding for WBFM; ignored otherwise.
	Stereo bool

	// MaxDeviation is NBFM's max frequency deviation in Hz (bandwidth is
	// 2*MaxDeviation); ignored otherwise.
	MaxDeviation float64

	// Bandwidth is the demodulated audio low-pass cutoff for AM/SSB/CW, in
	// Hz; ignored for WBFM/NBFM (WBFM is fixed at 150kHz, NBFM derives its
	// bandwidth from MaxDeviation).
	Bandwidth float64

	// Upper selects USB (true) or LSB (false) for SSB; ignored otherwise.
	Upper bool
}

// EstimateDeviationRatio estimates the modulation index (beta) that would
// carry a desiredBandwidth-Hz-wide FM signal given an audio tone at
// audioFrequency Hz: a caller's chosen NBFM/WBFM MaxDeviation implies a
// beta that mode configs can validate against the audio bandwidth they
// expect to carry.
func EstimateDeviationRatio(desiredBandwidth, audioFrequency float64) float64 {
	if audioFrequency == 0 {
		return 0
	}
	return desiredBandwidth / audioFrequency
}

// Capabilities is the uniform getter/setter surface every scheme's
// configurator implements; setters for an absent capability no-op, letting
// a single UI drive any scheme.
type Capabilities interface {
	HasBandwidth() bool
	Bandwidth() float64
	SetBandwidth(hz float64)

	HasStereo() bool
	Stereo() bool
	SetStereo(bool)

	HasSquelch() bool
	Squelch() float64
	SetSquelch(float64)
}

// Config holds the mutable, per-pipeline runtime parameters that sit
// alongside Mode: squelch (applies to every scheme) plus whatever the
// active scheme's capability set exposes.
type Config struct {
	Mode Mode

	squelch float64
}

// HasBandwidth reports whether Mode carries a user-adjustable bandwidth
// (every scheme but WBFM, whose bandwidth is fixed at 150kHz).
func (c *Config) HasBandwidth() bool {
	switch c.Mode.Scheme {
	case SchemeNBFM, SchemeAM, SchemeSSB, SchemeCW:
		return true
	default:
		return false
	}
}

// Bandwidth returns the scheme's effective bandwidth in Hz.
func (c *Config) Bandwidth() float64 {
	switch c.Mode.Scheme {
	case SchemeWBFM:
		return 150000
	case SchemeNBFM:
		return 2 * c.Mode.MaxDeviation
	default:
		return c.Mode.Bandwidth
	}
}

// SetBandwidth sets the scheme's bandwidth; no-ops for WBFM (fixed) and
// translates to MaxDeviation for NBFM (bandwidth = 2*maxF).
func (c *Config) SetBandwidth(hz float64) {
	switch c.Mode.Scheme {
	case SchemeWBFM:
		return
	case SchemeNBFM:
		c.Mode.MaxDeviation = hz / 2
	default:
		c.Mode.Bandwidth = hz
	}
}

// HasStereo reports whether Mode carries a stereo flag (WBFM only).
func (c *Config) HasStereo() bool { return c.Mode.Scheme == SchemeWBFM }

// Stereo returns the WBFM stereo flag; false for every other scheme.
func (c *Config) Stereo() bool { return c.Mode.Scheme == SchemeWBFM && c.Mode.Stereo }

// SetStereo sets the WBFM stereo flag; no-ops otherwise.
func (c *Config) SetStereo(v bool) {
	if c.Mode.Scheme == SchemeWBFM {
		c.Mode.Stereo = v
	}
}

// HasSquelch reports whether squelch applies; squelch is universal.
func (c *Config) HasSquelch() bool { return true }

// Squelch returns the configured squelch threshold.
func (c *Config) Squelch() float64 { return c.squelch }

// SetSquelch sets the squelch threshold.
func (c *Config) SetSquelch(v float64) { c.squelch = v }
