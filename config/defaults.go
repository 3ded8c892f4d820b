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

// Package config loads per-mode defaults (de-emphasis time constants,
// default bandwidths) from a YAML file, the only file-shaped
// configuration in this module.
package config

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ModeDefaults holds the tunable defaults a mode.Registry is seeded
// with. Fields are optional; a zero numeric field leaves the library
// default in place (see BuildRegistry), while a false flag is used as is.
type ModeDefaults struct {
	WBFM struct {
		Stereo        bool    `yaml:"stereo"`
		DeEmphasisSec float64 `yaml:"deEmphasisSec"`
	} `yaml:"wbfm"`

	NBFM struct {
		BandwidthHz float64 `yaml:"bandwidthHz"`
	} `yaml:"nbfm"`

	AM struct {
		BandwidthHz float64 `yaml:"bandwidthHz"`
	} `yaml:"am"`

	SSB struct {
		Upper       bool    `yaml:"upper"`
		BandwidthHz float64 `yaml:"bandwidthHz"`
	} `yaml:"ssb"`

	CW struct {
		BandwidthHz float64 `yaml:"bandwidthHz"`
	} `yaml:"cw"`
}

// Load reads and parses a ModeDefaults document from path.
func Load(path string) (*ModeDefaults, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a ModeDefaults document from raw YAML bytes.
func Parse(data []byte) (*ModeDefaults, error) {
	var d ModeDefaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
