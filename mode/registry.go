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

import "fmt"

// Factory builds a Pipeline for a scheme at the given RF/audio sample
// rates, using that scheme's default parameters.
type Factory func(sampleRate, audioRate uint) Pipeline

// Registry maps a Scheme to the factory that builds its pipeline. A
// package-level Default registry is pre-populated with the five built-in
// schemes; callers may register replacements or additional schemes.
type Registry struct {
	factories map[Scheme]Factory
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[Scheme]Factory)}
}

// Register associates scheme with factory, replacing any prior
// registration for that scheme.
func (r *Registry) Register(scheme Scheme, factory Factory) {
	r.factories[scheme] = factory
}

// Get builds a fresh pipeline for scheme at the given sample rates, or
// returns an error if no factory is registered for it.
func (r *Registry) Get(scheme Scheme, sampleRate, audioRate uint) (Pipeline, error) {
	factory, ok := r.factories[scheme]
	if !ok {
		return nil, fmt.Errorf("mode: no pipeline registered for scheme %s", scheme)
	}
	return factory(sampleRate, audioRate), nil
}

// Schemes returns every scheme currently registered, in an unspecified
// order.
func (r *Registry) Schemes() []Scheme {
	out := make([]Scheme, 0, len(r.factories))
	for s := range r.factories {
		out = append(out, s)
	}
	return out
}

// Default is pre-populated with the five built-in schemes, each using
// reasonable default parameters (WBFM: stereo on, 75us de-emphasis; NBFM:
// 5kHz max deviation; AM: 5kHz bandwidth; SSB: USB, 3kHz bandwidth; CW:
// 200Hz bandwidth). Callers needing different defaults should build their
// own Registry with NewRegistry and Register.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(SchemeWBFM, func(sampleRate, audioRate uint) Pipeline {
		return NewWBFM(sampleRate, audioRate, true, 75e-6)
	})
	r.Register(SchemeNBFM, func(sampleRate, audioRate uint) Pipeline {
		return NewNBFM(sampleRate, audioRate, 5000)
	})
	r.Register(SchemeAM, func(sampleRate, audioRate uint) Pipeline {
		return NewAM(sampleRate, audioRate, 5000)
	})
	r.Register(SchemeSSB, func(sampleRate, audioRate uint) Pipeline {
		return NewSSB(sampleRate, audioRate, true, 3000)
	})
	r.Register(SchemeCW, func(sampleRate, audioRate uint) Pipeline {
		return NewCW(sampleRate, audioRate, 200)
	})
	return r
}
