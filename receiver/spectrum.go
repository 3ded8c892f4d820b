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

package receiver

import (
	"math"
	"sync"

	"sdrkit.dev/demod/buffer"
	"sdrkit.dev/demod/fft"
)

// Spectrum is a receiver that maintains a ring of the latest I/Q samples
// and, on demand, computes a power spectrum: a Blackman-windowed FFT with
// positive frequencies (k=0..N/2-1) in the first half of the output and
// negative frequencies (k=-N/2..-1) aliased into the second half, each
// bin reported as 10*log10(|X[k]|^2).
type Spectrum struct {
	mu sync.Mutex

	n  int
	f  *fft.FFT
	ri *buffer.Ring
	rq *buffer.Ring
}

// NewSpectrum builds a spectrum receiver with an FFT length of at least
// minLength, rounded up to the next power of two (minimum 16).
func NewSpectrum(minLength int) *Spectrum {
	if minLength < 16 {
		minLength = 16
	}
	n := fft.OfLength(minLength)
	f, err := fft.New(n)
	if err != nil {
		panic(err) // OfLength always returns a valid power of two
	}
	if err := f.SetWindow(blackman(n)); err != nil {
		panic(err) // window length always matches n by construction
	}

	return &Spectrum{
		n:  n,
		f:  f,
		ri: buffer.NewRing(n),
		rq: buffer.NewRing(n),
	}
}

// blackman returns a length-n Blackman window.
func blackman(n int) []float32 {
	w := make([]float32, n)
	for k := range w {
		x := 2 * math.Pi * float64(k) / float64(n-1)
		w[k] = float32(0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x))
	}
	return w
}

// SetSampleRate implements Receiver; the spectrum's bin count is
// independent of sample rate, so this is a no-op.
func (s *Spectrum) SetSampleRate(r uint) {}

// Receive implements Receiver.
func (s *Spectrum) Receive(i, q []float32, freqHz int64, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ri.Store(i)
	s.rq.Store(q)
}

// Len returns the spectrum's FFT length.
func (s *Spectrum) Len() int { return s.n }

// GetSpectrum copies the latest Len() I/Q samples, windows and transforms
// them, and writes the per-bin power in dB of the first min(len(dst),
// Len()) bins into dst. With len(dst) == Len(), dst[0:N/2] holds positive
// frequencies and dst[N/2:N] holds the aliased negative frequencies.
func (s *Spectrum) GetSpectrum(dst []float64) {
	s.mu.Lock()
	ri := make([]float32, s.n)
	rq := make([]float32, s.n)
	s.ri.CopyTo(ri)
	s.rq.CopyTo(rq)
	s.mu.Unlock()

	buf := make([]complex64, s.n)
	for k := range buf {
		buf[k] = complex(ri[k], rq[k])
	}
	if err := s.f.Forward(buf); err != nil {
		return
	}

	n := len(dst)
	if n > s.n {
		n = s.n
	}
	for k := 0; k < n; k++ {
		mag2 := float64(real(buf[k]))*float64(real(buf[k])) + float64(imag(buf[k]))*float64(imag(buf[k]))
		if mag2 <= 0 {
			dst[k] = -math.MaxFloat64
			continue
		}
		dst[k] = 10 * math.Log10(mag2)
	}
}
