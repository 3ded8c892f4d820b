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

package filter

// FIR is a time-domain finite impulse response filter that keeps N-1
// samples of history across InPlace calls so that filtering consecutive
// blocks is equivalent to filtering their concatenation.
type FIR struct {
	kernel  []float32
	history []float32 // len(kernel)-1, oldest first
}

// NewFIR builds a FIR filter around kernel. The kernel slice is retained,
// not copied; callers should not mutate it afterward.
func NewFIR(kernel []float32) *FIR {
	return &FIR{
		kernel:  kernel,
		history: make([]float32, len(kernel)-1),
	}
}

// Delay implements Filter.
func (f *FIR) Delay() int { return len(f.kernel) / 2 }

// Clone implements Filter.
func (f *FIR) Clone() Filter {
	return &FIR{
		kernel:  f.kernel,
		history: make([]float32, len(f.history)),
	}
}

// InPlace implements Filter. The inner convolution loop is unrolled by
// four; N is the kernel length.
func (f *FIR) InPlace(buf []float32) {
	n := len(f.kernel)
	h := len(f.history)

	// extended = history ++ buf, conceptually; we avoid allocating it for
	// every call by indexing into history and buf directly.
	sample := func(idx int) float32 {
		if idx < h {
			return f.history[idx]
		}
		return buf[idx-h]
	}

	out := make([]float32, len(buf))
	for i := range buf {
		// y[n] = sum_k kernel[k] * extended[n-k], n = h+i
		var acc float32
		j := 0
		top := i + n
		for ; j+4 <= n; j += 4 {
			e0 := sample(top - 1 - j)
			e1 := sample(top - 2 - j)
			e2 := sample(top - 3 - j)
			e3 := sample(top - 4 - j)
			acc += f.kernel[j]*e0 + f.kernel[j+1]*e1 + f.kernel[j+2]*e2 + f.kernel[j+3]*e3
		}
		for ; j < n; j++ {
			acc += f.kernel[j] * sample(top-1-j)
		}
		out[i] = acc
	}

	// roll history forward: the new history is the last h samples of
	// (history ++ buf).
	newHistory := make([]float32, h)
	total := h + len(buf)
	for i := 0; i < h; i++ {
		newHistory[i] = sample(total - h + i)
	}
	f.history = newHistory

	copy(buf, out)
}
