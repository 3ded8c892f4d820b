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

// Filter is the contract every real-sample filter in this package
// satisfies: in-place streaming application, state-clearing clone, and a
// fixed group delay in samples at DC. Dynamic dispatch over this interface
// costs a per-block indirection, not a per-sample one.
type Filter interface {
	// InPlace filters buf in place without changing its length. Calling it
	// on successive blocks is equivalent to filtering their concatenation.
	InPlace(buf []float32)

	// Clone returns a fresh filter with identical coefficients and cleared
	// state (history, accumulators).
	Clone() Filter

	// Delay returns the filter's group delay in samples at DC.
	Delay() int
}
