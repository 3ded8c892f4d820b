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

// Composite broadcasts SetSampleRate and Receive to an ordered list of
// children. There is no error isolation between children: a panic in one
// propagates to the caller exactly as if it had called that child
// directly.
type Composite struct {
	children []Receiver
}

// NewComposite builds a composite receiver fanning out to children, in
// the given order.
func NewComposite(children ...Receiver) *Composite {
	return &Composite{children: children}
}

// Add appends a child to the fanout list.
func (c *Composite) Add(r Receiver) { c.children = append(c.children, r) }

// SetSampleRate implements Receiver.
func (c *Composite) SetSampleRate(r uint) {
	for _, child := range c.children {
		child.SetSampleRate(r)
	}
}

// Receive implements Receiver.
func (c *Composite) Receive(i, q []float32, freqHz int64, data any) {
	for _, child := range c.children {
		child.Receive(i, q, freqHz, data)
	}
}
