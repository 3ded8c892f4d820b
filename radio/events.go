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

// Package radio implements the state machine that drives a source.Source
// through a receiver.Receiver: a single-consumer command queue, start/stop
// with a two-in-flight read pipeline, and started/stopped/error/
// stereo-status event notifications.
package radio

// EventType tags the kind of event the radio emits.
type EventType int

const (
	// EventStarted is emitted after a start command completes successfully.
	EventStarted EventType = iota
	// EventStopped is emitted after a stop command completes.
	EventStopped
	// EventError is emitted when a source operation fails; Err carries the
	// underlying error.
	EventError
	// EventStereoStatus is emitted by a WBFM demodulator receiver whenever
	// its pilot-lock flag changes; Stereo carries the new value.
	EventStereoStatus
)

// Event is the payload delivered to event subscribers.
type Event struct {
	Type   EventType
	Err    error
	Stereo bool
}

// EventHandler receives radio events. Subscribers are notified after the
// state transition (or stereo-lock change) that produced the event has
// fully completed.
type EventHandler func(Event)
