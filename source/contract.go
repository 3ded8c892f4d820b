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

// Package source defines the pull-based signal-source contract the radio
// drives, the pending-read ring both built-in sources share, and two
// implementations: a real-time pacing source over an offline generator,
// and a push source fed by an external producer.
package source

import (
	"context"
	"errors"
)

// ErrTransferCanceled is returned by a pending or new read when the
// source has been closed.
var ErrTransferCanceled = errors.New("source: transfer canceled")

// ErrTooManyReads is returned synchronously by ReadSamples when the
// pending-read ring is already full.
var ErrTooManyReads = errors.New("source: too many simultaneous reads")

// Block is an I/Q sample block: equal-length I and Q, the center
// frequency (Hz) tuned when it was produced, and optional opaque
// side-channel data.
type Block struct {
	I, Q   []float32
	FreqHz int64
	SideCh any
}

// Source is the pull-based contract a radio drives. All methods may fail
// with ErrTransferCanceled once the source is closed; ReadSamples
// promises resolve in FIFO order of issuance even with several in flight.
type Source interface {
	// SetSampleRate requests r and returns the rate actually adopted.
	SetSampleRate(ctx context.Context, r uint) (uint, error)

	// SetCenterFrequency requests f and returns the frequency actually
	// tuned (sources may round or snap).
	SetCenterFrequency(ctx context.Context, f int64) (int64, error)

	// SetParameter requests a source-specific key/value; returns the value
	// actually adopted, or nil for an unrecognized key.
	SetParameter(ctx context.Context, key string, value any) (any, error)

	// StartReceiving begins producing samples.
	StartReceiving(ctx context.Context) error

	// ReadSamples requests n samples; many calls may be in flight, and
	// resolve in the order they were issued.
	ReadSamples(ctx context.Context, n int) (Block, error)

	// Close cancels all pending reads with ErrTransferCanceled and
	// releases the source.
	Close() error
}

// Provider returns a freshly initialized Source per radio start.
type Provider interface {
	Get() (Source, error)
}
