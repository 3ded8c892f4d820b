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

package radio

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"sdrkit.dev/demod/receiver"
	"sdrkit.dev/demod/source"
)

// State is the radio's two-state lifecycle: OFF or PLAYING.
type State int

const (
	Off State = iota
	Playing
)

// parallelBuffers is the number of concurrent read-transfer loops kept in
// flight while PLAYING, pipelining reads against a source so one can be
// in flight while another hands its block to the receiver.
const parallelBuffers = 2

// buffersPerSecond sizes samplesPerBuf; 512-sample multiples are
// hardware-friendly for most SDR front ends.
const buffersPerSecond = 20

// Radio is the control-plane state machine: it obtains a source from a
// Provider on start, drives it through parallelBuffers concurrent read
// loops, and hands every block to a Receiver, all commands serialized
// through a single-consumer Executor.
type Radio struct {
	provider source.Provider
	receiver receiver.Receiver
	exec     *Executor
	logger   *log.Logger

	mu          sync.Mutex
	state       State
	src         source.Source
	sampleRate  uint
	centerFreq  int64
	params      map[string]any
	cancelLoops context.CancelFunc
	loopsDone   sync.WaitGroup
	buffersWant int32

	handlersMu sync.Mutex
	handlers   []EventHandler
}

// New builds a radio driving provider's sources into recv, with an
// initial sample rate (effective only at the next start).
func New(provider source.Provider, recv receiver.Receiver, sampleRate uint) *Radio {
	return &Radio{
		provider:   provider,
		receiver:   recv,
		exec:       NewExecutor(16),
		logger:     log.Default(),
		sampleRate: sampleRate,
		params:     make(map[string]any),
	}
}

// NewWithDemodulator builds a radio whose receiver is d, wiring d's
// pilot-lock transitions to EventStereoStatus notifications.
func NewWithDemodulator(provider source.Provider, d *receiver.Demodulator, sampleRate uint) *Radio {
	r := New(provider, d, sampleRate)
	d.OnStereoChange(func(locked bool) {
		r.emit(Event{Type: EventStereoStatus, Stereo: locked})
	})
	return r
}

// OnEvent registers a handler invoked for every emitted event, in
// registration order, after the triggering transition completes.
func (r *Radio) OnEvent(h EventHandler) {
	r.handlersMu.Lock()
	defer r.handlersMu.Unlock()
	r.handlers = append(r.handlers, h)
}

func (r *Radio) emit(e Event) {
	r.handlersMu.Lock()
	handlers := append([]EventHandler(nil), r.handlers...)
	r.handlersMu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

// State reports the radio's current lifecycle state.
func (r *Radio) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// CenterFrequency reports the currently tuned center frequency.
func (r *Radio) CenterFrequency() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.centerFreq
}

// Parameter reports the last value requested for key, regardless of
// whether the source accepted it.
func (r *Radio) Parameter(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.params[key]
	return v, ok
}

// Start transitions OFF -> PLAYING: obtains a fresh source, applies the
// sample rate, center frequency, and every stored parameter (in no
// particular order), starts reception, and launches parallelBuffers
// concurrent read loops. Commands run serialized via the executor.
func (r *Radio) Start(ctx context.Context) error {
	return r.exec.Run(func() error {
		r.mu.Lock()
		if r.state == Playing {
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		src, err := r.provider.Get()
		if err != nil {
			wrapped := source.WrapError("provider.Get", err)
			r.logger.Error("radio: source provider failed", "err", wrapped)
			r.emit(Event{Type: EventError, Err: wrapped})
			return wrapped
		}

		r.mu.Lock()
		sampleRate := r.sampleRate
		centerFreq := r.centerFreq
		params := make(map[string]any, len(r.params))
		for k, v := range r.params {
			params[k] = v
		}
		r.mu.Unlock()

		if _, err := src.SetSampleRate(ctx, sampleRate); err != nil {
			wrapped := source.WrapError("SetSampleRate", err)
			r.logger.Error("radio: set sample rate failed", "err", wrapped)
			r.emit(Event{Type: EventError, Err: wrapped})
			return wrapped
		}
		if _, err := src.SetCenterFrequency(ctx, centerFreq); err != nil {
			wrapped := source.WrapError("SetCenterFrequency", err)
			r.logger.Error("radio: set center frequency failed", "err", wrapped)
			r.emit(Event{Type: EventError, Err: wrapped})
			return wrapped
		}
		for k, v := range params {
			if _, err := src.SetParameter(ctx, k, v); err != nil {
				wrapped := source.WrapError("SetParameter:"+k, err)
				r.logger.Error("radio: set parameter failed", "key", k, "err", wrapped)
				r.emit(Event{Type: EventError, Err: wrapped})
				return wrapped
			}
		}
		if err := src.StartReceiving(ctx); err != nil {
			wrapped := source.WrapError("StartReceiving", err)
			r.logger.Error("radio: start receiving failed", "err", wrapped)
			r.emit(Event{Type: EventError, Err: wrapped})
			return wrapped
		}

		loopCtx, cancel := context.WithCancel(ctx)

		r.mu.Lock()
		r.src = src
		r.state = Playing
		r.cancelLoops = cancel
		r.buffersWant = parallelBuffers
		r.receiver.SetSampleRate(sampleRate)
		r.mu.Unlock()

		samplesPerBuf := samplesPerBuffer(sampleRate)
		for n := 0; n < parallelBuffers; n++ {
			r.loopsDone.Add(1)
			go r.readLoop(loopCtx, samplesPerBuf)
		}

		r.logger.Info("radio: started", "sampleRate", sampleRate, "centerFreq", centerFreq)
		r.emit(Event{Type: EventStarted})
		return nil
	})
}

// samplesPerBuffer computes 512*ceil(sampleRate/(buffersPerSecond*512)).
func samplesPerBuffer(sampleRate uint) int {
	const block = 512
	perSec := uint(buffersPerSecond * block)
	chunks := (sampleRate + perSec - 1) / perSec
	return int(chunks * block)
}

// readLoop is one of the parallelBuffers concurrent read-transfer
// pipelines: while the radio still wants buffers (buffersWant > 0), it
// reads a block and hands it to the receiver. A read failure other than
// a cancellation means the source is no longer trustworthy, so the loop
// gives up and drives the radio toward OFF rather than retrying forever.
func (r *Radio) readLoop(ctx context.Context, samplesPerBuf int) {
	defer r.loopsDone.Done()
	for {
		r.mu.Lock()
		want := r.buffersWant
		src := r.src
		r.mu.Unlock()
		if want <= 0 || src == nil {
			return
		}

		block, err := src.ReadSamples(ctx, samplesPerBuf)
		if err != nil {
			if err == source.ErrTransferCanceled || ctx.Err() != nil {
				return
			}
			wrapped := source.WrapError("ReadSamples", err)
			r.logger.Error("radio: read failed, stopping", "err", wrapped)
			r.emit(Event{Type: EventError, Err: wrapped})
			go r.Stop(context.Background())
			return
		}

		r.mu.Lock()
		centerFreq := block.FreqHz
		r.centerFreq = centerFreq
		recv := r.receiver
		r.mu.Unlock()

		recv.Receive(block.I, block.Q, centerFreq, block.SideCh)
	}
}

// Stop transitions PLAYING -> OFF: stops wanting further buffers, waits
// for both read loops to drain, closes the source, and emits stopped.
func (r *Radio) Stop(ctx context.Context) error {
	return r.exec.Run(func() error {
		r.mu.Lock()
		if r.state == Off {
			r.mu.Unlock()
			return nil
		}
		r.buffersWant = 0
		src := r.src
		cancel := r.cancelLoops
		r.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		r.loopsDone.Wait()

		var err error
		if src != nil {
			err = src.Close()
		}

		r.mu.Lock()
		r.state = Off
		r.src = nil
		r.mu.Unlock()

		r.logger.Info("radio: stopped")
		r.emit(Event{Type: EventStopped})
		return err
	})
}

// SetFrequency retunes the radio's center frequency. If PLAYING, it
// applies immediately to the live source; otherwise it takes effect on
// the next Start.
func (r *Radio) SetFrequency(ctx context.Context, hz int64) error {
	return r.exec.Run(func() error {
		r.mu.Lock()
		r.centerFreq = hz
		src := r.src
		r.mu.Unlock()

		if src == nil {
			return nil
		}
		actual, err := src.SetCenterFrequency(ctx, hz)
		if err != nil {
			wrapped := source.WrapError("SetCenterFrequency", err)
			r.emit(Event{Type: EventError, Err: wrapped})
			return wrapped
		}
		r.mu.Lock()
		r.centerFreq = actual
		r.mu.Unlock()
		return nil
	})
}

// SetParameter stores key=value (replayed on every future start) and, if
// PLAYING, applies it immediately to the live source.
func (r *Radio) SetParameter(ctx context.Context, key string, value any) error {
	return r.exec.Run(func() error {
		r.mu.Lock()
		r.params[key] = value
		src := r.src
		r.mu.Unlock()

		if src == nil {
			return nil
		}
		if _, err := src.SetParameter(ctx, key, value); err != nil {
			wrapped := source.WrapError("SetParameter:"+key, err)
			r.emit(Event{Type: EventError, Err: wrapped})
			return wrapped
		}
		return nil
	})
}

// SetSampleRate stores the sample rate to apply on the next Start; it has
// no effect on an already-PLAYING source.
func (r *Radio) SetSampleRate(ctx context.Context, rate uint) error {
	return r.exec.Run(func() error {
		r.mu.Lock()
		r.sampleRate = rate
		r.mu.Unlock()
		return nil
	})
}
