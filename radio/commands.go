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

// command is one entry in the executor's queue: a unit of work plus the
// channel its completion is signaled on.
type command struct {
	run  func() error
	done chan error
}

// Executor serializes commands through a single consumer goroutine so
// that each command (including everything it awaits from a source)
// completes before the next begins, realized here as a bounded channel
// with an owned consumer loop.
type Executor struct {
	queue  chan command
	closed chan struct{}
}

// NewExecutor starts an executor's consumer loop. backlog bounds how many
// commands may be queued before Run blocks the caller.
func NewExecutor(backlog int) *Executor {
	e := &Executor{
		queue:  make(chan command, backlog),
		closed: make(chan struct{}),
	}
	go e.loop()
	return e
}

func (e *Executor) loop() {
	for cmd := range e.queue {
		cmd.done <- cmd.run()
	}
	close(e.closed)
}

// Run enqueues fn and blocks until every command submitted before it (in
// submission order) has completed, then fn itself runs and Run returns
// its result.
func (e *Executor) Run(fn func() error) error {
	done := make(chan error, 1)
	e.queue <- command{run: fn, done: done}
	return <-done
}

// Close stops accepting new commands and waits for the queue to drain.
func (e *Executor) Close() {
	close(e.queue)
	<-e.closed
}
