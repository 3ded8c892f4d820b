package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacing_TickResolvesPendingRead(t *testing.T) {
	gen := func(n int) (i, q []float32) {
		i = make([]float32, n)
		q = make([]float32, n)
		for k := range i {
			i[k] = 1
		}
		return
	}
	p := NewPacing(gen, 48000)
	p.t0 = time.Now().Add(-time.Second) // pretend a second has already elapsed

	ctx := context.Background()
	type result struct {
		block Block
		err   error
	}
	done := make(chan result, 1)
	go func() {
		b, err := p.ReadSamples(ctx, 100)
		done <- result{b, err}
	}()

	time.Sleep(5 * time.Millisecond)
	p.Tick()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Len(t, res.block.I, 100)
	case <-time.After(time.Second):
		t.Fatal("read did not resolve")
	}
}

func TestPacing_CloseCancelsPendingRead(t *testing.T) {
	gen := func(n int) (i, q []float32) { return make([]float32, n), make([]float32, n) }
	p := NewPacing(gen, 48000)

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		_, err := p.ReadSamples(ctx, 10)
		done <- err
	}()

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, p.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrTransferCanceled)
	case <-time.After(time.Second):
		t.Fatal("read did not cancel")
	}
}
