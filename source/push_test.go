package source

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush_ResolvesPendingReadOnPush(t *testing.T) {
	p := NewPush(48000)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	type result struct {
		block Block
		err   error
	}
	done := make(chan result, 1)
	go func() {
		b, err := p.ReadSamples(ctx, 4)
		done <- result{b, err}
	}()

	time.Sleep(10 * time.Millisecond)
	p.PushSamples([]float32{1, 2, 3, 4, 5}, []float32{5, 4, 3, 2, 1}, nil)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, []float32{1, 2, 3, 4}, res.block.I)
}

func TestPush_StoresLeftoverForNextRead(t *testing.T) {
	p := NewPush(48000)
	var freq int64 = 100000000
	p.PushSamples([]float32{1, 2, 3, 4, 5, 6}, []float32{6, 5, 4, 3, 2, 1}, &freq)

	ctx := context.Background()
	b1, err := p.ReadSamples(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4}, b1.I)
	assert.EqualValues(t, 100000000, b1.FreqHz)

	b2, err := p.ReadSamples(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{5, 6}, b2.I)
}

func TestPush_CloseCancelsPendingRead(t *testing.T) {
	p := NewPush(48000)
	ctx := context.Background()

	type result struct {
		err error
	}
	done := make(chan result, 1)
	go func() {
		_, err := p.ReadSamples(ctx, 4)
		done <- result{err}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, p.Close())

	res := <-done
	assert.ErrorIs(t, res.err, ErrTransferCanceled)
}
