package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingRing_FIFOResolution(t *testing.T) {
	r := NewPendingRing(4)

	ch1, err := r.Add(10)
	require.NoError(t, err)
	ch2, err := r.Add(20)
	require.NoError(t, err)

	r.Resolve(Block{I: make([]float32, 10)})
	r.Resolve(Block{I: make([]float32, 20)})

	res1 := <-ch1
	res2 := <-ch2
	assert.Len(t, res1.block.I, 10)
	assert.Len(t, res2.block.I, 20)
}

func TestPendingRing_TooManyReads(t *testing.T) {
	r := NewPendingRing(2)
	_, err := r.Add(1)
	require.NoError(t, err)
	_, err = r.Add(1)
	require.NoError(t, err)
	_, err = r.Add(1)
	assert.ErrorIs(t, err, ErrTooManyReads)
}

func TestPendingRing_CancelRejectsAll(t *testing.T) {
	r := NewPendingRing(4)
	ch1, _ := r.Add(1)
	ch2, _ := r.Add(1)

	r.Cancel()

	res1 := <-ch1
	res2 := <-ch2
	assert.ErrorIs(t, res1.err, ErrTransferCanceled)
	assert.ErrorIs(t, res2.err, ErrTransferCanceled)
}
