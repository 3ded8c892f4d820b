package fft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func rms(a, b []complex64) float64 {
	var sum float64
	for i := range a {
		d := complex128(a[i]) - complex128(b[i])
		sum += real(d)*real(d) + imag(d)*imag(d)
	}
	return math.Sqrt(sum / float64(len(a)))
}

func TestFFT_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := rapid.IntRange(2, 10).Draw(t, "bits")
		n := 1 << bits
		f, err := New(n)
		require.NoError(t, err)

		orig := make([]complex64, n)
		for i := range orig {
			re := rapid.Float32Range(-1, 1).Draw(t, "re")
			orig[i] = complex(re, 0)
		}

		buf := make([]complex64, n)
		copy(buf, orig)

		require.NoError(t, f.Forward(buf))
		require.NoError(t, f.Inverse(buf))

		assert.Less(t, rms(orig, buf), 1e-5)
	})
}

func TestFFT_OfLength(t *testing.T) {
	assert.Equal(t, 4, OfLength(1))
	assert.Equal(t, 4, OfLength(4))
	assert.Equal(t, 8, OfLength(5))
	assert.Equal(t, 1024, OfLength(1000))
}

func TestFFT_DCInput(t *testing.T) {
	f, err := New(16)
	require.NoError(t, err)
	buf := make([]complex64, 16)
	for i := range buf {
		buf[i] = complex(1, 0)
	}
	require.NoError(t, f.Forward(buf))
	// all energy should be in bin 0 after 1/N normalization
	assert.InDelta(t, 1.0, real(buf[0]), 1e-5)
	for i := 1; i < 16; i++ {
		assert.InDelta(t, 0.0, real(buf[i]), 1e-4)
		assert.InDelta(t, 0.0, imag(buf[i]), 1e-4)
	}
}

func TestFFT_RejectsWrongLength(t *testing.T) {
	f, err := New(16)
	require.NoError(t, err)
	err = f.Forward(make([]complex64, 8))
	assert.ErrorIs(t, err, ErrNotPowerOfTwo)
}
