package resample

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReal_InvalidRatio(t *testing.T) {
	_, err := NewReal(48000, 1, 31)
	assert.ErrorIs(t, err, ErrInvalidRatio)
}

func TestReal_OutputLengthMatchesRatio(t *testing.T) {
	const sampleRate = 48000
	const ratio = 4
	dec, err := NewReal(sampleRate, ratio, 63)
	require.NoError(t, err)

	in := make([]float32, 4096)
	for n := range in {
		in[n] = float32(math.Sin(2 * math.Pi * 500 * float64(n) / sampleRate))
	}

	var out []float32
	out = dec.Decimate(in, out)
	assert.InDelta(t, len(in)/ratio, len(out), 1)
}

func TestReal_PassesLowFrequencyTone(t *testing.T) {
	const sampleRate = 48000
	const ratio = 4
	dec, err := NewReal(sampleRate, ratio, 127)
	require.NoError(t, err)

	n := 8192
	in := make([]float32, n)
	for k := range in {
		in[k] = float32(math.Sin(2 * math.Pi * 300 * float64(k) / sampleRate))
	}

	var out []float32
	out = dec.Decimate(in, out)

	tail := out[len(out)/2:]
	var sumSq float64
	for _, v := range tail {
		sumSq += float64(v) * float64(v)
	}
	rms := math.Sqrt(sumSq / float64(len(tail)))
	assert.Greater(t, rms, 0.3)
}

func TestComplex_OutputPairsAligned(t *testing.T) {
	const sampleRate = 336000
	const ratio = 7
	dec, err := NewComplex(sampleRate, ratio, 63)
	require.NoError(t, err)

	n := 4096
	i := make([]float32, n)
	q := make([]float32, n)
	for k := range i {
		theta := 2 * math.Pi * 1000 * float64(k) / sampleRate
		i[k] = float32(math.Cos(theta))
		q[k] = float32(math.Sin(theta))
	}

	var outI, outQ []float32
	outI, outQ = dec.Decimate(i, q, outI, outQ)
	assert.Equal(t, len(outI), len(outQ))
	assert.InDelta(t, n/ratio, len(outI), 1)
}
