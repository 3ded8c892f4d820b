package receiver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpectrum_PeaksAtToneBin(t *testing.T) {
	const sampleRate = 48000
	const toneHz = 6000
	s := NewSpectrum(1024)
	n := s.Len()

	i := make([]float32, n)
	q := make([]float32, n)
	for k := range i {
		theta := 2 * math.Pi * toneHz * float64(k) / sampleRate
		i[k] = float32(math.Cos(theta))
		q[k] = float32(math.Sin(theta))
	}
	s.Receive(i, q, 0, nil)

	dst := make([]float64, n)
	s.GetSpectrum(dst)

	expectedBin := toneHz * n / sampleRate
	peakBin := 0
	for k, v := range dst[:n/2] {
		if v > dst[peakBin] {
			peakBin = k
		}
	}
	assert.InDelta(t, expectedBin, peakBin, 2)
}

func TestSpectrum_LenRoundsUpToPowerOfTwo(t *testing.T) {
	s := NewSpectrum(100)
	assert.Equal(t, 128, s.Len())
}
