package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tone(freq float64, amp float32, sampleRate uint, n int) (i, q []float32) {
	i = make([]float32, n)
	q = make([]float32, n)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * freq * float64(k) / float64(sampleRate)
		i[k] = amp * float32(math.Cos(theta))
		q[k] = amp * float32(math.Sin(theta))
	}
	return
}

func TestPilotDetector_LocksOnTone(t *testing.T) {
	const sampleRate = 336000
	det := NewPilotDetector(sampleRate, 19000, 50)

	i, q := tone(19000, 0.1, sampleRate, sampleRate/4)
	cos := make([]float32, len(i))
	sin := make([]float32, len(i))

	var locked bool
	const block = 1024
	for off := 0; off+block <= len(i); off += block {
		locked = det.Process(i[off:off+block], q[off:off+block], cos[off:off+block], sin[off:off+block])
	}

	assert.True(t, locked)
}

func TestPilotDetector_ReconstructionRMSErrorIsTiny(t *testing.T) {
	const sampleRate = 336000
	det := NewPilotDetector(sampleRate, 19000, 50)

	const block = 1024
	// whole blocks only, so every measured sample has been processed
	n := sampleRate / 4 / block * block
	i, q := tone(19000, 0.1, sampleRate, n)
	cos := make([]float32, n)
	sin := make([]float32, n)

	for off := 0; off+block <= n; off += block {
		det.Process(i[off:off+block], q[off:off+block], cos[off:off+block], sin[off:off+block])
	}

	// Skip the filter's settling transient; past it the reconstructed
	// carrier should track the ideal unit-amplitude 19kHz tone almost
	// exactly.
	const settle = 8192
	var sumSq float64
	count := 0
	for k := settle; k < n; k++ {
		theta := 2 * math.Pi * 19000 * float64(k) / sampleRate
		dCos := float64(cos[k]) - math.Cos(theta)
		dSin := float64(sin[k]) - math.Sin(theta)
		sumSq += dCos*dCos + dSin*dSin
		count++
	}
	rms := math.Sqrt(sumSq / float64(count))
	assert.LessOrEqual(t, rms, 1e-5)
}

func TestPilotDetector_NoLockOnSilence(t *testing.T) {
	const sampleRate = 336000
	det := NewPilotDetector(sampleRate, 19000, 50)

	i := make([]float32, 4096)
	q := make([]float32, 4096)
	cos := make([]float32, len(i))
	sin := make([]float32, len(i))

	locked := det.Process(i, q, cos, sin)
	assert.False(t, locked)
}
