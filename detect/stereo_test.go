package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// compositeSignal builds a simplified broadcast-FM composite baseband:
// a 19kHz pilot plus a 38kHz DSB-SC difference signal carrying a tone.
func compositeSignal(sampleRate float64, n int) []float32 {
	out := make([]float32, n)
	for k := 0; k < n; k++ {
		t := float64(k) / sampleRate
		pilot := 0.1 * math.Sin(2*math.Pi*19000*t)
		diff := math.Sin(2*math.Pi*700*t) * math.Sin(2*math.Pi*38000*t)
		out[k] = float32(pilot + 0.5*diff)
	}
	return out
}

func TestStereo_LocksAndRecoversDifference(t *testing.T) {
	const sampleRate = 336000
	st := NewStereo(sampleRate, 50)

	mpx := compositeSignal(sampleRate, sampleRate/4)
	diff := make([]float32, len(mpx))

	var found bool
	const block = 1024
	for off := 0; off+block <= len(mpx); off += block {
		found = st.Separate(mpx[off:off+block], diff[off:off+block])
	}

	assert.True(t, found)
}

func TestStereo_NoLockOnMonoOnlySignal(t *testing.T) {
	const sampleRate = 336000
	st := NewStereo(sampleRate, 50)

	mpx := make([]float32, 4096)
	for k := range mpx {
		mpx[k] = float32(math.Sin(2 * math.Pi * 400 * float64(k) / sampleRate))
	}
	diff := make([]float32, len(mpx))

	found := st.Separate(mpx, diff)
	assert.False(t, found)
}
