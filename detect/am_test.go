package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func amTone(carrier, mod float32, modFreq, sampleRate float64, n int) (i, q []float32) {
	i = make([]float32, n)
	q = make([]float32, n)
	for k := 0; k < n; k++ {
		t := float64(k) / sampleRate
		env := carrier + mod*float32(math.Sin(2*math.Pi*modFreq*t))
		i[k] = env
		q[k] = 0
	}
	return
}

func TestAM_RecoversEnvelope(t *testing.T) {
	const sampleRate = 48000
	det := NewAM(sampleRate)

	i, q := amTone(1.0, 0.5, 600, sampleRate, 4*sampleRate)
	out := make([]float32, len(i))
	det.Demodulate(i, q, out)

	// after the one-pole carrier tracker (0.5 s time constant) settles, the
	// recovered envelope should track the 600Hz tone with roughly the
	// modulation's amplitude.
	tail := out[3*sampleRate:]
	var min, max float32 = tail[0], tail[0]
	for _, v := range tail {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	assert.InDelta(t, 1.0, float64(max-min), 0.3)
}

func TestAM_SilenceIsZero(t *testing.T) {
	const sampleRate = 48000
	det := NewAM(sampleRate)

	i := make([]float32, 1024)
	q := make([]float32, 1024)
	out := make([]float32, len(i))
	det.Demodulate(i, q, out)

	for _, v := range out {
		assert.Zero(t, v)
	}
}
