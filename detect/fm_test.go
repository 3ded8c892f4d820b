package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func fmTone(deviation, sampleRate float64, n int) (i, q []float32) {
	i = make([]float32, n)
	q = make([]float32, n)
	phase := 0.0
	step := 2 * math.Pi * deviation / sampleRate
	for k := 0; k < n; k++ {
		i[k] = float32(math.Cos(phase))
		q[k] = float32(math.Sin(phase))
		phase += step
	}
	return
}

func TestFM_ConstantDeviationTracksLinearly(t *testing.T) {
	const sampleRate = 48000
	const maxDeviation = 5000
	disc := NewFM(sampleRate, maxDeviation)

	i, q := fmTone(2500, sampleRate, 4096)
	out := make([]float32, len(i))
	disc.Demodulate(i, q, out)

	// skip the first few samples (warm-up / fast-atan2 transients) and
	// check the discriminator settles near +0.5 (2500/5000).
	for _, v := range out[16:] {
		assert.InDelta(t, 0.5, float64(v), 0.05)
	}
}

func TestFM_ZeroDeviationIsZero(t *testing.T) {
	const sampleRate = 48000
	disc := NewFM(sampleRate, 5000)

	i, q := fmTone(0, sampleRate, 256)
	out := make([]float32, len(i))
	disc.Demodulate(i, q, out)

	for _, v := range out[4:] {
		assert.InDelta(t, 0, float64(v), 0.01)
	}
}

func TestFM_LinearInDeviation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		const sampleRate = 192000
		const maxDeviation = 75000
		dev := rapid.Float64Range(-maxDeviation*0.8, maxDeviation*0.8).Draw(rt, "dev")

		disc := NewFM(sampleRate, maxDeviation)
		i, q := fmTone(dev, sampleRate, 512)
		out := make([]float32, len(i))
		disc.Demodulate(i, q, out)

		require.True(rt, len(out) > 32)
		got := float64(out[len(out)-1])
		want := dev / maxDeviation
		if math.Abs(want) < 1e-9 {
			assert.InDelta(rt, 0, got, 0.02)
		} else {
			assert.InDelta(rt, want, got, 0.02)
		}
	})
}
