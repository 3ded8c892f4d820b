package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"sdrkit.dev/demod/filter"
)

// ssbTone builds an analytic signal e^{j*2*pi*freq*t}, which an ideal USB
// demodulator recovers as cos(2*pi*freq*t) and an ideal LSB demodulator
// rejects (since the tone lies entirely in the upper sideband).
func ssbTone(freq, sampleRate float64, n int) (i, q []float32) {
	i = make([]float32, n)
	q = make([]float32, n)
	for k := 0; k < n; k++ {
		theta := 2 * math.Pi * freq * float64(k) / sampleRate
		i[k] = float32(math.Cos(theta))
		q[k] = float32(math.Sin(theta))
	}
	return
}

func TestSSB_PassesUpperSideband(t *testing.T) {
	const sampleRate = 48000
	kernel := filter.HilbertKernel(65)
	ssb := NewSSB(kernel, true)

	i, q := ssbTone(1000, sampleRate, 4096)
	out := make([]float32, len(i))
	ssb.Demodulate(i, q, out)

	delay := ssb.delay.Delay()
	var sumSq float64
	for _, v := range out[delay+200:] {
		sumSq += float64(v) * float64(v)
	}
	rms := math.Sqrt(sumSq / float64(len(out)-delay-200))
	assert.Greater(t, rms, 0.3)
}

func TestSSB_RejectsOppositeSideband(t *testing.T) {
	const sampleRate = 48000
	kernel := filter.HilbertKernel(65)
	// an LSB demodulator should strongly attenuate a tone that is purely
	// in the upper sideband (positive analytic frequency).
	ssb := NewSSB(kernel, false)

	i, q := ssbTone(1000, sampleRate, 4096)
	out := make([]float32, len(i))
	ssb.Demodulate(i, q, out)

	delay := ssb.delay.Delay()
	var sumSq float64
	for _, v := range out[delay+200:] {
		sumSq += float64(v) * float64(v)
	}
	rms := math.Sqrt(sumSq / float64(len(out)-delay-200))
	assert.Less(t, rms, 0.05)
}
