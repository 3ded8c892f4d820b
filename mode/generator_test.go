package mode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToneGenerator_CarrierIsUnitMagnitude(t *testing.T) {
	g := NewToneGenerator(48000, 1000)
	i := make([]float32, 256)
	q := make([]float32, 256)
	g.Carrier(i, q)

	for n := range i {
		mag := math.Sqrt(float64(i[n]*i[n] + q[n]*q[n]))
		assert.InDelta(t, 1.0, mag, 1e-5)
	}
}

func TestToneGenerator_PhaseModulatedDeviatesWithAudio(t *testing.T) {
	g := NewToneGenerator(48000, 0)
	audio := make([]float32, 256)
	for n := range audio {
		audio[n] = 1
	}

	i := make([]float32, len(audio))
	q := make([]float32, len(audio))
	g.PhaseModulated(i, q, audio, math.Pi/2)

	// with carrier at 0Hz and beta=pi/2, every sample's phase should be
	// exactly pi/2 radians: i=cos(pi/2)=0, q=sin(pi/2)=1.
	for n := range i {
		assert.InDelta(t, 0, float64(i[n]), 1e-5)
		assert.InDelta(t, 1, float64(q[n]), 1e-5)
	}
}
