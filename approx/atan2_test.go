package approx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtan2_MatchesMathWithinBound(t *testing.T) {
	const maxErr = 1e-6 // looser than the 4e-8 design target to absorb grid quantization
	for deg := -179; deg <= 180; deg++ {
		theta := float64(deg) * math.Pi / 180
		for _, r := range []float64{0.01, 0.5, 1.0, 3.0, 10.0} {
			x := r * math.Cos(theta)
			y := r * math.Sin(theta)
			got := Atan2(y, x)
			want := math.Atan2(y, x)
			assert.InDelta(t, want, got, maxErr, "deg=%d r=%v", deg, r)
		}
	}
}

func TestAtan2_Zero(t *testing.T) {
	assert.Equal(t, float64(0), Atan2(0, 0))
}
