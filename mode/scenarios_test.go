package mode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// correlate returns the normalized correlation of signal against a
// reference sine at freqHz, sampled at sampleRate: 1.0 for a perfect,
// in-phase match at that amplitude, scaled by the reference's own RMS.
func correlate(signal []float32, freqHz, sampleRate float64) (magnitude float64) {
	var sumC, sumS float64
	for n, v := range signal {
		theta := 2 * math.Pi * freqHz * float64(n) / sampleRate
		sumC += float64(v) * math.Cos(theta)
		sumS += float64(v) * math.Sin(theta)
	}
	n := float64(len(signal))
	return 2 * math.Hypot(sumC, sumS) / n
}

func TestScenario_AMToneRecovery(t *testing.T) {
	const sampleRate = 2400000
	const audioRate = 48000
	const carrier = 810000.0
	const toneHz = 600.0
	const depth = 0.5

	gen := NewToneGenerator(sampleRate, carrier)
	// 3 s, so the AM detector's carrier tracker (0.5 s time constant) has
	// settled before the measured second half.
	n := sampleRate * 3
	audio := make([]float32, n)
	for k := range audio {
		audio[k] = float32(math.Sin(2 * math.Pi * toneHz * float64(k) / sampleRate))
	}

	i := make([]float32, n)
	q := make([]float32, n)
	gen.AmplitudeModulated(i, q, audio, depth)

	pipe := NewAM(sampleRate, audioRate, 5000)
	result := pipe.Demodulate(i, q, carrier)

	tail := result.Left[len(result.Left)/2:]
	mag := correlate(tail, toneHz, float64(audioRate))
	assert.InDelta(t, depth, mag, 0.2)
}

func TestScenario_SSBSidebandRejection(t *testing.T) {
	const sampleRate = 192000
	const audioRate = 8000
	const carrier = 1000000.0
	const toneOffset = 1500.0

	genUpper := NewToneGenerator(sampleRate, carrier)
	n := sampleRate / 5
	i := make([]float32, n)
	q := make([]float32, n)
	genUpper.SingleSideband(i, q, toneOffset)

	usb := NewSSB(sampleRate, audioRate, true, 3000)
	result := usb.Demodulate(i, q, carrier)
	tail := result.Left[len(result.Left)/2:]
	magPass := correlate(tail, toneOffset, float64(usb.AudioSampleRate()))
	require.Greater(t, magPass, 0.2)

	genLower := NewToneGenerator(sampleRate, carrier)
	i2 := make([]float32, n)
	q2 := make([]float32, n)
	genLower.SingleSideband(i2, q2, toneOffset)

	lsb := NewSSB(sampleRate, audioRate, false, 3000)
	result2 := lsb.Demodulate(i2, q2, carrier)
	tail2 := result2.Left[len(result2.Left)/2:]
	magReject := correlate(tail2, toneOffset, float64(lsb.AudioSampleRate()))
	assert.Less(t, magReject, 0.05)
}

func TestScenario_WBFMStereoLock(t *testing.T) {
	const sampleRate = 2016000 // divides evenly to a 336000 IF rate and a 48000 audio rate
	const audioRate = 48000
	const deviation = 75000.0
	const leftHz = 1500.0
	const rightHz = 2250.0

	n := sampleRate / 5
	composite := make([]float32, n)
	for k := range composite {
		t := float64(k) / sampleRate
		left := math.Sin(2 * math.Pi * leftHz * t)
		right := math.Sin(2 * math.Pi * rightHz * t)
		mono := (left + right) / 2
		diff := (left - right) / 4
		pilot := 0.1 * math.Sin(2*math.Pi*19000*t)
		sub := diff * math.Sin(2*math.Pi*38000*t)
		composite[k] = float32(mono + pilot + sub)
	}

	gen := NewToneGenerator(sampleRate, 0)
	i := make([]float32, n)
	q := make([]float32, n)
	gen.FrequencyModulated(i, q, composite, deviation)

	pipe := NewWBFM(sampleRate, audioRate, true, 75e-6)
	result := pipe.Demodulate(i, q, 0)

	leftTail := result.Left[len(result.Left)/2:]
	rightTail := result.Right[len(result.Right)/2:]

	leftPeak := correlate(leftTail, leftHz, float64(audioRate))
	leftBleed := correlate(leftTail, rightHz, float64(audioRate))
	rightPeak := correlate(rightTail, rightHz, float64(audioRate))
	rightBleed := correlate(rightTail, leftHz, float64(audioRate))

	assert.True(t, result.Stereo)
	assert.InDelta(t, 0.5, leftPeak, 0.35)
	assert.InDelta(t, 0.5, rightPeak, 0.35)
	assert.Less(t, leftBleed, 0.15)
	assert.Less(t, rightBleed, 0.15)
	assert.Greater(t, leftPeak, leftBleed*3)
	assert.Greater(t, rightPeak, rightBleed*3)
}

func TestScenario_CWZeroBeat(t *testing.T) {
	const sampleRate = 192000
	const audioRate = 8000
	const carrier = 14050000.0

	gen := NewToneGenerator(sampleRate, carrier)
	n := sampleRate / 5
	i := make([]float32, n)
	q := make([]float32, n)
	gen.Carrier(i, q)

	cw := NewCW(sampleRate, audioRate, 200)
	onTune := cw.Demodulate(i, q, carrier)
	tailOn := onTune.Left[len(onTune.Left)/2:]
	magOn := correlate(tailOn, cwBeatFrequency, float64(cw.AudioSampleRate()))

	cwOff := NewCW(sampleRate, audioRate, 200)
	offTune := cwOff.Demodulate(i, q, carrier-250)
	tailOff := offTune.Left[len(offTune.Left)/2:]
	magOff := correlate(tailOff, cwBeatFrequency, float64(cwOff.AudioSampleRate()))

	assert.Greater(t, magOn, magOff)
}
