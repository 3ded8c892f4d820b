package receiver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_EmitsTicksAtConfiguredRate(t *testing.T) {
	var ticks int
	c := NewCounter(10, func() { ticks++ })
	c.SetSampleRate(48000) // threshold = 4800 samples/tick

	block := make([]float32, 4800)
	for n := 0; n < 5; n++ {
		c.Receive(block, block, 0, nil)
	}
	assert.Equal(t, 5, ticks)
}

func TestCounter_ResetsOnSampleRateChange(t *testing.T) {
	var ticks int
	c := NewCounter(10, func() { ticks++ })
	c.SetSampleRate(48000)

	c.Receive(make([]float32, 4000), make([]float32, 4000), 0, nil)
	assert.Equal(t, 0, ticks)

	c.SetSampleRate(96000)
	c.Receive(make([]float32, 4000), make([]float32, 4000), 0, nil)
	assert.Equal(t, 0, ticks)
}
