package receiver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingReceiver struct {
	rates    []uint
	receives int
}

func (r *recordingReceiver) SetSampleRate(rate uint) { r.rates = append(r.rates, rate) }
func (r *recordingReceiver) Receive(i, q []float32, freqHz int64, data any) {
	r.receives++
}

func TestComposite_BroadcastsToAllChildren(t *testing.T) {
	a := &recordingReceiver{}
	b := &recordingReceiver{}
	c := NewComposite(a, b)

	c.SetSampleRate(48000)
	c.Receive(nil, nil, 0, nil)
	c.Receive(nil, nil, 0, nil)

	assert.Equal(t, []uint{48000}, a.rates)
	assert.Equal(t, []uint{48000}, b.rates)
	assert.Equal(t, 2, a.receives)
	assert.Equal(t, 2, b.receives)
}

func TestComposite_AddAppendsChild(t *testing.T) {
	a := &recordingReceiver{}
	c := NewComposite()
	c.Add(a)
	c.Receive(nil, nil, 0, nil)
	assert.Equal(t, 1, a.receives)
}
