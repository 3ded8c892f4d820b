package radio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdrkit.dev/demod/mode"
	"sdrkit.dev/demod/receiver"
	"sdrkit.dev/demod/source"
)

// mockSource records every call it receives, in order, and echoes back
// whatever is asked of it.
type mockSource struct {
	mu         sync.Mutex
	calls      []string
	sampleRate uint
	freqHz     int64
	params     map[string]any
	started    bool
	closed     bool
}

func newMockSource() *mockSource {
	return &mockSource{params: make(map[string]any)}
}

func (m *mockSource) SetSampleRate(ctx context.Context, r uint) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "setSampleRate")
	m.sampleRate = r
	return r, nil
}

func (m *mockSource) SetCenterFrequency(ctx context.Context, f int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "setFrequency")
	m.freqHz = f
	return f, nil
}

func (m *mockSource) SetParameter(ctx context.Context, key string, value any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "setParameter:"+key)
	m.params[key] = value
	return value, nil
}

func (m *mockSource) StartReceiving(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "start")
	m.started = true
	return nil
}

func (m *mockSource) ReadSamples(ctx context.Context, n int) (source.Block, error) {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return source.Block{}, source.ErrTransferCanceled
	}
	<-ctx.Done()
	return source.Block{}, source.ErrTransferCanceled
}

func (m *mockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "close")
	m.closed = true
	return nil
}

func (m *mockSource) getFrequency() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.freqHz
}

func (m *mockSource) getParameter(key string) any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params[key]
}

func (m *mockSource) callOrder() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

type singleSourceProvider struct {
	src source.Source
}

func (p *singleSourceProvider) Get() (source.Source, error) {
	return p.src, nil
}

type nullReceiver struct{}

func (nullReceiver) SetSampleRate(r uint)                          {}
func (nullReceiver) Receive(i, q []float32, freqHz int64, data any) {}

func TestRadio_CommandOrdering(t *testing.T) {
	src := newMockSource()
	r := New(&singleSourceProvider{src: src}, nullReceiver{}, 2048000)
	ctx := context.Background()

	require.NoError(t, r.SetFrequency(ctx, 1000000))
	require.NoError(t, r.SetParameter(ctx, "gain", 3))
	require.NoError(t, r.Start(ctx))

	assert.Equal(t, int64(1000000), r.CenterFrequency())
	assert.Equal(t, int64(1000000), src.getFrequency())

	gain, ok := r.Parameter("gain")
	require.True(t, ok)
	assert.Equal(t, 3, gain)
	assert.Equal(t, 3, src.getParameter("gain"))

	require.NoError(t, r.Stop(ctx))

	assert.Equal(t, []string{
		"setSampleRate", "setFrequency", "setParameter:gain", "start", "close",
	}, src.callOrder())
	assert.Equal(t, Off, r.State())
}

func TestRadio_StartEmitsEventAfterApplyingStoredState(t *testing.T) {
	src := newMockSource()
	r := New(&singleSourceProvider{src: src}, nullReceiver{}, 48000)
	ctx := context.Background()

	require.NoError(t, r.SetFrequency(ctx, 5000000))

	var events []EventType
	var mu sync.Mutex
	r.OnEvent(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e.Type)
	})

	require.NoError(t, r.Start(ctx))
	require.NoError(t, r.Stop(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventType{EventStarted, EventStopped}, events)
}

// failingSource fails whichever call name is in failOn.
type failingSource struct {
	mockSource
	failOn string
	cause  error
}

func (f *failingSource) SetSampleRate(ctx context.Context, r uint) (uint, error) {
	if f.failOn == "setSampleRate" {
		return 0, f.cause
	}
	return f.mockSource.SetSampleRate(ctx, r)
}

func TestRadio_StartWrapsSourceFailureAsErrSourceFailure(t *testing.T) {
	cause := errors.New("device unplugged")
	src := &failingSource{mockSource: *newMockSource(), failOn: "setSampleRate", cause: cause}
	r := New(&singleSourceProvider{src: src}, nullReceiver{}, 48000)
	ctx := context.Background()

	var gotEvent Event
	r.OnEvent(func(e Event) { gotEvent = e })

	err := r.Start(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, source.ErrSourceFailure))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, EventError, gotEvent.Type)
	assert.Equal(t, Off, r.State())
}

// oneShotSource returns a single canned block from its first ReadSamples
// call, then blocks on context cancellation like mockSource.
type oneShotSource struct {
	mockSource
	block   source.Block
	yielded atomic.Bool
}

func (s *oneShotSource) ReadSamples(ctx context.Context, n int) (source.Block, error) {
	if !s.yielded.Swap(true) {
		return s.block, nil
	}
	return s.mockSource.ReadSamples(ctx, n)
}

func TestRadio_DemodulatorWiringEmitsStereoStatus(t *testing.T) {
	const rfRate = 2048000
	const audioRate = 48000
	n := 4096
	i := make([]float32, n)
	q := make([]float32, n)
	gen := mode.NewToneGenerator(rfRate, 0)
	gen.Carrier(i, q)

	src := &oneShotSource{
		mockSource: *newMockSource(),
		block:      source.Block{I: i, Q: q, FreqHz: 1000000},
	}

	var audioBlocks int32
	demod := receiver.NewDemodulator(mode.NewWBFM(rfRate, audioRate, true, 75e-6), func(a mode.Audio, freqHz int64) {
		atomic.AddInt32(&audioBlocks, 1)
	})

	r := NewWithDemodulator(&singleSourceProvider{src: src}, demod, rfRate)

	var stereoEvents int32
	r.OnEvent(func(e Event) {
		if e.Type == EventStereoStatus {
			atomic.AddInt32(&stereoEvents, 1)
		}
	})

	ctx := context.Background()
	require.NoError(t, r.Start(ctx))

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&audioBlocks) > 0
	}, time.Second, time.Millisecond)

	require.NoError(t, r.Stop(ctx))

	assert.GreaterOrEqual(t, atomic.LoadInt32(&stereoEvents), int32(1))
}
