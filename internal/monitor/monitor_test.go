package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedantwpatil/shake-to-enlarge/internal/cursor"
	"github.com/vedantwpatil/shake-to-enlarge/internal/overlay"
	"github.com/vedantwpatil/shake-to-enlarge/internal/tracking"
)

var refined = tracking.Thresholds{Distance: 75, Edges: 3, Policy: tracking.PolicyReversal}

// scriptedPointer replays xs and then holds the last position.
type scriptedPointer struct {
	mu    sync.Mutex
	xs    []int
	calls int
}

func (p *scriptedPointer) Position() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.calls
	if i >= len(p.xs) {
		i = len(p.xs) - 1
	}
	p.calls++
	return p.xs[i], 0
}

func (p *scriptedPointer) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakeOverlay struct {
	mu         sync.Mutex
	delay      time.Duration
	enlargeErr error
	enlarges   int
	reverts    int
}

func (o *fakeOverlay) Enlarge() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enlarges++
	return o.enlargeErr
}

func (o *fakeOverlay) Revert() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reverts++
	return nil
}

func (o *fakeOverlay) Delay() time.Duration { return o.delay }

func (o *fakeOverlay) counts() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enlarges, o.reverts
}

func newMonitor(clock clockwork.Clock, ov Overlay, xs ...int) (*Monitor, *scriptedPointer) {
	p := &scriptedPointer{xs: xs}
	m := New(p, ov, Options{
		Interval:   DefaultInterval,
		Thresholds: refined,
		Clock:      clock,
		Logger:     zerolog.Nop(),
	})
	return m, p
}

func fired(t clockwork.Timer) bool {
	select {
	case <-t.Chan():
		return true
	default:
		return false
	}
}

func TestMonitor_TriggerArmsRevert(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ov := &fakeOverlay{delay: 1500 * time.Millisecond}
	m, _ := newMonitor(fc, ov, 0, 100, 0, 100)
	m.start()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.tick())
	}

	enlarges, _ := ov.counts()
	assert.Equal(t, 1, enlarges)
	assert.Equal(t, 1, m.Triggers())
	require.NotNil(t, m.revert)

	fc.Advance(1499 * time.Millisecond)
	assert.False(t, fired(m.revert))
	fc.Advance(2 * time.Millisecond)
	require.Eventually(t, func() bool { return fired(m.revert) }, time.Second, time.Millisecond)

	m.expire()
	_, reverts := ov.counts()
	assert.Equal(t, 1, reverts)
	assert.Nil(t, m.revert)
}

func TestMonitor_ShakeWhileEnlargedExtends(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ov := &fakeOverlay{delay: time.Second}
	m, _ := newMonitor(fc, ov, 0, 100, 0, 100, 0, 100, 0)
	m.start()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.tick())
	}
	require.NotNil(t, m.revert)

	fc.Advance(600 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, m.tick())
	}

	enlarges, _ := ov.counts()
	assert.Equal(t, 1, enlarges, "no reinstall while enlarged")
	assert.Equal(t, 2, m.Triggers())

	fc.Advance(600 * time.Millisecond)
	assert.False(t, fired(m.revert), "revert pushed back by the second shake")

	fc.Advance(401 * time.Millisecond)
	require.Eventually(t, func() bool { return fired(m.revert) }, time.Second, time.Millisecond)
}

func TestMonitor_NoTriggerOnDrift(t *testing.T) {
	ov := &fakeOverlay{delay: time.Second}
	m, _ := newMonitor(clockwork.NewFakeClock(), ov, 0, 200, 400, 600, 800, 1000, 1200)
	m.start()

	for i := 0; i < 6; i++ {
		require.NoError(t, m.tick())
	}

	enlarges, _ := ov.counts()
	assert.Zero(t, enlarges)
	assert.Nil(t, m.revert)
}

func TestMonitor_ShutdownRevertsActiveOverlay(t *testing.T) {
	ov := &fakeOverlay{delay: time.Second}
	m, _ := newMonitor(clockwork.NewFakeClock(), ov, 0, 100, 0, 100)
	m.start()
	for i := 0; i < 3; i++ {
		require.NoError(t, m.tick())
	}

	m.shutdown()
	m.shutdown()

	_, reverts := ov.counts()
	assert.Equal(t, 1, reverts)
}

func TestMonitor_ShutdownWhileIdle(t *testing.T) {
	ov := &fakeOverlay{delay: time.Second}
	m, _ := newMonitor(clockwork.NewFakeClock(), ov, 0)
	m.start()

	m.shutdown()

	_, reverts := ov.counts()
	assert.Zero(t, reverts)
}

func TestMonitor_RunEnlargesAndReverts(t *testing.T) {
	fc := clockwork.NewFakeClock()
	ov := &fakeOverlay{delay: time.Second}
	m, p := newMonitor(fc, ov, 0, 100, 0, 100)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return p.Calls() >= 1 }, time.Second, time.Millisecond)
	for i := 1; i <= 3; i++ {
		fc.Advance(DefaultInterval + time.Millisecond)
		want := i + 1
		require.Eventually(t, func() bool { return p.Calls() >= want }, time.Second, time.Millisecond)
	}
	require.Eventually(t, func() bool {
		enlarges, _ := ov.counts()
		return enlarges == 1
	}, time.Second, time.Millisecond)

	fc.Advance(time.Second + time.Millisecond)
	require.Eventually(t, func() bool {
		_, reverts := ov.counts()
		return reverts == 1
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestMonitor_RunStopsOnAbort(t *testing.T) {
	fc := clockwork.NewFakeClock()
	abort := &overlay.AbortError{Kind: cursor.Hand, Err: cursor.ErrResourceLoad}
	ov := &fakeOverlay{delay: time.Second, enlargeErr: abort}
	m, p := newMonitor(fc, ov, 0, 100, 0, 100)

	done := make(chan error, 1)
	go func() { done <- m.Run(context.Background()) }()

	require.Eventually(t, func() bool { return p.Calls() >= 1 }, time.Second, time.Millisecond)
	for i := 1; i <= 3; i++ {
		fc.Advance(DefaultInterval + time.Millisecond)
		want := i + 1
		require.Eventually(t, func() bool { return p.Calls() >= want }, time.Second, time.Millisecond)
	}

	select {
	case err := <-done:
		var abortErr *overlay.AbortError
		require.True(t, errors.As(err, &abortErr))
		assert.Equal(t, cursor.Hand, abortErr.Kind)
	case <-time.After(time.Second):
		t.Fatal("monitor kept running after abort")
	}

	_, reverts := ov.counts()
	assert.Equal(t, 1, reverts, "partially enlarged cursors are restored")
}
