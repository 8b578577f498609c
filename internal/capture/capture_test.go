package capture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	hub   *Hub
	clock *ManualClock
	done  chan Result
}

func startCapture(t *testing.T, ctx context.Context, policy Policy, timeout time.Duration) *harness {
	t.Helper()
	h := &harness{
		hub:   NewHub(),
		clock: NewManualClock(time.Unix(0, 0)),
		done:  make(chan Result, 1),
	}
	go func() {
		h.done <- Capture(ctx, Options{
			Source:  h.hub,
			Clock:   h.clock,
			Filter:  policy.Filter(DefaultLayouts()),
			Layouts: DefaultLayouts(),
			Timeout: timeout,
		})
	}()
	require.Eventually(t, func() bool {
		return h.hub.Listeners() == 1 && h.clock.Subscribers() == 1
	}, time.Second, time.Millisecond)
	return h
}

// frame advances one frame and returns the result if the capture ended.
func (h *harness) frame(d time.Duration) (Result, bool) {
	h.clock.Advance(d)
	select {
	case r := <-h.done:
		return r, true
	case <-time.After(20 * time.Millisecond):
		return Result{}, false
	}
}

func (h *harness) wait(t *testing.T, step time.Duration) Result {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if r, ok := h.frame(step); ok {
			return r
		}
		select {
		case <-deadline:
			t.Fatal("capture did not finish")
		default:
		}
	}
}

func TestCapture_AcceptsFirstQualifying(t *testing.T) {
	h := startCapture(t, context.Background(), Policy{ExcludeMouse: true}, 0)

	h.hub.Press(mouseLeft)
	h.hub.Press(xinputSouth)
	h.hub.Press(keyboardSpace)

	r := h.wait(t, time.Millisecond)
	assert.Equal(t, Accepted, r.Outcome)
	assert.Equal(t, "<Gamepad>/buttonSouth", r.Path)
	assert.NoError(t, r.Err())
	assert.Equal(t, 0, h.hub.Listeners())
	assert.Equal(t, 0, h.clock.Subscribers())
}

func TestCapture_Timeout(t *testing.T) {
	h := startCapture(t, context.Background(), Policy{}, 5*time.Second)

	_, done := h.frame(4 * time.Second)
	require.False(t, done)

	r := h.wait(t, time.Second)
	assert.Equal(t, TimedOut, r.Outcome)
	assert.Empty(t, r.Path)
	assert.ErrorIs(t, r.Err(), ErrTimeout)
	assert.Equal(t, 0, h.hub.Listeners())
}

func TestCapture_RejectedInputsDoNotEnd(t *testing.T) {
	h := startCapture(t, context.Background(), Policy{ControllerExpected: true}, 0)

	h.hub.Press(keyboardSpace)
	h.hub.Press(mouseLeft)
	_, done := h.frame(time.Millisecond)
	assert.False(t, done)

	h.hub.Press(dualSouth)
	r := h.wait(t, time.Millisecond)
	assert.Equal(t, "<DualShockGamepad>/buttonSouth", r.Path)
}

func TestCapture_CancelThrough(t *testing.T) {
	h := startCapture(t, context.Background(), Policy{CancelPaths: []string{"<Keyboard>/escape"}}, 0)
	h.hub.Press(keyboardEsc)
	r := h.wait(t, time.Millisecond)
	assert.Equal(t, Cancelled, r.Outcome)
	assert.ErrorIs(t, r.Err(), ErrCancelled)
}

func TestCapture_Mismatch(t *testing.T) {
	h := startCapture(t, context.Background(), Policy{MatchClass: true}, 0)
	h.hub.Press(dualSouth)
	r := h.wait(t, time.Millisecond)
	assert.Equal(t, Mismatched, r.Outcome)
	assert.ErrorIs(t, r.Err(), ErrDeviceMismatch)
}

func TestCapture_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := startCapture(t, ctx, Policy{}, 0)
	cancel()

	select {
	case r := <-h.done:
		assert.Equal(t, Cancelled, r.Outcome)
	case <-time.After(time.Second):
		t.Fatal("capture ignored cancellation")
	}
	assert.Equal(t, 0, h.hub.Listeners())
}

func TestCapture_SharedListenerStaysOpen(t *testing.T) {
	hub := NewHub()
	clock := NewManualClock(time.Unix(0, 0))
	listener := hub.Listen()
	defer listener.Close()

	// Presses before the capture runs are already buffered.
	require.True(t, hub.Press(keyboardSpace))

	done := make(chan Result, 1)
	go func() {
		done <- Capture(context.Background(), Options{
			Source:   hub,
			Listener: listener,
			Clock:    clock,
			Layouts:  DefaultLayouts(),
		})
	}()
	require.Eventually(t, func() bool { return clock.Subscribers() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, hub.Listeners())

	clock.Advance(time.Millisecond)
	select {
	case r := <-done:
		assert.Equal(t, Accepted, r.Outcome)
		assert.Equal(t, "<Keyboard>/space", r.Path)
	case <-time.After(time.Second):
		t.Fatal("capture did not finish")
	}
	assert.Equal(t, 1, hub.Listeners(), "caller owns the listener")
}
