package capture

import (
	"sync"
	"time"
)

// FrameClock drives the capture loop: it yields once per frame.
type FrameClock interface {
	Now() time.Time
	// Frames returns a channel ticking once per frame and a stop function.
	Frames() (<-chan time.Time, func())
}

// TickerClock is a FrameClock backed by time.Ticker.
type TickerClock struct {
	interval time.Duration
}

// NewTickerClock creates a clock ticking rate times per second.
func NewTickerClock(rate int) *TickerClock {
	if rate <= 0 {
		rate = 60
	}
	return &TickerClock{interval: time.Second / time.Duration(rate)}
}

func (c *TickerClock) Now() time.Time { return time.Now() }

func (c *TickerClock) Frames() (<-chan time.Time, func()) {
	t := time.NewTicker(c.interval)
	return t.C, t.Stop
}

// ManualClock is a FrameClock advanced explicitly, for tests.
type ManualClock struct {
	mu   sync.Mutex
	now  time.Time
	subs map[chan time.Time]struct{}
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, subs: make(map[chan time.Time]struct{})}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Frames() (<-chan time.Time, func()) {
	ch := make(chan time.Time, 1)
	c.mu.Lock()
	c.subs[ch] = struct{}{}
	c.mu.Unlock()
	return ch, func() {
		c.mu.Lock()
		delete(c.subs, ch)
		c.mu.Unlock()
	}
}

// Advance moves time forward by d and emits one frame to every subscriber.
// A frame is dropped for a subscriber that has not consumed the previous one.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	for ch := range c.subs {
		select {
		case ch <- c.now:
		default:
		}
	}
}

// Subscribers returns the number of active frame subscriptions.
func (c *ManualClock) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
