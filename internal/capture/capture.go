package capture

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrTimeout        = errors.New("no qualifying input before timeout")
	ErrDeviceMismatch = errors.New("input from a different device class")
	ErrCancelled      = errors.New("capture cancelled")
)

// Outcome is how a capture ended.
type Outcome int

const (
	Accepted Outcome = iota
	TimedOut
	Cancelled
	Mismatched
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	case Mismatched:
		return "mismatched"
	default:
		return "unknown"
	}
}

// Result is the outcome of a capture. Path is set only when Accepted.
type Result struct {
	Outcome Outcome
	Path    string
	Control Control
}

// Err maps the outcome to an error, nil when accepted.
func (r Result) Err() error {
	switch r.Outcome {
	case Accepted:
		return nil
	case TimedOut:
		return ErrTimeout
	case Mismatched:
		return ErrDeviceMismatch
	default:
		return ErrCancelled
	}
}

// Options configures a capture.
type Options struct {
	Source Source
	// Listener, when set, is used instead of a new listener from Source and
	// is left open. Callers that chain captures register it up front so no
	// press falls between two of them.
	Listener Listener
	Clock    FrameClock
	Filter   Filter
	Layouts  Layouts
	// Timeout of zero or less waits until cancelled.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Capture waits for the first control admitted by the filter. It suspends
// once per frame; controls pressed between frames are examined in order on
// the next frame. Cancelling ctx ends the capture as Cancelled. A listener
// opened by Capture is released on every exit path.
func Capture(ctx context.Context, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	filter := opts.Filter
	if filter == nil {
		filter = All()
	}

	listener := opts.Listener
	if listener == nil {
		listener = opts.Source.Listen()
		defer listener.Close()
	}
	frames, stop := opts.Clock.Frames()
	defer stop()

	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = opts.Clock.Now().Add(opts.Timeout)
	}

	for {
		select {
		case <-ctx.Done():
			return Result{Outcome: Cancelled}
		case now := <-frames:
			if r, done := drain(listener, filter, opts.Layouts, logger); done {
				return r
			}
			if !deadline.IsZero() && !now.Before(deadline) {
				return Result{Outcome: TimedOut}
			}
		}
	}
}

func drain(l Listener, filter Filter, layouts Layouts, logger *slog.Logger) (Result, bool) {
	for {
		select {
		case c := <-l.Controls():
			v := filter(c)
			logger.Debug("control pressed", "device", c.Device, "control", c.Name, "verdict", v.String())
			switch v {
			case Accept:
				return Result{Outcome: Accepted, Path: layouts.Path(c), Control: c}, true
			case Cancel:
				return Result{Outcome: Cancelled, Control: c}, true
			case Mismatch:
				return Result{Outcome: Mismatched, Control: c}, true
			}
		default:
			return Result{}, false
		}
	}
}
