package rebind

const eventBufferSize = 64

// Subscription provides event channels for a subscriber.
type Subscription struct {
	BindingDisplayChanged <-chan BindingDisplayChanged
	RebindStarted         <-chan RebindStarted
	RebindStopped         <-chan RebindStopped
	Done                  <-chan struct{}

	displayCh chan BindingDisplayChanged
	startedCh chan RebindStarted
	stoppedCh chan RebindStopped
	doneCh    chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		displayCh: make(chan BindingDisplayChanged, eventBufferSize),
		startedCh: make(chan RebindStarted, eventBufferSize),
		stoppedCh: make(chan RebindStopped, eventBufferSize),
		doneCh:    make(chan struct{}),
	}
	s.BindingDisplayChanged = s.displayCh
	s.RebindStarted = s.startedCh
	s.RebindStopped = s.stoppedCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

// sendDisplay sends a display event (non-blocking).
func (s *Subscription) sendDisplay(e BindingDisplayChanged) {
	select {
	case s.displayCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendStarted(e RebindStarted) {
	select {
	case s.startedCh <- e:
	default:
	}
}

func (s *Subscription) sendStopped(e RebindStopped) {
	select {
	case s.stoppedCh <- e:
	default:
	}
}
