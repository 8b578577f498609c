// Package rebind drives interactive rebinds: it resolves the slot an element
// edits, captures the next qualifying input, resolves conflicts, applies the
// override and tells the UI about it.
package rebind

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/capture"
	"github.com/llehouerou/rebinder/internal/device"
)

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrDuplicateID    = errors.New("duplicate element id")
	ErrClosed         = errors.New("engine closed")
)

// Persister receives the override blob after every change.
// *overrides.Store implements it.
type Persister interface {
	Schedule(blob string)
}

// CaptureConfig configures the captures of every session.
type CaptureConfig struct {
	Timeout time.Duration
	// MatchDeviceClass rejects input from another class than the active one
	// for class-aware elements.
	MatchDeviceClass bool
	CancelPaths      []string
	ExcludePaths     []string
	Layouts          capture.Layouts
}

// Options configures an Engine. Asset and Source are required.
type Options struct {
	Asset      *binding.Asset
	Classifier *device.Classifier
	Monitor    *device.Monitor
	Source     capture.Source
	Clock      capture.FrameClock
	Persister  Persister
	Logger     *slog.Logger
	Capture    CaptureConfig
}

// Engine owns the rebind sessions of one asset. At most one session is live
// per engine; starting another cancels it first.
type Engine struct {
	asset      *binding.Asset
	classifier *device.Classifier
	monitor    *device.Monitor
	source     capture.Source
	clock      capture.FrameClock
	persister  Persister
	logger     *slog.Logger
	cfg        CaptureConfig

	// startMu serializes StartRebind/CancelRebind/Close so that tearing down
	// a session and starting the next cannot interleave.
	startMu sync.Mutex

	// mu guards the asset and everything below.
	mu       sync.Mutex
	elements []Element
	byID     map[string]int
	session  *session
	dirty    bool
	closed   bool

	subs   []*Subscription
	subsMu sync.RWMutex
}

// New creates an engine.
func New(opts Options) (*Engine, error) {
	if opts.Asset == nil {
		return nil, fmt.Errorf("%w: no asset", binding.ErrUnresolvedAction)
	}
	if opts.Source == nil {
		return nil, errors.New("rebind: no input source")
	}
	e := &Engine{
		asset:      opts.Asset,
		classifier: opts.Classifier,
		monitor:    opts.Monitor,
		source:     opts.Source,
		clock:      opts.Clock,
		persister:  opts.Persister,
		logger:     opts.Logger,
		cfg:        opts.Capture,
		byID:       make(map[string]int),
	}
	if e.classifier == nil {
		e.classifier = device.Default()
	}
	if e.monitor == nil {
		e.monitor = device.NewMonitor(e.classifier)
	}
	if e.clock == nil {
		e.clock = capture.NewTickerClock(60)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.logger = e.logger.With("component", "rebind", "asset", e.asset.Name())
	if e.cfg.Layouts.Secondary == "" && e.cfg.Layouts.Gamepad == "" {
		e.cfg.Layouts = capture.DefaultLayouts()
	}

	// Observers run while mu is held: every mutation goes through the engine.
	e.asset.OnChange(func(*binding.Action) { e.dirty = true })
	e.monitor.OnChange(func(ch device.Change) {
		e.logger.Debug("device changed", "device", ch.Device, "class", ch.Class.String())
		e.Refresh()
	})
	return e, nil
}

// Register adds elements. IDs must be unique.
func (e *Engine) Register(elements ...Element) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, el := range elements {
		if _, ok := e.byID[el.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, el.ID)
		}
		e.byID[el.ID] = len(e.elements)
		e.elements = append(e.elements, el)
	}
	return nil
}

// Elements returns the registered elements in registration order.
func (e *Engine) Elements() []Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Element(nil), e.elements...)
}

// Asset returns the engine's asset. Callers must not mutate it directly
// while the engine is running.
func (e *Engine) Asset() *binding.Asset { return e.asset }

// Layouts returns the layouts captured controls are normalized with.
func (e *Engine) Layouts() capture.Layouts { return e.cfg.Layouts }

// Class returns the active device class.
func (e *Engine) Class() device.Class { return e.classifier.Current() }

// Active returns the element with a live session, or "".
func (e *Engine) Active() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return ""
	}
	return e.session.element.ID
}

func (e *Engine) elementLocked(id string) (Element, error) {
	i, ok := e.byID[id]
	if !ok {
		return Element{}, fmt.Errorf("%w: %q", ErrUnknownElement, id)
	}
	return e.elements[i], nil
}

// Display returns the current display of an element.
func (e *Engine) Display(id string) (BindingDisplayChanged, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	el, err := e.elementLocked(id)
	if err != nil {
		return BindingDisplayChanged{}, err
	}
	return el.display(e.asset, e.classifier.Current())
}

// StartRebind starts an interactive rebind for an element. Any live session
// is cancelled first. The session's listener is registered before it
// returns, so every later press reaches it. Unresolvable elements are logged and reported without side effects.
func (e *Engine) StartRebind(id string) error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	el, err := e.elementLocked(id)
	if err == nil {
		_, _, err = el.resolve(e.asset, e.classifier.Current())
	}
	if err != nil {
		e.mu.Unlock()
		e.logger.Error("rebind not started", "element", id, "error", err)
		return err
	}
	old := e.session
	e.mu.Unlock()

	if old != nil {
		old.stop()
	}

	e.mu.Lock()
	class := e.classifier.Current()
	action, idx, err := el.resolve(e.asset, class)
	if err != nil {
		e.mu.Unlock()
		e.logger.Error("rebind not started", "element", id, "error", err)
		return err
	}
	targets := []int{idx}
	if parts := action.Parts(idx); parts != nil {
		targets = parts
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		engine:   e,
		element:  el,
		action:   action,
		targets:  targets,
		class:    class,
		listener: e.source.Listen(),
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	e.session = s
	action.Disable()
	e.mu.Unlock()

	e.logger.Info("rebind started", "element", id, "action", action.String(), "slot", idx, "class", class.String())
	go s.run(ctx)
	return nil
}

// CancelRebind cancels the element's live session, if any, and waits for it
// to end.
func (e *Engine) CancelRebind(id string) error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	e.mu.Lock()
	if _, err := e.elementLocked(id); err != nil {
		e.mu.Unlock()
		return err
	}
	s := e.session
	e.mu.Unlock()

	if s != nil && s.element.ID == id {
		s.stop()
	}
	return nil
}

// ResetToDefault removes the override of the element's slot. On a composite
// head the overrides of all its parts are removed too.
func (e *Engine) ResetToDefault(id string) error {
	e.mu.Lock()
	el, err := e.elementLocked(id)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	action, idx, err := el.resolve(e.asset, e.classifier.Current())
	if err != nil {
		e.mu.Unlock()
		e.logger.Error("reset failed", "element", id, "error", err)
		return err
	}
	for _, i := range append([]int{idx}, action.Parts(idx)...) {
		if err := action.RemoveOverride(i); err != nil {
			e.mu.Unlock()
			return err
		}
	}
	e.persistLocked()
	e.mu.Unlock()

	e.logger.Info("binding reset", "element", id, "action", action.String(), "slot", idx)
	e.flush()
	return nil
}

// ResetAll removes every override of the asset.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	e.asset.RemoveAllOverrides()
	e.persistLocked()
	e.mu.Unlock()

	e.logger.Info("all bindings reset")
	e.flush()
}

// OverridesBlob serializes the asset's overrides.
func (e *Engine) OverridesBlob() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.asset.SaveOverrides()
}

// ApplyOverridesBlob replaces the asset's overrides with blob. It does not
// persist: the blob is expected to come from the store.
func (e *Engine) ApplyOverridesBlob(blob string) error {
	e.mu.Lock()
	err := e.asset.LoadOverrides(blob)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.flush()
	return nil
}

// DeviceChanged reports the newly active device. Repeats are ignored; every
// accepted change refreshes all displays.
func (e *Engine) DeviceChanged(name string) bool {
	return e.monitor.DeviceChanged(name)
}

// Refresh emits a BindingDisplayChanged event for every element.
func (e *Engine) Refresh() {
	e.mu.Lock()
	e.dirty = false
	class := e.classifier.Current()
	events := make([]BindingDisplayChanged, 0, len(e.elements))
	for _, el := range e.elements {
		ev, err := el.display(e.asset, class)
		if err != nil {
			e.logger.Warn("element not displayable", "element", el.ID, "error", err)
			continue
		}
		events = append(events, ev)
	}
	e.mu.Unlock()

	for _, ev := range events {
		e.broadcast(func(s *Subscription) { s.sendDisplay(ev) })
	}
}

// flush refreshes displays if an observed override changed.
func (e *Engine) flush() {
	e.mu.Lock()
	dirty := e.dirty
	e.mu.Unlock()
	if dirty {
		e.Refresh()
	}
}

func (e *Engine) persistLocked() {
	if e.persister == nil || !e.dirty {
		return
	}
	e.persister.Schedule(e.asset.SaveOverrides())
}

// Subscribe creates a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	e.subs = append(e.subs, sub)
	return sub
}

func (e *Engine) broadcast(send func(*Subscription)) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, sub := range e.subs {
		send(sub)
	}
}

// Close cancels the live session and closes every subscription.
func (e *Engine) Close() error {
	e.startMu.Lock()
	defer e.startMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	s := e.session
	e.mu.Unlock()

	if s != nil {
		s.stop()
	}

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()
	return nil
}
