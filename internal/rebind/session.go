package rebind

import (
	"context"
	"errors"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/capture"
	"github.com/llehouerou/rebinder/internal/conflict"
	"github.com/llehouerou/rebinder/internal/device"
)

// session is one live rebind. It walks its targets in order, one capture
// per target; the first capture that does not produce a path ends it.
type session struct {
	engine  *Engine
	element Element
	action  *binding.Action
	targets []int
	class   device.Class
	// listener is registered before the session starts and shared by the
	// captures of every target.
	listener capture.Listener

	cancel context.CancelFunc
	done   chan struct{}
}

// stop cancels the session and waits until it has released everything.
func (s *session) stop() {
	s.cancel()
	<-s.done
}

func (s *session) policy() capture.Policy {
	cfg := s.engine.cfg
	return capture.Policy{
		ExcludeMouse:       s.element.ExcludeMouse,
		ControllerExpected: s.element.ControllerExpected,
		MatchClass:         cfg.MatchDeviceClass && s.element.ClassAware,
		SessionClass:       s.class,
		CancelPaths:        cfg.CancelPaths,
		ExcludePaths:       cfg.ExcludePaths,
	}
}

func (s *session) run(ctx context.Context) {
	e := s.engine
	defer close(s.done)
	defer s.cancel()
	defer s.listener.Close()

	stopped := RebindStopped{ElementID: s.element.ID, Outcome: Applied}
	filter := s.policy().Filter(e.cfg.Layouts)

	for _, idx := range s.targets {
		e.mu.Lock()
		prev := s.action.EffectivePath(idx)
		slot, _ := s.action.Slot(idx)
		e.mu.Unlock()

		started := RebindStarted{ElementID: s.element.ID, Index: idx}
		if slot.PartOfComposite {
			started.Part = slot.Name
		}
		e.broadcast(func(sub *Subscription) { sub.sendStarted(started) })

		res := capture.Capture(ctx, capture.Options{
			Source:   e.source,
			Listener: s.listener,
			Clock:    e.clock,
			Filter:   filter,
			Layouts:  e.cfg.Layouts,
			Timeout:  e.cfg.Timeout,
			Logger:   e.logger,
		})
		if res.Outcome != capture.Accepted {
			stopped.Err = res.Err()
			stopped.Outcome = Cancelled
			if res.Outcome == capture.Mismatched {
				stopped.Outcome = DeviceMismatch
			}
			e.logger.Info("rebind abandoned", "element", s.element.ID, "slot", idx, "reason", res.Outcome.String())
			break
		}

		if err := s.commit(idx, res.Path, prev); err != nil {
			stopped.Outcome = Failed
			stopped.Err = err
			e.logger.Error("rebind failed", "element", s.element.ID, "slot", idx, "path", res.Path, "error", err)
			break
		}
		stopped.Path = res.Path
		e.logger.Info("binding applied", "element", s.element.ID, "slot", idx, "from", prev, "to", res.Path)
	}

	e.mu.Lock()
	s.action.Enable()
	if e.session == s {
		e.session = nil
	}
	e.mu.Unlock()

	e.broadcast(func(sub *Subscription) { sub.sendStopped(stopped) })
	e.Refresh()
}

// commit resolves conflicts and applies the override. The override is the
// last write, after every swap succeeded.
func (s *session) commit(idx int, path, prev string) error {
	e := s.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	plan, err := conflict.Resolve(s.action, idx, path, prev)
	if err != nil {
		return err
	}
	if err := plan.Apply(); err != nil {
		return err
	}
	for _, c := range plan.Changes() {
		e.logger.Debug("binding swapped", "action", c.Action.String(), "slot", c.Index,
			"from", c.From, "to", c.To, "sweep", c.Sweep.String())
	}
	if err := s.action.ApplyOverride(idx, path); err != nil {
		return errors.Join(conflict.ErrSwapFailure, err)
	}
	e.persistLocked()
	return nil
}
