// Package app is the terminal rebinding menu: it lists rebindable actions,
// drives the rebind engine and feeds keyboard and mouse input to it.
package app

import (
	"time"

	"github.com/llehouerou/rebinder/internal/rebind"
)

// EngineMessage is implemented by messages carrying engine events.
type EngineMessage interface {
	engineMessage()
}

// DisplayChangedMsg carries a BindingDisplayChanged event.
type DisplayChangedMsg rebind.BindingDisplayChanged

func (DisplayChangedMsg) engineMessage() {}

// RebindStartedMsg carries a RebindStarted event.
type RebindStartedMsg rebind.RebindStarted

func (RebindStartedMsg) engineMessage() {}

// RebindStoppedMsg carries a RebindStopped event.
type RebindStoppedMsg rebind.RebindStopped

func (RebindStoppedMsg) engineMessage() {}

// EngineClosedMsg is sent once the engine subscription is closed.
type EngineClosedMsg struct{}

func (EngineClosedMsg) engineMessage() {}

// TickMsg refreshes time-relative text such as the last save age.
type TickMsg time.Time

// PulseMsg advances the listening animation.
type PulseMsg struct{}

// NotifyResultMsg reports the outcome of a desktop notification.
type NotifyResultMsg struct {
	Err error
}

// FlushResultMsg reports the outcome of an explicit save.
type FlushResultMsg struct {
	Err error
}
