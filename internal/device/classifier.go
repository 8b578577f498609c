package device

import (
	"strings"
	"sync"
)

// Classify maps a raw device name to its class. Matching is a
// case-insensitive substring test against a fixed priority list; names that
// match nothing fall back to KeyboardMouse.
func Classify(name string) Class {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "keyboard"), strings.Contains(n, "mouse"):
		return KeyboardMouse
	case strings.Contains(n, "dual"), strings.Contains(n, "playstation"):
		return Secondary
	case strings.Contains(n, "xinput"), strings.Contains(n, "xbox"), strings.Contains(n, "gamepad"):
		return Gamepad
	default:
		return KeyboardMouse
	}
}

// Classifier classifies device names and remembers the last observed device
// so callers without a fresh event can ask for the current class.
type Classifier struct {
	mu       sync.RWMutex
	lastName string
	last     Class
}

// NewClassifier creates a classifier with no observed device.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify classifies name and records it as the last observed device.
func (c *Classifier) Classify(name string) Class {
	class := Classify(name)
	c.mu.Lock()
	c.lastName = name
	c.last = class
	c.mu.Unlock()
	return class
}

// Current returns the class of the last observed device. Before any
// observation it returns KeyboardMouse.
func (c *Classifier) Current() Class {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// LastDevice returns the raw name of the last observed device.
func (c *Classifier) LastDevice() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastName
}

var defaultClassifier = NewClassifier()

// Default returns the process-wide classifier, for display refreshes that
// have no classifier of their own.
func Default() *Classifier {
	return defaultClassifier
}
