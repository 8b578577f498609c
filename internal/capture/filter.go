package capture

import (
	"strings"

	"github.com/llehouerou/rebinder/internal/binding"
	"github.com/llehouerou/rebinder/internal/device"
)

// Verdict is a filter's decision about one control.
type Verdict int

const (
	// Reject ignores the control; the capture keeps listening.
	Reject Verdict = iota
	// Accept admits the control.
	Accept
	// Cancel ends the capture as cancelled.
	Cancel
	// Mismatch ends the capture because the control came from the wrong
	// device class.
	Mismatch
)

func (v Verdict) String() string {
	switch v {
	case Reject:
		return "reject"
	case Accept:
		return "accept"
	case Cancel:
		return "cancel"
	case Mismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Filter decides whether a control is admitted.
type Filter func(Control) Verdict

// All combines filters. The first verdict other than Accept wins.
func All(filters ...Filter) Filter {
	return func(c Control) Verdict {
		for _, f := range filters {
			if f == nil {
				continue
			}
			if v := f(c); v != Accept {
				return v
			}
		}
		return Accept
	}
}

// ExcludeMouse rejects controls of devices whose name contains "Mouse".
func ExcludeMouse() Filter {
	return func(c Control) Verdict {
		if strings.Contains(c.Device, "Mouse") {
			return Reject
		}
		return Accept
	}
}

// ControllerExpected rejects keyboard and mouse controls.
func ControllerExpected() Filter {
	return func(c Control) Verdict {
		if strings.Contains(c.Device, "Keyboard") || strings.Contains(c.Device, "Mouse") {
			return Reject
		}
		return Accept
	}
}

// MatchClass ends the capture with Mismatch when a control's device class
// differs from class.
func MatchClass(class device.Class) Filter {
	return func(c Control) Verdict {
		if c.Class() != class {
			return Mismatch
		}
		return Accept
	}
}

// CancelThrough ends the capture when a control matches one of paths.
func CancelThrough(layouts Layouts, paths []string) Filter {
	return matchPaths(layouts, paths, Cancel)
}

// ExcludePaths rejects controls matching one of paths.
func ExcludePaths(layouts Layouts, paths []string) Filter {
	return matchPaths(layouts, paths, Reject)
}

func matchPaths(layouts Layouts, paths []string, verdict Verdict) Filter {
	if len(paths) == 0 {
		return nil
	}
	return func(c Control) Verdict {
		formatted := layouts.Path(c)
		raw := c.RawPath()
		for _, p := range paths {
			if binding.SamePath(p, formatted) || binding.SamePath(p, raw) {
				return verdict
			}
		}
		return Accept
	}
}

// Policy is the admission configuration of one rebindable element.
type Policy struct {
	ExcludeMouse       bool
	ControllerExpected bool
	// MatchClass enables the device-class check against SessionClass.
	MatchClass   bool
	SessionClass device.Class
	CancelPaths  []string
	ExcludePaths []string
}

// Filter builds the policy's filter. Excluded paths are checked first, then
// cancel paths, then the device rules.
func (p Policy) Filter(layouts Layouts) Filter {
	filters := []Filter{
		ExcludePaths(layouts, p.ExcludePaths),
		CancelThrough(layouts, p.CancelPaths),
	}
	if p.ExcludeMouse {
		filters = append(filters, ExcludeMouse())
	}
	if p.ControllerExpected {
		filters = append(filters, ControllerExpected())
	}
	if p.MatchClass {
		filters = append(filters, MatchClass(p.SessionClass))
	}
	return All(filters...)
}
