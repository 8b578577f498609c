package binding

import "strings"

// FormatPath builds a canonical control path "<layout>/control".
func FormatPath(layout, control string) string {
	return "<" + layout + ">/" + control
}

// ParsePath splits a control path into device layout and control. It accepts
// the canonical "<layout>/control" form and the "/layout/control" form used
// by resolved control paths. Unparseable paths return an empty layout and the
// input as control.
func ParsePath(path string) (layout, control string) {
	switch {
	case strings.HasPrefix(path, "<"):
		end := strings.Index(path, ">")
		if end < 0 {
			return "", path
		}
		layout = path[1:end]
		control = strings.TrimPrefix(path[end+1:], "/")
		return layout, control
	case strings.HasPrefix(path, "/"):
		layout, control, ok := strings.Cut(path[1:], "/")
		if !ok {
			return "", path
		}
		return layout, control
	default:
		return "", path
	}
}

// SamePath reports whether two paths name the same control, regardless of
// which of the two spellings ParsePath accepts each one uses.
func SamePath(a, b string) bool {
	if a == b {
		return true
	}
	la, ca := ParsePath(a)
	lb, cb := ParsePath(b)
	return la != "" && la == lb && ca == cb
}
