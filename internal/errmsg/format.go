// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Rebind operations
	OpRebindStart  Op = "start rebinding"
	OpRebindCancel Op = "cancel rebinding"
	OpRebindApply  Op = "apply binding"
	OpReset        Op = "reset binding"
	OpResetAll     Op = "reset all bindings"

	// Override persistence
	OpOverridesLoad  Op = "load saved bindings"
	OpOverridesSave  Op = "save bindings"
	OpOverridesClear Op = "clear saved bindings"
	OpImport         Op = "import bindings"
	OpExport         Op = "export bindings"
	OpHistory        Op = "read binding history"

	// Setup
	OpAssetLoad  Op = "load action asset"
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open state database"
	OpInitialize Op = "initialize application"

	// Notifications
	OpNotify Op = "send notification"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Wrap returns err annotated with op, for errors that travel further before
// being shown. It returns nil for a nil err.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
