// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of rows kept visible above/below the cursor.
	ScrollMargin = 2

	// BorderWidth and BorderHeight are the space a standard panel border takes.
	BorderWidth  = 2
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead (border + header + separator).
	PanelOverhead = BorderHeight + HeaderHeight

	// MinPanelWidth is the narrowest panel that still shows the binding column.
	MinPanelWidth = 30
)
