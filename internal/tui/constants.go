package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Card face
	CardMinWidth    = 30 // Narrowest card box
	CardMaxWidth    = 60 // Widest card box
	CardFaceHeight  = 5  // Lines inside the card border
	CardBorderWidth = 2  // Width consumed by the rounded border

	// Lists below the card (conjugations + sentences)
	ListWidthMargin  = 4  // m.width - 4 for the list viewport
	ListHeightOffset = 16 // m.height - 16: header, card, banner, goto line, status bar
	ListMinHeight    = 3

	// Help overlay
	HelpWidthMargin  = 6 // m.width - 6
	HelpHeightMargin = 4 // m.height - 4

	// Goto input
	GotoCharLimit = 6 // Largest accepted card number has six digits
	GotoWidth     = 8

	// Status bar
	StatusMaxLength = 100 // Longer status messages are truncated with "..."
)
