package tui

// Color constants for the taskdeck TUI theme
const (
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#10211F" // Dark teal
	ColorBorder         = "#2F4A47" // Muted teal-grey

	// Text Colors
	ColorPrimaryText   = "#E8F0EE" // Field labels, user input, titles
	ColorSecondaryText = "#A8BDB9" // Secondary text
	ColorDisabledText  = "#5F7572" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (teal theme)
	ColorAccentMain   = "#14B8A6" // Logo, accent elements, active borders
	ColorAccentBright = "#5EEAD4" // Hover, highlights, selected column

	// State Colors
	ColorError   = "#EF4444" // Validation errors, overdue
	ColorSuccess = "#22C55E" // Done tasks, confirmations
	ColorWarning = "#F59E0B" // Due soon, running timers
)
