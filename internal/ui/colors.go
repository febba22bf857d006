package ui

// ANSI escape code accessors for the currently active theme.
// Returning the active theme's codes (empty strings under NoColorTheme)
// lets callers interpolate colors without branching on color support.

// ColorGreen returns the success color escape code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed returns the error color escape code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorYellow returns the warning color escape code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color escape code.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the secondary accent color escape code.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorMagenta returns the informational color escape code.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset escape code.
func ColorReset() string { return GetCurrentTheme().Reset }
