package core

// Color is the foreground color of a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Colors used by the board, HUD and tile palette.
// Warm tones get brighter as tile values grow.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorOrange
	ColorDarkOrange
	ColorGold
	ColorBeige
	ColorGray
)
