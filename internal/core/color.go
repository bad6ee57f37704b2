package core

// Color is a foreground color for a screen cell, mapped to ANSI 256-color
// codes by the terminal layer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGreen
	ColorPurple
)

// MineralColor returns the display color used for ore of the given type.
func MineralColor(m Mineral) Color {
	switch m {
	case Iron:
		return ColorGray
	case Cobalt:
		return ColorBlue
	case Silicon:
		return ColorWhite
	case Titanium:
		return ColorBrightCyan
	case Gold:
		return ColorBrightYellow
	case Uranium:
		return ColorBrightGreen
	case Kronos:
		return ColorBrightMagenta
	default:
		return ColorDefault
	}
}
