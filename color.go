package cubeviz

import "fmt"

// Color represents a sticker color. None marks a piece side without a sticker.
type Color byte

const (
	None   Color = 0
	Blue   Color = 1 // Left face when solved
	Yellow Color = 2 // Up face when solved
	Red    Color = 3 // Front face when solved
	White  Color = 4 // Down face when solved
	Green  Color = 5 // Right face when solved
	Orange Color = 6 // Back face when solved
)

// Colors lists the six sticker colors in facelet face order.
var Colors = [6]Color{Blue, Yellow, Red, White, Green, Orange}

// String returns the facelet letter for the color, or "-" for None.
func (c Color) String() string {
	switch c {
	case Blue:
		return "B"
	case Yellow:
		return "Y"
	case Red:
		return "R"
	case White:
		return "W"
	case Green:
		return "G"
	case Orange:
		return "O"
	default:
		return "-"
	}
}

// Name returns the lowercase color name.
func (c Color) Name() string {
	switch c {
	case Blue:
		return "blue"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	case White:
		return "white"
	case Green:
		return "green"
	case Orange:
		return "orange"
	default:
		return "none"
	}
}

// RGB returns the display color. None renders black.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case Blue:
		return 31, 68, 166
	case Yellow:
		return 248, 214, 73
	case Red:
		return 167, 41, 55
	case White:
		return 255, 255, 255
	case Green:
		return 70, 152, 81
	case Orange:
		return 235, 99, 45
	default:
		return 0, 0, 0
	}
}

// Hex returns the display color as #rrggbb.
func (c Color) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ParseColor maps a facelet letter to its color.
func ParseColor(ch byte) (Color, bool) {
	switch ch {
	case 'B':
		return Blue, true
	case 'Y':
		return Yellow, true
	case 'R':
		return Red, true
	case 'W':
		return White, true
	case 'G':
		return Green, true
	case 'O':
		return Orange, true
	default:
		return None, false
	}
}
