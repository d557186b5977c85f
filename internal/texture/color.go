package texture

import (
	"fmt"
	"image/color"
	"math"
)

// HSL converts a hue in degrees and saturation/lightness in percent to an
// opaque RGB color.
func HSL(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Min(math.Max(s, 0), 100) / 100
	l = math.Min(math.Max(l, 0), 100) / 100

	c := float64((1 - math.Abs(2*l-1)) * s)
	hp := h / 60
	x := float64(c * (1 - math.Abs(math.Mod(hp, 2)-1)))
	m := l - c/2

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: toByte(float64((r + m) * 255)),
		G: toByte(float64((g + m) * 255)),
		B: toByte(float64((b + m) * 255)),
		A: 255,
	}
}

// Hex renders c as a #rrggbb string.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
