package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Named colors shared by every renderer.
var (
	White      = colorful.Color{R: 1, G: 1, B: 1}
	Black      = colorful.Color{}
	PenaltyRed = colorful.Color{R: 1, G: 0.27, B: 0.27}
	StableGrn  = colorful.Color{R: 0.27, G: 1, B: 0.4}
	AsteroidGr = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// ParseColor parses a "#RRGGBB" string. Malformed input yields white so a
// bad palette entry never hides a body.
func ParseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return White
	}
	return c
}

// Fade blends c toward the background by 1-opacity. Terminals have no
// alpha channel, so translucency is approximated this way.
func Fade(c, background colorful.Color, opacity float64) colorful.Color {
	switch {
	case opacity >= 1:
		return c
	case opacity <= 0:
		return background
	}
	return background.BlendRgb(c, opacity).Clamped()
}

// TcellColor converts c to a true-color tcell color.
func TcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
