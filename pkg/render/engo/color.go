package engo

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// toNRGBA converts c to an image color with the given opacity.
func toNRGBA(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(min(max(alpha, 0), 1)*255 + 0.5)}
}
