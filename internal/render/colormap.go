package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// viridisStops are samples of matplotlib's viridis map at 0, 0.1, ..., 1.
var viridisStops = []colorful.Color{
	{R: 0x44 / 255.0, G: 0x01 / 255.0, B: 0x54 / 255.0},
	{R: 0x48 / 255.0, G: 0x24 / 255.0, B: 0x75 / 255.0},
	{R: 0x41 / 255.0, G: 0x44 / 255.0, B: 0x87 / 255.0},
	{R: 0x35 / 255.0, G: 0x5f / 255.0, B: 0x8d / 255.0},
	{R: 0x2a / 255.0, G: 0x78 / 255.0, B: 0x8e / 255.0},
	{R: 0x21 / 255.0, G: 0x91 / 255.0, B: 0x8c / 255.0},
	{R: 0x22 / 255.0, G: 0xa8 / 255.0, B: 0x84 / 255.0},
	{R: 0x44 / 255.0, G: 0xbf / 255.0, B: 0x70 / 255.0},
	{R: 0x7a / 255.0, G: 0xd1 / 255.0, B: 0x51 / 255.0},
	{R: 0xbd / 255.0, G: 0xdf / 255.0, B: 0x26 / 255.0},
	{R: 0xfd / 255.0, G: 0xe7 / 255.0, B: 0x25 / 255.0},
}

var (
	Black  = colorful.Color{}
	White  = colorful.Color{R: 1, G: 1, B: 1}
	Cyan   = colorful.Color{R: 0, G: 1, B: 1}
	Yellow = colorful.Color{R: 1, G: 1, B: 0}
)

// Viridis maps t in [0, 1] onto the viridis colormap. Values outside the range
// are clamped.
func Viridis(t float64) colorful.Color {
	t = clamp01(t)
	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	if i >= len(viridisStops)-1 {
		return viridisStops[len(viridisStops)-1]
	}
	return viridisStops[i].BlendLab(viridisStops[i+1], pos-float64(i)).Clamped()
}

// OverBlack returns c drawn with the given opacity on a black background.
func OverBlack(c colorful.Color, alpha float64) colorful.Color {
	return c.BlendRgb(Black, 1-clamp01(alpha))
}

// RGBA converts c to an opaque 8-bit colour.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// WithAlpha converts c to a non-premultiplied colour with the given opacity.
func WithAlpha(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha) * 255)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
