package render

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
)

// Viewport maps world coordinates onto a pixel rectangle. Pixel y grows
// downwards, world y upwards.
type Viewport struct {
	World         physics.Rect
	X, Y          float64 // pixel origin of the plot area
	Width, Height float64 // pixel size of the plot area
}

// ToPixel returns the pixel position of world point p.
func (v Viewport) ToPixel(p r2.Vec) (float64, float64) {
	px := v.X + (p.X-v.World.XMin)/v.World.Width()*v.Width
	py := v.Y + (v.World.YMax-p.Y)/v.World.Height()*v.Height
	return px, py
}

// Scale converts a world length to pixels along x.
func (v Viewport) Scale(length float64) float64 {
	return length / v.World.Width() * v.Width
}
