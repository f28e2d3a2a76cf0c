package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a line segment in world coordinates.
type Segment struct {
	From, To r2.Vec
}

// ConeRays are the two edges of the Cherenkov cone drawn from the particle.
type ConeRays struct {
	Upper, Lower Segment
}

// ConeRaysAt anchors the cone edges at p, at +angle and -angle from the
// direction of travel.
func ConeRaysAt(p r2.Vec, angle float64) ConeRays {
	sin, cos := math.Sincos(angle)
	dx := ConeRayLength * cos
	dy := ConeRayLength * sin
	return ConeRays{
		Upper: Segment{From: p, To: r2.Vec{X: p.X + dx, Y: p.Y + dy}},
		Lower: Segment{From: p, To: r2.Vec{X: p.X + dx, Y: p.Y - dy}},
	}
}
