package physics

const (
	// Run length and particle motion.
	TotalFrames      = 200
	ParticleStepX    = 0.1
	ParticleStartX   = -4.0
	TrailCapacity    = 30
	ConeRayLength    = 4.0
	EmissionPeriod   = 5
	EmissionXMin     = -8.0 // the particle only emits while its x lies in [EmissionXMin, EmissionXMax]
	EmissionXMax     = 8.0
	InitialRadius    = 0.1
	RadiusGrowthRate = 0.1 // world units per frame, scaled by the medium light speed

	// Wavefront fading. A wavefront is dropped once its alpha reaches the threshold.
	InitialFadeAlpha = 0.2
	FadePerFrame     = 0.01
	FadeThreshold    = 0.03

	// Interference field.
	LatticeWidth     = 200
	LatticeHeight    = 150
	SpatialDamping   = 0.1
	DistanceOffset   = 0.1 // keeps the amplitude finite at r = 0
	Wavelength       = 1.0
	WaveSpeedFactor  = 0.1 // phase speed per frame, scaled by the medium light speed
	ContrastExponent = 0.3
	NormalizeEpsilon = 1e-6
)

// Viewport is the visible world rectangle; the intensity lattice spans it and only
// wavefronts centered inside it contribute to the field.
var Viewport = Rect{XMin: -8, XMax: 8, YMin: -6, YMax: 6}

// ExpiryBounds extends the viewport so wavefronts are not culled exactly as they
// cross the visible edge.
var ExpiryBounds = Rect{XMin: -10, XMax: 10, YMin: -8, YMax: 8}

// Rect is an axis-aligned world rectangle with inclusive edges.
type Rect struct {
	XMin, XMax, YMin, YMax float64
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.XMin && x <= r.XMax && y >= r.YMin && y <= r.YMax
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.YMax - r.YMin }
