package physics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Lattice is the fixed set of sample points the intensity field is evaluated on.
// Both axes include their end points.
type Lattice struct {
	Bounds Rect
	Xs, Ys []float64
}

// NewLattice spreads width x height samples evenly over bounds.
func NewLattice(width, height int, bounds Rect) *Lattice {
	return &Lattice{
		Bounds: bounds,
		Xs:     floats.Span(make([]float64, width), bounds.XMin, bounds.XMax),
		Ys:     floats.Span(make([]float64, height), bounds.YMin, bounds.YMax),
	}
}

// DefaultLattice is the 200x150 lattice over the viewport.
func DefaultLattice() *Lattice {
	return NewLattice(LatticeWidth, LatticeHeight, Viewport)
}

func (l *Lattice) Width() int  { return len(l.Xs) }
func (l *Lattice) Height() int { return len(l.Ys) }

// Field is a row-major scalar field over a lattice. Row 0 is the lowest y.
type Field struct {
	Width, Height int
	Values        []float64
}

func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// Idx returns the index of sample (ix, iy) in Values.
func (f *Field) Idx(ix, iy int) int {
	return ix + iy*f.Width
}

func (f *Field) At(ix, iy int) float64 {
	return f.Values[f.Idx(ix, iy)]
}

// Clone returns a deep copy of f.
func (f *Field) Clone() *Field {
	out := NewField(f.Width, f.Height)
	copy(out.Values, f.Values)
	return out
}

// IntensityField evaluates the interference of the active wavefronts.
type IntensityField struct {
	lattice   *Lattice
	waveSpeed float64

	// scratch accumulators reused across frames
	re, im []float64
}

func NewIntensityField(lattice *Lattice, mediumLightSpeed float64) *IntensityField {
	n := lattice.Width() * lattice.Height()
	return &IntensityField{
		lattice:   lattice,
		waveSpeed: mulRounded(WaveSpeedFactor, mediumLightSpeed),
		re:        make([]float64, n),
		im:        make([]float64, n),
	}
}

func (f *IntensityField) Lattice() *Lattice { return f.lattice }

// Compute returns a new field normalized to [0, 1]. Each wavefront centered in
// the viewport adds exp(-k r)/(r + d) * exp(i 2π (r - age v)/λ) to a complex
// accumulator per sample; the squared magnitude is contrast-compressed and
// divided by its maximum.
func (f *IntensityField) Compute(waves []WavefrontView) *Field {
	lat := f.lattice
	out := NewField(lat.Width(), lat.Height())
	clear(f.re)
	clear(f.im)

	for _, w := range waves {
		cx, cy := w.Center.X, w.Center.Y
		if !Viewport.Contains(cx, cy) {
			continue
		}
		shift := mulRounded(float64(w.Age), f.waveSpeed)
		for iy, y := range lat.Ys {
			dy := y - cy
			row := iy * lat.Width()
			for ix, x := range lat.Xs {
				dx := x - cx
				r := math.Sqrt(dx*dx + dy*dy)
				amp := math.Exp(-SpatialDamping*r) / (r + DistanceOffset)
				sin, cos := math.Sincos(2 * math.Pi * (r - shift) / Wavelength)
				f.re[row+ix] += amp * cos
				f.im[row+ix] += amp * sin
			}
		}
	}

	for i := range out.Values {
		power := f.re[i]*f.re[i] + f.im[i]*f.im[i]
		out.Values[i] = math.Pow(power, ContrastExponent)
	}
	scale := floats.Max(out.Values) + NormalizeEpsilon
	floats.Scale(1/scale, out.Values)
	return out
}
