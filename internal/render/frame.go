package render

import (
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/cherenkov-visualization/internal/config"
	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
)

const (
	titleHeight = 24
	title       = "Cherenkov Radiation Simulation"
)

// Rasterizer draws frame states onto paletted images for GIF export. Each
// lattice sample becomes a Scale x Scale block of pixels.
type Rasterizer struct {
	Scale   int
	Summary string

	palette color.Palette
	view    Viewport
	bounds  image.Rectangle
}

func NewRasterizer(lattice *physics.Lattice, scale int, summary string) *Rasterizer {
	w := lattice.Width() * scale
	h := lattice.Height() * scale
	return &Rasterizer{
		Scale:   scale,
		Summary: summary,
		palette: Palette(),
		view: Viewport{
			World:  lattice.Bounds,
			Y:      titleHeight,
			Width:  float64(w),
			Height: float64(h),
		},
		bounds: image.Rect(0, 0, w, h+titleHeight),
	}
}

// Bounds returns the size of the images produced by Draw.
func (r *Rasterizer) Bounds() image.Rectangle { return r.bounds }

// Draw renders s in the layering of the live view: field, wavefront circles,
// trail, cone rays, particle, then the text.
func (r *Rasterizer) Draw(s physics.FrameState) *image.Paletted {
	img := image.NewPaletted(r.bounds, r.palette)
	for i := range img.Pix {
		img.Pix[i] = IndexBackground
	}

	if s.Intensity != nil {
		r.drawField(img, s.Intensity)
	}
	for _, w := range s.Wavefronts {
		r.drawCircle(img, w.Center, w.Radius, CircleIndex(w.FadeAlpha))
	}
	for i := 1; i < len(s.Trail); i++ {
		r.drawLine(img, s.Trail[i-1], s.Trail[i], IndexTrail, 0)
	}
	r.drawLine(img, s.Cone.Upper.From, s.Cone.Upper.To, IndexCone, config.ConeDashLength)
	r.drawLine(img, s.Cone.Lower.From, s.Cone.Lower.To, IndexCone, config.ConeDashLength)
	r.drawParticle(img, s.Particle)
	r.drawText(img)
	return img
}

func (r *Rasterizer) drawField(img *image.Paletted, f *physics.Field) {
	top := int(r.view.Y)
	for py := 0; py < f.Height*r.Scale; py++ {
		// Row 0 of the field is the bottom of the plot.
		iy := f.Height - 1 - py/r.Scale
		off := (top+py)*img.Stride
		for px := 0; px < f.Width*r.Scale; px++ {
			img.Pix[off+px] = FieldIndex(f.At(px/r.Scale, iy))
		}
	}
}

func (r *Rasterizer) plot(img *image.Paletted, x, y float64, idx uint8) {
	px, py := int(math.Round(x)), int(math.Round(y))
	if !(image.Point{X: px, Y: py}.In(img.Rect)) || py < int(r.view.Y) {
		return
	}
	img.SetColorIndex(px, py, idx)
}

func (r *Rasterizer) drawCircle(img *image.Paletted, c r2.Vec, radius float64, idx uint8) {
	cx, cy := r.view.ToPixel(c)
	rad := r.view.Scale(radius)
	steps := max(16, int(2*math.Pi*rad))
	for i := 0; i < steps; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(steps))
		r.plot(img, cx+rad*cos, cy+rad*sin, idx)
	}
}

// drawLine draws from a to b. A positive dash length, in world units, draws
// alternating dashes and gaps.
func (r *Rasterizer) drawLine(img *image.Paletted, a, b r2.Vec, idx uint8, dash float64) {
	x0, y0 := r.view.ToPixel(a)
	x1, y1 := r.view.ToPixel(b)
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	length := r2.Norm(r2.Sub(b, a))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		if dash > 0 && int(t*length/dash)%2 == 1 {
			continue
		}
		r.plot(img, x0+t*(x1-x0), y0+t*(y1-y0), idx)
	}
}

func (r *Rasterizer) drawParticle(img *image.Paletted, p r2.Vec) {
	cx, cy := r.view.ToPixel(p)
	outer := float64(config.ParticleRadius + config.ParticleOutline)
	for dy := -outer; dy <= outer; dy++ {
		for dx := -outer; dx <= outer; dx++ {
			d := math.Hypot(dx, dy)
			switch {
			case d <= config.ParticleRadius:
				r.plot(img, cx+dx, cy+dy, IndexParticle)
			case d <= outer:
				r.plot(img, cx+dx, cy+dy, IndexParticleEdge)
			}
		}
	}
}

func (r *Rasterizer) drawText(img *image.Paletted) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.palette[IndexText]),
		Face: basicfont.Face7x13,
	}
	d.Dot = fixed.P((r.bounds.Dx()-d.MeasureString(title).Round())/2, 17)
	d.DrawString(title)

	lineHeight := basicfont.Face7x13.Metrics().Height.Round() + 2
	x := r.bounds.Dx() * 62 / 100
	y := int(r.view.Y) + 20
	for _, line := range strings.Split(r.Summary, "\n") {
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
		y += lineHeight
	}
}
