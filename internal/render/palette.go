package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/cherenkov-visualization/internal/config"
)

const (
	FieldLevels  = 224
	CircleLevels = 8
)

const (
	IndexBackground = FieldLevels + iota
	IndexParticle
	IndexParticleEdge
	IndexCone
	IndexTrail
	IndexText
	IndexCircle // first of CircleLevels entries
)

// MaxCircleAlpha is the opacity of a freshly emitted wavefront circle.
const MaxCircleAlpha = 0.2

// Palette is the fixed GIF palette: the field colormap as seen through the
// overlay opacity, the overlay colours, then wavefront circles at increasing
// opacity.
func Palette() color.Palette {
	p := make(color.Palette, 0, IndexCircle+CircleLevels)
	for i := 0; i < FieldLevels; i++ {
		t := float64(i) / float64(FieldLevels-1)
		p = append(p, RGBA(OverBlack(Viridis(t), config.FieldAlpha)))
	}
	p = append(p,
		RGBA(Black),
		RGBA(White),
		RGBA(Cyan),
		RGBA(OverBlack(Cyan, config.ConeAlpha)),
		RGBA(OverBlack(White, config.TrailAlpha)),
		RGBA(White),
	)
	for i := 1; i <= CircleLevels; i++ {
		alpha := MaxCircleAlpha * float64(i) / CircleLevels
		p = append(p, RGBA(blendYellow(alpha)))
	}
	return p
}

// blendYellow lifts the circle colour so faint wavefronts stay visible on the
// quantized palette.
func blendYellow(alpha float64) colorful.Color {
	return OverBlack(Yellow, 0.25+alpha*3)
}

// FieldIndex returns the palette index of a normalized intensity value.
func FieldIndex(v float64) uint8 {
	return uint8(clamp01(v)*float64(FieldLevels-1) + 0.5)
}

// CircleIndex returns the palette index of a wavefront circle with the given
// fade alpha.
func CircleIndex(alpha float64) uint8 {
	level := int(alpha/MaxCircleAlpha*CircleLevels+0.5) - 1
	level = max(0, min(CircleLevels-1, level))
	return uint8(IndexCircle + level)
}
