package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestDefaultLattice(t *testing.T) {
	lat := DefaultLattice()

	require.Equal(t, LatticeWidth, lat.Width())
	require.Equal(t, LatticeHeight, lat.Height())
	assert.Equal(t, -8.0, lat.Xs[0])
	assert.Equal(t, 8.0, lat.Xs[LatticeWidth-1])
	assert.Equal(t, -6.0, lat.Ys[0])
	assert.Equal(t, 6.0, lat.Ys[LatticeHeight-1])
	assert.InDelta(t, 16.0/199, lat.Xs[1]-lat.Xs[0], 1e-12)
}

func TestCompute_NoWavefronts(t *testing.T) {
	field := NewIntensityField(DefaultLattice(), 0.7)

	out := field.Compute(nil)
	require.Len(t, out.Values, LatticeWidth*LatticeHeight)
	for _, v := range out.Values {
		require.Equal(t, 0.0, v)
	}
}

func TestCompute_WithinUnitRange(t *testing.T) {
	field := NewIntensityField(DefaultLattice(), 0.7)
	waves := []WavefrontView{
		{Center: r2.Vec{X: -4}, Age: 12},
		{Center: r2.Vec{X: -3.5}, Age: 7},
		{Center: r2.Vec{X: -3}, Age: 2},
		{Center: PositionAtFrame(0), Age: 0},
	}

	for n := 1; n <= len(waves); n++ {
		out := field.Compute(waves[:n])
		maxVal := 0.0
		for _, v := range out.Values {
			require.False(t, math.IsNaN(v))
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
			maxVal = math.Max(maxVal, v)
		}
		assert.InDelta(t, 1.0, maxVal, 1e-5, "normalized field should peak near 1 (n=%d)", n)
	}
}

func TestCompute_SkipsWavefrontsOutsideViewport(t *testing.T) {
	field := NewIntensityField(DefaultLattice(), 0.7)

	// Active per the expiry bounds but outside the viewport.
	out := field.Compute([]WavefrontView{
		{Center: r2.Vec{X: 9}, Age: 3},
		{Center: r2.Vec{Y: -7}, Age: 3},
	})
	for _, v := range out.Values {
		require.Equal(t, 0.0, v)
	}

	inside := WavefrontView{Center: r2.Vec{X: 1}, Age: 3}
	a := field.Compute([]WavefrontView{inside})
	b := field.Compute([]WavefrontView{inside, {Center: r2.Vec{X: 9.5}, Age: 1}})
	assert.Equal(t, a.Values, b.Values)
}

func TestCompute_SingleSourcePeaksAtCenter(t *testing.T) {
	lat := NewLattice(5, 5, Rect{XMin: -1, XMax: 1, YMin: -1, YMax: 1})
	field := NewIntensityField(lat, 0.7)

	out := field.Compute([]WavefrontView{{Center: r2.Vec{}, Age: 0}})
	assert.InDelta(t, 1.0, out.At(2, 2), 1e-5)
	for iy := 0; iy < 5; iy++ {
		for ix := 0; ix < 5; ix++ {
			if ix == 2 && iy == 2 {
				continue
			}
			assert.Less(t, out.At(ix, iy), out.At(2, 2))
		}
	}
}

func TestCompute_MatchesClosedForm(t *testing.T) {
	lat := NewLattice(3, 2, Rect{XMin: 0, XMax: 2, YMin: 0, YMax: 1})
	field := NewIntensityField(lat, 0.5)
	waves := []WavefrontView{
		{Center: r2.Vec{X: 0, Y: 0}, Age: 4},
		{Center: r2.Vec{X: 1.5, Y: 0.5}, Age: 1},
	}

	want := make([]float64, 6)
	for iy, y := range lat.Ys {
		for ix, x := range lat.Xs {
			var z complex128
			for _, w := range waves {
				r := math.Hypot(x-w.Center.X, y-w.Center.Y)
				amp := math.Exp(-0.1*r) / (r + 0.1)
				phase := 2 * math.Pi * (r - float64(w.Age)*0.1*0.5) / 1.0
				z += complex(amp*math.Cos(phase), amp*math.Sin(phase))
			}
			mag := real(z)*real(z) + imag(z)*imag(z)
			want[ix+iy*3] = math.Pow(mag, 0.3)
		}
	}
	peak := 0.0
	for _, v := range want {
		peak = math.Max(peak, v)
	}

	out := field.Compute(waves)
	for i := range want {
		assert.InDelta(t, want[i]/(peak+1e-6), out.Values[i], 1e-9, "sample %d", i)
	}
}

func TestCompute_ReusesScratchSafely(t *testing.T) {
	field := NewIntensityField(DefaultLattice(), 0.7)
	waves := []WavefrontView{{Center: r2.Vec{X: 2}, Age: 5}}

	first := field.Compute(waves)
	field.Compute([]WavefrontView{{Center: r2.Vec{X: -2}, Age: 1}})
	again := field.Compute(waves)

	assert.Equal(t, first.Values, again.Values)
}

func TestField_Clone(t *testing.T) {
	f := NewField(2, 2)
	f.Values[f.Idx(1, 1)] = 0.5
	c := f.Clone()
	c.Values[0] = 1

	assert.Equal(t, 0.5, c.At(1, 1))
	assert.Equal(t, 0.0, f.At(0, 0))
}
