package physics

import (
	"context"

	"gonum.org/v1/gonum/spatial/r2"
)

// FrameState is an immutable snapshot of one frame. Nothing in it is shared
// with the clock's components.
type FrameState struct {
	Frame      int
	Particle   r2.Vec
	Trail      []r2.Vec
	Wavefronts []WavefrontView
	Intensity  *Field
	Cone       ConeRays

	Emitted bool // a wavefront was emitted this frame
	Expired int  // wavefronts dropped this frame
}

// Clock steps a run through frames 0..Frames()-1. All mutable state lives in
// the trail, the wavefront store and the field scratch buffers.
type Clock struct {
	params Parameters
	frames int

	trail *Trail
	store *WavefrontStore
	field *IntensityField

	next int
}

// NewClock prepares a run of frames frames. A non-positive count selects
// TotalFrames.
func NewClock(params Parameters, frames int) *Clock {
	if frames <= 0 {
		frames = TotalFrames
	}
	return &Clock{
		params: params,
		frames: frames,
		trail:  NewTrail(TrailCapacity),
		store:  NewWavefrontStore(params.MediumLightSpeed),
		field:  NewIntensityField(DefaultLattice(), params.MediumLightSpeed),
	}
}

func (c *Clock) Params() Parameters { return c.params }
func (c *Clock) Frames() int        { return c.frames }

// Frame returns the index of the next frame Advance will produce.
func (c *Clock) Frame() int { return c.next }

// Done reports whether every frame has been produced.
func (c *Clock) Done() bool { return c.next >= c.frames }

// Lattice returns the lattice the intensity field is sampled on.
func (c *Clock) Lattice() *Lattice { return c.field.Lattice() }

// Advance computes the next frame. It returns false once the run is complete.
func (c *Clock) Advance() (FrameState, bool) {
	if c.Done() {
		return FrameState{}, false
	}
	frame := c.next
	c.next++

	state := c.step(frame)
	state.Intensity = c.field.Compute(state.Wavefronts)
	return state, true
}

// step moves the particle and updates the wavefront set for frame. It leaves
// the intensity field unset.
func (c *Clock) step(frame int) FrameState {
	p := PositionAtFrame(frame)
	c.trail.Push(p)
	emitted := c.store.MaybeEmit(frame, p)
	expired := c.store.AgeAndExpire(frame)

	return FrameState{
		Frame:      frame,
		Particle:   p,
		Trail:      c.trail.Points(),
		Wavefronts: c.store.Active(frame),
		Cone:       ConeRaysAt(p, c.params.CherenkovAngle),
		Emitted:    emitted,
		Expired:    expired,
	}
}

// Run advances through the remaining frames, handing each to visit. It stops at
// the first visitor error or when ctx is done.
func (c *Clock) Run(ctx context.Context, visit func(FrameState) error) error {
	for !c.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		state, _ := c.Advance()
		if err := visit(state); err != nil {
			return err
		}
	}
	return nil
}

// Reset rewinds the clock to frame 0 with empty components.
func (c *Clock) Reset() {
	c.trail.Reset()
	c.store.Reset()
	c.next = 0
}

// StateAtFrame returns the snapshot of frame n of a run with params. The
// particle and wavefront lifecycle are replayed from frame 0; the field is
// computed only for frame n. Negative n is treated as frame 0.
func StateAtFrame(params Parameters, n int) FrameState {
	n = max(n, 0)
	c := NewClock(params, n+1)
	var state FrameState
	for frame := 0; frame <= n; frame++ {
		state = c.step(frame)
	}
	c.next = n + 1
	state.Intensity = c.field.Compute(state.Wavefronts)
	return state
}
