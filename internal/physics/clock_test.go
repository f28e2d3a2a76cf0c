package physics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(t *testing.T) Parameters {
	t.Helper()
	p, err := Initialize(0.9, 0.7)
	require.NoError(t, err)
	return p
}

func TestClock_FirstFrame(t *testing.T) {
	clock := NewClock(testParams(t), 0)
	require.Equal(t, TotalFrames, clock.Frames())

	state, ok := clock.Advance()
	require.True(t, ok)

	assert.Equal(t, 0, state.Frame)
	assert.Equal(t, PositionAtFrame(0), state.Particle)
	assert.Len(t, state.Trail, 1)
	assert.True(t, state.Emitted)
	require.Len(t, state.Wavefronts, 1)
	assert.Equal(t, 0, state.Wavefronts[0].Age)
	assert.Equal(t, ConeRaysAt(state.Particle, clock.Params().CherenkovAngle), state.Cone)
	require.NotNil(t, state.Intensity)
	assert.Equal(t, LatticeWidth, state.Intensity.Width)
	assert.Equal(t, LatticeHeight, state.Intensity.Height)
	assert.Equal(t, 1, clock.Frame())
}

func TestClock_StopsAfterLastFrame(t *testing.T) {
	clock := NewClock(testParams(t), 3)

	for i := 0; i < 3; i++ {
		_, ok := clock.Advance()
		require.True(t, ok)
	}
	assert.True(t, clock.Done())
	_, ok := clock.Advance()
	assert.False(t, ok)
}

func TestClock_WavefrontLifecycle(t *testing.T) {
	clock := NewClock(testParams(t), 0)

	var emittedAt []int
	for {
		state, ok := clock.Advance()
		if !ok {
			break
		}
		if state.Emitted {
			emittedAt = append(emittedAt, state.Frame)
		}
		for _, w := range state.Wavefronts {
			assert.Less(t, w.Age, 17, "frame %d", state.Frame)
			assert.Greater(t, w.FadeAlpha, FadeThreshold)
		}
		// With one emission every 5 frames and a 17 frame lifetime at most
		// four wavefronts overlap.
		assert.LessOrEqual(t, len(state.Wavefronts), 4)
		assert.LessOrEqual(t, len(state.Trail), TrailCapacity)
	}

	require.Len(t, emittedAt, 25)
	for i, frame := range emittedAt {
		assert.Equal(t, i*EmissionPeriod, frame)
	}
}

func TestClock_SnapshotsAreIndependent(t *testing.T) {
	clock := NewClock(testParams(t), 0)

	first, _ := clock.Advance()
	wantTrail := first.Trail[0]
	wantField := first.Intensity.Clone()

	for i := 0; i < 10; i++ {
		clock.Advance()
	}

	assert.Equal(t, wantTrail, first.Trail[0])
	assert.Len(t, first.Trail, 1)
	assert.Equal(t, wantField.Values, first.Intensity.Values)
}

func TestClock_Reset(t *testing.T) {
	clock := NewClock(testParams(t), 0)
	first, _ := clock.Advance()
	for i := 0; i < 20; i++ {
		clock.Advance()
	}

	clock.Reset()
	assert.Equal(t, 0, clock.Frame())
	again, ok := clock.Advance()
	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestClock_Run(t *testing.T) {
	clock := NewClock(testParams(t), 12)

	var frames []int
	err := clock.Run(context.Background(), func(s FrameState) error {
		frames = append(frames, s.Frame)
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, frames, 12)
	assert.True(t, clock.Done())
}

func TestClock_RunStopsOnVisitorError(t *testing.T) {
	clock := NewClock(testParams(t), 12)
	boom := errors.New("boom")

	err := clock.Run(context.Background(), func(s FrameState) error {
		if s.Frame == 4 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, clock.Frame())
}

func TestClock_RunCancelled(t *testing.T) {
	clock := NewClock(testParams(t), 12)
	ctx, cancel := context.WithCancel(context.Background())

	err := clock.Run(ctx, func(s FrameState) error {
		if s.Frame == 2 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, clock.Frame())
}

func TestStateAtFrame_MatchesSequentialRun(t *testing.T) {
	params := testParams(t)
	clock := NewClock(params, 0)

	targets := map[int]bool{0: true, 7: true, 40: true, 121: true, 150: true}
	for {
		state, ok := clock.Advance()
		if !ok {
			break
		}
		if targets[state.Frame] {
			assert.Equal(t, state, StateAtFrame(params, state.Frame), "frame %d", state.Frame)
		}
	}
}

func TestClock_Deterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("full run")
	}
	params := testParams(t)

	run := func() []FrameState {
		var states []FrameState
		err := NewClock(params, 0).Run(context.Background(), func(s FrameState) error {
			states = append(states, s)
			return nil
		})
		require.NoError(t, err)
		return states
	}

	first, second := run(), run()
	require.Len(t, first, TotalFrames)
	for i := range first {
		require.Equal(t, first[i], second[i], "frame %d", i)
	}
}
