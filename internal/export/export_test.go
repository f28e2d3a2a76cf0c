package export

import (
	"context"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep/wav"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/cherenkov-visualization/internal/metrics"
	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
)

func newClock(t *testing.T, frames int) *physics.Clock {
	t.Helper()
	params, err := physics.Initialize(0.9, 0.7)
	require.NoError(t, err)
	return physics.NewClock(params, frames)
}

func TestRun_WritesAnimationAndAudio(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		GIFPath:    filepath.Join(dir, "run.gif"),
		WAVPath:    filepath.Join(dir, "run.wav"),
		FPS:        30,
		Scale:      1,
		SampleRate: 8000,
	}
	var progress []int
	opts.Progress = func(done, total int) {
		assert.Equal(t, 12, total)
		progress = append(progress, done)
	}
	rec := metrics.NewRecorder()

	res, err := Run(context.Background(), newClock(t, 12), opts, rec, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 12, res.Frames)
	assert.Equal(t, 3, res.Emitted) // frames 0, 5, 10
	assert.Equal(t, 3, res.MaxActive)
	assert.Len(t, progress, 12)
	assert.Equal(t, 12, progress[11])

	f, err := os.Open(opts.GIFPath)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 12)

	w, err := os.Open(opts.WAVPath)
	require.NoError(t, err)
	defer w.Close()
	stream, _, err := wav.Decode(w)
	require.NoError(t, err)
	assert.Equal(t, 12*(8000/30), stream.Len())

	series, err := testutil.GatherAndCount(rec.Registry())
	require.NoError(t, err)
	assert.Equal(t, 5, series)
}

func TestRun_SkipsAudioWithoutPath(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		GIFPath:    filepath.Join(dir, "run.gif"),
		FPS:        30,
		Scale:      1,
		SampleRate: 8000,
	}

	_, err := Run(context.Background(), newClock(t, 2), opts, nil, zerolog.Nop())
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{GIFPath: filepath.Join(t.TempDir(), "run.gif"), FPS: 30, Scale: 1, SampleRate: 8000}
	_, err := Run(ctx, newClock(t, 5), opts, nil, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, opts.GIFPath)
}

func TestRun_BadOutputPath(t *testing.T) {
	opts := Options{GIFPath: filepath.Join(t.TempDir(), "missing", "run.gif"), FPS: 30, Scale: 1, SampleRate: 8000}
	_, err := Run(context.Background(), newClock(t, 1), opts, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error writing animation")
}
