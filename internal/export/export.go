package export

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/cherenkov-visualization/internal/metrics"
	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
	"github.com/iburimskiy/cherenkov-visualization/internal/render"
	"github.com/iburimskiy/cherenkov-visualization/internal/sonify"
)

// Options control an export run.
type Options struct {
	GIFPath    string
	WAVPath    string // empty skips the audio track
	FPS        int
	Scale      int
	SampleRate int

	// Progress, if set, is called after each frame with the number of frames
	// done so far and the total.
	Progress func(done, total int)
}

// Result summarizes a finished export.
type Result struct {
	Frames     int
	Emitted    int
	MaxActive  int
	GIFPath    string
	WAVPath    string
	ComputeDur time.Duration
}

// Run drives clock to the end, writing the animation and optionally the
// audio track. Frames are recorded on rec when it is non-nil.
func Run(ctx context.Context, clock *physics.Clock, opts Options, rec *metrics.Recorder, log zerolog.Logger) (Result, error) {
	params := clock.Params()
	raster := render.NewRasterizer(clock.Lattice(), opts.Scale, params.Summary())
	anim := render.NewAnimation(opts.FPS)

	format := sonify.Format(opts.SampleRate)
	score := sonify.NewScore(format, opts.FPS)

	res := Result{GIFPath: opts.GIFPath, WAVPath: opts.WAVPath}
	total := clock.Frames() - clock.Frame()

	log.Info().Int("frames", total).Str("path", opts.GIFPath).Msg("saving animation")
	for !clock.Done() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		start := time.Now()
		state, _ := clock.Advance()
		elapsed := time.Since(start)
		res.ComputeDur += elapsed
		if rec != nil {
			rec.ObserveFrame(state, elapsed)
		}

		anim.Add(raster.Draw(state))
		score.Append(sonify.VoicesFor(state.Wavefronts))

		res.Frames++
		if state.Emitted {
			res.Emitted++
		}
		res.MaxActive = max(res.MaxActive, len(state.Wavefronts))

		log.Debug().Int("frame", state.Frame).Int("active", len(state.Wavefronts)).Msg("frame rendered")
		if opts.Progress != nil {
			opts.Progress(res.Frames, total)
		}
	}

	if err := writeFile(opts.GIFPath, func(f *os.File) error { return anim.Encode(f) }); err != nil {
		return res, fmt.Errorf("error writing animation: %w", err)
	}
	log.Info().Str("path", opts.GIFPath).Msg("animation saved")

	if opts.WAVPath != "" {
		if err := writeFile(opts.WAVPath, func(f *os.File) error { return sonify.WriteWAV(f, score, format) }); err != nil {
			return res, fmt.Errorf("error writing audio track: %w", err)
		}
		log.Info().Str("path", opts.WAVPath).Msg("audio track saved")
	}

	return res, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
