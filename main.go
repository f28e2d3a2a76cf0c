package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/iburimskiy/cherenkov-visualization/internal/config"
	"github.com/iburimskiy/cherenkov-visualization/internal/dialog"
	"github.com/iburimskiy/cherenkov-visualization/internal/export"
	"github.com/iburimskiy/cherenkov-visualization/internal/game"
	"github.com/iburimskiy/cherenkov-visualization/internal/logging"
	"github.com/iburimskiy/cherenkov-visualization/internal/metrics"
	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
)

func main() {
	flags := pflag.NewFlagSet("cherenkov", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to a config file (default ./cherenkov.*)")
	flags.String("mode", config.ModeView, "view to open the live viewer, export to save the animation")
	flags.Float64("particle-speed", 0.9, "particle speed as a fraction of c")
	flags.Float64("medium-speed", 0.7, "speed of light in the medium as a fraction of c")
	flags.Int("frames", physics.TotalFrames, "number of frames to simulate")
	flags.String("log-level", "info", "debug, info, warn or error")
	noDialog := flags.Bool("no-dialog", false, "skip the parameter dialog")
	flags.Parse(os.Args[1:])

	v := viper.New()
	if err := config.BindFlags(v, flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	settings, err := config.Load(v, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *noDialog {
		settings.Dialog.Enabled = false
	}

	var logFile io.Writer
	if f, err := logging.OpenFile(settings.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	} else if f != nil {
		defer f.Close()
		logFile = f
	}
	log := logging.New(settings.LogLevel, logFile)

	if err := run(settings, log); err != nil {
		if errors.Is(err, dialog.ErrCanceled) || errors.Is(err, context.Canceled) {
			log.Info().Msg("canceled")
			return
		}
		log.Error().Err(err).Msg("fatal error")
		os.Exit(1)
	}
}

func run(s *config.Settings, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	params, err := parameters(s, log)
	if err != nil {
		return err
	}
	log.Info().
		Float64("particleSpeed", params.ParticleSpeed).
		Float64("mediumLightSpeed", params.MediumLightSpeed).
		Float64("refractiveIndex", params.RefractiveIndex).
		Float64("angleDeg", params.CherenkovAngleDegrees()).
		Msg("simulation initialized")

	rec := metrics.NewRecorder()
	if s.Metrics.Listen != "" {
		go func() {
			if err := rec.Serve(ctx, s.Metrics.Listen, log); err != nil {
				log.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	clock := physics.NewClock(params, s.Frames)
	if s.Mode == config.ModeExport {
		return runExport(ctx, s, clock, rec, log)
	}

	g := game.New(clock, game.Options{
		FPS:        s.FPS,
		Audio:      s.Audio.Enabled,
		SampleRate: s.Audio.SampleRate,
		Metrics:    rec,
	}, log)
	return game.Run(g)
}

// parameters asks for the speeds when the dialog is enabled and validates the
// configured ones otherwise.
func parameters(s *config.Settings, log zerolog.Logger) (physics.Parameters, error) {
	if s.Dialog.Enabled {
		return dialog.NewPrompter(log).Ask(s.ParticleSpeed, s.MediumLightSpeed)
	}

	params, err := physics.Initialize(s.ParticleSpeed, s.MediumLightSpeed)
	if err != nil {
		var cfgErr *physics.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Error().
				Float64("particleSpeed", cfgErr.ParticleSpeed).
				Float64("mediumLightSpeed", cfgErr.MediumLightSpeed).
				Msg(dialog.Message(err))
		}
		return physics.Parameters{}, err
	}
	return params, nil
}

func runExport(ctx context.Context, s *config.Settings, clock *physics.Clock, rec *metrics.Recorder, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := export.Options{
		GIFPath:    s.Export.GIF,
		FPS:        s.FPS,
		Scale:      s.Export.Scale,
		SampleRate: s.Audio.SampleRate,
	}
	if s.Audio.Enabled {
		opts.WAVPath = s.Export.WAV
	}

	if s.Dialog.Enabled {
		progress, err := dialog.NewProgress(clock.Frames())
		if err != nil {
			log.Warn().Err(err).Msg("progress dialog unavailable")
		} else {
			defer progress.Close()
			go func() {
				select {
				case <-progress.Canceled():
					cancel()
				case <-ctx.Done():
				}
			}()
			opts.Progress = func(done, total int) {
				if err := progress.Update(done); err != nil {
					log.Debug().Err(err).Msg("progress update failed")
				}
			}
		}
	}

	res, err := export.Run(ctx, clock, opts, rec, log)
	if err != nil {
		return err
	}
	log.Info().
		Int("frames", res.Frames).
		Int("emitted", res.Emitted).
		Int("maxActive", res.MaxActive).
		Str("gif", res.GIFPath).
		Str("wav", res.WAVPath).
		Dur("compute", res.ComputeDur).
		Msg("animation saved")
	return nil
}
