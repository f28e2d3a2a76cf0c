package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ModeView   = "view"
	ModeExport = "export"
)

// Settings are the runtime options of a run.
type Settings struct {
	ParticleSpeed    float64 `mapstructure:"particleSpeed"`
	MediumLightSpeed float64 `mapstructure:"mediumLightSpeed"`
	Frames           int     `mapstructure:"frames"`
	FPS              int     `mapstructure:"fps"`
	Mode             string  `mapstructure:"mode"`
	LogLevel         string  `mapstructure:"logLevel"`
	LogFile          string  `mapstructure:"logFile"`

	Dialog  DialogConfig  `mapstructure:"dialog"`
	Export  ExportConfig  `mapstructure:"export"`
	Audio   AudioConfig   `mapstructure:"audio"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type DialogConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ExportConfig holds the output paths of an export run. An empty WAV path skips
// the audio track.
type ExportConfig struct {
	GIF   string `mapstructure:"gif"`
	WAV   string `mapstructure:"wav"`
	Scale int    `mapstructure:"scale"`
}

type AudioConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	SampleRate int  `mapstructure:"sampleRate"`
}

// MetricsConfig holds the address the metrics endpoint listens on. Empty
// disables it.
type MetricsConfig struct {
	Listen string `mapstructure:"listen"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("particleSpeed", 0.9)
	v.SetDefault("mediumLightSpeed", 0.7)
	v.SetDefault("frames", 200)
	v.SetDefault("fps", 30)
	v.SetDefault("mode", ModeView)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("dialog.enabled", true)

	v.SetDefault("export.gif", "cherenkov_radiation.gif")
	v.SetDefault("export.wav", "cherenkov_radiation.wav")
	v.SetDefault("export.scale", 4)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.sampleRate", 44100)

	v.SetDefault("metrics.listen", "")
}

// BindFlags maps command line flags onto their settings keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"particleSpeed":    "particle-speed",
		"mediumLightSpeed": "medium-speed",
		"mode":             "mode",
		"frames":           "frames",
		"logLevel":         "log-level",
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads settings from the defaults, the optional config file at path and
// CHERENKOV_* environment variables, in increasing priority. Flags bound with
// BindFlags beforehand win over all of them.
func Load(v *viper.Viper, path string) (*Settings, error) {
	SetDefaults(v)

	v.SetEnvPrefix("cherenkov")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("cherenkov")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings that do not depend on the physics. Particle
// and medium speeds are validated when the simulation is initialized.
func (s *Settings) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", s.Frames)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", s.FPS)
	}
	if s.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive, got %d", s.Export.Scale)
	}
	if s.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio.sampleRate must be positive, got %d", s.Audio.SampleRate)
	}
	switch s.Mode {
	case ModeView, ModeExport:
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeView, ModeExport, s.Mode)
	}
	return nil
}
