package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	chdir(t, t.TempDir())

	s, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, 0.9, s.ParticleSpeed)
	assert.Equal(t, 0.7, s.MediumLightSpeed)
	assert.Equal(t, 200, s.Frames)
	assert.Equal(t, 30, s.FPS)
	assert.Equal(t, ModeView, s.Mode)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "", s.LogFile)
	assert.True(t, s.Dialog.Enabled)
	assert.Equal(t, "cherenkov_radiation.gif", s.Export.GIF)
	assert.Equal(t, "cherenkov_radiation.wav", s.Export.WAV)
	assert.Equal(t, 4, s.Export.Scale)
	assert.True(t, s.Audio.Enabled)
	assert.Equal(t, 44100, s.Audio.SampleRate)
	assert.Equal(t, "", s.Metrics.Listen)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	cfg := `{
		"particleSpeed": 0.95,
		"mode": "export",
		"dialog": { "enabled": false },
		"export": { "gif": "out.gif", "wav": "" }
	}`
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	s, err := Load(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, 0.95, s.ParticleSpeed)
	assert.Equal(t, 0.7, s.MediumLightSpeed)
	assert.Equal(t, ModeExport, s.Mode)
	assert.False(t, s.Dialog.Enabled)
	assert.Equal(t, "out.gif", s.Export.GIF)
	assert.Equal(t, "", s.Export.WAV)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), "/nonexistent/path/cherenkov.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"frames": `), 0644))

	_, err := Load(viper.New(), path)
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHERENKOV_FPS", "24")
	t.Setenv("CHERENKOV_EXPORT_SCALE", "2")

	s, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 24, s.FPS)
	assert.Equal(t, 2, s.Export.Scale)
}

func TestLoad_FlagsWin(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHERENKOV_MODE", "view")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Float64("particle-speed", 0.9, "")
	flags.String("mode", ModeView, "")
	require.NoError(t, flags.Parse([]string{"--particle-speed=0.99", "--mode=export"}))

	v := viper.New()
	require.NoError(t, BindFlags(v, flags))
	s, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, 0.99, s.ParticleSpeed)
	assert.Equal(t, ModeExport, s.Mode)
}

func TestValidate(t *testing.T) {
	valid := func() *Settings {
		return &Settings{
			Frames: 200, FPS: 30, Mode: ModeView,
			Export: ExportConfig{Scale: 4},
			Audio:  AudioConfig{SampleRate: 44100},
		}
	}
	require.NoError(t, valid().Validate())

	table := []struct {
		name   string
		mutate func(*Settings)
		msg    string
	}{
		{"frames", func(s *Settings) { s.Frames = 0 }, "frames"},
		{"fps", func(s *Settings) { s.FPS = -1 }, "fps"},
		{"scale", func(s *Settings) { s.Export.Scale = 0 }, "export.scale"},
		{"sample rate", func(s *Settings) { s.Audio.SampleRate = 0 }, "audio.sampleRate"},
		{"mode", func(s *Settings) { s.Mode = "stream" }, "mode"},
	}
	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			s := valid()
			test.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
