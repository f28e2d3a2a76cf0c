package dialog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ncruces/zenity"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
)

const title = "Cherenkov Radiation Simulation Parameters"

// ErrCanceled is returned when the user closes a dialog.
var ErrCanceled = zenity.ErrCanceled

// Prompter asks for the simulation speeds with native dialogs.
type Prompter struct {
	log zerolog.Logger

	entry   func(text string, options ...zenity.Option) (string, error)
	warning func(text string, options ...zenity.Option) error
}

func NewPrompter(log zerolog.Logger) *Prompter {
	return &Prompter{
		log:     log,
		entry:   zenity.Entry,
		warning: zenity.Warning,
	}
}

// Ask prompts for the particle and medium speeds, prefilled with the given
// defaults, until they form a valid configuration or the user cancels.
func (p *Prompter) Ask(particleSpeed, mediumLightSpeed float64) (physics.Parameters, error) {
	for {
		params, err := p.askOnce(particleSpeed, mediumLightSpeed)
		if err == nil {
			return params, nil
		}
		if errors.Is(err, zenity.ErrCanceled) {
			return physics.Parameters{}, err
		}

		var input *inputError
		if errors.As(err, &input) {
			particleSpeed, mediumLightSpeed = input.particleSpeed, input.mediumLightSpeed
		}
		p.log.Warn().Err(err).Msg("invalid simulation parameters")
		if werr := p.warning(Message(err), zenity.Title("Invalid Input"), zenity.WarningIcon); werr != nil {
			return physics.Parameters{}, werr
		}
	}
}

// inputError carries the values the user typed so the next prompt keeps them.
type inputError struct {
	particleSpeed, mediumLightSpeed float64
	err                             error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func (p *Prompter) askOnce(particleSpeed, mediumLightSpeed float64) (physics.Parameters, error) {
	v, err := p.askFloat("Particle Speed (as fraction of c, must be > Medium Speed):", particleSpeed)
	if err != nil {
		return physics.Parameters{}, err
	}
	c, err := p.askFloat("Speed of Light in Medium (as fraction of c):", mediumLightSpeed)
	if err != nil {
		return physics.Parameters{}, err
	}

	params, err := physics.Initialize(v, c)
	if err != nil {
		return physics.Parameters{}, &inputError{particleSpeed: v, mediumLightSpeed: c, err: err}
	}
	p.log.Info().Float64("particleSpeed", v).Float64("mediumLightSpeed", c).Msg("parameters accepted")
	return params, nil
}

func (p *Prompter) askFloat(label string, def float64) (float64, error) {
	text, err := p.entry(label, zenity.Title(title), zenity.EntryText(strconv.FormatFloat(def, 'g', -1, 64)))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("could not convert %q to a number", text)
	}
	return v, nil
}

// Message turns a validation error into the text shown to the user.
func Message(err error) string {
	switch {
	case errors.Is(err, physics.ErrParticleSpeedRange), errors.Is(err, physics.ErrMediumSpeedRange):
		return "Speeds must be between 0 and 1"
	case errors.Is(err, physics.ErrNoCherenkovCone):
		return "Particle speed must exceed medium light speed for Cherenkov radiation"
	default:
		return err.Error()
	}
}
