package physics

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrParticleSpeedRange = errors.New("particle speed must be in (0, 1]")
	ErrMediumSpeedRange   = errors.New("medium light speed must be in (0, 1)")
	ErrNoCherenkovCone    = errors.New("particle speed must exceed medium light speed for Cherenkov radiation")
)

// ConfigurationError reports simulation parameters that cannot produce a
// Cherenkov cone. Invariant is one of the Err* sentinels above.
type ConfigurationError struct {
	ParticleSpeed    float64
	MediumLightSpeed float64
	Invariant        error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration (particle speed %g, medium light speed %g): %v",
		e.ParticleSpeed, e.MediumLightSpeed, e.Invariant)
}

func (e *ConfigurationError) Unwrap() error { return e.Invariant }

// Parameters are the immutable inputs of a run together with the values derived
// from them.
type Parameters struct {
	ParticleSpeed    float64
	MediumLightSpeed float64
	CherenkovAngle   float64 // radians
	RefractiveIndex  float64
}

// Initialize validates the speeds and derives the cone geometry.
func Initialize(particleSpeed, mediumLightSpeed float64) (Parameters, error) {
	angle, index, err := ComputeGeometry(particleSpeed, mediumLightSpeed)
	if err != nil {
		return Parameters{}, err
	}
	return Parameters{
		ParticleSpeed:    particleSpeed,
		MediumLightSpeed: mediumLightSpeed,
		CherenkovAngle:   angle,
		RefractiveIndex:  index,
	}, nil
}

// ComputeGeometry returns the Cherenkov half-angle in radians and the refractive
// index of the medium.
func ComputeGeometry(particleSpeed, mediumLightSpeed float64) (angle, refractiveIndex float64, err error) {
	cfgErr := func(invariant error) error {
		return &ConfigurationError{
			ParticleSpeed:    particleSpeed,
			MediumLightSpeed: mediumLightSpeed,
			Invariant:        invariant,
		}
	}

	// Negated comparisons so NaN fails the range checks.
	if !(particleSpeed > 0 && particleSpeed <= 1) {
		return 0, 0, cfgErr(ErrParticleSpeedRange)
	}
	if !(mediumLightSpeed > 0 && mediumLightSpeed < 1) {
		return 0, 0, cfgErr(ErrMediumSpeedRange)
	}
	if particleSpeed <= mediumLightSpeed {
		return 0, 0, cfgErr(ErrNoCherenkovCone)
	}

	return math.Acos(mediumLightSpeed / particleSpeed), 1 / mediumLightSpeed, nil
}

// CherenkovAngleDegrees returns the cone half-angle in degrees.
func (p Parameters) CherenkovAngleDegrees() float64 {
	return p.CherenkovAngle * 180 / math.Pi
}

// Summary renders the parameter annotation shown next to the animation.
func (p Parameters) Summary() string {
	return fmt.Sprintf(
		"Particle Speed: %.2fc\nLight Speed in Medium: %.2fc\nRefractive Index: %.2f\nCherenkov Angle: %.1f°",
		p.ParticleSpeed, p.MediumLightSpeed, p.RefractiveIndex, p.CherenkovAngleDegrees(),
	)
}
