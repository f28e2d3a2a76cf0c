package config

const (
	WindowWidth  = 1200
	WindowHeight = 800

	// Plot area inside the window, in pixels.
	PlotX      = 60
	PlotY      = 50
	PlotWidth  = 1080
	PlotHeight = 700

	AudioRingSize   = 8192
	SmoothingFactor = 0.6

	// Visualization parameters
	FieldAlpha      = 0.5
	TrailAlpha      = 0.4
	ConeAlpha       = 0.5
	ConeDashLength  = 0.25 // world units
	ParticleRadius  = 6
	ParticleOutline = 2
	CircleWidth     = 1
	LevelBands      = 64
)
