package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/iburimskiy/cherenkov-visualization/internal/config"
	"github.com/iburimskiy/cherenkov-visualization/internal/metrics"
	"github.com/iburimskiy/cherenkov-visualization/internal/physics"
	"github.com/iburimskiy/cherenkov-visualization/internal/render"
	"github.com/iburimskiy/cherenkov-visualization/internal/sonify"
)

// Options configure the live viewer.
type Options struct {
	FPS        int
	Audio      bool
	SampleRate int
	Metrics    *metrics.Recorder
}

// Game plays a simulation run frame by frame in a window.
type Game struct {
	clock   *physics.Clock
	opts    Options
	log     zerolog.Logger
	view    render.Viewport
	summary string

	state    physics.FrameState
	hasState bool
	paused   bool
	finished bool

	// field overlay
	fieldImg *ebiten.Image
	pixels   []byte
	lut      [render.FieldLevels]color.RGBA

	// audio
	synth  *sonify.Synth
	tap    *levelTap
	ctrl   *beep.Ctrl
	levels []float64
}

func New(clock *physics.Clock, opts Options, log zerolog.Logger) *Game {
	g := &Game{
		clock:   clock,
		opts:    opts,
		log:     log,
		summary: clock.Params().Summary(),
		view: render.Viewport{
			World:  physics.Viewport,
			X:      config.PlotX,
			Y:      config.PlotY,
			Width:  config.PlotWidth,
			Height: config.PlotHeight,
		},
	}
	for i := range g.lut {
		g.lut[i] = render.RGBA(render.Viridis(float64(i) / float64(render.FieldLevels-1)))
	}
	return g
}

// Run opens the window and blocks until the viewer is closed.
func Run(g *Game) error {
	if g.opts.Audio {
		if err := g.startAudio(); err != nil {
			g.log.Warn().Err(err).Msg("audio disabled")
		}
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Cherenkov Radiation Simulation - Space: Pause, R: Restart, Esc/Q: Quit")
	ebiten.SetTPS(g.opts.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) startAudio() error {
	sr := beep.SampleRate(g.opts.SampleRate)
	g.synth = sonify.NewSynth(sr)
	g.tap = newLevelTap(g.synth, config.AudioRingSize)
	g.ctrl = &beep.Ctrl{Streamer: g.tap, Paused: g.paused}
	g.levels = make([]float64, config.LevelBands)

	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		g.synth, g.tap, g.ctrl = nil, nil, nil
		return err
	}
	speaker.Play(g.ctrl)
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	g.step()
	if g.tap != nil {
		updateLevels(g.levels, g.tap.snapshot(2048), config.SmoothingFactor)
	}
	return nil
}

// step advances the clock by one frame unless paused or finished.
func (g *Game) step() {
	if g.paused || g.finished {
		return
	}

	start := time.Now()
	state, ok := g.clock.Advance()
	if !ok {
		g.finished = true
		g.setVoices(nil)
		g.log.Info().Int("frames", g.clock.Frames()).Msg("run complete")
		return
	}
	if g.opts.Metrics != nil {
		g.opts.Metrics.ObserveFrame(state, time.Since(start))
	}

	g.state = state
	g.hasState = true
	g.setVoices(sonify.VoicesFor(state.Wavefronts))
	if state.Emitted {
		g.log.Debug().Int("frame", state.Frame).Int("active", len(state.Wavefronts)).Msg("wavefront emitted")
	}
}

func (g *Game) setVoices(voices []sonify.Voice) {
	if g.synth != nil {
		g.synth.SetVoices(voices)
	}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.ctrl == nil {
		return
	}
	speaker.Lock()
	g.ctrl.Paused = g.paused
	speaker.Unlock()
}

func (g *Game) restart() {
	g.clock.Reset()
	g.finished = false
	g.hasState = false
	g.setVoices(nil)
	g.log.Info().Msg("run restarted")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	g.drawGrid(screen)

	if g.hasState {
		g.drawField(screen, g.state.Intensity)
		for _, w := range g.state.Wavefronts {
			g.drawWavefront(screen, w)
		}
		g.drawTrail(screen, g.state.Trail)
		g.drawCone(screen, g.state.Cone)
		g.drawParticle(screen, g.state.Particle)
	}

	g.drawLevelBar(screen)
	ebitenutil.DebugPrintAt(screen, "Cherenkov Radiation Simulation", config.WindowWidth/2-90, 16)
	ebitenutil.DebugPrintAt(screen, g.summary, config.PlotX+config.PlotWidth*62/100, config.PlotY+12)
	ebitenutil.DebugPrintAt(screen, g.status(), 12, config.WindowHeight-20)
}

func (g *Game) status() string {
	frame := g.clock.Frame()
	s := fmt.Sprintf("Frame %d/%d  %s", frame, g.clock.Frames(), formatDuration(frameTime(frame, g.opts.FPS)))
	switch {
	case g.finished:
		s += "  Done - R to restart"
	case g.paused:
		s += "  Paused - Space to resume"
	default:
		s += "  Space: pause, R: restart, Esc/Q: quit"
	}
	return s
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	grid := render.WithAlpha(render.White, 0.2)
	w := physics.Viewport
	for x := math.Ceil(w.XMin); x <= w.XMax; x += 2 {
		x0, y0 := g.view.ToPixel(r2.Vec{X: x, Y: w.YMin})
		x1, y1 := g.view.ToPixel(r2.Vec{X: x, Y: w.YMax})
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, grid, false)
	}
	for y := math.Ceil(w.YMin); y <= w.YMax; y += 2 {
		x0, y0 := g.view.ToPixel(r2.Vec{X: w.XMin, Y: y})
		x1, y1 := g.view.ToPixel(r2.Vec{X: w.XMax, Y: y})
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, grid, false)
	}
	vector.StrokeRect(screen, config.PlotX, config.PlotY, config.PlotWidth, config.PlotHeight, 1, render.RGBA(render.White), false)
}

func (g *Game) drawField(screen *ebiten.Image, f *physics.Field) {
	if f == nil {
		return
	}
	if g.fieldImg == nil {
		g.fieldImg = ebiten.NewImage(f.Width, f.Height)
		g.pixels = make([]byte, 4*f.Width*f.Height)
	}
	for row := 0; row < f.Height; row++ {
		// Row 0 of the field is the bottom of the plot.
		iy := f.Height - 1 - row
		for ix := 0; ix < f.Width; ix++ {
			c := g.lut[render.FieldIndex(f.At(ix, iy))]
			off := 4 * (row*f.Width + ix)
			g.pixels[off], g.pixels[off+1], g.pixels[off+2], g.pixels[off+3] = c.R, c.G, c.B, c.A
		}
	}
	g.fieldImg.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(g.view.Width/float64(f.Width), g.view.Height/float64(f.Height))
	op.GeoM.Translate(g.view.X, g.view.Y)
	op.ColorScale.ScaleAlpha(config.FieldAlpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.fieldImg, op)
}

func (g *Game) drawWavefront(screen *ebiten.Image, w physics.WavefrontView) {
	x, y := g.view.ToPixel(w.Center)
	r := g.view.Scale(w.Radius)
	vector.StrokeCircle(screen, float32(x), float32(y), float32(r), config.CircleWidth,
		render.WithAlpha(render.Yellow, w.FadeAlpha), true)
}

func (g *Game) drawTrail(screen *ebiten.Image, trail []r2.Vec) {
	c := render.WithAlpha(render.White, config.TrailAlpha)
	for i := 1; i < len(trail); i++ {
		x0, y0 := g.view.ToPixel(trail[i-1])
		x1, y1 := g.view.ToPixel(trail[i])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, c, true)
	}
}

func (g *Game) drawCone(screen *ebiten.Image, cone physics.ConeRays) {
	c := render.WithAlpha(render.Cyan, config.ConeAlpha)
	for _, seg := range []physics.Segment{cone.Upper, cone.Lower} {
		for _, dash := range dashes(seg, config.ConeDashLength) {
			x0, y0 := g.view.ToPixel(dash.From)
			x1, y1 := g.view.ToPixel(dash.To)
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1.5, c, true)
		}
	}
}

// dashes splits seg into dashes of the given world length separated by gaps of
// the same length.
func dashes(seg physics.Segment, length float64) []physics.Segment {
	d := r2.Sub(seg.To, seg.From)
	total := r2.Norm(d)
	if total == 0 || length <= 0 {
		return []physics.Segment{seg}
	}
	unit := r2.Scale(1/total, d)
	var out []physics.Segment
	for s := 0.0; s < total; s += 2 * length {
		e := math.Min(s+length, total)
		out = append(out, physics.Segment{
			From: r2.Add(seg.From, r2.Scale(s, unit)),
			To:   r2.Add(seg.From, r2.Scale(e, unit)),
		})
	}
	return out
}

func (g *Game) drawParticle(screen *ebiten.Image, p r2.Vec) {
	x, y := g.view.ToPixel(p)
	vector.DrawFilledCircle(screen, float32(x), float32(y), config.ParticleRadius, render.RGBA(render.White), true)
	vector.StrokeCircle(screen, float32(x), float32(y), config.ParticleRadius, config.ParticleOutline, render.RGBA(render.Cyan), true)
}

func (g *Game) drawLevelBar(screen *ebiten.Image) {
	if len(g.levels) == 0 {
		return
	}

	const barHeight = 24
	barX := float32(config.PlotX)
	barY := float32(config.PlotY + config.PlotHeight + 6)
	barWidth := float32(config.PlotWidth)
	segment := barWidth / float32(len(g.levels))

	vector.DrawFilledRect(screen, barX, barY, barWidth, barHeight, color.RGBA{R: 20, G: 25, B: 35, A: 200}, false)
	for i, level := range g.levels {
		h := float32(clamp01(level)) * (barHeight - 4)
		if h < 1 {
			continue
		}
		hue := 180 + 60*float64(i)/float64(len(g.levels))
		c := colorful.Hsv(hue, 0.8, 0.9)
		vector.DrawFilledRect(screen, barX+float32(i)*segment, barY+barHeight-2-h, segment-1, h,
			render.WithAlpha(c, 0.4+0.6*clamp01(level)), false)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
