//go:build ebiten

package app

import (
	"image/color"
	"math"

	"tilt-sand/internal/control"
	"tilt-sand/internal/core"
	"tilt-sand/internal/render"
	"tilt-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	session *control.Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA

	scale    int
	hudWidth int
}

var compassKeys = map[ebiten.Key]int{
	ebiten.KeyNumpad1: 1, ebiten.KeyNumpad2: 2, ebiten.KeyNumpad3: 3,
	ebiten.KeyNumpad4: 4, ebiten.KeyNumpad6: 6,
	ebiten.KeyNumpad7: 7, ebiten.KeyNumpad8: 8, ebiten.KeyNumpad9: 9,
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		session:  control.NewSession(sim, cfg.Seed),
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
	}
	g.session.Rotated = cfg.Rotated
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	} else {
		g.palette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.session.Seed = seed
	g.session.Apply(control.Command{Action: control.Reset})
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	for _, cmd := range g.commands() {
		if g.session.Apply(cmd) {
			return ebiten.Termination
		}
	}
	g.overlay.Update()
	if g.hud != nil {
		g.hud.Update(g.viewSize())
	}
	g.session.Advance()
	return nil
}

func (g *Game) commands() []control.Command {
	var cmds []control.Command
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
		return false
	}
	if pressed(ebiten.KeyQ, ebiten.KeyEscape) {
		cmds = append(cmds, control.Command{Action: control.Quit})
	}
	if pressed(ebiten.KeySpace) {
		cmds = append(cmds, control.Command{Action: control.Pause})
	}
	if pressed(ebiten.KeyN) {
		cmds = append(cmds, control.Command{Action: control.StepOnce})
	}
	if pressed(ebiten.KeyR) {
		cmds = append(cmds, control.Command{Action: control.Reset})
	}
	if pressed(ebiten.KeyS) {
		cmds = append(cmds, control.Command{Action: control.Reseed})
	}
	if pressed(ebiten.KeyA, ebiten.KeyArrowLeft) {
		cmds = append(cmds, control.Command{Action: control.RotateLeft})
	}
	if pressed(ebiten.KeyD, ebiten.KeyArrowRight) {
		cmds = append(cmds, control.Command{Action: control.RotateRight})
	}
	if pressed(ebiten.KeyV) {
		cmds = append(cmds, control.Command{Action: control.ToggleView})
	}
	for key, digit := range compassKeys {
		if inpututil.IsKeyJustPressed(key) {
			cmds = append(cmds, control.Command{Action: control.Compass, Digit: digit})
		}
	}
	return cmds
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 12, A: 255})
	b := screen.Bounds()
	b.Max.X = b.Min.X + g.viewSize()
	view := screen.SubImage(b).(*ebiten.Image)
	angle := g.session.ViewAngle()
	g.painter.Blit(view, g.session.Sim().Cells(), g.palette, g.scale, angle)
	g.overlay.Draw(view, angle)
	if g.hud != nil {
		g.hud.Draw(screen, g.viewSize(), g.viewHeight())
	}
}

// Layout returns the logical screen size. The view is square when rotation is
// enabled so a turned grid never leaves the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewSize() + g.hudWidth, g.viewHeight()
}

func (g *Game) viewSize() int {
	s := g.session.Sim().Size()
	if g.session.Rotated {
		return g.diagonal()
	}
	return s.W * g.scale
}

func (g *Game) viewHeight() int {
	s := g.session.Sim().Size()
	if g.session.Rotated {
		return g.diagonal()
	}
	return s.H * g.scale
}

func (g *Game) diagonal() int {
	s := g.session.Sim().Size()
	return int(math.Ceil(math.Hypot(float64(s.W), float64(s.H)) * float64(g.scale)))
}
