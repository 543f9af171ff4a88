// Package term renders a simulation in a terminal with tcell and drives it
// from the keyboard.
package term

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"tilt-sand/internal/control"
	"tilt-sand/internal/core"
	"tilt-sand/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

// Screen is the part of tcell.Screen the viewer draws through.
type Screen interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
	Clear()
	Show()
}

// Clicker is notified whenever the newest grain comes to rest.
type Clicker interface {
	Click()
}

type newestProvider interface {
	Newest() (sand.Particle, bool)
}

type paletteProvider interface {
	Palette() []color.RGBA
}

type particleCounter interface {
	ParticleCount() int
	TickCount() int
}

// Viewer draws the grid two terminal columns per cell with a status line
// underneath.
type Viewer struct {
	session *control.Session
	screen  Screen
	styles  []tcell.Style
	clicker Clicker

	restedID int
}

// NewViewer builds a viewer for the session's simulation. clicker may be nil.
func NewViewer(session *control.Session, screen Screen, clicker Clicker) *Viewer {
	v := &Viewer{session: session, screen: screen, clicker: clicker, restedID: -1}
	palette := []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	if p, ok := session.Sim().(paletteProvider); ok {
		palette = p.Palette()
	}
	v.styles = make([]tcell.Style, len(palette))
	for i, c := range palette {
		v.styles[i] = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return v
}

// KeyCommand decodes a key press. Digits 1-9 act as a numpad compass.
func KeyCommand(ev *tcell.EventKey) control.Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return control.Command{Action: control.Quit}
	case tcell.KeyLeft:
		return control.Command{Action: control.RotateLeft}
	case tcell.KeyRight:
		return control.Command{Action: control.RotateRight}
	case tcell.KeyRune:
	default:
		return control.Command{}
	}
	r := ev.Rune()
	switch {
	case r == 'q' || r == 'Q':
		return control.Command{Action: control.Quit}
	case r == ' ':
		return control.Command{Action: control.Pause}
	case r == 'n' || r == 'N':
		return control.Command{Action: control.StepOnce}
	case r == 'r' || r == 'R':
		return control.Command{Action: control.Reset}
	case r == 's' || r == 'S':
		return control.Command{Action: control.Reseed}
	case r == 'a' || r == 'A':
		return control.Command{Action: control.RotateLeft}
	case r == 'd' || r == 'D':
		return control.Command{Action: control.RotateRight}
	case r == 'v' || r == 'V':
		return control.Command{Action: control.ToggleView}
	case r >= '1' && r <= '9':
		return control.Command{Action: control.Compass, Digit: int(r - '0')}
	}
	return control.Command{}
}

// HandleEvent applies a terminal event and reports whether to exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	if key, ok := ev.(*tcell.EventKey); ok {
		return v.session.Apply(KeyCommand(key))
	}
	return false
}

// Tick advances the session and clicks when a new grain has landed.
func (v *Viewer) Tick() bool {
	if !v.session.Advance() {
		return false
	}
	if v.clicker == nil {
		return true
	}
	if p, ok := v.session.Sim().(newestProvider); ok {
		if n, ok := p.Newest(); ok && n.Settled && n.ID != v.restedID {
			v.restedID = n.ID
			v.clicker.Click()
		}
	}
	return true
}

// Draw paints the current frame.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sim := v.session.Sim()
	size := sim.Size()
	cells := sim.Cells()
	angle := v.session.ViewAngle()

	fw, fh := size.W, size.H
	if angle != 0 {
		d := int(math.Ceil(math.Hypot(float64(size.W), float64(size.H))))
		fw, fh = d, d
	}
	sinA, cosA := math.Sincos(angle * math.Pi / 180)
	for sy := 0; sy < fh; sy++ {
		for sx := 0; sx < fw; sx++ {
			x, y := sx, sy
			if angle != 0 {
				// Undo the clockwise turn to find the source cell.
				dx := float64(sx) + 0.5 - float64(fw)/2
				dy := float64(sy) + 0.5 - float64(fh)/2
				fx := dx*cosA + dy*sinA + float64(size.W)/2
				fy := -dx*sinA + dy*cosA + float64(size.H)/2
				x, y = int(math.Floor(fx)), int(math.Floor(fy))
				if x < 0 || y < 0 || x >= size.W || y >= size.H {
					continue
				}
			}
			v.drawCell(sx, sy, cells[y*size.W+x])
		}
	}
	v.drawStatus(0, fh, sim)
	v.screen.Show()
}

func (v *Viewer) drawCell(sx, sy int, value uint8) {
	if value == 0 {
		return
	}
	idx := int(value)
	if idx >= len(v.styles) {
		idx = len(v.styles) - 1
	}
	style := v.styles[idx]
	v.screen.SetContent(2*sx, sy, '█', nil, style)
	v.screen.SetContent(2*sx+1, sy, '█', nil, style)
}

func (v *Viewer) drawStatus(x, y int, sim core.Sim) {
	status := sim.Name()
	if t, ok := sim.(control.Tiltable); ok {
		status += fmt.Sprintf("  angle %5.1f", t.GravityAngle())
	}
	if c, ok := sim.(particleCounter); ok {
		status += fmt.Sprintf("  grains %d  tick %d", c.ParticleCount(), c.TickCount())
	}
	if v.session.Paused {
		status += "  [paused]"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, r := range status {
		v.screen.SetContent(x+i, y, r, nil, style)
	}
}

// Run drives the viewer until ctx ends or the user quits. Events are read on
// a separate goroutine; ticking and drawing stay on the calling one.
func Run(ctx context.Context, screen tcell.Screen, v *Viewer, tps int) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	step := core.NewFixedStep(tps)
	frame := time.NewTicker(16 * time.Millisecond)
	defer frame.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if v.HandleEvent(ev) {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		case <-frame.C:
			for n := step.Due(); n > 0; n-- {
				v.Tick()
			}
			v.Draw()
		}
	}
}
