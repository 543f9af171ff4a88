//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"tilt-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type gravityProvider interface {
	GravityAngle() float64
}

// Overlay draws optional guides on top of the grid: the outline of the disc
// inscribed in the field and an arrow along the current pull.
type Overlay struct {
	sim   core.Sim
	scale int

	showDisc  bool
	showArrow bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{sim: sim, scale: scale, showArrow: true}
}

// Update toggles the guides: 1 for the disc outline, 2 for the gravity arrow.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showDisc = !o.showDisc
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showArrow = !o.showArrow
	}
}

// Draw renders the enabled guides. viewAngle is the clockwise rotation the
// grid was drawn with, so the guides line up with it.
func (o *Overlay) Draw(screen *ebiten.Image, viewAngle float64) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	b := screen.Bounds()
	cx, cy := float32(b.Min.X)+float32(b.Dx())/2, float32(b.Min.Y)+float32(b.Dy())/2
	rx, ry := float32(size.W*o.scale)/2, float32(size.H*o.scale)/2

	if o.showDisc {
		o.drawEllipse(screen, cx, cy, rx, ry, viewAngle)
	}
	if o.showArrow {
		if provider, ok := o.sim.(gravityProvider); ok {
			o.drawArrow(screen, cx, cy, min(rx, ry)*0.6, provider.GravityAngle()-viewAngle)
		}
	}
}

func (o *Overlay) drawEllipse(screen *ebiten.Image, cx, cy, rx, ry float32, viewAngle float64) {
	const segments = 72
	outline := color.RGBA{R: 90, G: 200, B: 255, A: 200}
	rot := viewAngle * math.Pi / 180
	point := func(i int) (float32, float32) {
		t := 2 * math.Pi * float64(i) / segments
		x, y := float64(rx)*math.Cos(t), float64(ry)*math.Sin(t)
		x, y = x*math.Cos(rot)-y*math.Sin(rot), x*math.Sin(rot)+y*math.Cos(rot)
		return cx + float32(x), cy + float32(y)
	}
	px, py := point(0)
	for i := 1; i <= segments; i++ {
		x, y := point(i)
		vector.StrokeLine(screen, px, py, x, y, 1, outline, true)
		px, py = x, y
	}
}

// drawArrow points along a gravity angle: 0 is screen down, 90 screen right.
func (o *Overlay) drawArrow(screen *ebiten.Image, cx, cy, length float32, angle float64) {
	const headAngle = math.Pi / 6
	col := color.RGBA{R: 255, G: 210, B: 80, A: 230}
	rad := angle * math.Pi / 180
	dx, dy := float32(math.Sin(rad)), float32(math.Cos(rad))

	tipX, tipY := cx+dx*length, cy+dy*length
	tailX, tailY := cx-dx*length*0.3, cy-dy*length*0.3
	width := float32(max(1, o.scale/2))
	vector.StrokeLine(screen, tailX, tailY, tipX, tipY, width, col, true)

	head := float64(length) * 0.25
	back := math.Atan2(-float64(dy), -float64(dx))
	for _, side := range []float64{headAngle, -headAngle} {
		hx := tipX + float32(math.Cos(back+side)*head)
		hy := tipY + float32(math.Sin(back+side)*head)
		vector.StrokeLine(screen, tipX, tipY, hx, hy, width, col, true)
	}
	vector.DrawFilledCircle(screen, cx, cy, width*1.5, col, true)
}
