//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"tilt-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	panelBG     = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textBright  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	textDim     = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonOn    = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff   = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonLabel = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonMuted = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	controls *Controls
	buttons  []rowButtons
	offsetX  int
	title    string
}

type rowButtons struct {
	top         int
	minus, plus image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, controls: NewControls(sim), title: "Controls"}
	if name := sim.Name(); name != "" {
		h.title = strings.ToUpper(name[:1]) + name[1:] + " controls"
	}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layout()
	return h
}

// Update re-reads the parameter values and handles clicks on the panel.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.offsetX = panelOffsetX
	if provider, ok := h.sim.(parameterProvider); ok {
		h.controls.Refresh(provider.Parameters())
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i, b := range h.buttons {
		switch {
		case pt.In(b.minus):
			h.controls.Adjust(i, -1)
			return
		case pt.In(b.plus):
			h.controls.Adjust(i, 1)
			return
		}
	}
}

// Draw paints the panel at offsetX, matching the height of the view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)

	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, textBright)
	if h.controls.Len() == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+lineHeight, textDim)
	}
	for i, b := range h.buttons {
		row := h.controls.Row(i)
		y := b.top + labelBaseline
		text.Draw(h.panel, row.Def.Label, face, panelPadding, y, textBright)
		valueColor := textBright
		if !row.Known {
			valueColor = textDim
		}
		x := b.minus.Min.X - buttonGap - text.BoundString(face, row.Text).Dx()
		text.Draw(h.panel, row.Text, face, x, y, valueColor)
		if row.Def.Type != core.ParamTypeString {
			h.drawButton(b.minus, "-", h.controls.CanAdjust(i, -1))
			h.drawButton(b.plus, "+", h.controls.CanAdjust(i, 1))
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonOn, buttonLabel
	if !enabled {
		bg, fg = buttonOff, buttonMuted
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	h.buttons = make([]rowButtons, h.controls.Len())
	for i := range h.buttons {
		top := controlsTop + i*lineHeight
		y := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, y, h.width-panelPadding, y+buttonSize)
		minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
		h.buttons[i] = rowButtons{top: top, minus: minus, plus: plus}
	}
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
