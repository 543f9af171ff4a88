package term

import (
	"strings"
	"testing"

	"tilt-sand/internal/control"
	"tilt-sand/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

type fakeScreen struct {
	w, h  int
	cells map[[2]int]rune
	shown int
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{w: 80, h: 40, cells: map[[2]int]rune{}}
}

func (f *fakeScreen) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	f.cells[[2]int{x, y}] = r
}
func (f *fakeScreen) Size() (int, int) { return f.w, f.h }
func (f *fakeScreen) Clear()           { f.cells = map[[2]int]rune{} }
func (f *fakeScreen) Show()            { f.shown++ }

func (f *fakeScreen) line(y int) string {
	var b strings.Builder
	for x := 0; x < f.w; x++ {
		if r, ok := f.cells[[2]int{x, y}]; ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

type countingClicker struct{ n int }

func (c *countingClicker) Click() { c.n++ }

func newWorld(w, h int) *sand.World {
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	cfg.Enclosure = sand.EnclosureConfig{Kind: sand.EnclosureNone}
	cfg.Params.Spawn = false
	return sand.NewWithConfig(cfg)
}

func TestKeyCommand(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want control.Command
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), control.Command{Action: control.Quit}},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), control.Command{Action: control.Quit}},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), control.Command{Action: control.Pause}},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), control.Command{Action: control.RotateLeft}},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), control.Command{Action: control.RotateRight}},
		{tcell.NewEventKey(tcell.KeyRune, '8', tcell.ModNone), control.Command{Action: control.Compass, Digit: 8}},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), control.Command{}},
	}
	for _, tc := range cases {
		if got := KeyCommand(tc.ev); got != tc.want {
			t.Fatalf("KeyCommand(%v) = %+v, want %+v", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestDrawPlacesGrainsAndStatus(t *testing.T) {
	w := newWorld(6, 4)
	w.AddParticle(sand.Point{R: 1, C: 2})
	screen := newFakeScreen()
	v := NewViewer(control.NewSession(w, 0), screen, nil)
	v.Draw()

	if screen.cells[[2]int{4, 1}] != '█' || screen.cells[[2]int{5, 1}] != '█' {
		t.Fatal("grain at column 2 should fill terminal columns 4 and 5")
	}
	if _, ok := screen.cells[[2]int{0, 0}]; ok {
		t.Fatal("empty cells are left blank")
	}
	status := screen.line(4)
	if !strings.Contains(status, "angle") || !strings.Contains(status, "grains 1") {
		t.Fatalf("status line %q", status)
	}
	if screen.shown != 1 {
		t.Fatalf("Show called %d times", screen.shown)
	}
}

func TestRotatedDrawKeepsGrainsInFrame(t *testing.T) {
	w := newWorld(8, 8)
	w.AddParticle(sand.Point{R: 7, C: 7})
	w.SetGravityAngle(180)
	s := control.NewSession(w, 0)
	s.Apply(control.Command{Action: control.ToggleView})
	screen := newFakeScreen()
	NewViewer(s, screen, nil).Draw()

	// A half turn moves the bottom-right grain to the top-left of the frame.
	found := false
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if screen.cells[[2]int{x, y}] == '█' {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("rotated grain not drawn near the top-left")
	}
}

func TestTickClicksOncePerLanding(t *testing.T) {
	w := newWorld(4, 4)
	w.AddParticle(sand.Point{R: 0, C: 1})
	clicks := &countingClicker{}
	v := NewViewer(control.NewSession(w, 0), newFakeScreen(), clicks)
	for i := 0; i < 10; i++ {
		v.Tick()
	}
	if clicks.n != 1 {
		t.Fatalf("clicked %d times, want 1", clicks.n)
	}
}

func TestHandleEventQuits(t *testing.T) {
	v := NewViewer(control.NewSession(newWorld(4, 4), 0), newFakeScreen(), nil)
	if v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)) {
		t.Fatal("n must not quit")
	}
	if !v.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
}
