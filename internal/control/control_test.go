package control

import (
	"testing"

	"tilt-sand/internal/sims/sand"
)

func newSession(t *testing.T) (*Session, *sand.World) {
	t.Helper()
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = 12, 12
	cfg.Params.RotateStep = 15
	w := sand.NewWithConfig(cfg)
	return NewSession(w, cfg.Seed), w
}

func TestRotateCommands(t *testing.T) {
	s, w := newSession(t)
	s.Apply(Command{Action: RotateLeft})
	if got := w.GravityAngle(); got != 15 {
		t.Fatalf("rotate left: angle %v, want 15", got)
	}
	s.Apply(Command{Action: RotateRight})
	s.Apply(Command{Action: RotateRight})
	if got := w.GravityAngle(); got != 345 {
		t.Fatalf("rotate right: angle %v, want 345", got)
	}
}

func TestCompassCommand(t *testing.T) {
	s, w := newSession(t)
	cases := map[int]float64{8: 180, 6: 90, 1: 315, 2: 0}
	for digit, want := range cases {
		s.Apply(Command{Action: Compass, Digit: digit})
		if got := w.GravityAngle(); got != want {
			t.Fatalf("digit %d: angle %v, want %v", digit, got, want)
		}
	}
	w.SetGravityAngle(42)
	s.Apply(Command{Action: Compass, Digit: 5})
	if w.GravityAngle() != 42 {
		t.Fatal("digit 5 has no direction and must leave gravity alone")
	}
}

func TestPauseAndSingleStep(t *testing.T) {
	s, w := newSession(t)
	s.Apply(Command{Action: Pause})
	if s.Advance() || w.TickCount() != 0 {
		t.Fatal("paused session must not tick")
	}
	s.Apply(Command{Action: StepOnce})
	if !s.Advance() || w.TickCount() != 1 {
		t.Fatal("single step should run exactly one tick")
	}
	if s.Advance() {
		t.Fatal("single step must not repeat")
	}
	s.Apply(Command{Action: Pause})
	if !s.Advance() {
		t.Fatal("unpaused session should tick")
	}
}

func TestResetAndReseed(t *testing.T) {
	s, w := newSession(t)
	s.clock = func() int64 { return 777 }
	for i := 0; i < 5; i++ {
		s.Advance()
	}
	s.Apply(Command{Action: Reset})
	if w.TickCount() != 0 || s.Seed != sand.DefaultConfig().Seed {
		t.Fatalf("reset: ticks %d seed %d", w.TickCount(), s.Seed)
	}
	s.Apply(Command{Action: Reseed})
	if s.Seed != 777 {
		t.Fatalf("reseed should take the clock value, got %d", s.Seed)
	}
}

func TestViewAngleFollowsGravity(t *testing.T) {
	s, w := newSession(t)
	w.SetGravityAngle(120)
	if s.ViewAngle() != 0 {
		t.Fatal("view is unrotated by default")
	}
	s.Apply(Command{Action: ToggleView})
	if s.ViewAngle() != 120 {
		t.Fatalf("rotated view angle = %v", s.ViewAngle())
	}
	if !s.Apply(Command{Action: Quit}) {
		t.Fatal("quit should end the loop")
	}
}
