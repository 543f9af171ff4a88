package sand

import (
	"math"
	"slices"
	"testing"

	"tilt-sand/internal/core"
)

func TestSingleGrainFallsToTheBottom(t *testing.T) {
	w := newTestWorld(16, 16, nil)
	w.AddParticle(Point{R: 0, C: 8})
	for i := 0; i < 15; i++ {
		w.Tick()
	}
	if got := positionOf(t, w, 0); got != (Point{R: 15, C: 8}) {
		t.Fatalf("grain at %v after 15 ticks", got)
	}
	w.Tick()
	if p, _ := w.Newest(); !p.Settled {
		t.Fatal("grain resting on the bottom edge should be settled")
	}
}

func TestFloorWithGap(t *testing.T) {
	cases := []struct {
		name     string
		col      int
		fallback bool
		ticks    int
		want     Point
	}{
		{name: "through gap", col: 8, fallback: true, ticks: 15, want: Point{R: 15, C: 8}},
		{name: "blocked", col: 3, fallback: true, ticks: 15, want: Point{R: 4, C: 3}},
		{name: "beside gap without fallback", col: 7, fallback: false, ticks: 15, want: Point{R: 4, C: 7}},
		{name: "slides into gap", col: 7, fallback: true, ticks: 20, want: Point{R: 15, C: 8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(16, 16, func(cfg *Config) {
				cfg.Enclosure = EnclosureConfig{Kind: EnclosureFloor, FloorRow: 5, FloorGaps: []int{8}}
				cfg.Params.Fallback = tc.fallback
			})
			w.AddParticle(Point{R: 0, C: tc.col})
			for i := 0; i < tc.ticks; i++ {
				w.Tick()
			}
			if got := positionOf(t, w, 0); got != tc.want {
				t.Fatalf("grain at %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSurroundedGrainSettles(t *testing.T) {
	w := newTestWorld(5, 5, func(cfg *Config) {
		cfg.Enclosure = EnclosureConfig{Kind: EnclosureFloor, FloorRow: 3}
	})
	w.AddParticle(Point{R: 2, C: 2})
	stats := w.Tick()
	if stats.Moved != 0 || stats.Settled != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if p, ok := w.Newest(); !ok || !p.Settled {
		t.Fatal("grain on a solid floor should settle")
	}
}

func TestSpawnWaitsForNewestToSettle(t *testing.T) {
	w := newTestWorld(8, 8, func(cfg *Config) { cfg.Params.Spawn = true })
	for i := 0; i < 8; i++ {
		w.Tick()
	}
	if got := w.ParticleCount(); got != 1 {
		t.Fatalf("expected one grain while the first is falling, got %d", got)
	}
	ps := w.Particles()
	if ps[0].Pos.R != 7 || !ps[0].Settled {
		t.Fatalf("first grain should rest on row 7, got %+v", ps[0])
	}

	w.Tick()
	if got := w.ParticleCount(); got != 2 {
		t.Fatalf("expected a second grain after the first settled, got %d", got)
	}
	if w.Particles()[0].Settled {
		t.Fatal("older grain must lose its settled flag once a newer one exists")
	}
}

func TestMaxParticlesStopsSpawning(t *testing.T) {
	w := newTestWorld(8, 8, func(cfg *Config) {
		cfg.Params.Spawn = true
		cfg.Params.MaxParticles = 2
	})
	for i := 0; i < 100; i++ {
		w.Tick()
	}
	if got := w.ParticleCount(); got != 2 {
		t.Fatalf("expected spawning to stop at 2 grains, got %d", got)
	}
}

func TestSetGravityAngleResetsPhase(t *testing.T) {
	w := newTestWorld(20, 20, func(cfg *Config) { cfg.Params.GravityAngle = 30 })
	w.AddParticle(Point{R: 2, C: 2})
	for i := 0; i < 3; i++ {
		w.Tick()
	}
	acc := w.resolver.Accumulator().(*PerParticleAccumulator)
	if acc.Error(0) == (Vec{}) {
		t.Fatal("30 degree drift should leave a residual error")
	}

	w.SetGravityAngle(200)
	if acc.Error(0) != (Vec{}) {
		t.Fatalf("error not cleared: %+v", acc.Error(0))
	}
	if w.Gravity().Angle() != 200 {
		t.Fatalf("angle = %v", w.Gravity().Angle())
	}
	before := positionOf(t, w, 0)
	w.Tick()
	after := positionOf(t, w, 0)
	if abs(after.R-before.R) > 1 || abs(after.C-before.C) > 1 {
		t.Fatalf("grain jumped from %v to %v", before, after)
	}
}

func TestRotateGravityWraps(t *testing.T) {
	w := newTestWorld(4, 4, nil)
	w.RotateGravity(-10)
	if got := w.Gravity().Angle(); got != 350 {
		t.Fatalf("angle = %v, want 350", got)
	}
	w.RotateGravity(20)
	if got := w.Gravity().Angle(); math.Abs(got-10) > 1e-9 {
		t.Fatalf("angle = %v, want 10", got)
	}
}

func TestPresetConservesGrainsAndObstacles(t *testing.T) {
	presets, err := Presets()
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}
	w := NewWithConfig(presets["sand"])
	obstacles := w.Snapshot().Count(Obstacle)
	prev := w.Particles()
	for tick := 0; tick < 200; tick++ {
		if tick == 100 {
			w.RotateGravity(135)
		}
		w.Tick()
		view := w.Snapshot()
		if got := view.Count(Obstacle); got != obstacles {
			t.Fatalf("tick %d: obstacles changed %d -> %d", tick, obstacles, got)
		}
		ps := w.Particles()
		if got := view.Count(Grain); got != len(ps) {
			t.Fatalf("tick %d: grid holds %d grains, list holds %d", tick, got, len(ps))
		}
		for i, p := range ps {
			if c := view.At(p.Pos.R, p.Pos.C); c.Kind != Grain || c.ID != p.ID {
				t.Fatalf("tick %d: grain %d not found at %v", tick, p.ID, p.Pos)
			}
			if i < len(prev) {
				if abs(p.Pos.R-prev[i].Pos.R) > 1 || abs(p.Pos.C-prev[i].Pos.C) > 1 {
					t.Fatalf("tick %d: grain %d jumped %v -> %v", tick, i, prev[i].Pos, p.Pos)
				}
			}
		}
		prev = ps
	}
}

func TestResetIsDeterministic(t *testing.T) {
	run := func(w *World) []Particle {
		for i := 0; i < 60; i++ {
			w.Tick()
		}
		return w.Particles()
	}
	a := New(24, 24)
	b := New(24, 24)
	first := run(a)
	if !slices.Equal(first, run(b)) {
		t.Fatal("worlds with equal configs diverged")
	}
	a.Reset(0)
	if a.TickCount() != 0 {
		t.Fatalf("tick counter not reset: %d", a.TickCount())
	}
	if !slices.Equal(first, run(a)) {
		t.Fatal("reset world diverged from its first run")
	}
	a.Reset(99)
	if slices.Equal(first, run(a)) {
		t.Fatal("a different seed should produce a different history")
	}
}

func TestAutoFlipTurnsGravityOver(t *testing.T) {
	w := newTestWorld(6, 6, func(cfg *Config) {
		cfg.Params.AutoFlip = true
		cfg.Params.FlipDelay = 2
	})
	w.AddParticle(Point{R: 0, C: 2})
	for i := 0; i < 10; i++ {
		w.Tick()
	}
	if got := w.Gravity().Angle(); got != 180 {
		t.Fatalf("angle = %v, want 180", got)
	}
	if w.Flips() != 1 {
		t.Fatalf("flips = %d, want 1", w.Flips())
	}
	if got := positionOf(t, w, 0); got.R >= 5 {
		t.Fatalf("grain should be rising after the flip, at %v", got)
	}
}

func TestDisplayBufferTracksGrid(t *testing.T) {
	w := newTestWorld(4, 4, func(cfg *Config) { cfg.Enclosure = EnclosureConfig{Kind: EnclosureBox} })
	w.AddParticle(Point{R: 1, C: 1})
	w.Tick()
	cells := w.Cells()
	if cells[0] != displayObstacle {
		t.Fatalf("corner display value %d", cells[0])
	}
	p := positionOf(t, w, 0)
	if p != (Point{R: 2, C: 1}) {
		t.Fatalf("grain at %v, want (2,1)", p)
	}
	if v := cells[p.R*4+p.C]; v < displayGrain || int(v) >= len(w.Palette()) {
		t.Fatalf("grain display value %d outside palette", v)
	}
	if cells[1*4+1] != displayEmpty {
		t.Fatal("vacated cell not cleared in display")
	}
}

func TestParameterSetters(t *testing.T) {
	w := newTestWorld(8, 8, nil)
	if !w.SetFloatParameter("gravity_angle", 370) || w.Gravity().Angle() != 10 {
		t.Fatalf("gravity_angle setter: angle %v", w.Gravity().Angle())
	}
	w.SetFloatParameter("rotate_step", 200)
	if w.RotateStep() != 90 {
		t.Fatalf("rotate step not clamped: %v", w.RotateStep())
	}
	if !w.SetBoolParameter("fallback", false) || w.resolver.Fallback() {
		t.Fatal("fallback toggle not applied to the resolver")
	}
	if !w.SetIntParameter("max_particles", -5) || w.Config().Params.MaxParticles != 0 {
		t.Fatal("max_particles should clamp at zero")
	}
	if w.SetIntParameter("unknown", 1) || w.SetBoolParameter("unknown", true) || w.SetFloatParameter("unknown", 1) {
		t.Fatal("unknown keys must be rejected")
	}

	var _ core.BoolParameterSetter = w
	var _ core.ParameterControlsProvider = w
	snap := w.Parameters()
	if len(snap.Groups) != 4 {
		t.Fatalf("expected 4 parameter groups, got %d", len(snap.Groups))
	}
}

func TestPresetsAreRegistered(t *testing.T) {
	for _, name := range []string{"sand", "hourglass", "drift", "rubble"} {
		factory, ok := core.Lookup(name)
		if !ok {
			t.Fatalf("preset %q not registered", name)
		}
		sim := factory(map[string]string{"w": "20", "h": "30"})
		if sim.Name() != name {
			t.Fatalf("registered sim reports name %q", sim.Name())
		}
		if size := sim.Size(); size.W != 20 || size.H != 30 {
			t.Fatalf("%s: overrides ignored, size %+v", name, size)
		}
	}
}
