package sand

import "testing"

// fixedRand returns the same choice every time.
type fixedRand int

func (f fixedRand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(f) % n
}

func newTestWorld(w, h int, mutate func(*Config)) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Enclosure = EnclosureConfig{Kind: EnclosureNone}
	cfg.Params.Spawn = false
	cfg.Params.InitialParticles = 0
	if mutate != nil {
		mutate(&cfg)
	}
	return NewWithConfig(cfg)
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func positionOf(t *testing.T, w *World, id int) Point {
	t.Helper()
	ps := w.Particles()
	if id < 0 || id >= len(ps) {
		t.Fatalf("particle %d missing (have %d)", id, len(ps))
	}
	return ps[id].Pos
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
