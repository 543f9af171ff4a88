package sand

import (
	"fmt"
	"slices"

	"tilt-sand/internal/core"
)

// World is the granular automaton: a grid of grains settling under a
// rotatable gravity, with new grains entering once the newest one lands.
type World struct {
	cfg  Config
	name string

	grid      *Grid
	gravity   Gravity
	particles []Particle
	resolver  *StepResolver
	spawner   *SpawnController
	rng       *core.RNG
	display   *core.ByteGrid

	tick      int
	last      StepStats
	restTicks int
	flips     int
}

// New returns a sand world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig builds the grid, seeds its obstacles and initial grains and
// returns a world ready to tick.
func NewWithConfig(cfg Config) *World {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	if cfg.Params.Colors < 1 || cfg.Params.Colors > len(grainColors) {
		cfg.Params.Colors = len(grainColors)
	}
	w := &World{
		cfg:     cfg,
		name:    "sand",
		grid:    NewGrid(cfg.Width, cfg.Height),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
	}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return w.name }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.W(), H: w.grid.H()} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Config returns the active configuration, including the current angle.
func (w *World) Config() Config { return w.cfg }

// Reset rebuilds obstacles and initial grains using deterministic
// randomness. A zero seed uses the configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)

	w.grid.Clear()
	if e := w.cfg.Enclosure.Build(w.grid.W(), w.grid.H(), effective); e != nil {
		e.Apply(w.grid)
	}

	acc, err := NewAccumulator(w.cfg.Params.Accumulator)
	if err != nil {
		acc = &PerParticleAccumulator{}
	}
	mode, err := ParseResolveMode(string(w.cfg.Params.Resolve))
	if err != nil {
		mode = ResolveImmediate
	}
	w.resolver = NewStepResolver(acc, w.rng, mode, w.cfg.Params.Fallback)
	w.spawner = NewSpawnController(w.rng)
	w.gravity = NewGravity(w.cfg.Params.GravityAngle)

	w.particles = w.particles[:0]
	w.tick = 0
	w.last = StepStats{}
	w.restTicks = 0
	w.flips = 0

	w.scatter(w.cfg.Params.InitialParticles)
	w.rebuildDisplay()
}

// Step advances the simulation by one tick.
func (w *World) Step() { w.Tick() }

// Tick runs the spawn check and then moves every grain once.
func (w *World) Tick() StepStats {
	if w.canSpawn() && w.spawner.ShouldSpawn(w.newest()) {
		if p, ok := w.spawner.Position(w.gravity, w.grid); ok {
			w.AddParticle(p)
		}
	}
	w.last = w.resolver.Step(w.grid, w.particles, w.gravity)
	w.tick++
	w.maybeFlip()
	w.rebuildDisplay()
	return w.last
}

// SetGravityAngle changes the pull direction. All accumulated error is
// discarded and every settled flag cleared, so the next tick starts from a
// clean phase.
func (w *World) SetGravityAngle(angle float64) {
	w.gravity = NewGravity(angle)
	w.cfg.Params.GravityAngle = w.gravity.Angle()
	w.resolver.Accumulator().Reset()
	for i := range w.particles {
		w.particles[i].Settled = false
	}
	w.restTicks = 0
}

// RotateGravity turns the pull by delta degrees.
func (w *World) RotateGravity(delta float64) {
	w.SetGravityAngle(w.gravity.Angle() + delta)
}

// RotateStep returns the configured rotation increment in degrees.
func (w *World) RotateStep() float64 { return w.cfg.Params.RotateStep }

// Gravity returns the current gravity state.
func (w *World) Gravity() Gravity { return w.gravity }

// GravityAngle returns the current pull angle in degrees.
func (w *World) GravityAngle() float64 { return w.gravity.Angle() }

// Snapshot returns a read-only view of the grid.
func (w *World) Snapshot() View { return w.grid.Snapshot() }

// Particles returns a copy of all grains in creation order.
func (w *World) Particles() []Particle { return slices.Clone(w.particles) }

// ParticleCount returns the number of grains.
func (w *World) ParticleCount() int { return len(w.particles) }

// Newest returns the most recently spawned grain.
func (w *World) Newest() (Particle, bool) {
	if p := w.newest(); p != nil {
		return *p, true
	}
	return Particle{}, false
}

// TickCount returns the number of ticks since the last reset.
func (w *World) TickCount() int { return w.tick }

// LastStats returns the summary of the most recent tick.
func (w *World) LastStats() StepStats { return w.last }

// Flips returns how many automatic half turns have happened.
func (w *World) Flips() int { return w.flips }

// IsFree reports whether a grain could be placed at (r, c).
func (w *World) IsFree(r, c int) bool { return w.grid.IsFree(r, c) }

// AddParticle places a new grain at p and returns its id. p must be free.
func (w *World) AddParticle(p Point) int {
	id := len(w.particles)
	color := uint8(w.rng.IntN(w.cfg.Params.Colors))
	w.grid.Spawn(p, id, color)
	w.particles = append(w.particles, Particle{ID: id, Pos: p, Color: color})
	w.display.Set(p.C, p.R, DisplayValue(w.grid.At(p.R, p.C)))
	return id
}

func (w *World) newest() *Particle {
	if len(w.particles) == 0 {
		return nil
	}
	return &w.particles[len(w.particles)-1]
}

func (w *World) canSpawn() bool {
	if !w.cfg.Params.Spawn {
		return false
	}
	return w.cfg.Params.MaxParticles == 0 || len(w.particles) < w.cfg.Params.MaxParticles
}

// maybeFlip turns gravity upside down once every grain has rested for the
// configured number of ticks.
func (w *World) maybeFlip() {
	if !w.cfg.Params.AutoFlip || len(w.particles) == 0 {
		return
	}
	if w.last.Settled < len(w.particles) {
		w.restTicks = 0
		return
	}
	w.restTicks++
	if w.restTicks >= w.cfg.Params.FlipDelay {
		w.RotateGravity(180)
		w.flips++
	}
}

// scatter drops n grains on random free cells in the half of the field that
// lies against the pull.
func (w *World) scatter(n int) {
	if n <= 0 {
		return
	}
	v := w.gravity.Vec()
	cr, cc := float64(w.grid.H()-1)/2, float64(w.grid.W()-1)/2
	var candidates []Point
	for r := 0; r < w.grid.H(); r++ {
		for c := 0; c < w.grid.W(); c++ {
			if !w.grid.IsFree(r, c) {
				continue
			}
			if (float64(r)-cr)*v.Y+(float64(c)-cc)*v.X <= 0 {
				candidates = append(candidates, Point{R: r, C: c})
			}
		}
	}
	for i := 0; i < n && len(candidates) > 0; i++ {
		k := w.rng.IntN(len(candidates))
		w.AddParticle(candidates[k])
		last := len(candidates) - 1
		candidates[k] = candidates[last]
		candidates = candidates[:last]
	}
}

// Open builds the named preset, layering the YAML file at path over it when
// path is not empty and then applying flag-style overrides as FromMapOver
// does.
func Open(preset, path string, overrides map[string]string) (*World, error) {
	presets, err := Presets()
	if err != nil {
		return nil, err
	}
	base, ok := presets[preset]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	cfg, err := Load(base, path)
	if err != nil {
		return nil, err
	}
	w := NewWithConfig(FromMapOver(cfg, overrides))
	w.name = preset
	return w, nil
}

func init() {
	presets, err := Presets()
	if err != nil {
		panic(err)
	}
	for name, preset := range presets {
		core.Register(name, func(cfg map[string]string) core.Sim {
			w := NewWithConfig(FromMapOver(preset, cfg))
			w.name = name
			return w
		})
	}
}
