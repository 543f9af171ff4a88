package sand

import "fmt"

// AccumulatorMode selects how fractional displacement is tracked.
type AccumulatorMode string

const (
	// AccumulatorShared keeps one error pair for the whole grid; every
	// particle drifts in lockstep.
	AccumulatorShared AccumulatorMode = "shared"
	// AccumulatorPerParticle keeps one error pair per particle so grains
	// seeded at different times drift at different sub-cell phases.
	AccumulatorPerParticle AccumulatorMode = "per_particle"
)

// Accumulator converts a continuous gravity vector into unit grid steps by
// error diffusion. BeginTick is called once before any particle of a tick is
// stepped.
type Accumulator interface {
	Mode() AccumulatorMode
	BeginTick(g Vec)
	Step(id int, g Vec) Offset
	Reset()
}

// NewAccumulator returns the accumulator for mode.
func NewAccumulator(mode AccumulatorMode) (Accumulator, error) {
	switch mode {
	case AccumulatorShared:
		return &SharedAccumulator{}, nil
	case AccumulatorPerParticle, "":
		return &PerParticleAccumulator{}, nil
	default:
		return nil, fmt.Errorf("unknown accumulator mode %q", mode)
	}
}

// unitStep moves one whole unit out of *e when |*e| >= 1 and returns its
// sign, leaving the sub-unit remainder behind.
func unitStep(e *float64) int {
	switch {
	case *e >= 1:
		*e--
		return 1
	case *e <= -1:
		*e++
		return -1
	default:
		return 0
	}
}

// diffuse adds g to err and extracts the resulting single-cell step.
func diffuse(err *Vec, g Vec) Offset {
	err.X += g.X
	err.Y += g.Y
	dr := unitStep(&err.Y)
	dc := unitStep(&err.X)
	return Offset{DR: dr, DC: dc}
}

// SharedAccumulator advances a single error pair once per tick.
type SharedAccumulator struct {
	err  Vec
	step Offset
}

// Mode implements Accumulator.
func (a *SharedAccumulator) Mode() AccumulatorMode { return AccumulatorShared }

// BeginTick implements Accumulator.
func (a *SharedAccumulator) BeginTick(g Vec) {
	a.step = diffuse(&a.err, g)
}

// Step implements Accumulator. Every particle receives the tick's step.
func (a *SharedAccumulator) Step(int, Vec) Offset { return a.step }

// Reset implements Accumulator.
func (a *SharedAccumulator) Reset() {
	a.err = Vec{}
	a.step = Offset{}
}

// Error exposes the residual error pair.
func (a *SharedAccumulator) Error() Vec { return a.err }

// PerParticleAccumulator keeps an error pair for each particle id. The error
// belongs to the particle, so it travels with it when it moves.
type PerParticleAccumulator struct {
	errs []Vec
}

// Mode implements Accumulator.
func (a *PerParticleAccumulator) Mode() AccumulatorMode { return AccumulatorPerParticle }

// BeginTick implements Accumulator.
func (a *PerParticleAccumulator) BeginTick(Vec) {}

// Step implements Accumulator.
func (a *PerParticleAccumulator) Step(id int, g Vec) Offset {
	if id < 0 {
		panic(fmt.Sprintf("sand: negative particle id %d", id))
	}
	for id >= len(a.errs) {
		a.errs = append(a.errs, Vec{})
	}
	return diffuse(&a.errs[id], g)
}

// Reset implements Accumulator.
func (a *PerParticleAccumulator) Reset() {
	for i := range a.errs {
		a.errs[i] = Vec{}
	}
}

// Error exposes the residual error pair of particle id.
func (a *PerParticleAccumulator) Error(id int) Vec {
	if id < 0 || id >= len(a.errs) {
		return Vec{}
	}
	return a.errs[id]
}
