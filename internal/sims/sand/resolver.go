package sand

import (
	"cmp"
	"fmt"
	"slices"
)

// Rand is the random source used for tie-breaks and spawn positions.
type Rand interface {
	IntN(n int) int
}

// ResolveMode selects how moves within one tick interact.
type ResolveMode string

const (
	// ResolveImmediate applies each move as soon as it is decided; later
	// particles see the updated grid.
	ResolveImmediate ResolveMode = "immediate"
	// ResolveBuffered only lets a particle enter a cell that was empty before
	// the tick started and has not been claimed during it.
	ResolveBuffered ResolveMode = "buffered"
)

// ParseResolveMode validates a mode name.
func ParseResolveMode(s string) (ResolveMode, error) {
	switch ResolveMode(s) {
	case ResolveImmediate, ResolveBuffered:
		return ResolveMode(s), nil
	case "":
		return ResolveImmediate, nil
	default:
		return "", fmt.Errorf("unknown resolve mode %q", s)
	}
}

// Particle is a single grain. ID equals its index in creation order.
type Particle struct {
	ID      int
	Pos     Point
	Color   uint8
	Settled bool
}

// StepStats summarises one tick.
type StepStats struct {
	Moved   int
	Settled int
}

// StepResolver advances every particle by one tick.
type StepResolver struct {
	acc      Accumulator
	rng      Rand
	mode     ResolveMode
	fallback bool

	order   []int
	blocked []bool
}

// NewStepResolver wires a resolver. With fallback disabled a blocked particle
// simply stays put.
func NewStepResolver(acc Accumulator, rng Rand, mode ResolveMode, fallback bool) *StepResolver {
	if mode == "" {
		mode = ResolveImmediate
	}
	return &StepResolver{acc: acc, rng: rng, mode: mode, fallback: fallback}
}

// Accumulator returns the error accumulator in use.
func (s *StepResolver) Accumulator() Accumulator { return s.acc }

// Mode returns the resolution mode.
func (s *StepResolver) Mode() ResolveMode { return s.mode }

// Fallback reports whether the diagonal fallback rule is enabled.
func (s *StepResolver) Fallback() bool { return s.fallback }

// SetFallback toggles the diagonal fallback rule.
func (s *StepResolver) SetFallback(on bool) { s.fallback = on }

// Step moves each particle at most one cell. particles[i].ID must equal i.
// Only the newest particle may keep its settled flag.
func (s *StepResolver) Step(grid *Grid, particles []Particle, gravity Gravity) StepStats {
	var stats StepStats
	if len(particles) == 0 {
		return stats
	}
	g := gravity.Vec()
	s.acc.BeginTick(g)
	s.sortOrder(particles, g)

	buffered := s.mode == ResolveBuffered
	if buffered {
		s.snapshotOccupancy(grid)
	}
	free := func(p Point) bool {
		if !grid.InBounds(p.R, p.C) {
			return false
		}
		if buffered {
			return !s.blocked[p.R*grid.W()+p.C]
		}
		return grid.IsFree(p.R, p.C)
	}
	// In buffered mode a cell that is empty on the grid but masked was
	// vacated this tick; a grain blocked only by such cells is waiting.
	vacated := func(pts ...Point) bool {
		if !buffered {
			return false
		}
		for _, p := range pts {
			if grid.IsFree(p.R, p.C) {
				return true
			}
		}
		return false
	}

	straight, left, right := gravity.Ground()
	newest := len(particles) - 1
	for _, id := range s.order {
		p := &particles[id]
		step := s.acc.Step(id, g)

		var dest Point
		moved, settled := false, false
		if step != (Offset{}) {
			to := p.Pos.Add(step)
			switch {
			case free(to):
				dest, moved = to, true
			case !s.fallback:
				settled = !vacated(to)
			default:
				dest, moved, settled = s.fallbackMove(p.Pos, straight, left, right, free)
				if settled && vacated(to, p.Pos.Add(straight), p.Pos.Add(left), p.Pos.Add(right)) {
					settled = false
				}
			}
		} else {
			ground := []Point{p.Pos.Add(straight), p.Pos.Add(left), p.Pos.Add(right)}
			settled = !free(ground[0]) && !free(ground[1]) && !free(ground[2]) && !vacated(ground...)
		}

		if moved {
			grid.Move(p.Pos, dest)
			if buffered {
				s.blocked[dest.R*grid.W()+dest.C] = true
			}
			p.Pos = dest
			stats.Moved++
		}
		if settled {
			stats.Settled++
		}
		p.Settled = settled && id == newest
	}
	return stats
}

// fallbackMove tries the straight downhill neighbour, then the two diagonal
// ones, picking at random when both are open.
func (s *StepResolver) fallbackMove(pos Point, straight, left, right Offset, free func(Point) bool) (Point, bool, bool) {
	if to := pos.Add(straight); free(to) {
		return to, true, false
	}
	l, r := pos.Add(left), pos.Add(right)
	lf, rf := free(l), free(r)
	switch {
	case lf && rf:
		if s.rng != nil && s.rng.IntN(2) == 1 {
			return r, true, false
		}
		return l, true, false
	case lf:
		return l, true, false
	case rf:
		return r, true, false
	default:
		return pos, false, true
	}
}

// sortOrder evaluates particles furthest along the pull first so a falling
// column moves together in immediate mode. Ties fall back to creation order.
func (s *StepResolver) sortOrder(particles []Particle, g Vec) {
	s.order = s.order[:0]
	for i := range particles {
		s.order = append(s.order, i)
	}
	slices.SortFunc(s.order, func(a, b int) int {
		pa, pb := particles[a].Pos, particles[b].Pos
		da := float64(pa.R)*g.Y + float64(pa.C)*g.X
		db := float64(pb.R)*g.Y + float64(pb.C)*g.X
		if c := cmp.Compare(db, da); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

func (s *StepResolver) snapshotOccupancy(grid *Grid) {
	n := grid.W() * grid.H()
	if cap(s.blocked) < n {
		s.blocked = make([]bool, n)
	}
	s.blocked = s.blocked[:n]
	for r := 0; r < grid.H(); r++ {
		for c := 0; c < grid.W(); c++ {
			s.blocked[r*grid.W()+c] = grid.At(r, c).Kind != Empty
		}
	}
}
