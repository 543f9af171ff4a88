package sand

import "math"

// SpawnController decides when and where new grains enter the field.
type SpawnController struct {
	rng  Rand
	free []Point
}

// NewSpawnController returns a controller drawing positions from rng.
func NewSpawnController(rng Rand) *SpawnController {
	return &SpawnController{rng: rng}
}

// ShouldSpawn reports whether a new particle may be introduced: either none
// exists yet or the newest one has settled.
func (s *SpawnController) ShouldSpawn(newest *Particle) bool {
	return newest == nil || newest.Settled
}

// Position picks a random free cell on the edge opposite the pull, so grains
// fall across the field. When that edge is blocked it scans inward one line
// at a time. It reports false when the grid has no free cell at all.
func (s *SpawnController) Position(gravity Gravity, grid *Grid) (Point, bool) {
	v := gravity.Vec()
	rows := math.Abs(v.Y) >= math.Abs(v.X)

	lines, span := grid.H(), grid.W()
	start, dir := 0, 1
	if rows {
		if v.Y < 0 {
			start, dir = grid.H()-1, -1
		}
	} else {
		lines, span = grid.W(), grid.H()
		if v.X < 0 {
			start, dir = grid.W()-1, -1
		}
	}

	for depth := 0; depth < lines; depth++ {
		line := start + dir*depth
		s.free = s.free[:0]
		for i := 0; i < span; i++ {
			p := Point{R: line, C: i}
			if !rows {
				p = Point{R: i, C: line}
			}
			if grid.IsFree(p.R, p.C) {
				s.free = append(s.free, p)
			}
		}
		if len(s.free) == 0 {
			continue
		}
		pick := 0
		if s.rng != nil {
			pick = s.rng.IntN(len(s.free))
		}
		return s.free[pick], true
	}
	return Point{}, false
}
