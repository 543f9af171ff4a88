package sand

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
)

// Enclosure seeds static obstacles into a freshly cleared grid.
type Enclosure interface {
	Apply(g *Grid)
}

// Enclosure names accepted by EnclosureConfig.
const (
	EnclosureNone      = "none"
	EnclosureBox       = "box"
	EnclosureDisc      = "disc"
	EnclosureFloor     = "floor"
	EnclosureHourglass = "hourglass"
	EnclosureRubble    = "rubble"
)

// QuadrantProfile describes a symmetric enclosure by the number of blocked
// columns at the start of each row of the top-left quadrant. Every blocked
// cell is mirrored into the other three quadrants.
type QuadrantProfile []int

// Apply implements Enclosure.
func (p QuadrantProfile) Apply(g *Grid) {
	wall := Cell{Kind: Obstacle}
	for r, n := range p {
		if r >= g.H() {
			break
		}
		for c := 0; c < n && c < g.W(); c++ {
			g.MirrorSymmetric(r, c, wall)
		}
	}
}

// DiscProfile returns the quadrant profile blocking everything outside the
// ellipse inscribed in a w x h grid.
func DiscProfile(w, h int) QuadrantProfile {
	rx, ry := float64(w)/2, float64(h)/2
	cx, cy := float64(w-1)/2, float64(h-1)/2
	var profile QuadrantProfile
	for r := 0; r < (h+1)/2; r++ {
		dy := (float64(r) - cy) / ry
		n := 0
		for c := 0; c < (w+1)/2; c++ {
			dx := (float64(c) - cx) / rx
			if dx*dx+dy*dy <= 1 {
				break
			}
			n++
		}
		profile = append(profile, n)
	}
	return trimProfile(profile)
}

// HourglassProfile returns a profile that narrows linearly from the full
// width at the top and bottom rows to neck free columns in the middle.
func HourglassProfile(w, h, neck int) QuadrantProfile {
	if neck < 1 {
		neck = 1
	}
	half := float64(w) / 2
	rows := (h + 1) / 2
	var profile QuadrantProfile
	for r := 0; r < rows; r++ {
		t := 1.0
		if rows > 1 {
			t = float64(r) / float64(rows-1)
		}
		free := half - t*(half-float64(neck)/2)
		profile = append(profile, int(math.Floor(half-free)))
	}
	return trimProfile(profile)
}

func trimProfile(p QuadrantProfile) QuadrantProfile {
	for len(p) > 0 && p[len(p)-1] == 0 {
		p = p[:len(p)-1]
	}
	return p
}

// Box walls off the outer ring of cells.
type Box struct{}

// Apply implements Enclosure.
func (Box) Apply(g *Grid) {
	for c := 0; c < g.W(); c++ {
		g.SetObstacle(0, c)
		g.SetObstacle(g.H()-1, c)
	}
	for r := 1; r < g.H()-1; r++ {
		g.SetObstacle(r, 0)
		g.SetObstacle(r, g.W()-1)
	}
}

// Floor is a solid obstacle row with optional open columns.
type Floor struct {
	Row  int
	Gaps []int
}

// Apply implements Enclosure.
func (f Floor) Apply(g *Grid) {
	if f.Row < 0 || f.Row >= g.H() {
		return
	}
	open := make(map[int]bool, len(f.Gaps))
	for _, c := range f.Gaps {
		open[c] = true
	}
	for c := 0; c < g.W(); c++ {
		if !open[c] {
			g.SetObstacle(f.Row, c)
		}
	}
}

// Rubble scatters noise-shaped obstacle blobs, keeping a clear margin along
// every edge so grains can always enter.
type Rubble struct {
	Seed    int64
	Density float64
	Margin  int
}

// Apply implements Enclosure.
func (r Rubble) Apply(g *Grid) {
	if r.Density <= 0 {
		return
	}
	noise := perlin.NewPerlin(2, 2, 3, r.Seed)
	// Noise2D is roughly symmetric around zero; a higher density lowers the cut.
	threshold := 0.5 - r.Density
	scale := 6.0 / float64(max(g.W(), g.H()))
	for row := r.Margin; row < g.H()-r.Margin; row++ {
		for col := r.Margin; col < g.W()-r.Margin; col++ {
			if noise.Noise2D(float64(col)*scale, float64(row)*scale) > threshold {
				g.SetObstacle(row, col)
			}
		}
	}
}

// Layers applies several enclosures in order.
type Layers []Enclosure

// Apply implements Enclosure.
func (l Layers) Apply(g *Grid) {
	for _, e := range l {
		if e != nil {
			e.Apply(g)
		}
	}
}

// EnclosureConfig selects and parameterises the obstacle seed.
type EnclosureConfig struct {
	Kind          string  `yaml:"kind"`
	Profile       []int   `yaml:"profile,omitempty"`
	FloorRow      int     `yaml:"floor_row"`
	FloorGaps     []int   `yaml:"floor_gaps,omitempty"`
	Neck          int     `yaml:"neck"`
	RubbleDensity float64 `yaml:"rubble_density"`
}

// Validate reports unknown enclosure kinds.
func (e EnclosureConfig) Validate() error {
	switch e.Kind {
	case "", EnclosureNone, EnclosureBox, EnclosureDisc, EnclosureFloor, EnclosureHourglass, EnclosureRubble:
		return nil
	default:
		return fmt.Errorf("unknown enclosure %q", e.Kind)
	}
}

// Build resolves the configuration into an Enclosure for a w x h grid.
// Unknown kinds resolve to no obstacles.
func (e EnclosureConfig) Build(w, h int, seed int64) Enclosure {
	switch e.Kind {
	case EnclosureBox:
		return Box{}
	case EnclosureDisc:
		if len(e.Profile) > 0 {
			return QuadrantProfile(e.Profile)
		}
		return DiscProfile(w, h)
	case EnclosureFloor:
		return Floor{Row: e.FloorRow, Gaps: e.FloorGaps}
	case EnclosureHourglass:
		return HourglassProfile(w, h, e.Neck)
	case EnclosureRubble:
		return Layers{Box{}, Rubble{Seed: seed, Density: e.RubbleDensity, Margin: 3}}
	default:
		return nil
	}
}
