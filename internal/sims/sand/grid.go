package sand

import "fmt"

// CellKind enumerates what occupies a grid cell.
type CellKind uint8

const (
	Empty CellKind = iota
	Obstacle
	Grain
)

func (k CellKind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Obstacle:
		return "obstacle"
	case Grain:
		return "grain"
	default:
		return fmt.Sprintf("CellKind(%d)", uint8(k))
	}
}

// Cell is the value stored at one grid position. ID and Color are only
// meaningful for particles.
type Cell struct {
	Kind  CellKind
	ID    int
	Color uint8
}

// Point addresses a cell by row and column.
type Point struct {
	R, C int
}

// Add returns p displaced by o.
func (p Point) Add(o Offset) Point {
	return Point{R: p.R + o.DR, C: p.C + o.DC}
}

// Grid owns the dense occupancy state. Obstacles are immutable once placed and
// at most one particle occupies any cell.
type Grid struct {
	w, h  int
	cells []Cell
}

// NewGrid allocates an empty grid.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

// W returns the number of columns.
func (g *Grid) W() int { return g.w }

// H returns the number of rows.
func (g *Grid) H() int { return g.h }

// InBounds reports whether (r, c) lies inside the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.h && c >= 0 && c < g.w
}

// IsFree reports whether (r, c) is in bounds and empty.
func (g *Grid) IsFree(r, c int) bool {
	return g.InBounds(r, c) && g.cells[r*g.w+c].Kind == Empty
}

// At returns the cell at (r, c). It panics when out of bounds.
func (g *Grid) At(r, c int) Cell {
	return g.cells[g.mustIndex(r, c)]
}

// SetObstacle marks (r, c) as a wall. Placing a wall on a particle panics.
func (g *Grid) SetObstacle(r, c int) {
	idx := g.mustIndex(r, c)
	if g.cells[idx].Kind == Grain {
		panic(fmt.Sprintf("sand: obstacle at (%d,%d) would overwrite particle %d", r, c, g.cells[idx].ID))
	}
	g.cells[idx] = Cell{Kind: Obstacle}
}

// MirrorSymmetric places cell into (r, c) and its reflections across the
// horizontal and vertical mid-lines. Only obstacles may be mirrored: walls
// are never removed and a particle cannot exist in four places.
func (g *Grid) MirrorSymmetric(r, c int, cell Cell) {
	if cell.Kind != Obstacle {
		panic(fmt.Sprintf("sand: cannot mirror a %s cell", cell.Kind))
	}
	mr, mc := g.h-1-r, g.w-1-c
	targets := [4]Point{{r, c}, {r, mc}, {mr, c}, {mr, mc}}
	for _, p := range targets {
		idx := g.mustIndex(p.R, p.C)
		if g.cells[idx].Kind == Grain {
			panic(fmt.Sprintf("sand: mirror at (%d,%d) would overwrite particle %d", p.R, p.C, g.cells[idx].ID))
		}
	}
	for _, p := range targets {
		g.cells[p.R*g.w+p.C] = Cell{Kind: Obstacle}
	}
}

// Move relocates the particle at from into the free cell to.
func (g *Grid) Move(from, to Point) {
	src := g.mustIndex(from.R, from.C)
	if g.cells[src].Kind != Grain {
		panic(fmt.Sprintf("sand: move from (%d,%d) holds %s, not a particle", from.R, from.C, g.cells[src].Kind))
	}
	if !g.IsFree(to.R, to.C) {
		panic(fmt.Sprintf("sand: move to (%d,%d) which is not free", to.R, to.C))
	}
	g.cells[to.R*g.w+to.C] = g.cells[src]
	g.cells[src] = Cell{}
}

// Spawn places a new particle at p, which must be free.
func (g *Grid) Spawn(p Point, id int, color uint8) {
	if !g.IsFree(p.R, p.C) {
		panic(fmt.Sprintf("sand: spawn at (%d,%d) which is not free", p.R, p.C))
	}
	g.cells[p.R*g.w+p.C] = Cell{Kind: Grain, ID: id, Color: color}
}

// Clear empties every cell, obstacles included.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// Snapshot returns a read-only copy of the current cells.
func (g *Grid) Snapshot() View {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return View{w: g.w, h: g.h, cells: cells}
}

func (g *Grid) mustIndex(r, c int) int {
	if !g.InBounds(r, c) {
		panic(fmt.Sprintf("sand: (%d,%d) outside %dx%d grid", r, c, g.w, g.h))
	}
	return r*g.w + c
}

// View is an immutable copy of grid state for renderers.
type View struct {
	w, h  int
	cells []Cell
}

// W returns the number of columns.
func (v View) W() int { return v.w }

// H returns the number of rows.
func (v View) H() int { return v.h }

// At returns the cell at (r, c). It panics when out of bounds.
func (v View) At(r, c int) Cell {
	if r < 0 || r >= v.h || c < 0 || c >= v.w {
		panic(fmt.Sprintf("sand: view (%d,%d) outside %dx%d", r, c, v.w, v.h))
	}
	return v.cells[r*v.w+c]
}

// Count returns how many cells hold the given kind.
func (v View) Count(kind CellKind) int {
	n := 0
	for _, c := range v.cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
