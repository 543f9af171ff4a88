package sand

import "math"

// Vec is a direction in grid space. X grows with the column index and Y with
// the row index, so (0, 1) points straight down the screen.
type Vec struct {
	X, Y float64
}

// Offset is a single-cell displacement in rows and columns.
type Offset struct {
	DR, DC int
}

// Vector converts a gravity angle in degrees into a unit vector. Zero degrees
// points down (row increasing) and 90 degrees points right.
func Vector(angle float64) Vec {
	rad := NormalizeAngle(angle) * math.Pi / 180
	return Vec{X: math.Sin(rad), Y: math.Cos(rad)}
}

// NormalizeAngle wraps any angle into [0, 360). Non-finite input maps to 0.
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}

// octants lists the eight neighbours in angle order, 45 degrees apart.
var octants = [8]Offset{
	{DR: 1, DC: 0},
	{DR: 1, DC: 1},
	{DR: 0, DC: 1},
	{DR: -1, DC: 1},
	{DR: -1, DC: 0},
	{DR: -1, DC: -1},
	{DR: 0, DC: -1},
	{DR: 1, DC: -1},
}

// Gravity holds the current pull direction.
type Gravity struct {
	angle float64
	vec   Vec
}

// NewGravity returns the gravity state for the given angle.
func NewGravity(angle float64) Gravity {
	a := NormalizeAngle(angle)
	return Gravity{angle: a, vec: Vector(a)}
}

// Angle returns the normalized angle in degrees.
func (g Gravity) Angle() float64 { return g.angle }

// Vec returns the unit pull vector.
func (g Gravity) Vec() Vec { return g.vec }

// Octant returns the index of the neighbour direction closest to the pull.
func (g Gravity) Octant() int {
	return int(math.Round(g.angle/45)) % 8
}

// Ground returns the three downhill neighbours: straight along the nearest
// octant, and the two octants either side of it.
func (g Gravity) Ground() (straight, left, right Offset) {
	k := g.Octant()
	return octants[k], octants[(k+7)%8], octants[(k+1)%8]
}

// Direction names a fixed gravity preset.
type Direction struct {
	Name  string
	Angle float64
}

// Compass holds the eight axis and diagonal presets.
var Compass = []Direction{
	{Name: "down", Angle: 0},
	{Name: "down-right", Angle: 45},
	{Name: "right", Angle: 90},
	{Name: "up-right", Angle: 135},
	{Name: "up", Angle: 180},
	{Name: "up-left", Angle: 225},
	{Name: "left", Angle: 270},
	{Name: "down-left", Angle: 315},
}

// CompassAngle looks up a preset by name.
func CompassAngle(name string) (float64, bool) {
	for _, d := range Compass {
		if d.Name == name {
			return d.Angle, true
		}
	}
	return 0, false
}

// numpad maps keypad digits to the direction they sit at relative to 5.
var numpad = map[int]string{
	1: "down-left",
	2: "down",
	3: "down-right",
	4: "left",
	6: "right",
	7: "up-left",
	8: "up",
	9: "up-right",
}

// NumpadAngle returns the preset angle for a keypad digit.
func NumpadAngle(digit int) (float64, bool) {
	name, ok := numpad[digit]
	if !ok {
		return 0, false
	}
	return CompassAngle(name)
}
