package gear

import "math"

// NoGear marks the absence of a gear id (no driver, no parent).
const NoGear = -1

// Gear is a toothed gear snapped to a grid cell.
type Gear struct {
	ID     int
	Col    int
	Row    int
	Teeth  int
	Color  string
	Driver bool
}

// Geometry maps grid cells and tooth counts to workspace units.
type Geometry struct {
	CellSize  float64
	ToothSize float64
}

// DefaultGeometry puts a 12-tooth gear and a 24-tooth gear in mesh on adjacent cells.
var DefaultGeometry = Geometry{CellSize: 60, ToothSize: 4}

// Radius is derived from the tooth count on every call and is never cached on the Gear.
func (geo Geometry) Radius(teeth int) float64 {
	return float64(teeth) * geo.ToothSize / 2
}

// Center returns the centre of the gear's grid cell.
func (geo Geometry) Center(g Gear) (float64, float64) {
	half := geo.CellSize / 2
	return float64(g.Col)*geo.CellSize + half, float64(g.Row)*geo.CellSize + half
}

// Distance is the Euclidean distance between the two gears' cell centres.
func (geo Geometry) Distance(a, b Gear) float64 {
	ax, ay := geo.Center(a)
	bx, by := geo.Center(b)
	return math.Hypot(ax-bx, ay-by)
}
