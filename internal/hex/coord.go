// Package hex implements hexagon grid coordinate math.
//
// Three equivalent coordinate systems are supported:
//
//   - Axial (q, r): compact storage, used as the cell key
//   - Cube (x, y, z) with x + y + z = 0: rounding, distance and lines
//   - Offset (col, row): row/column addressing, layout dependent
//
// All functions are pure. Grid adds the size, origin and layout needed to
// move between hex coordinates and map coordinates.
package hex

import "fmt"

// Axial is a hex position in axial coordinates.
// The implicit third cube coordinate is y = -q - r.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Cube is a hex position in cube coordinates. X + Y + Z is always 0.
type Cube struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Offset is a hex position in offset (column, row) coordinates.
//
// For Pointy layouts odd rows are shoved right ("odd-r"); for Flat layouts
// odd columns are shoved up ("odd-q").
type Offset struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// String returns "q:r", the form used as a cell key.
func (a Axial) String() string {
	return fmt.Sprintf("%d:%d", a.Q, a.R)
}

// Cube converts axial to cube coordinates.
func (a Axial) Cube() Cube {
	return Cube{X: a.Q, Y: -a.Q - a.R, Z: a.R}
}

// Add returns a + b.
func (a Axial) Add(b Axial) Axial {
	return Axial{Q: a.Q + b.Q, R: a.R + b.R}
}

// Offset converts axial to offset coordinates for the given layout.
func (a Axial) Offset(l Layout) Offset {
	if l == Flat {
		return Offset{Col: a.Q, Row: a.R + (a.Q-(a.Q&1))/2}
	}
	return Offset{Col: a.Q + (a.R-(a.R&1))/2, Row: a.R}
}

// Neighbors returns the six adjacent hexes in direction order.
func (a Axial) Neighbors() [6]Axial {
	var result [6]Axial
	for i, dir := range AxialDirections {
		result[i] = a.Add(dir)
	}
	return result
}

// Axial converts cube to axial coordinates.
func (c Cube) Axial() Axial {
	return Axial{Q: c.X, R: c.Z}
}

// Add returns c + o.
func (c Cube) Add(o Cube) Cube {
	return Cube{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Scale returns c multiplied by k.
func (c Cube) Scale(k int) Cube {
	return Cube{X: c.X * k, Y: c.Y * k, Z: c.Z * k}
}

// Valid reports whether the zero-sum constraint holds.
func (c Cube) Valid() bool {
	return c.X+c.Y+c.Z == 0
}

// Neighbors returns the six adjacent hexes in direction order.
func (c Cube) Neighbors() [6]Cube {
	var result [6]Cube
	for i, dir := range CubeDirections {
		result[i] = c.Add(dir)
	}
	return result
}

// Axial converts offset to axial coordinates for the given layout.
func (o Offset) Axial(l Layout) Axial {
	if l == Flat {
		return Axial{Q: o.Col, R: o.Row - (o.Col-(o.Col&1))/2}
	}
	return Axial{Q: o.Col - (o.Row-(o.Row&1))/2, R: o.Row}
}

// CubeDirections lists the six neighbor offsets in cube coordinates.
// Consecutive entries are 60 degrees apart.
var CubeDirections = [6]Cube{
	{X: 1, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: 0},
	{X: -1, Y: 0, Z: 1},
	{X: 0, Y: -1, Z: 1},
}

// AxialDirections lists the six neighbor offsets in axial coordinates,
// in the same order as CubeDirections.
var AxialDirections = [6]Axial{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Distance returns the number of steps between two hexes: the largest of
// the three absolute cube coordinate differences.
func Distance(a, b Cube) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	dz := abs(a.Z - b.Z)
	return max(dx, dy, dz)
}

// AxialDistance is Distance for axial coordinates.
func AxialDistance(a, b Axial) int {
	return Distance(a.Cube(), b.Cube())
}

// Range returns every hex within radius steps of center, center included.
func Range(center Cube, radius int) []Cube {
	if radius < 0 {
		return nil
	}
	result := make([]Cube, 0, 3*radius*(radius+1)+1)
	for dx := -radius; dx <= radius; dx++ {
		lo := max(-radius, -dx-radius)
		hi := min(radius, -dx+radius)
		for dy := lo; dy <= hi; dy++ {
			result = append(result, center.Add(Cube{X: dx, Y: dy, Z: -dx - dy}))
		}
	}
	return result
}

// Ring returns the hexes exactly radius steps from center, walking the
// ring in direction order. A zero radius yields the center alone.
func Ring(center Cube, radius int) []Cube {
	if radius < 0 {
		return nil
	}
	if radius == 0 {
		return []Cube{center}
	}
	result := make([]Cube, 0, 6*radius)
	h := center.Add(CubeDirections[4].Scale(radius))
	for i := 0; i < 6; i++ {
		for j := 0; j < radius; j++ {
			result = append(result, h)
			h = h.Add(CubeDirections[i])
		}
	}
	return result
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
