package hex

import "math"

// FracCube is a fractional cube coordinate, the result of converting an
// arbitrary map point or interpolating between hexes.
type FracCube struct {
	X, Y, Z float64
}

// FracAxial is a fractional axial coordinate.
type FracAxial struct {
	Q, R float64
}

// Cube converts fractional axial to fractional cube coordinates.
func (a FracAxial) Cube() FracCube {
	return FracCube{X: a.Q, Y: -a.Q - a.R, Z: a.R}
}

// Frac widens an integral cube coordinate.
func (c Cube) Frac() FracCube {
	return FracCube{X: float64(c.X), Y: float64(c.Y), Z: float64(c.Z)}
}

// Round snaps a fractional cube coordinate to the hex containing it.
//
// Each component is rounded on its own, then the component with the largest
// rounding error is recomputed from the other two. The result always sums
// to zero and is the nearest valid hex.
func Round(f FracCube) Cube {
	rx := math.Round(f.X)
	ry := math.Round(f.Y)
	rz := math.Round(f.Z)

	dx := math.Abs(rx - f.X)
	dy := math.Abs(ry - f.Y)
	dz := math.Abs(rz - f.Z)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}

	return Cube{X: int(rx), Y: int(ry), Z: int(rz)}
}

// RoundAxial rounds a fractional axial coordinate through cube space.
func RoundAxial(a FracAxial) Axial {
	return Round(a.Cube()).Axial()
}

// Lerp interpolates between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b FracCube, t float64) FracCube {
	return FracCube{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// Line returns the hexes on the straight line from a to b, both included.
// The line has Distance(a, b)+1 hexes and consecutive hexes are neighbors.
func Line(a, b Cube) []Cube {
	n := Distance(a, b)
	if n == 0 {
		return []Cube{a}
	}
	fa, fb := a.Frac(), b.Frac()
	result := make([]Cube, 0, n+1)
	for i := 0; i <= n; i++ {
		result = append(result, Round(Lerp(fa, fb, float64(i)/float64(n))))
	}
	return result
}
