package hex

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// Layout selects the hexagon orientation.
type Layout int

const (
	// Pointy hexagons have a vertex at the top; rows are horizontal.
	Pointy Layout = iota

	// Flat hexagons have an edge at the top; columns are vertical.
	Flat
)

// String returns "pointy" or "flat".
func (l Layout) String() string {
	switch l {
	case Pointy:
		return "pointy"
	case Flat:
		return "flat"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout parses "pointy" or "flat" (case-insensitive).
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pointy", "":
		return Pointy, nil
	case "flat":
		return Flat, nil
	default:
		return Pointy, fmt.Errorf("unknown hex layout %q", s)
	}
}

// orientation holds the forward matrix (hex to map), the inverse matrix
// (map to hex) and the angle of the first corner in units of 60 degrees.
type orientation struct {
	f0, f1, f2, f3 float64
	b0, b1, b2, b3 float64
	startAngle     float64
}

var (
	sqrt3 = math.Sqrt(3)

	pointyOrientation = orientation{
		f0: sqrt3, f1: sqrt3 / 2, f2: 0, f3: 3.0 / 2,
		b0: sqrt3 / 3, b1: -1.0 / 3, b2: 0, b3: 2.0 / 3,
		startAngle: 0.5,
	}
	flatOrientation = orientation{
		f0: 3.0 / 2, f1: 0, f2: sqrt3 / 2, f3: sqrt3,
		b0: 2.0 / 3, b1: 0, b2: -1.0 / 3, b3: sqrt3 / 3,
		startAngle: 0,
	}
)

func (l Layout) orientation() orientation {
	if l == Flat {
		return flatOrientation
	}
	return pointyOrientation
}

// Grid places hexes in map space. Size is the distance from a hexagon's
// center to any of its corners; Origin is the map position of hex (0, 0).
type Grid struct {
	Size   float64
	Origin orb.Point
	Layout Layout
}

// Center returns the map position of the center of h.
func (g Grid) Center(h Axial) orb.Point {
	o := g.Layout.orientation()
	q, r := float64(h.Q), float64(h.R)
	return orb.Point{
		g.Origin[0] + g.Size*(o.f0*q+o.f1*r),
		g.Origin[1] + g.Size*(o.f2*q+o.f3*r),
	}
}

// Fractional converts a map point to fractional axial coordinates.
func (g Grid) Fractional(p orb.Point) FracAxial {
	o := g.Layout.orientation()
	x := (p[0] - g.Origin[0]) / g.Size
	y := (p[1] - g.Origin[1]) / g.Size
	return FracAxial{
		Q: o.b0*x + o.b1*y,
		R: o.b2*x + o.b3*y,
	}
}

// HexAt returns the hex containing the map point p.
func (g Grid) HexAt(p orb.Point) Axial {
	return RoundAxial(g.Fractional(p))
}

// Corners returns the closed ring of the six corners of h. Corner i lies
// at 60*i degrees, plus 30 degrees for the Pointy layout.
func (g Grid) Corners(h Axial) orb.Ring {
	o := g.Layout.orientation()
	c := g.Center(h)
	ring := make(orb.Ring, 0, 7)
	for i := 0; i < 6; i++ {
		angle := 2 * math.Pi * (float64(i) + o.startAngle) / 6
		ring = append(ring, orb.Point{
			c[0] + g.Size*math.Cos(angle),
			c[1] + g.Size*math.Sin(angle),
		})
	}
	return append(ring, ring[0])
}

// Polygon returns the hexagon of h as a single-ring polygon.
func (g Grid) Polygon(h Axial) orb.Polygon {
	return orb.Polygon{g.Corners(h)}
}
