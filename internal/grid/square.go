package grid

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Square is an axis-aligned grid of size x size cells. Cell (0, 0) has its
// lower-left corner at the origin. The domain is the whole plane.
type Square struct {
	size   float64
	origin orb.Point
}

// NewSquare creates a square grid.
//
// Example:
//
//	g, err := grid.NewSquare(10, orb.Point{0, 0})
//	cell, _ := g.Locate(orb.Point{11, 2}) // cell.Key == "1:0"
func NewSquare(size float64, origin orb.Point) (*Square, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return &Square{size: size, origin: origin}, nil
}

// Size returns the cell edge length.
func (s *Square) Size() float64 { return s.size }

// Origin returns the lower-left corner of cell (0, 0).
func (s *Square) Origin() orb.Point { return s.origin }

// Index returns the column and row of the cell containing p.
func (s *Square) Index(p orb.Point) (col, row int64) {
	col = int64(math.Floor((p[0] - s.origin[0]) / s.size))
	row = int64(math.Floor((p[1] - s.origin[1]) / s.size))
	return col, row
}

// Locate implements Strategy. It never misses.
func (s *Square) Locate(p orb.Point) (Cell, bool) {
	col, row := s.Index(p)
	minX := s.origin[0] + float64(col)*s.size
	minY := s.origin[1] + float64(row)*s.size
	return Cell{
		Key:      fmt.Sprintf("%d:%d", col, row),
		Geometry: orb.Polygon{squareRing(minX, minY, s.size)},
		Center:   orb.Point{minX + s.size/2, minY + s.size/2},
	}, true
}

// Validate implements Validator.
func (s *Square) Validate() error {
	return checkSize(s.size)
}

// WithSize implements Resizer.
func (s *Square) WithSize(size float64) (Strategy, error) {
	g, err := NewSquare(size, s.origin)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// WithOrigin implements Originer.
func (s *Square) WithOrigin(origin orb.Point) Strategy {
	return &Square{size: s.size, origin: origin}
}

// squareRing returns the closed counter-clockwise ring of a square cell.
func squareRing(minX, minY, size float64) orb.Ring {
	return orb.Ring{
		{minX, minY},
		{minX + size, minY},
		{minX + size, minY + size},
		{minX, minY + size},
		{minX, minY},
	}
}
