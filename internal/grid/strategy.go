// Package grid maps map coordinates to grid cells.
//
// A Strategy answers one question: which cell contains this point? The
// answer is a Cell (key, boundary, attributes) or false when the point lies
// outside the grid's domain. Square and Hex grids cover the whole plane;
// FixedArea and Lookup grids have a bounded domain.
//
// Strategies are immutable once built. Changing a parameter produces a new
// strategy through the Resizer, Originer, LayoutSetter or FeatureSetter
// interfaces, so a strategy value can be shared between goroutines.
package grid

import (
	"github.com/beetlebugorg/geobin/internal/hex"
	"github.com/paulmach/orb"
)

// Cell is one grid cell.
type Cell struct {
	// Key identifies the cell. Two points are in the same cell exactly when
	// their keys are equal.
	Key string

	// Geometry is the cell boundary: an orb.Polygon for computed grids,
	// an orb.Polygon or orb.MultiPolygon for lookup grids.
	Geometry orb.Geometry

	// Center is a representative interior point of the cell.
	Center orb.Point

	// Attributes holds strategy specific values such as a census code.
	// May be nil.
	Attributes map[string]interface{}
}

// Strategy locates the cell containing a point.
type Strategy interface {
	// Locate returns the cell containing p, or false when p lies outside
	// the grid's domain. A miss is a normal outcome, not an error.
	Locate(p orb.Point) (Cell, bool)
}

// Validator is implemented by strategies that can check their own
// configuration. Built-in strategies validate in their constructors too.
type Validator interface {
	Validate() error
}

// Resizer is implemented by strategies with a configurable cell size.
type Resizer interface {
	WithSize(size float64) (Strategy, error)
}

// Originer is implemented by strategies with a configurable origin.
type Originer interface {
	WithOrigin(origin orb.Point) Strategy
}

// LayoutSetter is implemented by hexagonal strategies.
type LayoutSetter interface {
	WithLayout(layout hex.Layout) Strategy
}
