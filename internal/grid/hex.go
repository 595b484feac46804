package grid

import (
	"github.com/beetlebugorg/geobin/internal/hex"
	"github.com/paulmach/orb"
)

// Hex is a hexagonal grid. The domain is the whole plane.
type Hex struct {
	grid hex.Grid
}

// NewHex creates a hexagonal grid. size is the hexagon radius (center to
// corner) and origin the center of hex (0, 0).
func NewHex(size float64, origin orb.Point, layout hex.Layout) (*Hex, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return &Hex{grid: hex.Grid{Size: size, Origin: origin, Layout: layout}}, nil
}

// Grid returns the underlying coordinate system.
func (h *Hex) Grid() hex.Grid { return h.grid }

// Size returns the hexagon radius.
func (h *Hex) Size() float64 { return h.grid.Size }

// Origin returns the center of hex (0, 0).
func (h *Hex) Origin() orb.Point { return h.grid.Origin }

// Layout returns the hexagon orientation.
func (h *Hex) Layout() hex.Layout { return h.grid.Layout }

// Locate implements Strategy. The key is the axial coordinate "q:r".
func (h *Hex) Locate(p orb.Point) (Cell, bool) {
	a := h.grid.HexAt(p)
	return Cell{
		Key:      a.String(),
		Geometry: h.grid.Polygon(a),
		Center:   h.grid.Center(a),
	}, true
}

// Validate implements Validator.
func (h *Hex) Validate() error {
	return checkSize(h.grid.Size)
}

// WithSize implements Resizer.
func (h *Hex) WithSize(size float64) (Strategy, error) {
	g, err := NewHex(size, h.grid.Origin, h.grid.Layout)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// WithOrigin implements Originer.
func (h *Hex) WithOrigin(origin orb.Point) Strategy {
	g := h.grid
	g.Origin = origin
	return &Hex{grid: g}
}

// WithLayout implements LayoutSetter.
func (h *Hex) WithLayout(layout hex.Layout) Strategy {
	g := h.grid
	g.Layout = layout
	return &Hex{grid: g}
}
