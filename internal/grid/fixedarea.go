package grid

import (
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
)

const (
	// WGS84 is the default source projection: longitude/latitude degrees.
	WGS84 = "+proj=longlat +datum=WGS84 +no_defs"

	// EuropeEqualArea is the Europe Albers equal-area conic projection
	// (ESRI:102013) on the WGS84 datum.
	EuropeEqualArea = "+proj=aea +lat_1=43 +lat_2=62 +lat_0=30 +lon_0=10 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs"
)

// FixedAreaOptions configures a FixedArea grid.
type FixedAreaOptions struct {
	// SourceProjection is the proj4 definition of incoming coordinates.
	SourceProjection string

	// GridProjection is the proj4 definition of the equal-area projection
	// the grid is tiled in. Its units must be meters.
	GridProjection string

	// CRSName appears in cell codes: CRS<CRSName>RES<size>mN<y>E<x>.
	CRSName string

	// Size is the requested cell edge in grid units. It is snapped to the
	// nearest multiple of Unit, and never below Unit.
	Size float64

	// Unit is the base cell edge of the external grid standard.
	Unit float64

	// SourceExtent declares the domain in source coordinates. Points that
	// project outside its projected bounds are not binned.
	SourceExtent orb.Bound

	// Densify is the number of extra vertices inserted on each cell edge
	// before reprojecting it, so curved edges survive the round trip.
	Densify int

	// CacheSize bounds the number of cached cell geometries (0 = unlimited).
	CacheSize int
}

// DefaultFixedAreaOptions returns 200 m cells on the Europe equal-area
// projection for WGS84 input covering continental Europe.
func DefaultFixedAreaOptions() FixedAreaOptions {
	return FixedAreaOptions{
		SourceProjection: WGS84,
		GridProjection:   EuropeEqualArea,
		CRSName:          "102013",
		Size:             200,
		Unit:             200,
		SourceExtent:     orb.Bound{Min: orb.Point{-25, 34}, Max: orb.Point{45, 72}},
		Densify:          2,
		CacheSize:        4096,
	}
}

// FixedArea tiles square cells in an equal-area projection so every cell
// has the same real-world area, then reprojects cells back to the source
// projection. Cells carry an "id" attribute in the census grid code form.
type FixedArea struct {
	opts    FixedAreaOptions
	size    float64
	extent  orb.Bound // in grid projection
	forward proj.Transformer
	inverse proj.Transformer
	cache   *cellCache
}

// NewFixedArea builds a FixedArea grid. Projection or size problems are
// reported here rather than on Locate.
func NewFixedArea(opts FixedAreaOptions) (*FixedArea, error) {
	if err := checkSize(opts.Unit); err != nil {
		return nil, fmt.Errorf("unit: %w", err)
	}
	if err := checkSize(opts.Size); err != nil {
		return nil, err
	}

	src, err := proj.Parse(opts.SourceProjection)
	if err != nil {
		return nil, &ErrInvalidProjection{Definition: opts.SourceProjection, Err: err}
	}
	dst, err := proj.Parse(opts.GridProjection)
	if err != nil {
		return nil, &ErrInvalidProjection{Definition: opts.GridProjection, Err: err}
	}
	forward, err := src.NewTransform(dst)
	if err != nil {
		return nil, &ErrInvalidProjection{Definition: opts.GridProjection, Err: err}
	}
	inverse, err := dst.NewTransform(src)
	if err != nil {
		return nil, &ErrInvalidProjection{Definition: opts.SourceProjection, Err: err}
	}

	f := &FixedArea{
		opts:    opts,
		size:    SnapSize(opts.Size, opts.Unit),
		forward: forward,
		inverse: inverse,
		cache:   newCellCache(opts.CacheSize),
	}
	f.extent, err = f.projectBound(opts.SourceExtent)
	if err != nil {
		return nil, &ErrInvalidProjection{Definition: opts.GridProjection, Err: err}
	}
	return f, nil
}

// SnapSize rounds size to the nearest multiple of unit, with unit as the
// smallest allowed value.
func SnapSize(size, unit float64) float64 {
	return math.Max(unit, math.Round(size/unit)*unit)
}

// Size returns the snapped cell edge in grid units.
func (f *FixedArea) Size() float64 { return f.size }

// Extent returns the declared domain in grid projection coordinates.
func (f *FixedArea) Extent() orb.Bound { return f.extent }

// CacheStats reports the cell geometry cache counters.
func (f *FixedArea) CacheStats() CacheStats { return f.cache.Stats() }

// Locate implements Strategy. It misses when p cannot be projected or
// falls outside the extent.
func (f *FixedArea) Locate(p orb.Point) (Cell, bool) {
	x, y, err := f.forward(p[0], p[1])
	if err != nil || math.IsNaN(x) || math.IsNaN(y) {
		return Cell{}, false
	}
	if !f.extent.Contains(orb.Point{x, y}) {
		return Cell{}, false
	}

	minX := math.Floor(x/f.size) * f.size
	minY := math.Floor(y/f.size) * f.size
	code := f.code(minX, minY)

	cell, ok := f.cache.Get(code, func() (Cell, bool) {
		return f.buildCell(code, minX, minY)
	})
	if !ok {
		return Cell{}, false
	}
	cell.Attributes = map[string]interface{}{"id": code}
	return cell, true
}

// code formats the census-style identifier of the cell whose lower-left
// corner is (minX, minY).
func (f *FixedArea) code(minX, minY float64) string {
	return fmt.Sprintf("CRS%sRES%.0fmN%.0fE%.0f", f.opts.CRSName, f.size, minY, minX)
}

func (f *FixedArea) buildCell(code string, minX, minY float64) (Cell, bool) {
	ring := densify(squareRing(minX, minY, f.size), f.opts.Densify)
	out := make(orb.Ring, len(ring))
	for i, pt := range ring {
		x, y, err := f.inverse(pt[0], pt[1])
		if err != nil {
			return Cell{}, false
		}
		out[i] = orb.Point{x, y}
	}
	cx, cy, err := f.inverse(minX+f.size/2, minY+f.size/2)
	if err != nil {
		return Cell{}, false
	}
	return Cell{
		Key:      code,
		Geometry: orb.Polygon{out},
		Center:   orb.Point{cx, cy},
	}, true
}

// projectBound returns the grid-space bound of a source-space bound,
// sampling its edges so curved projections are covered.
func (f *FixedArea) projectBound(b orb.Bound) (orb.Bound, error) {
	const steps = 16
	ring := densify(b.ToRing(), steps)
	var out orb.Bound
	for i, pt := range ring {
		x, y, err := f.forward(pt[0], pt[1])
		if err != nil {
			return orb.Bound{}, err
		}
		if i == 0 {
			out = orb.Point{x, y}.Bound()
			continue
		}
		out = out.Extend(orb.Point{x, y})
	}
	return out, nil
}

// Validate implements Validator.
func (f *FixedArea) Validate() error {
	return checkSize(f.size)
}

// WithSize implements Resizer.
func (f *FixedArea) WithSize(size float64) (Strategy, error) {
	opts := f.opts
	opts.Size = size
	g, err := NewFixedArea(opts)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// densify inserts n evenly spaced vertices on each edge of a closed ring.
func densify(ring orb.Ring, n int) orb.Ring {
	if n <= 0 || len(ring) < 2 {
		return ring
	}
	out := make(orb.Ring, 0, (len(ring)-1)*(n+1)+1)
	for i := 0; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		for k := 0; k <= n; k++ {
			t := float64(k) / float64(n+1)
			out = append(out, orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t})
		}
	}
	return append(out, ring[len(ring)-1])
}
