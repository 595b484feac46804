package grid

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// FeatureSetter is implemented by strategies whose cells come from an
// external polygon collection.
type FeatureSetter interface {
	WithFeatures(features []*geojson.Feature) (Strategy, error)
}

// Lookup uses an external polygon collection as the grid. A point belongs
// to the first polygon (in collection order) that contains it.
//
// Polygon bounds are kept in an R-tree so a lookup only runs the exact
// point-in-polygon test on the few polygons whose bounds hold the point.
type Lookup struct {
	features []*geojson.Feature
	entries  []*lookupEntry
	rtree    *rtreego.Rtree
}

// lookupEntry wraps one polygon feature for R-tree storage.
type lookupEntry struct {
	index    int
	key      string
	geometry orb.Geometry
	bound    orb.Bound
	center   orb.Point
	props    map[string]interface{}
}

// Bounds implements rtreego.Spatial.
func (e *lookupEntry) Bounds() rtreego.Rect {
	return boundRect(e.bound)
}

// boundRect converts an orb.Bound to an R-tree rectangle. The R-tree needs
// non-zero lengths, so degenerate sides get a small epsilon.
func boundRect(b orb.Bound) rtreego.Rect {
	const epsilon = 1e-9
	width := b.Max[0] - b.Min[0]
	height := b.Max[1] - b.Min[1]
	if width < epsilon {
		width = epsilon
	}
	if height < epsilon {
		height = epsilon
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{width, height})
	return rect
}

// NewLookup indexes a polygon collection. Each feature must have Polygon
// or MultiPolygon geometry. The feature ID becomes the cell key; features
// without an ID get a random UUID key.
func NewLookup(features []*geojson.Feature) (*Lookup, error) {
	if len(features) == 0 {
		return nil, ErrEmptyFeatureSet
	}

	rtree := rtreego.NewTree(2, 25, 50)
	entries := make([]*lookupEntry, 0, len(features))
	seen := make(map[string]bool, len(features))

	for i, f := range features {
		if f == nil || f.Geometry == nil {
			return nil, &ErrInvalidGeometry{Index: i, Type: "empty"}
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		default:
			return nil, &ErrInvalidGeometry{Index: i, Type: f.Geometry.GeoJSONType()}
		}

		key := featureKey(f)
		if seen[key] {
			return nil, &ErrDuplicateKey{Key: key}
		}
		seen[key] = true

		center, _ := planar.CentroidArea(f.Geometry)
		entry := &lookupEntry{
			index:    i,
			key:      key,
			geometry: f.Geometry,
			bound:    f.Geometry.Bound(),
			center:   center,
			props:    f.Properties,
		}
		entries = append(entries, entry)
		rtree.Insert(entry)
	}

	return &Lookup{features: features, entries: entries, rtree: rtree}, nil
}

func featureKey(f *geojson.Feature) string {
	if f.ID != nil {
		if s := fmt.Sprint(f.ID); s != "" {
			return s
		}
	}
	if id, ok := f.Properties["id"]; ok && id != nil {
		return fmt.Sprint(id)
	}
	return uuid.NewString()
}

// Len returns the number of polygons.
func (l *Lookup) Len() int { return len(l.entries) }

// Features returns the polygon collection the grid was built from.
func (l *Lookup) Features() []*geojson.Feature { return l.features }

// Locate implements Strategy. It misses when no polygon contains p.
func (l *Lookup) Locate(p orb.Point) (Cell, bool) {
	spatials := l.rtree.SearchIntersect(boundRect(p.Bound()))
	if len(spatials) == 0 {
		return Cell{}, false
	}

	candidates := make([]*lookupEntry, 0, len(spatials))
	for _, s := range spatials {
		candidates = append(candidates, s.(*lookupEntry))
	}
	// R-tree order is arbitrary; collection order decides overlaps.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].index < candidates[j].index
	})

	for _, e := range candidates {
		if !e.bound.Contains(p) || !contains(e.geometry, p) {
			continue
		}
		attrs := make(map[string]interface{}, len(e.props))
		for k, v := range e.props {
			attrs[k] = v
		}
		return Cell{
			Key:        e.key,
			Geometry:   e.geometry,
			Center:     e.center,
			Attributes: attrs,
		}, true
	}
	return Cell{}, false
}

func contains(g orb.Geometry, p orb.Point) bool {
	switch g := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	}
	return false
}

// Validate implements Validator.
func (l *Lookup) Validate() error {
	if len(l.entries) == 0 {
		return ErrEmptyFeatureSet
	}
	return nil
}

// WithFeatures implements FeatureSetter.
func (l *Lookup) WithFeatures(features []*geojson.Feature) (Strategy, error) {
	g, err := NewLookup(features)
	if err != nil {
		return nil, err
	}
	return g, nil
}
