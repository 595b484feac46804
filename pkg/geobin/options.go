package geobin

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// AnchorFunc returns the coordinate a member is binned by. Returning false
// leaves the member outside every bin.
type AnchorFunc func(m Member) (orb.Point, bool)

// FlattenFunc writes aggregated attributes for an exported bin.
// It receives a copy of the bin's members.
type FlattenFunc func(bin *FlatBin, members []Member)

// Options configures an Engine.
type Options struct {
	// Anchor maps a member to its binning coordinate (default: FeatureCenter).
	Anchor AnchorFunc

	// Flatten runs once per bin in ExportFlattened (default: no-op).
	Flatten FlattenFunc

	// IgnoreChanges skips subscribing to Observable members, so geometry
	// changes only move a member on an explicit EventChanged.
	IgnoreChanges bool

	// Logger receives stale-notification warnings and debug traces
	// (default: slog.Default()).
	Logger *slog.Logger

	// Workers bounds the goroutines used to locate members during Reset.
	// Values below 2 locate serially.
	Workers int
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Anchor:        FeatureCenter,
		Flatten:       nil,
		IgnoreChanges: false,
		Logger:        nil,
		Workers:       1,
	}
}

// FeatureCenter is the default AnchorFunc: the point itself, the area
// centroid of a polygon, or the center of any other geometry's bound.
func FeatureCenter(m Member) (orb.Point, bool) {
	g := m.Geometry()
	if g == nil {
		return orb.Point{}, false
	}

	if p, ok := g.(orb.Point); ok {
		return p, true
	}

	b := g.Bound()
	if b.IsEmpty() {
		return orb.Point{}, false
	}
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		if c, area := planar.CentroidArea(g); area != 0 {
			return c, true
		}
	}
	return b.Center(), true
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsNaN(p[1]) && !math.IsInf(p[0], 0) && !math.IsInf(p[1], 0)
}
