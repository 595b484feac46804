package geobin

import (
	"fmt"
	"sort"

	"github.com/beetlebugorg/geobin/internal/grid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// CountAttribute is the export attribute holding a bin's member count.
const CountAttribute = "count"

// Bin is the set of members whose anchors fall in one grid cell. Bins are
// owned by the Engine; the accessors return copies.
type Bin struct {
	key        string
	geometry   orb.Geometry
	center     orb.Point
	attributes map[string]interface{}
	members    []Member
	seq        uint64
}

func newBin(cell grid.Cell) *Bin {
	return &Bin{
		key:        cell.Key,
		geometry:   cell.Geometry,
		center:     cell.Center,
		attributes: cell.Attributes,
	}
}

// Key returns the cell key.
func (b *Bin) Key() string { return b.key }

// Geometry returns a copy of the cell outline.
func (b *Bin) Geometry() orb.Geometry { return orb.Clone(b.geometry) }

// Center returns the cell center.
func (b *Bin) Center() orb.Point { return b.center }

// Attributes returns a copy of the grid-supplied cell attributes.
func (b *Bin) Attributes() map[string]interface{} { return copyAttributes(b.attributes) }

// Members returns a copy of the member list.
func (b *Bin) Members() []Member { return append([]Member(nil), b.members...) }

// Len returns the number of members.
func (b *Bin) Len() int { return len(b.members) }

// Contains reports whether m is in the bin.
func (b *Bin) Contains(m Member) bool {
	for _, other := range b.members {
		if other == m {
			return true
		}
	}
	return false
}

// FlatBin is an exported bin, detached from the engine.
type FlatBin struct {
	Key        string
	Geometry   orb.Geometry
	Center     orb.Point
	Count      int
	Attributes map[string]interface{}
}

// ExportFlattened returns one record per bin in creation order. Each record
// carries the cell attributes plus "count", then Options.Flatten is applied.
// Records share no state with the engine.
func (e *Engine) ExportFlattened() []FlatBin {
	bins := sortedBins(e.bins)
	out := make([]FlatBin, 0, len(bins))
	for _, b := range bins {
		attrs := copyAttributes(b.attributes)
		if attrs == nil {
			attrs = make(map[string]interface{}, 1)
		}
		attrs[CountAttribute] = len(b.members)

		fb := FlatBin{
			Key:        b.key,
			Geometry:   orb.Clone(b.geometry),
			Center:     b.center,
			Count:      len(b.members),
			Attributes: attrs,
		}
		if e.opts.Flatten != nil {
			e.opts.Flatten(&fb, b.Members())
		}
		out = append(out, fb)
	}
	return out
}

// GeoJSON returns the flattened bins as a feature collection, one feature
// per bin with the bin key as id.
func (e *Engine) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, fb := range e.ExportFlattened() {
		f := geojson.NewFeature(fb.Geometry)
		f.ID = fb.Key
		for k, v := range fb.Attributes {
			f.Properties[k] = v
		}
		fc.Append(f)
	}
	return fc
}

func sortedBins(bins map[string]*Bin) []*Bin {
	out := make([]*Bin, 0, len(bins))
	for _, b := range bins {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func copyAttributes(attrs map[string]interface{}) map[string]interface{} {
	if attrs == nil {
		return nil
	}
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
