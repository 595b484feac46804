package geobin

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Member is a point-like record binned by an Engine. Members are compared
// by identity, so implementations should be pointer types.
type Member interface {
	Geometry() orb.Geometry
	Properties() map[string]interface{}
}

// Observable is implemented by members that report their own changes.
// The engine subscribes while it tracks a member and cancels when the
// member is removed or the engine is reset.
type Observable interface {
	Observe(fn func(Member)) (cancel func())
}

// Feature is the stock Member: a geometry with a property bag that
// notifies observers when either changes. It is not safe for concurrent use.
type Feature struct {
	id         string
	geometry   orb.Geometry
	properties map[string]interface{}
	observers  []observer
	nextID     int
}

type observer struct {
	id int
	fn func(Member)
}

// NewFeature creates a feature with a random id. A nil property map is
// replaced by an empty one.
func NewFeature(g orb.Geometry, properties map[string]interface{}) *Feature {
	if properties == nil {
		properties = make(map[string]interface{})
	}
	return &Feature{
		id:         uuid.NewString(),
		geometry:   g,
		properties: properties,
	}
}

// FeatureFromGeoJSON wraps a GeoJSON feature, keeping its id when it has one.
func FeatureFromGeoJSON(f *geojson.Feature) *Feature {
	props := make(map[string]interface{}, len(f.Properties))
	for k, v := range f.Properties {
		props[k] = v
	}
	feat := NewFeature(f.Geometry, props)
	if f.ID != nil {
		feat.id = toString(f.ID)
	}
	return feat
}

// ID returns the feature id.
func (f *Feature) ID() string { return f.id }

// Geometry implements Member.
func (f *Feature) Geometry() orb.Geometry { return f.geometry }

// Properties implements Member. The map is live; use Set to change a value
// and notify observers.
func (f *Feature) Properties() map[string]interface{} { return f.properties }

// Get returns a property value.
func (f *Feature) Get(key string) interface{} { return f.properties[key] }

// SetGeometry replaces the geometry and notifies observers.
func (f *Feature) SetGeometry(g orb.Geometry) {
	f.geometry = g
	f.changed()
}

// Set sets a property and notifies observers.
func (f *Feature) Set(key string, value interface{}) {
	f.properties[key] = value
	f.changed()
}

// Observe implements Observable.
func (f *Feature) Observe(fn func(Member)) func() {
	f.nextID++
	id := f.nextID
	f.observers = append(f.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range f.observers {
			if o.id == id {
				f.observers = append(f.observers[:i:i], f.observers[i+1:]...)
				return
			}
		}
	}
}

// Observers returns the number of active subscriptions.
func (f *Feature) Observers() int { return len(f.observers) }

func (f *Feature) changed() {
	// copy: observers may cancel while being notified
	observers := append([]observer(nil), f.observers...)
	for _, o := range observers {
		o.fn(f)
	}
}
