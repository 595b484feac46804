package grid

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareFeature(id interface{}, minX, minY, size float64, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{squareRing(minX, minY, size)})
	f.ID = id
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

func TestLookupLocate(t *testing.T) {
	t.Parallel()

	withHole := geojson.NewFeature(orb.Polygon{
		squareRing(20, 0, 10),
		squareRing(23, 3, 4),
	})
	withHole.ID = "donut"

	islands := geojson.NewFeature(orb.MultiPolygon{
		{squareRing(0, 20, 2)},
		{squareRing(8, 20, 2)},
	})
	islands.ID = 7

	g, err := NewLookup([]*geojson.Feature{
		squareFeature("west", 0, 0, 10, map[string]interface{}{"name": "West"}),
		squareFeature("east", 10, 0, 10, nil),
		withHole,
		islands,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Len())
	require.NoError(t, g.Validate())

	tests := []struct {
		name  string
		point orb.Point
		key   string
		ok    bool
	}{
		{"inside west", orb.Point{5, 5}, "west", true},
		{"inside east", orb.Point{15, 5}, "east", true},
		{"shared edge goes to first", orb.Point{10, 5}, "west", true},
		{"ring of donut", orb.Point{21, 1}, "donut", true},
		{"hole of donut", orb.Point{25, 5}, "", false},
		{"second island", orb.Point{9, 21}, "7", true},
		{"between islands", orb.Point{5, 21}, "", false},
		{"nowhere", orb.Point{-50, -50}, "", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cell, ok := g.Locate(tt.point)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, cell.Key)
		})
	}

	cell, _ := g.Locate(orb.Point{1, 1})
	assert.Equal(t, "West", cell.Attributes["name"])
	assert.Equal(t, orb.Point{5, 5}, cell.Center)

	// attributes are copies of the feature properties
	cell.Attributes["name"] = "changed"
	assert.Equal(t, "West", g.Features()[0].Properties["name"])
}

func TestLookupGeneratedKeys(t *testing.T) {
	t.Parallel()

	g, err := NewLookup([]*geojson.Feature{
		squareFeature(nil, 0, 0, 1, nil),
		squareFeature(nil, 0, 1, 1, map[string]interface{}{"id": "from-props"}),
	})
	require.NoError(t, err)

	cell, ok := g.Locate(orb.Point{0.5, 0.5})
	require.True(t, ok)
	_, err = uuid.Parse(cell.Key)
	assert.NoError(t, err, "key %q", cell.Key)

	cell, ok = g.Locate(orb.Point{0.5, 1.5})
	require.True(t, ok)
	assert.Equal(t, "from-props", cell.Key)
}

func TestLookupErrors(t *testing.T) {
	t.Parallel()

	_, err := NewLookup(nil)
	assert.ErrorIs(t, err, ErrEmptyFeatureSet)

	_, err = NewLookup([]*geojson.Feature{geojson.NewFeature(orb.Point{1, 1})})
	var geomErr *ErrInvalidGeometry
	require.True(t, errors.As(err, &geomErr))
	assert.Equal(t, "Point", geomErr.Type)

	_, err = NewLookup([]*geojson.Feature{
		squareFeature("a", 0, 0, 1, nil),
		squareFeature("a", 5, 5, 1, nil),
	})
	var dupErr *ErrDuplicateKey
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, "a", dupErr.Key)
}

func TestLookupWithFeatures(t *testing.T) {
	t.Parallel()

	g, err := NewLookup([]*geojson.Feature{squareFeature("a", 0, 0, 1, nil)})
	require.NoError(t, err)

	next, err := g.WithFeatures([]*geojson.Feature{squareFeature("b", 0, 0, 1, nil)})
	require.NoError(t, err)
	cell, ok := next.Locate(orb.Point{0.5, 0.5})
	require.True(t, ok)
	assert.Equal(t, "b", cell.Key)

	_, err = g.WithFeatures(nil)
	assert.ErrorIs(t, err, ErrEmptyFeatureSet)
}
