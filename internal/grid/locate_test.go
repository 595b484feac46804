package grid

import (
	"context"
	"math/rand"
	"testing"

	"github.com/beetlebugorg/geobin/internal/hex"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateAllMatchesSerial(t *testing.T) {
	t.Parallel()

	g, err := NewHex(2.5, orb.Point{1, 1}, hex.Flat)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	points := make([]orb.Point, 1000)
	for i := range points {
		points[i] = orb.Point{rng.Float64() * 100, rng.Float64() * 100}
	}

	serial, err := LocateAll(context.Background(), g, points, 1)
	require.NoError(t, err)
	parallel, err := LocateAll(context.Background(), g, points, 8)
	require.NoError(t, err)

	require.Len(t, parallel, len(points))
	for i := range points {
		assert.Equal(t, serial[i].Cell.Key, parallel[i].Cell.Key)
		assert.True(t, parallel[i].OK)
	}
}

func TestLocateAllMisses(t *testing.T) {
	t.Parallel()

	lookup, err := NewLookup([]*geojson.Feature{squareFeature("a", 0, 0, 1, nil)})
	require.NoError(t, err)
	results, err := LocateAll(context.Background(), lookup, []orb.Point{{0.5, 0.5}, {3, 3}}, 0)
	require.NoError(t, err)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
}

func TestLocateAllCanceled(t *testing.T) {
	t.Parallel()

	g, err := NewSquare(1, orb.Point{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LocateAll(ctx, g, []orb.Point{{0, 0}, {1, 1}, {2, 2}}, 2)
	assert.ErrorIs(t, err, context.Canceled)

	results, err := LocateAll(context.Background(), g, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}
