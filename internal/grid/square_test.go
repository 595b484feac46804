package grid

import (
	"errors"
	"math"
	"testing"

	"github.com/beetlebugorg/geobin/internal/hex"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareLocate(t *testing.T) {
	t.Parallel()

	g, err := NewSquare(10, orb.Point{0, 0})
	require.NoError(t, err)

	tests := []struct {
		name   string
		point  orb.Point
		key    string
		center orb.Point
	}{
		{"first cell", orb.Point{3, 3}, "0:0", orb.Point{5, 5}},
		{"same cell", orb.Point{7, 8}, "0:0", orb.Point{5, 5}},
		{"next column", orb.Point{11, 2}, "1:0", orb.Point{15, 5}},
		{"negative floors down", orb.Point{-0.5, -10}, "-1:-1", orb.Point{-5, -5}},
		{"lower edge belongs to cell", orb.Point{20, 30}, "2:3", orb.Point{25, 35}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cell, ok := g.Locate(tt.point)
			require.True(t, ok)
			assert.Equal(t, tt.key, cell.Key)
			assert.Equal(t, tt.center, cell.Center)

			poly, isPoly := cell.Geometry.(orb.Polygon)
			require.True(t, isPoly)
			require.Len(t, poly, 1)
			assert.Len(t, poly[0], 5)
			assert.InDelta(t, 100, math.Abs(planar.Area(poly)), 1e-9)
			assert.True(t, poly.Bound().Contains(tt.point))
		})
	}
}

func TestSquareOrigin(t *testing.T) {
	t.Parallel()

	g, err := NewSquare(10, orb.Point{5, 5})
	require.NoError(t, err)

	cell, _ := g.Locate(orb.Point{3, 3})
	assert.Equal(t, "-1:-1", cell.Key)
	assert.Equal(t, orb.Point{0, 0}, cell.Center)

	moved := g.WithOrigin(orb.Point{0, 0})
	cell, _ = moved.Locate(orb.Point{3, 3})
	assert.Equal(t, "0:0", cell.Key)
}

func TestSquareInvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewSquare(size, orb.Point{})
		var sizeErr *ErrInvalidSize
		require.True(t, errors.As(err, &sizeErr), "size %v", size)
	}

	g, err := NewSquare(1, orb.Point{})
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	_, err = g.WithSize(-3)
	assert.Error(t, err)

	resized, err := g.WithSize(4)
	require.NoError(t, err)
	cell, _ := resized.Locate(orb.Point{5, 1})
	assert.Equal(t, "1:0", cell.Key)
}

func TestHexLocate(t *testing.T) {
	t.Parallel()

	g, err := NewHex(1, orb.Point{0, 0}, hex.Pointy)
	require.NoError(t, err)

	cell, ok := g.Locate(orb.Point{0, 0})
	require.True(t, ok)
	assert.Equal(t, "0:0", cell.Key)
	assert.Equal(t, orb.Point{0, 0}, cell.Center)

	poly := cell.Geometry.(orb.Polygon)
	require.Len(t, poly[0], 7)
	assert.InDelta(t, 3*math.Sqrt(3)/2, math.Abs(planar.Area(poly)), 1e-9)

	// the neighbour to the east in a pointy layout is sqrt(3) away
	cell, _ = g.Locate(orb.Point{math.Sqrt(3), 0})
	assert.Equal(t, "1:0", cell.Key)

	flat := g.WithLayout(hex.Flat)
	cell, _ = flat.Locate(orb.Point{1.5, math.Sqrt(3) / 2})
	assert.Equal(t, "1:0", cell.Key)
	assert.Equal(t, hex.Flat, flat.(*Hex).Layout())

	_, err = NewHex(0, orb.Point{}, hex.Pointy)
	assert.Error(t, err)
}
