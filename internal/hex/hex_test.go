package hex

import (
	"math"
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundKeepsZeroSum(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		q := (rng.Float64() - 0.5) * 200
		r := (rng.Float64() - 0.5) * 200
		c := Round(FracAxial{Q: q, R: r}.Cube())
		require.True(t, c.Valid(), "rounded %v from (%f, %f)", c, q, r)
	}
}

func TestRoundRecomputesLargestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   FracCube
		want Cube
	}{
		{"integral", FracCube{X: 1, Y: -3, Z: 2}, Cube{X: 1, Y: -3, Z: 2}},
		{"x furthest", FracCube{X: 0.4, Y: -0.1, Z: -0.3}, Cube{X: 0, Y: 0, Z: 0}},
		{"x discarded", FracCube{X: 1.45, Y: -1.1, Z: -0.35}, Cube{X: 1, Y: -1, Z: 0}},
		{"y discarded", FracCube{X: 0.1, Y: 0.48, Z: -0.58}, Cube{X: 0, Y: 1, Z: -1}},
		{"z discarded", FracCube{X: 0.9, Y: -0.05, Z: -0.85}, Cube{X: 1, Y: 0, Z: -1}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Round(tt.in))
		})
	}
}

func TestAxialCubeRoundTrip(t *testing.T) {
	t.Parallel()

	for q := -10; q <= 10; q++ {
		for r := -10; r <= 10; r++ {
			a := Axial{Q: q, R: r}
			c := a.Cube()
			require.True(t, c.Valid())
			require.Equal(t, a, c.Axial())
			require.Equal(t, c, c.Axial().Cube())
		}
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	t.Parallel()

	for _, layout := range []Layout{Pointy, Flat} {
		for q := -9; q <= 9; q++ {
			for r := -9; r <= 9; r++ {
				a := Axial{Q: q, R: r}
				require.Equal(t, a, a.Offset(layout).Axial(layout), "layout %s", layout)
			}
		}
	}
}

func TestOffsetShiftsOddRows(t *testing.T) {
	t.Parallel()

	// odd-r: row 1 starts half a hex to the right, so axial (0,1) is column 0
	assert.Equal(t, Offset{Col: 0, Row: 1}, Axial{Q: 0, R: 1}.Offset(Pointy))
	assert.Equal(t, Offset{Col: 0, Row: 2}, Axial{Q: -1, R: 2}.Offset(Pointy))
	assert.Equal(t, Offset{Col: 1, Row: 0}, Axial{Q: 1, R: 0}.Offset(Flat))
	assert.Equal(t, Offset{Col: 2, Row: 0}, Axial{Q: 2, R: -1}.Offset(Flat))
}

func TestDistance(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a := Axial{Q: rng.Intn(41) - 20, R: rng.Intn(41) - 20}.Cube()
		b := Axial{Q: rng.Intn(41) - 20, R: rng.Intn(41) - 20}.Cube()
		require.Equal(t, Distance(a, b), Distance(b, a))
		require.Zero(t, Distance(a, a))
	}

	assert.Equal(t, 3, AxialDistance(Axial{}, Axial{Q: 3, R: -3}))
	assert.Equal(t, 5, AxialDistance(Axial{Q: -2, R: 0}, Axial{Q: 1, R: 2}))
}

func TestNeighbors(t *testing.T) {
	t.Parallel()

	center := Axial{Q: 2, R: -1}
	seen := make(map[Axial]bool)
	for i, n := range center.Neighbors() {
		assert.Equal(t, 1, AxialDistance(center, n))
		assert.Equal(t, CubeDirections[i], n.Cube().Add(center.Cube().Scale(-1)))
		seen[n] = true
	}
	assert.Len(t, seen, 6)

	cubes := center.Cube().Neighbors()
	for i, n := range center.Neighbors() {
		assert.Equal(t, n.Cube(), cubes[i])
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	a := Cube{}
	b := Cube{X: 2, Y: 1, Z: -3}
	assert.Equal(t, []Cube{{0, 0, 0}, {1, 0, -1}, {1, 1, -2}, {2, 1, -3}}, Line(a, b))

	assert.Equal(t, []Cube{a}, Line(a, a))

	straight := Line(Cube{X: -2, Y: 2, Z: 0}, Cube{X: 2, Y: -2, Z: 0})
	require.Len(t, straight, 5)
	for i := 1; i < len(straight); i++ {
		assert.Equal(t, 1, Distance(straight[i-1], straight[i]))
		assert.True(t, straight[i].Valid())
	}
}

func TestRangeAndRing(t *testing.T) {
	t.Parallel()

	center := Axial{Q: 1, R: 1}.Cube()
	for radius := 0; radius <= 4; radius++ {
		area := Range(center, radius)
		assert.Len(t, area, 3*radius*(radius+1)+1)
		for _, h := range area {
			assert.LessOrEqual(t, Distance(center, h), radius)
		}

		ring := Ring(center, radius)
		if radius == 0 {
			assert.Equal(t, []Cube{center}, ring)
			continue
		}
		assert.Len(t, ring, 6*radius)
		for i, h := range ring {
			assert.Equal(t, radius, Distance(center, h))
			next := ring[(i+1)%len(ring)]
			assert.Equal(t, 1, Distance(h, next), "ring must be contiguous")
		}
	}
	assert.Nil(t, Range(center, -1))
}

func TestGridHexAt(t *testing.T) {
	t.Parallel()

	for _, layout := range []Layout{Pointy, Flat} {
		g := Grid{Size: 3, Origin: orb.Point{10, -5}, Layout: layout}
		for q := -5; q <= 5; q++ {
			for r := -5; r <= 5; r++ {
				h := Axial{Q: q, R: r}
				require.Equal(t, h, g.HexAt(g.Center(h)), "layout %s", layout)
			}
		}
	}

	g := Grid{Size: 1, Layout: Pointy}
	assert.Equal(t, Axial{}, g.HexAt(orb.Point{0, 0}))
	assert.Equal(t, Axial{Q: 1, R: 0}, g.HexAt(orb.Point{1.7, 0.1}))
}

func TestGridCorners(t *testing.T) {
	t.Parallel()

	g := Grid{Size: 2, Layout: Pointy}
	h := Axial{Q: 1, R: -2}
	ring := g.Corners(h)
	require.Len(t, ring, 7)
	assert.Equal(t, ring[0], ring[6])

	c := g.Center(h)
	for _, p := range ring[:6] {
		assert.InDelta(t, 2, math.Hypot(p[0]-c[0], p[1]-c[1]), 1e-9)
		// halfway to a corner is still inside the hexagon
		assert.Equal(t, h, g.HexAt(orb.Point{(p[0]+c[0])/2, (p[1]+c[1])/2}))
	}

	// first pointy corner is at 30 degrees
	assert.InDelta(t, c[0]+2*math.Cos(math.Pi/6), ring[0][0], 1e-9)
	assert.InDelta(t, c[1]+2*math.Sin(math.Pi/6), ring[0][1], 1e-9)

	flat := Grid{Size: 2, Layout: Flat}.Corners(Axial{})
	assert.InDelta(t, 2, flat[0][0], 1e-9)
	assert.InDelta(t, 0, flat[0][1], 1e-9)
}

func TestParseLayout(t *testing.T) {
	t.Parallel()

	l, err := ParseLayout("Flat")
	require.NoError(t, err)
	assert.Equal(t, Flat, l)

	l, err = ParseLayout("pointy")
	require.NoError(t, err)
	assert.Equal(t, Pointy, l)

	_, err = ParseLayout("square")
	assert.Error(t, err)
	assert.Equal(t, "flat", Flat.String())
}
