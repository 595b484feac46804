package geobin

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
)

// Benchmark serial vs parallel locate during Reset on a hex grid.

func benchmarkMembers(n int) []Member {
	rng := rand.New(rand.NewSource(1))
	members := make([]Member, n)
	for i := range members {
		members[i] = NewFeature(orb.Point{rng.Float64() * 1000, rng.Float64() * 1000}, nil)
	}
	return members
}

func benchmarkReset(b *testing.B, workers int) {
	g, err := NewHex(10, orb.Point{}, Pointy)
	if err != nil {
		b.Fatal(err)
	}
	opts := quietOptions()
	opts.Workers = workers
	e, err := New(g, opts)
	if err != nil {
		b.Fatal(err)
	}
	e.Attach(NewCollection(benchmarkMembers(50000)...))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Reset()
	}
}

func BenchmarkReset_Serial(b *testing.B)   { benchmarkReset(b, 1) }
func BenchmarkReset_Parallel(b *testing.B) { benchmarkReset(b, 4) }

// BenchmarkMove measures one member changing bins.
func BenchmarkMove(b *testing.B) {
	g, err := NewSquare(10, orb.Point{})
	if err != nil {
		b.Fatal(err)
	}
	e, err := New(g, quietOptions())
	if err != nil {
		b.Fatal(err)
	}
	c := NewCollection(benchmarkMembers(10000)...)
	e.Attach(c)
	f := NewFeature(orb.Point{5, 5}, nil)
	c.Add(f)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.SetGeometry(orb.Point{float64(i%100) * 10, 5})
	}
}
