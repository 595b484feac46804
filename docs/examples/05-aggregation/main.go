package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/beetlebugorg/geobin/pkg/geobin"
	"github.com/paulmach/orb"
)

func main() {
	// Grid definition from a JSON file (comments allowed)
	grid, err := geobin.LoadGrid("grid.json")
	if err != nil {
		log.Fatal(err)
	}

	opts := geobin.DefaultOptions()
	opts.Workers = 4
	opts.Flatten = geobin.Compose(
		geobin.Mean("depth", "depth_mean"),
		geobin.Min("depth", "depth_min"),
		geobin.Max("depth", "depth_max"),
	)

	engine, err := geobin.New(grid, opts)
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(1))
	soundings := geobin.NewCollection()
	for i := 0; i < 10000; i++ {
		p := orb.Point{rng.Float64() * 1000, rng.Float64() * 1000}
		soundings.Add(geobin.NewFeature(p, map[string]interface{}{
			"depth": 5 + p[0]/100 + rng.Float64(),
		}))
	}
	engine.Attach(soundings)

	for _, bin := range engine.ExportFlattened() {
		fmt.Printf("%-6s n=%-5d mean=%5.2f min=%5.2f max=%5.2f\n",
			bin.Key, bin.Count,
			bin.Attributes["depth_mean"],
			bin.Attributes["depth_min"],
			bin.Attributes["depth_max"])
	}
}
