package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/geobin/pkg/geobin"
	"github.com/paulmach/orb"
)

func main() {
	// 1 km cells in the Europe equal-area projection, WGS84 input
	opts := geobin.DefaultFixedAreaOptions()
	opts.Size = 1000

	grid, err := geobin.NewFixedArea(opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Cell size: %.0f m\n", grid.Size())

	engine, err := geobin.New(grid, geobin.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	stations := geobin.NewCollection(
		geobin.NewFeature(orb.Point{2.3522, 48.8566}, nil),
		geobin.NewFeature(orb.Point{2.3530, 48.8570}, nil),
		geobin.NewFeature(orb.Point{13.4050, 52.5200}, nil),
	)
	engine.Attach(stations)

	for _, bin := range engine.ExportFlattened() {
		fmt.Printf("%s: %d stations\n", bin.Attributes["id"], bin.Count)
	}

	// Write the bins as GeoJSON
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(engine.GeoJSON()); err != nil {
		log.Fatal(err)
	}
}
