package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geobin/pkg/geobin"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const zones = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "harbor", "properties": {"name": "Harbor"},
     "geometry": {"type": "Polygon", "coordinates": [[[-71.06,42.34],[-71.02,42.34],[-71.02,42.37],[-71.06,42.37],[-71.06,42.34]]]}},
    {"type": "Feature", "id": "bay", "properties": {"name": "Outer Bay"},
     "geometry": {"type": "Polygon", "coordinates": [[[-71.02,42.30],[-70.90,42.30],[-70.90,42.40],[-71.02,42.40],[-71.02,42.30]]]}}
  ]
}`

func main() {
	fc, err := geojson.UnmarshalFeatureCollection([]byte(zones))
	if err != nil {
		log.Fatal(err)
	}

	grid, err := geobin.NewLookup(fc.Features)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := geobin.New(grid, geobin.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	sightings := geobin.NewCollection(
		geobin.NewFeature(orb.Point{-71.05, 42.35}, nil),
		geobin.NewFeature(orb.Point{-71.03, 42.36}, nil),
		geobin.NewFeature(orb.Point{-70.95, 42.33}, nil),
		geobin.NewFeature(orb.Point{-70.50, 42.00}, nil), // outside every zone
	)
	engine.Attach(sightings)

	for _, bin := range engine.ExportFlattened() {
		fmt.Printf("%-10s %d sightings\n", bin.Attributes["name"], bin.Count)
	}

	stats := engine.Stats()
	fmt.Printf("Binned: %d, outside: %d\n", stats.Binned, stats.Outside)
}
