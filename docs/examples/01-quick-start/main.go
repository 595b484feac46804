package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geobin/pkg/geobin"
	"github.com/paulmach/orb"
)

func main() {
	// 10 x 10 square cells with the origin at (0, 0)
	grid, err := geobin.NewSquare(10, orb.Point{0, 0})
	if err != nil {
		log.Fatal(err)
	}

	engine, err := geobin.New(grid, geobin.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	// Attach to a collection; bins follow every change from here on
	points := geobin.NewCollection()
	engine.Attach(points)

	points.Add(
		geobin.NewFeature(orb.Point{3, 3}, nil),
		geobin.NewFeature(orb.Point{7, 8}, nil),
		geobin.NewFeature(orb.Point{11, 2}, nil),
	)

	for _, bin := range engine.ExportFlattened() {
		fmt.Printf("Cell %s: %d members, center %v\n", bin.Key, bin.Count, bin.Center)
	}
}
