package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/geobin/pkg/geobin"
	"github.com/paulmach/orb"
)

func main() {
	// Invalid sizes are rejected when the grid is built
	_, err := geobin.NewSquare(0, orb.Point{})
	var invalidSize *geobin.ErrInvalidSize
	if errors.As(err, &invalidSize) {
		log.Printf("Expected error: size %g rejected", invalidSize.Size)
	}

	// So are projections that cannot be parsed
	opts := geobin.DefaultFixedAreaOptions()
	opts.GridProjection = "+proj=unknown"
	_, err = geobin.NewFixedArea(opts)
	var invalidProj *geobin.ErrInvalidProjection
	if errors.As(err, &invalidProj) {
		log.Printf("Expected error: %v", invalidProj)
	}

	grid, err := geobin.NewSquare(10, orb.Point{})
	if err != nil {
		log.Fatal(err)
	}
	engine, err := geobin.New(grid, geobin.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	points := geobin.NewCollection(geobin.NewFeature(orb.Point{1, 1}, nil))
	engine.Attach(points)

	// Setters the grid cannot honor leave the engine untouched
	if err := engine.SetLayout(geobin.Flat); errors.Is(err, geobin.ErrUnsupported) {
		log.Printf("Expected error: %v", err)
	}

	// Stale notifications are logged, not returned
	engine.Handle(geobin.Event{Kind: geobin.EventRemoved, Member: geobin.NewFeature(orb.Point{}, nil)})

	fmt.Printf("Bins: %d\n", len(engine.Bins()))
}
