package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/geobin/pkg/geobin"
	"github.com/paulmach/orb"
)

func printBins(engine *geobin.Engine) {
	for _, bin := range engine.Bins() {
		fmt.Printf("  hex %-6s %d members\n", bin.Key(), bin.Len())
	}
}

func main() {
	grid, err := geobin.NewHex(1, orb.Point{0, 0}, geobin.Pointy)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := geobin.New(grid, geobin.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	boats := geobin.NewCollection()
	engine.Attach(boats)

	boat := geobin.NewFeature(orb.Point{0, 0}, map[string]interface{}{"name": "Osprey"})
	boats.Add(boat, geobin.NewFeature(orb.Point{1.7, 0.1}, nil))
	fmt.Println("Initial bins:")
	printBins(engine)

	// Features notify the engine when they move
	boat.SetGeometry(orb.Point{1.8, 0.2})
	fmt.Println("After the boat moved:")
	printBins(engine)

	// Changing grid parameters rebins everything
	if err := engine.SetLayout(geobin.Flat); err != nil {
		log.Fatal(err)
	}
	if err := engine.SetSize(5); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Flat layout, size 5:")
	printBins(engine)

	// Cell outline under an arbitrary point
	if outline, ok := engine.GridGeometryAt(orb.Point{10, 10}); ok {
		fmt.Printf("Hex at (10, 10): %v\n", outline)
	}
}
