// Package geobin groups point-like records into spatial bins and keeps the
// grouping current as records are added, removed, moved or cleared.
//
// An Engine is attached to an Origin (for example a Collection) and
// listens to its notifications. Each member is placed by its anchor
// coordinate into the cell chosen by a grid Strategy:
//
//   - Square: axis-aligned cells of a fixed size
//   - Hex: pointy or flat hexagons
//   - FixedArea: square cells tiled in an equal-area projection
//   - Lookup: caller-supplied polygons
//
// Basic usage:
//
//	g, _ := geobin.NewHex(100, orb.Point{}, geobin.Pointy)
//	engine, err := geobin.New(g, geobin.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	points := geobin.NewCollection()
//	engine.Attach(points)
//	points.Add(geobin.NewFeature(orb.Point{120, 40}, nil))
//
//	for _, bin := range engine.ExportFlattened() {
//	    fmt.Println(bin.Key, bin.Count)
//	}
//
// Bins are created when the first member lands in a cell and deleted when
// the last one leaves. Removal and change notifications for members the
// engine does not know are logged and ignored.
package geobin
