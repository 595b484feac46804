package grid

import (
	"context"
	"runtime"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"
)

// Located is the outcome of locating one point.
type Located struct {
	Cell Cell
	OK   bool
}

// LocateAll locates every point with up to workers goroutines and returns
// the results in input order. workers <= 0 means runtime.NumCPU(); a single
// worker (or a single point) runs on the calling goroutine.
//
// The strategy must be safe for concurrent use; the built-in ones are.
func LocateAll(ctx context.Context, s Strategy, points []orb.Point, workers int) ([]Located, error) {
	results := make([]Located, len(points))
	if len(points) == 0 {
		return results, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// Don't create more workers than points
	if workers > len(points) {
		workers = len(points)
	}

	if workers == 1 {
		for i, p := range points {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i].Cell, results[i].OK = s.Locate(p)
		}
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(points) + workers - 1) / workers
	for start := 0; start < len(points); start += chunk {
		start, end := start, min(start+chunk, len(points))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i].Cell, results[i].OK = s.Locate(points[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
