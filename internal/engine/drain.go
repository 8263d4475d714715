package engine

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/grid"
)

// Drain runs key to completion without pacing and returns every frame.
// Sorts work on a copy of values. Traversals mutate g; a nil g is replaced
// by a default-sized open grid.
func Drain(ctx context.Context, reg *algo.Registry, key string, values []int, g *grid.Grid, metrics ...Metric) (*Result, error) {
	key = reg.Resolve(key)
	if g == nil {
		g = grid.MustNew(grid.DefaultRows, grid.DefaultCols)
	}
	next, err := newSource(reg, key, slices.Clone(values), g)
	if err != nil {
		return nil, err
	}

	for _, m := range metrics {
		m.Reset()
	}

	result := &Result{
		Algorithm: key,
		Frames:    make([]Frame, 0),
		Metrics:   make(map[string]float64),
	}
	for seq := 0; ; seq++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f, ok := next()
		if !ok {
			break
		}
		f.Seq = seq
		for _, m := range metrics {
			m.Observe(f)
		}
		result.Frames = append(result.Frames, f)
	}

	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Compare drains each sequence algorithm in keys concurrently, each on its
// own copy of values. newMetrics is called once per algorithm so no metric
// is shared between goroutines; it may be nil. Results follow keys order.
func Compare(ctx context.Context, reg *algo.Registry, keys []string, values []int, newMetrics func() []Metric) ([]*Result, error) {
	for _, k := range keys {
		if !reg.Has(k) {
			return nil, fmt.Errorf("unknown algorithm: %s", k)
		}
		if reg.IsGrid(k) {
			return nil, fmt.Errorf("%s is not a sequence algorithm", k)
		}
	}

	results := make([]*Result, len(keys))
	errs := make([]error, len(keys))

	var wg sync.WaitGroup
	for i, k := range keys {
		wg.Add(1)
		go func(idx int, key string) {
			defer wg.Done()

			var ms []Metric
			if newMetrics != nil {
				ms = newMetrics()
			}
			results[idx], errs[idx] = Drain(ctx, reg, key, values, nil, ms...)
		}(i, k)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
