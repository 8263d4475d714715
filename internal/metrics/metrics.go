// Package metrics implements engine.Metric observers for runs.
package metrics

import "github.com/san-kum/algoviz/internal/engine"

// Series is implemented by metrics that keep one sample per observed frame.
type Series interface {
	engine.Metric
	Series() []float64
}

var (
	_ Series = (*Inversions)(nil)
	_ Series = (*Visited)(nil)
)

// Default returns a fresh set of every metric.
func Default() []engine.Metric {
	return []engine.Metric{
		NewSteps(),
		NewInversions(),
		NewVisited(),
		NewPathLength(),
	}
}
