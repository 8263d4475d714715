package metrics

import (
	"cmp"
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
)

// Inversions tracks how far the sequence is from sorted: the number of index
// pairs i < j with values[i] > values[j] in the latest sequence frame. It
// keeps one sample per frame for plotting.
type Inversions struct {
	name    string
	current int
	series  []float64
}

func NewInversions() *Inversions {
	return &Inversions{name: "inversions"}
}

func (m *Inversions) Name() string { return m.name }

func (m *Inversions) Observe(f engine.Frame) {
	if f.Kind != algo.KindSequence {
		return
	}
	m.current = Count(f.Sort.Values)
	m.series = append(m.series, float64(m.current))
}

func (m *Inversions) Value() float64 { return float64(m.current) }

func (m *Inversions) Series() []float64 { return slices.Clone(m.series) }

func (m *Inversions) Reset() {
	m.current = 0
	m.series = m.series[:0]
}

// Count returns the number of inversions in values.
func Count[T cmp.Ordered](values []T) int {
	n := 0
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}
