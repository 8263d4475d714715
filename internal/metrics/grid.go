package metrics

import (
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/traverse"
)

// Visited is the number of visited nodes in the latest grid frame.
type Visited struct {
	name    string
	current int
	series  []float64
}

func NewVisited() *Visited {
	return &Visited{name: "visited"}
}

func (v *Visited) Name() string { return v.name }

func (v *Visited) Observe(f engine.Frame) {
	if f.Kind != algo.KindGrid {
		return
	}
	v.current = f.Graph.Grid.VisitedCount()
	v.series = append(v.series, float64(v.current))
}

func (v *Visited) Value() float64 { return float64(v.current) }

func (v *Visited) Series() []float64 { return slices.Clone(v.series) }

func (v *Visited) Reset() {
	v.current = 0
	v.series = v.series[:0]
}

// PathLength is the node count of a traced shortest path, start excluded.
// It stays 0 for runs that trace no path.
type PathLength struct {
	name   string
	length int
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(f engine.Frame) {
	if f.Kind == algo.KindGrid && f.Graph.Phase == traverse.PhasePath {
		p.length = len(f.Graph.Path)
	}
}

func (p *PathLength) Value() float64 { return float64(p.length) }

func (p *PathLength) Reset() { p.length = 0 }
