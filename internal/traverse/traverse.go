// Package traverse runs breadth-first search, depth-first search and
// Dijkstra's shortest path over a grid.Grid one node visit at a time.
//
// Each producer clears the grid's per-run flags when built, then mutates it as
// it goes: every call to Next visits at most one node and returns a deep copy
// of the grid with a status line. Neighbors are expanded in grid.Directions
// order (right, down, left, up), which fixes the visit order.
//
// When the end node cannot be reached the producers finish with a
// PhaseNoPath step instead of looping.
package traverse

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/grid"
)

// Phase tags what a Step reports.
type Phase int

const (
	PhaseVisit Phase = iota
	PhaseReached
	PhasePath
	PhaseNoPath
)

func (p Phase) String() string {
	switch p {
	case PhaseVisit:
		return "visit"
	case PhaseReached:
		return "reached"
	case PhasePath:
		return "path"
	case PhaseNoPath:
		return "no_path"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

const (
	StatusReached = "Reached the end node!"
	StatusTracing = "Reached the end node! Tracing shortest path..."
	StatusPath    = "Shortest path highlighted."
	StatusNoPath  = "No path found."
)

// Step is the grid right after one mutation.
type Step struct {
	Grid    grid.Snapshot
	Current grid.Pos
	// Distance is the edge count from start to Current, or -1 when the step
	// does not visit a node.
	Distance int
	Phase    Phase
	Status   string
	// Path lists the traced nodes from end back towards start, start
	// excluded. Only set on PhasePath steps.
	Path []grid.Pos
	// Last is set on the step after which the producer is exhausted.
	Last bool
}

// Producer yields steps until it returns false.
type Producer interface {
	Next() (Step, bool)
}

// Drain pulls every remaining step from p.
func Drain(p Producer) []Step {
	var steps []Step
	for {
		s, ok := p.Next()
		if !ok {
			return steps
		}
		steps = append(steps, s)
	}
}

func visiting(p grid.Pos) string {
	return "Visiting node " + p.String()
}

func noPath(g *grid.Grid) Step {
	return Step{
		Grid:     g.Snapshot(),
		Current:  g.End(),
		Distance: -1,
		Phase:    PhaseNoPath,
		Status:   StatusNoPath,
		Last:     true,
	}
}

type item struct {
	pos  grid.Pos
	dist int
}

type bfs struct {
	g     *grid.Grid
	queue []item
	seen  []bool
	done  bool
}

// BFS visits nodes in FIFO order. Nodes are marked seen when enqueued, so
// each is queued at most once. It stops on dequeuing the end node.
func BFS(g *grid.Grid) Producer {
	g.Clear()
	b := &bfs{g: g, seen: make([]bool, g.Len())}
	b.queue = append(b.queue, item{pos: g.Start()})
	b.seen[g.Index(g.Start())] = true
	return b
}

func (b *bfs) Next() (Step, bool) {
	if b.done {
		return Step{}, false
	}
	if len(b.queue) == 0 {
		b.done = true
		return noPath(b.g), true
	}

	cur := b.queue[0]
	b.queue = b.queue[1:]
	b.g.Visit(cur.pos)

	if cur.pos == b.g.End() {
		b.done = true
		s := b.step(cur, PhaseReached, StatusReached)
		s.Last = true
		return s, true
	}
	for _, n := range b.g.Neighbors(cur.pos) {
		idx := b.g.Index(n)
		if !b.seen[idx] {
			b.seen[idx] = true
			b.queue = append(b.queue, item{pos: n, dist: cur.dist + 1})
		}
	}
	return b.step(cur, PhaseVisit, visiting(cur.pos)), true
}

func (b *bfs) step(cur item, phase Phase, status string) Step {
	return Step{Grid: b.g.Snapshot(), Current: cur.pos, Distance: cur.dist, Phase: phase, Status: status}
}

type dfs struct {
	g     *grid.Grid
	stack []item
	done  bool
}

// DFS visits nodes in LIFO order. A node may sit on the stack several
// times; already visited entries are skipped when popped. It stops on
// visiting the end node.
func DFS(g *grid.Grid) Producer {
	g.Clear()
	return &dfs{g: g, stack: []item{{pos: g.Start()}}}
}

func (d *dfs) Next() (Step, bool) {
	if d.done {
		return Step{}, false
	}
	for len(d.stack) > 0 {
		cur := d.stack[len(d.stack)-1]
		d.stack = d.stack[:len(d.stack)-1]
		if d.g.Visited(cur.pos) {
			continue
		}
		d.g.Visit(cur.pos)

		if cur.pos == d.g.End() {
			d.done = true
			return Step{Grid: d.g.Snapshot(), Current: cur.pos, Distance: cur.dist, Phase: PhaseReached, Status: StatusReached, Last: true}, true
		}
		for _, n := range d.g.Neighbors(cur.pos) {
			if !d.g.Visited(n) {
				d.stack = append(d.stack, item{pos: n, dist: cur.dist + 1})
			}
		}
		return Step{Grid: d.g.Snapshot(), Current: cur.pos, Distance: cur.dist, Phase: PhaseVisit, Status: visiting(cur.pos)}, true
	}
	d.done = true
	return noPath(d.g), true
}
