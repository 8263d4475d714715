package traverse

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/san-kum/algoviz/internal/grid"
)

// Every edge of the grid weighs 1.
const edgeWeight = 1

// entry is one queued (node, distance) pair. seq breaks distance ties in
// insertion order, which pops nodes in exactly the order a stable sort of
// the queue by distance would.
type entry struct {
	pos  grid.Pos
	dist int
	seq  int
}

type frontier []entry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(entry)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}

const (
	dijkstraVisit = iota
	dijkstraTrace
	dijkstraDone
)

type dijkstra struct {
	g     *grid.Grid
	dist  []int
	prev  []int // index of predecessor, -1 if none
	pq    frontier
	seq   int
	phase int
}

// Dijkstra pops the closest unvisited node from a binary min-heap, visits
// it and relaxes its neighbors with alt = dist+1. Stale heap entries are
// skipped on pop. Once the end node is visited it emits one more step with
// the shortest path traced back through the predecessor links and marked.
func Dijkstra(g *grid.Grid) Producer {
	g.Clear()
	d := &dijkstra{
		g:    g,
		dist: make([]int, g.Len()),
		prev: make([]int, g.Len()),
	}
	for i := range d.dist {
		d.dist[i] = math.MaxInt
		d.prev[i] = -1
	}
	d.dist[g.Index(g.Start())] = 0
	heap.Init(&d.pq)
	d.push(g.Start(), 0)
	return d
}

func (d *dijkstra) push(p grid.Pos, dist int) {
	heap.Push(&d.pq, entry{pos: p, dist: dist, seq: d.seq})
	d.seq++
}

func (d *dijkstra) Next() (Step, bool) {
	switch d.phase {
	case dijkstraVisit:
		return d.visit(), true
	case dijkstraTrace:
		d.phase = dijkstraDone
		return d.trace(), true
	default:
		return Step{}, false
	}
}

func (d *dijkstra) visit() Step {
	for d.pq.Len() > 0 {
		cur := heap.Pop(&d.pq).(entry)
		if d.g.Visited(cur.pos) {
			continue
		}
		d.g.Visit(cur.pos)

		if cur.pos == d.g.End() {
			d.phase = dijkstraTrace
			return Step{Grid: d.g.Snapshot(), Current: cur.pos, Distance: cur.dist, Phase: PhaseReached, Status: StatusTracing}
		}

		ci := d.g.Index(cur.pos)
		for _, n := range d.g.Neighbors(cur.pos) {
			if d.g.Visited(n) {
				continue
			}
			ni := d.g.Index(n)
			alt := d.dist[ci] + edgeWeight
			if alt < d.dist[ni] {
				d.dist[ni] = alt
				d.prev[ni] = ci
				d.push(n, alt)
			}
		}
		return Step{
			Grid:     d.g.Snapshot(),
			Current:  cur.pos,
			Distance: cur.dist,
			Phase:    PhaseVisit,
			Status:   fmt.Sprintf("%s, distance: %d", visiting(cur.pos), cur.dist),
		}
	}
	d.phase = dijkstraDone
	return noPath(d.g)
}

// trace walks prev from end to start. A missing link means the end was
// never reached; that ends the run with PhaseNoPath rather than a partial
// path.
func (d *dijkstra) trace() Step {
	start, end := d.g.Start(), d.g.End()
	var path []grid.Pos
	for cur := end; cur != start; {
		path = append(path, cur)
		pi := d.prev[d.g.Index(cur)]
		if pi < 0 || len(path) > d.g.Len() {
			return noPath(d.g)
		}
		cur = grid.Pos{Row: pi / d.g.Cols(), Col: pi % d.g.Cols()}
	}
	for _, p := range path {
		d.g.MarkPath(p)
	}
	return Step{
		Grid:     d.g.Snapshot(),
		Current:  end,
		Distance: len(path),
		Phase:    PhasePath,
		Status:   StatusPath,
		Path:     path,
		Last:     true,
	}
}
