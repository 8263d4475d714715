// Package grid models the fixed-size node lattice the traversal algorithms
// walk over.
//
// A Grid has exactly one start node (top-left) and one end node
// (bottom-right), fixed when the grid is built. Nodes carry the per-run
// flags a renderer needs: Visited, IsPath and Wall.
package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

const (
	DefaultRows = 8
	DefaultCols = 12
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: must have at least one row and one column")
	// ErrOutOfRange indicates a position outside the grid.
	ErrOutOfRange = errors.New("grid: position out of range")
	// ErrEndpoint indicates an attempt to wall off the start or end node.
	ErrEndpoint = errors.New("grid: start and end nodes cannot be walls")
)

// Pos addresses a node by zero-based row and column.
type Pos struct {
	Row, Col int
}

func (p Pos) Add(d Pos) Pos { return Pos{Row: p.Row + d.Row, Col: p.Col + d.Col} }

// String renders the position 1-based, the way status lines show it.
func (p Pos) String() string { return fmt.Sprintf("(%d, %d)", p.Row+1, p.Col+1) }

// Directions is the neighbor order every traversal uses: right, down, left, up.
// Traversal output depends on it.
var Directions = [4]Pos{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

type Node struct {
	Row, Col int
	Visited  bool
	IsStart  bool
	IsEnd    bool
	IsPath   bool
	Wall     bool
}

func (n Node) Pos() Pos { return Pos{Row: n.Row, Col: n.Col} }

// Grid is a rows x cols matrix of nodes. It is not safe for concurrent use;
// one traversal owns it for the length of a run.
type Grid struct {
	rows, cols int
	start, end Pos
	nodes      []Node
}

// New builds a grid with start at (0,0) and end at (rows-1, cols-1).
func New(rows, cols int) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrEmptyGrid, rows, cols)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		start: Pos{0, 0},
		end:   Pos{rows - 1, cols - 1},
		nodes: make([]Node, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.nodes[r*cols+c] = Node{
				Row:     r,
				Col:     c,
				IsStart: r == g.start.Row && c == g.start.Col,
				IsEnd:   r == g.end.Row && c == g.end.Col,
			}
		}
	}
	return g, nil
}

// MustNew is New for dimensions known to be valid.
func MustNew(rows, cols int) *Grid {
	g, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Rows() int  { return g.rows }
func (g *Grid) Cols() int  { return g.cols }
func (g *Grid) Start() Pos { return g.start }
func (g *Grid) End() Pos   { return g.end }
func (g *Grid) Len() int   { return len(g.nodes) }

func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Index flattens p into row-major order. p must be in bounds.
func (g *Grid) Index(p Pos) int { return p.Row*g.cols + p.Col }

// At returns a copy of the node at p.
func (g *Grid) At(p Pos) (Node, bool) {
	if !g.InBounds(p) {
		return Node{}, false
	}
	return g.nodes[g.Index(p)], true
}

// Visit marks p visited. It reports false if p is out of range. The flag is
// never cleared except by Clear.
func (g *Grid) Visit(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	g.nodes[g.Index(p)].Visited = true
	return true
}

func (g *Grid) Visited(p Pos) bool {
	return g.InBounds(p) && g.nodes[g.Index(p)].Visited
}

// MarkPath flags p as part of the traced shortest path.
func (g *Grid) MarkPath(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	g.nodes[g.Index(p)].IsPath = true
	return true
}

// SetWall makes p passable or impassable.
func (g *Grid) SetWall(p Pos, wall bool) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, p)
	}
	if p == g.start || p == g.end {
		return ErrEndpoint
	}
	g.nodes[g.Index(p)].Wall = wall
	return nil
}

func (g *Grid) Wall(p Pos) bool {
	return g.InBounds(p) && g.nodes[g.Index(p)].Wall
}

// Scatter walls roughly density of the non-endpoint nodes using rng.
// Existing walls are cleared first.
func (g *Grid) Scatter(rng *rand.Rand, density float64) {
	for i := range g.nodes {
		n := &g.nodes[i]
		n.Wall = false
		if n.IsStart || n.IsEnd || density <= 0 {
			continue
		}
		if rng.Float64() < density {
			n.Wall = true
		}
	}
}

// Clear resets the per-run flags (Visited, IsPath) and keeps walls.
func (g *Grid) Clear() {
	for i := range g.nodes {
		g.nodes[i].Visited = false
		g.nodes[i].IsPath = false
	}
}

// Neighbors returns the passable in-range neighbors of p in Directions order.
func (g *Grid) Neighbors(p Pos) []Pos {
	out := make([]Pos, 0, len(Directions))
	for _, d := range Directions {
		n := p.Add(d)
		if g.InBounds(n) && !g.nodes[g.Index(n)].Wall {
			out = append(out, n)
		}
	}
	return out
}

// VisitedCount returns how many nodes are currently visited.
func (g *Grid) VisitedCount() int {
	count := 0
	for _, n := range g.nodes {
		if n.Visited {
			count++
		}
	}
	return count
}

// Clone returns an independent grid with the same nodes and flags.
func (g *Grid) Clone() *Grid {
	c := *g
	c.nodes = make([]Node, len(g.nodes))
	copy(c.nodes, g.nodes)
	return &c
}

// Snapshot deep-copies the grid's current state.
func (g *Grid) Snapshot() Snapshot {
	nodes := make([]Node, len(g.nodes))
	copy(nodes, g.nodes)
	return Snapshot{Rows: g.rows, Cols: g.cols, Nodes: nodes}
}

// Snapshot is an immutable copy of a grid, row-major.
type Snapshot struct {
	Rows, Cols int
	Nodes      []Node
}

func (s Snapshot) At(row, col int) Node { return s.Nodes[row*s.Cols+col] }

// Row returns the nodes of row r.
func (s Snapshot) Row(r int) []Node { return s.Nodes[r*s.Cols : (r+1)*s.Cols] }

func (s Snapshot) VisitedCount() int {
	count := 0
	for _, n := range s.Nodes {
		if n.Visited {
			count++
		}
	}
	return count
}

func (s Snapshot) PathCount() int {
	count := 0
	for _, n := range s.Nodes {
		if n.IsPath {
			count++
		}
	}
	return count
}
