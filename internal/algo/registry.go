package algo

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/traverse"
)

// Default is selected when a key is unknown.
const Default = "bubble"

type Kind int

const (
	KindSequence Kind = iota
	KindGrid
)

func (k Kind) String() string {
	if k == KindGrid {
		return "grid"
	}
	return "sequence"
}

// Info is what a renderer shows about an algorithm.
type Info struct {
	Key         string
	Name        string
	Description string
	Kind        Kind
}

type Registry struct {
	sequences map[string]func([]int) sorting.Producer[int]
	grids     map[string]func(*grid.Grid) traverse.Producer
	info      map[string]Info
	order     []string
}

func NewRegistry() *Registry {
	r := &Registry{
		sequences: make(map[string]func([]int) sorting.Producer[int]),
		grids:     make(map[string]func(*grid.Grid) traverse.Producer),
		info:      make(map[string]Info),
	}

	r.addSequence("bubble", "Bubble Sort",
		"Bubble sort repeatedly steps through the list, compares adjacent elements and swaps them if they are in the wrong order.",
		sorting.Bubble[int])
	r.addSequence("selection", "Selection Sort",
		"Selection sort finds the minimum of the unsorted part and moves it to the end of the sorted part.",
		sorting.Selection[int])
	r.addSequence("insertion", "Insertion Sort",
		"Insertion sort takes each element in turn and shifts larger elements right until it finds its place.",
		sorting.Insertion[int])
	r.addSequence("merge", "Merge Sort",
		"Merge sort splits the list in halves, sorts each half and merges them back together.",
		sorting.Merge[int])
	r.addSequence("quick", "Quick Sort",
		"Quick sort partitions the list around a pivot and sorts the parts on either side of it.",
		sorting.Quick[int])
	r.addSequence("heap", "Heap Sort",
		"Heap sort builds a max-heap and repeatedly moves its root to the end of the list.",
		sorting.Heap[int])

	r.addGrid("bfs", "Breadth-First Search (BFS)",
		"BFS explores the graph layer by layer, visiting all neighbors at the current depth before moving to the next.",
		traverse.BFS)
	r.addGrid("dfs", "Depth-First Search (DFS)",
		"DFS explores as far as possible along each branch before backtracking.",
		traverse.DFS)
	r.addGrid("dijkstra", "Dijkstra's Algorithm",
		"Dijkstra finds the shortest path from the start node to the end node in a weighted graph.",
		traverse.Dijkstra)

	return r
}

func (r *Registry) addSequence(key, name, desc string, f sorting.Func[int]) {
	r.sequences[key] = sorting.Ordered(f)
	r.info[key] = Info{Key: key, Name: name, Description: desc, Kind: KindSequence}
	r.order = append(r.order, key)
}

func (r *Registry) addGrid(key, name, desc string, f func(*grid.Grid) traverse.Producer) {
	r.grids[key] = f
	r.info[key] = Info{Key: key, Name: name, Description: desc, Kind: KindGrid}
	r.order = append(r.order, key)
}

// Resolve returns key if it is registered and Default otherwise.
func (r *Registry) Resolve(key string) string {
	if _, ok := r.info[key]; ok {
		return key
	}
	return Default
}

func (r *Registry) Has(key string) bool {
	_, ok := r.info[key]
	return ok
}

// Info describes key, falling back to Default for unknown keys.
func (r *Registry) Info(key string) Info {
	return r.info[r.Resolve(key)]
}

func (r *Registry) IsGrid(key string) bool {
	return r.Info(key).Kind == KindGrid
}

// Keys lists every algorithm, sorts first, in display order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

func (r *Registry) SequenceKeys() []string {
	var keys []string
	for _, k := range r.order {
		if r.info[k].Kind == KindSequence {
			keys = append(keys, k)
		}
	}
	return keys
}

// Sequence builds the sort producer for key over values, sorting values in
// place.
func (r *Registry) Sequence(key string, values []int) (sorting.Producer[int], error) {
	fn, ok := r.sequences[key]
	if !ok {
		return nil, fmt.Errorf("unknown sequence algorithm: %s", key)
	}
	return fn(values), nil
}

// Grid builds the traversal producer for key. It clears g's run flags.
func (r *Registry) Grid(key string, g *grid.Grid) (traverse.Producer, error) {
	fn, ok := r.grids[key]
	if !ok {
		return nil, fmt.Errorf("unknown grid algorithm: %s", key)
	}
	return fn(g), nil
}
