package algo

import (
	"testing"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/traverse"
)

func TestResolve(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		key  string
		want string
	}{
		{"bubble", "bubble"},
		{"heap", "heap"},
		{"dijkstra", "dijkstra"},
		{"", "bubble"},
		{"bogosort", "bubble"},
		{"BFS", "bubble"},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeysOrder(t *testing.T) {
	r := NewRegistry()
	want := []string{"bubble", "selection", "insertion", "merge", "quick", "heap", "bfs", "dfs", "dijkstra"}
	got := r.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: got %s, want %s", i, got[i], want[i])
		}
	}
	if n := len(r.SequenceKeys()); n != 6 {
		t.Errorf("expected 6 sequence keys, got %d", n)
	}
}

func TestInfo(t *testing.T) {
	r := NewRegistry()

	bfs := r.Info("bfs")
	if bfs.Name != "Breadth-First Search (BFS)" || bfs.Kind != KindGrid {
		t.Errorf("unexpected bfs info: %+v", bfs)
	}
	if !r.IsGrid("dfs") || r.IsGrid("merge") {
		t.Error("IsGrid mismatch")
	}
	if got := r.Info("nope"); got.Key != Default {
		t.Errorf("unknown key should describe %s, got %s", Default, got.Key)
	}
	for _, k := range r.Keys() {
		if r.Info(k).Description == "" {
			t.Errorf("%s has no description", k)
		}
	}
}

func TestBuildProducers(t *testing.T) {
	r := NewRegistry()

	for _, k := range r.SequenceKeys() {
		p, err := r.Sequence(k, []int{3, 1, 2})
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		steps := sorting.Drain(p)
		if last := steps[len(steps)-1]; !last.Final() {
			t.Errorf("%s: last step not final", k)
		}
	}

	if _, err := r.Sequence("bfs", []int{1}); err == nil {
		t.Error("expected error building a grid key as a sort")
	}
	if _, err := r.Grid("quick", grid.MustNew(2, 2)); err == nil {
		t.Error("expected error building a sort key as a traversal")
	}

	p, err := r.Grid("bfs", grid.MustNew(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	steps := traverse.Drain(p)
	if steps[len(steps)-1].Phase != traverse.PhaseReached {
		t.Error("bfs did not reach the end")
	}
}
