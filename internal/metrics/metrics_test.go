package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/grid"
)

func TestCount(t *testing.T) {
	tests := []struct {
		values []int
		want   int
	}{
		{nil, 0},
		{[]int{1, 2, 3}, 0},
		{[]int{3, 2, 1}, 3},
		{[]int{5, 3, 8, 1}, 4},
		{[]int{2, 2, 1}, 2},
	}
	for _, tt := range tests {
		if got := Count(tt.values); got != tt.want {
			t.Errorf("Count(%v) = %d, want %d", tt.values, got, tt.want)
		}
	}
}

func TestSortMetrics(t *testing.T) {
	steps := NewSteps()
	inv := NewInversions()
	visited := NewVisited()

	res, err := engine.Drain(context.Background(), algo.NewRegistry(), "bubble", []int{4, 3, 2, 1}, nil, steps, inv, visited)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}

	if steps.Value() != float64(len(res.Frames)) {
		t.Errorf("expected %d steps, got %f", len(res.Frames), steps.Value())
	}
	if inv.Value() != 0 {
		t.Errorf("sorted output should have no inversions, got %f", inv.Value())
	}
	series := inv.Series()
	if len(series) != len(res.Frames) {
		t.Fatalf("expected one sample per frame, got %d", len(series))
	}
	if series[0] != 6 {
		t.Errorf("first frame of [4 3 2 1] has 6 inversions, got %f", series[0])
	}
	for i := 1; i < len(series); i++ {
		if series[i] > series[i-1] {
			t.Errorf("bubble sort never adds inversions: %f after %f", series[i], series[i-1])
		}
	}
	if visited.Value() != 0 || len(visited.Series()) != 0 {
		t.Error("visited should ignore sequence frames")
	}
}

func TestGridMetrics(t *testing.T) {
	visited := NewVisited()
	path := NewPathLength()
	reg := algo.NewRegistry()

	_, err := engine.Drain(context.Background(), reg, "dijkstra", nil, grid.MustNew(grid.DefaultRows, grid.DefaultCols), visited, path)
	if err != nil {
		t.Fatalf("drain failed: %v", err)
	}
	if path.Value() != 18 {
		t.Errorf("expected path length 18, got %f", path.Value())
	}
	if visited.Value() != 96 {
		t.Errorf("expected all 96 nodes visited, got %f", visited.Value())
	}

	_, err = engine.Drain(context.Background(), reg, "bfs", nil, nil, visited, path)
	if err != nil {
		t.Fatal(err)
	}
	if path.Value() != 0 {
		t.Errorf("bfs traces no path, got %f", path.Value())
	}
}

func TestDefault(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		seen[m.Name()] = true
	}
	for _, name := range []string{"steps", "inversions", "visited", "path_length"} {
		if !seen[name] {
			t.Errorf("Default() is missing %s", name)
		}
	}

	a, b := Default(), Default()
	if a[0] == b[0] {
		t.Error("Default() must return fresh metrics")
	}
}

func TestReset(t *testing.T) {
	inv := NewInversions()
	inv.Observe(engine.Frame{Kind: algo.KindSequence})
	inv.Reset()
	if inv.Value() != 0 || len(inv.Series()) != 0 {
		t.Error("reset did not clear inversions")
	}
}

func TestSeriesMetrics(t *testing.T) {
	var names []string
	for _, m := range Default() {
		if s, ok := m.(Series); ok {
			names = append(names, s.Name())
		}
	}
	if len(names) != 2 || names[0] != "inversions" || names[1] != "visited" {
		t.Errorf("expected inversions and visited to keep series, got %v", names)
	}
}
