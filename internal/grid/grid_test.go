package grid_test

import (
	"math/rand"
	"testing"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/stretchr/testify/require"
)

func TestNew_Endpoints(t *testing.T) {
	g, err := grid.New(grid.DefaultRows, grid.DefaultCols)
	require.NoError(t, err)
	require.Equal(t, grid.Pos{0, 0}, g.Start())
	require.Equal(t, grid.Pos{7, 11}, g.End())
	require.Equal(t, 96, g.Len())

	snap := g.Snapshot()
	starts, ends := 0, 0
	for _, n := range snap.Nodes {
		if n.IsStart {
			starts++
		}
		if n.IsEnd {
			ends++
		}
		require.False(t, n.Visited)
		require.False(t, n.IsPath)
	}
	require.Equal(t, 1, starts, "exactly one start node")
	require.Equal(t, 1, ends, "exactly one end node")
}

func TestNew_Empty(t *testing.T) {
	_, err := grid.New(0, 5)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)

	_, err = grid.New(3, -1)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)
}

func TestNeighbors_FixedOrder(t *testing.T) {
	g := grid.MustNew(3, 3)

	require.Equal(t, []grid.Pos{{1, 2}, {2, 1}, {1, 0}, {0, 1}}, g.Neighbors(grid.Pos{1, 1}),
		"right, down, left, up")
	require.Equal(t, []grid.Pos{{0, 1}, {1, 0}}, g.Neighbors(grid.Pos{0, 0}))
	require.Equal(t, []grid.Pos{{2, 1}, {1, 2}}, g.Neighbors(grid.Pos{2, 2}))
}

func TestNeighbors_SkipsWalls(t *testing.T) {
	g := grid.MustNew(3, 3)
	require.NoError(t, g.SetWall(grid.Pos{1, 2}, true))

	require.Equal(t, []grid.Pos{{2, 1}, {1, 0}, {0, 1}}, g.Neighbors(grid.Pos{1, 1}))
	require.True(t, g.Wall(grid.Pos{1, 2}))
}

func TestSetWall_Endpoints(t *testing.T) {
	g := grid.MustNew(4, 4)
	require.ErrorIs(t, g.SetWall(g.Start(), true), grid.ErrEndpoint)
	require.ErrorIs(t, g.SetWall(g.End(), true), grid.ErrEndpoint)
	require.ErrorIs(t, g.SetWall(grid.Pos{9, 9}, true), grid.ErrOutOfRange)
}

func TestVisit_ClearKeepsWalls(t *testing.T) {
	g := grid.MustNew(2, 3)
	require.NoError(t, g.SetWall(grid.Pos{0, 1}, true))

	require.True(t, g.Visit(grid.Pos{1, 1}))
	require.True(t, g.MarkPath(grid.Pos{1, 1}))
	require.False(t, g.Visit(grid.Pos{5, 5}))
	require.Equal(t, 1, g.VisitedCount())

	snap := g.Snapshot()
	g.Clear()

	require.Equal(t, 0, g.VisitedCount())
	require.True(t, g.Wall(grid.Pos{0, 1}), "walls survive Clear")
	require.True(t, snap.At(1, 1).Visited, "snapshot is a copy")
	require.Equal(t, 1, snap.PathCount())
}

func TestScatter_NeverWallsEndpoints(t *testing.T) {
	g := grid.MustNew(grid.DefaultRows, grid.DefaultCols)
	g.Scatter(rand.New(rand.NewSource(7)), 0.99)

	require.False(t, g.Wall(g.Start()))
	require.False(t, g.Wall(g.End()))

	g.Scatter(rand.New(rand.NewSource(7)), 0)
	for _, n := range g.Snapshot().Nodes {
		require.False(t, n.Wall)
	}
}

func TestPosString_OneBased(t *testing.T) {
	require.Equal(t, "(1, 1)", grid.Pos{0, 0}.String())
	require.Equal(t, "(8, 12)", grid.Pos{7, 11}.String())
}
