package pathfind

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeguard/internal/gamemap"
)

func c(x, y int) gamemap.Cell { return gamemap.Cell{X: x, Y: y} }

func TestFindPathTrivial(t *testing.T) {
	gmap := gamemap.MustParse("...")
	assert.Equal(t, []gamemap.Cell{c(1, 0)}, FindPath(gmap, c(1, 0), c(1, 0), DefaultOptions()))
}

func TestFindPathStraightAndDiagonal(t *testing.T) {
	gmap := gamemap.MustParse(
		".....",
		".....",
		".....",
	)
	straight := FindPath(gmap, c(0, 1), c(4, 1), DefaultOptions())
	assert.Equal(t, []gamemap.Cell{c(0, 1), c(1, 1), c(2, 1), c(3, 1), c(4, 1)}, straight)

	diag := FindPath(gmap, c(0, 0), c(2, 2), DefaultOptions())
	assert.Equal(t, []gamemap.Cell{c(0, 0), c(1, 1), c(2, 2)}, diag)
	assert.InDelta(t, 2.8, Cost(diag, DefaultOptions()), 1e-9)
}

func TestFindPathAroundWall(t *testing.T) {
	gmap := gamemap.MustParse(
		".....",
		"####.",
		".....",
	)
	path := FindPath(gmap, c(0, 0), c(0, 2), DefaultOptions())
	require.NotEmpty(t, path)
	assert.Equal(t, c(0, 0), path[0])
	assert.Equal(t, c(0, 2), path[len(path)-1])
	assertValidPath(t, gmap, path)
	// Across the top, diagonal through the gap, back along the bottom.
	assert.InDelta(t, 3*1.0+1.4+1.4+3*1.0, Cost(path, DefaultOptions()), 1e-9)
}

func TestFindPathCornerCutAllowed(t *testing.T) {
	gmap := gamemap.MustParse(
		".#",
		"#.",
	)
	assert.Equal(t, []gamemap.Cell{c(0, 0), c(1, 1)}, FindPath(gmap, c(0, 0), c(1, 1), DefaultOptions()))
}

func TestFindPathEnclosedGoal(t *testing.T) {
	gmap := gamemap.MustParse(
		".......",
		"..###..",
		"..#.#..",
		"..###..",
		".......",
	)
	assert.Nil(t, FindPath(gmap, c(0, 0), c(3, 2), DefaultOptions()))
	assert.Nil(t, FindPath(gmap, c(3, 2), c(6, 4), DefaultOptions()))
}

func TestFindPathExpansionCap(t *testing.T) {
	gmap := gamemap.MustParse("....................")
	capped := Options{MaxExpansions: 5, OrthogonalCost: 1, DiagonalCost: 1.4}
	assert.Nil(t, FindPath(gmap, c(0, 0), c(19, 0), capped))
	assert.Len(t, FindPath(gmap, c(0, 0), c(19, 0), DefaultOptions()), 20)
}

func TestFindPathDeterministic(t *testing.T) {
	gmap := gamemap.MustParse(
		"........",
		"........",
		"........",
		"........",
	)
	first := FindPath(gmap, c(0, 0), c(7, 3), DefaultOptions())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, FindPath(gmap, c(0, 0), c(7, 3), DefaultOptions()))
	}
}

func TestFindPathPanicsOnBlockedEndpoint(t *testing.T) {
	gmap := gamemap.MustParse(".#")
	assert.Panics(t, func() { FindPath(gmap, c(0, 0), c(1, 0), DefaultOptions()) })
	assert.Panics(t, func() { FindPath(gmap, c(0, 0), c(5, 0), DefaultOptions()) })
}

func TestFindPathOptimalAgainstDijkstra(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	opts := DefaultOptions()
	for trial := 0; trial < 200; trial++ {
		gmap := gamemap.New(8, 8)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if rng.Float64() > 0.3 {
					gmap.Set(x, y, gamemap.MakeFloor())
				}
			}
		}
		open := gmap.WalkableCells()
		if len(open) < 2 {
			continue
		}
		start := open[rng.Intn(len(open))]
		goal := open[rng.Intn(len(open))]

		want := bruteForceCost(gmap, start, goal, opts)
		path := FindPath(gmap, start, goal, opts)
		if math.IsInf(want, 1) {
			assert.Nil(t, path, "trial %d: %v -> %v should be unreachable", trial, start, goal)
			continue
		}
		require.NotEmpty(t, path, "trial %d: %v -> %v", trial, start, goal)
		assert.Equal(t, start, path[0])
		assert.Equal(t, goal, path[len(path)-1])
		assertValidPath(t, gmap, path)
		assert.InDelta(t, want, Cost(path, opts), 1e-9, "trial %d: %v -> %v", trial, start, goal)
	}
}

// bruteForceCost relaxes every edge until nothing changes.
func bruteForceCost(gmap *gamemap.GameMap, start, goal gamemap.Cell, opts Options) float64 {
	dist := map[gamemap.Cell]float64{start: 0}
	for changed := true; changed; {
		changed = false
		for _, cell := range gmap.WalkableCells() {
			d, ok := dist[cell]
			if !ok {
				continue
			}
			for _, off := range offsets {
				next := cell.Add(off[0], off[1])
				if !gmap.Walkable(next) {
					continue
				}
				step := opts.OrthogonalCost
				if off[0] != 0 && off[1] != 0 {
					step = opts.DiagonalCost
				}
				if old, seen := dist[next]; !seen || d+step < old-1e-12 {
					dist[next] = d + step
					changed = true
				}
			}
		}
	}
	if d, ok := dist[goal]; ok {
		return d
	}
	return math.Inf(1)
}

func assertValidPath(t *testing.T, gmap *gamemap.GameMap, path []gamemap.Cell) {
	t.Helper()
	for i, cell := range path {
		assert.True(t, gmap.Walkable(cell), "step %d %v blocked", i, cell)
		if i == 0 {
			continue
		}
		dx, dy := cell.X-path[i-1].X, cell.Y-path[i-1].Y
		assert.True(t, dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1 && (dx != 0 || dy != 0),
			"step %d %v not adjacent to %v", i, cell, path[i-1])
	}
}
