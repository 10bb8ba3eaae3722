// Package pathfind computes shortest 8-connected routes across a tile grid.
package pathfind

import (
	"container/heap"
	"math"

	"runeguard/internal/gamemap"
)

// Default search parameters.
const (
	DefaultMaxExpansions  = 10000
	DefaultOrthogonalCost = 1.0
	DefaultDiagonalCost   = 1.4
)

// Options tunes a search. Zero fields fall back to the defaults.
type Options struct {
	MaxExpansions  int
	OrthogonalCost float64
	DiagonalCost   float64
}

// DefaultOptions returns the standard cost model and expansion cap.
func DefaultOptions() Options {
	return Options{
		MaxExpansions:  DefaultMaxExpansions,
		OrthogonalCost: DefaultOrthogonalCost,
		DiagonalCost:   DefaultDiagonalCost,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxExpansions <= 0 {
		o.MaxExpansions = DefaultMaxExpansions
	}
	if o.OrthogonalCost <= 0 {
		o.OrthogonalCost = DefaultOrthogonalCost
	}
	if o.DiagonalCost <= 0 {
		o.DiagonalCost = DefaultDiagonalCost
	}
	return o
}

// heuristicScale keeps the Euclidean estimate below the true step cost so the
// first goal expansion is always optimal, even when diagonals cost less than
// sqrt(2) orthogonal steps.
func (o Options) heuristicScale() float64 {
	return math.Min(o.OrthogonalCost, o.DiagonalCost/math.Sqrt2)
}

// offsets lists the eight neighbours in a fixed order.
var offsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// FindPath returns the cheapest route from start to goal, both included, or
// nil when the goal is unreachable or the search expands more than
// MaxExpansions nodes. start and goal must be open cells.
func FindPath(gmap *gamemap.GameMap, start, goal gamemap.Cell, opts Options) []gamemap.Cell {
	gmap.MustOpen(start)
	gmap.MustOpen(goal)
	if start == goal {
		return []gamemap.Cell{start}
	}
	opts = opts.withDefaults()
	hScale := opts.heuristicScale()
	h := func(c gamemap.Cell) float64 {
		return hScale * math.Hypot(float64(goal.X-c.X), float64(goal.Y-c.Y))
	}

	w := gmap.Width
	index := func(c gamemap.Cell) int { return c.Y*w + c.X }
	size := w * gmap.Height
	gScore := make([]float64, size)
	for i := range gScore {
		gScore[i] = math.Inf(1)
	}
	parent := make([]int32, size)
	closed := make([]bool, size)

	open := &nodeHeap{}
	var seq uint64
	push := func(c gamemap.Cell, g float64) {
		heap.Push(open, &node{cell: c, g: g, f: g + h(c), seq: seq})
		seq++
	}

	gScore[index(start)] = 0
	parent[index(start)] = -1
	push(start, 0)

	expansions := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		ci := index(cur.cell)
		if closed[ci] || cur.g > gScore[ci] {
			continue
		}
		if cur.cell == goal {
			return reconstruct(parent, ci, w)
		}
		closed[ci] = true
		expansions++
		if expansions > opts.MaxExpansions {
			return nil
		}

		for _, off := range offsets {
			next := cur.cell.Add(off[0], off[1])
			if !gmap.Walkable(next) {
				continue
			}
			ni := index(next)
			if closed[ni] {
				continue
			}
			step := opts.OrthogonalCost
			if off[0] != 0 && off[1] != 0 {
				step = opts.DiagonalCost
			}
			g := cur.g + step
			if g < gScore[ni] {
				gScore[ni] = g
				parent[ni] = int32(ci)
				push(next, g)
			}
		}
	}
	return nil
}

func reconstruct(parent []int32, goal, width int) []gamemap.Cell {
	var rev []gamemap.Cell
	for i := goal; i >= 0; i = int(parent[i]) {
		rev = append(rev, gamemap.Cell{X: i % width, Y: i / width})
	}
	path := make([]gamemap.Cell, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// Cost sums the step costs along a path.
func Cost(path []gamemap.Cell, opts Options) float64 {
	opts = opts.withDefaults()
	total := 0.0
	for i := 1; i < len(path); i++ {
		if path[i].X != path[i-1].X && path[i].Y != path[i-1].Y {
			total += opts.DiagonalCost
		} else {
			total += opts.OrthogonalCost
		}
	}
	return total
}

// node is a frontier entry. seq records discovery order and breaks ties.
type node struct {
	cell  gamemap.Cell
	g, f  float64
	seq   uint64
	index int
}

type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
