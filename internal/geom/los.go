package geom

import "runeguard/internal/gamemap"

// Line returns the cells visited by a 4-connected integer walk between a and
// b, both endpoints included. The walk always starts from the smaller of the
// two cells so Line(a, b) and Line(b, a) cover the same set.
func Line(a, b gamemap.Cell) []gamemap.Cell {
	if b.Less(a) {
		a, b = b, a
	}
	cells := make([]gamemap.Cell, 0, 1+abs(b.X-a.X)+abs(b.Y-a.Y))
	walk(a, b, func(c gamemap.Cell) bool {
		cells = append(cells, c)
		return true
	})
	return cells
}

// LineOfSight reports whether no blocked cell lies on the line between a and
// b. The endpoints themselves are tested and must lie inside the grid.
func LineOfSight(gmap *gamemap.GameMap, a, b gamemap.Cell) bool {
	gmap.MustContain(a)
	gmap.MustContain(b)
	if b.Less(a) {
		a, b = b, a
	}
	return walk(a, b, func(c gamemap.Cell) bool {
		return gmap.IsWalkable(c.X, c.Y)
	})
}

// walk steps one axis at a time from a to b, calling visit on each of the
// 1+dx+dy cells. It stops early when visit returns false.
func walk(a, b gamemap.Cell, visit func(gamemap.Cell) bool) bool {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	xInc, yInc := -1, -1
	if b.X > a.X {
		xInc = 1
	}
	if b.Y > a.Y {
		yInc = 1
	}
	x, y := a.X, a.Y
	err := dx - dy
	dx *= 2
	dy *= 2
	for n := 1 + dx/2 + dy/2; n > 0; n-- {
		if !visit(gamemap.Cell{X: x, Y: y}) {
			return false
		}
		if err > 0 {
			x += xInc
			err -= dy
		} else {
			y += yInc
			err += dx
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
