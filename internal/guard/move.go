package guard

import (
	"math"

	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
	"runeguard/internal/pathfind"
)

// Cell is the grid cell under the guard. A diagonal squeeze between two
// walls can briefly put Pos on a wall cell; the nearest open neighbour is
// returned instead.
func (g *Guard) Cell(gmap *gamemap.GameMap) gamemap.Cell {
	c := geom.CellOf(g.Pos, g.params.TileSize)
	if gmap == nil || gmap.Walkable(c) {
		return c
	}
	best, bestDist := c, math.Inf(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := c.Add(dx, dy)
			if !gmap.Walkable(n) {
				continue
			}
			if d := g.Pos.DistanceTo(geom.CellCenter(n, g.params.TileSize)); d < bestDist {
				best, bestDist = n, d
			}
		}
	}
	return best
}

// pathTo replaces the current path with a fresh route to goal. It reports
// false, leaving the path empty, when goal is blocked, unreachable or the
// cell the guard is already on.
func (g *Guard) pathTo(gmap *gamemap.GameMap, goal gamemap.Cell) bool {
	if !gmap.Walkable(goal) {
		g.Path.Clear()
		return false
	}
	g.Path = pathfind.NewPath(pathfind.FindPath(gmap, g.Cell(gmap), goal, g.params.Path))
	return !g.Path.Empty()
}

// FollowPath takes one step along the path. Within the arrival threshold of
// the next cell the guard snaps to its centre and the cursor advances;
// otherwise it moves toward that centre without passing it, so a single call
// never covers more than one cell whatever dt is.
func (g *Guard) FollowPath(dt float64) {
	next, ok := g.Path.Next()
	if !ok {
		return
	}
	target := geom.CellCenter(next, g.params.TileSize)
	delta := target.Sub(g.Pos)
	dist := delta.Len()
	if dist <= g.params.ArrivalThreshold {
		g.Pos = target
		g.Path.Advance()
		return
	}
	step := math.Min(g.Speed*dt, dist)
	if step <= 0 {
		return
	}
	g.Pos = g.Pos.Add(delta.Scale(step / dist))
	g.Heading = geom.Bearing(geom.Vec2{}, delta)
}
