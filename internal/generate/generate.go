package generate

import (
	"math"
	"sort"

	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
)

// DefaultConfig returns settings sized for a width x height level.
func DefaultConfig(width, height, level int) Config {
	return Config{
		MapWidth:      width,
		MapHeight:     height,
		MinLeafSize:   6,
		MaxLeafSize:   12,
		MinRoomSize:   3,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		Level:         level,
		MinRunes:      3,
		PatrolStops:   2,
		SafeRadius:    5,
	}
}

// Generate builds a level. The same Rand seed always yields the same level.
func Generate(cfg *Config) Result {
	gmap := buildRooms(cfg)

	start := gamemap.Cell{X: 1, Y: 1}
	if len(gmap.Rooms) > 0 {
		start = gmap.Rooms[0].CenterCell()
	}
	if !gmap.Walkable(start) {
		gmap.Set(start.X, start.Y, gamemap.MakeFloor())
	}

	placePillars(gmap, cfg, start)

	res := Result{Map: gmap, Start: start}
	taken := map[gamemap.Cell]bool{start: true}
	res.Runes = placeRunes(gmap, cfg, taken)
	res.Guards = placeGuards(gmap, cfg, start, taken)
	return res
}

// placePillars drops single wall tiles onto the floor. A pillar is kept only
// if the floor stays in one piece and no room centre is covered.
func placePillars(gmap *gamemap.GameMap, cfg *Config, start gamemap.Cell) {
	centres := map[gamemap.Cell]bool{start: true}
	for _, r := range gmap.Rooms {
		centres[r.CenterCell()] = true
	}
	attempts := 40 + cfg.Level*10
	for i := 0; i < attempts; i++ {
		c := gamemap.Cell{X: 1 + cfg.Rand.Intn(gmap.Width-2), Y: 1 + cfg.Rand.Intn(gmap.Height-2)}
		if !gmap.Walkable(c) || centres[c] || cfg.Rand.Float64() >= 0.08 {
			continue
		}
		gmap.Set(c.X, c.Y, gamemap.MakeWall())
		if !Connected(gmap) {
			gmap.Set(c.X, c.Y, gamemap.MakeFloor())
		}
	}
}

// placeRunes puts one rune in every room after the first, then tops up with
// random floor cells until there are at least MinRunes.
func placeRunes(gmap *gamemap.GameMap, cfg *Config, taken map[gamemap.Cell]bool) []gamemap.Cell {
	var runes []gamemap.Cell
	add := func(c gamemap.Cell) {
		if gmap.Walkable(c) && !taken[c] {
			taken[c] = true
			runes = append(runes, c)
		}
	}
	for _, r := range gmap.Rooms[min(1, len(gmap.Rooms)):] {
		add(gamemap.Cell{
			X: r.X1 + cfg.Rand.Intn(r.X2-r.X1+1),
			Y: r.Y1 + cfg.Rand.Intn(r.Y2-r.Y1+1),
		})
	}
	open := gmap.WalkableCells()
	for tries := 0; len(open) > 0 && len(runes) < cfg.MinRunes && tries < 1000; tries++ {
		add(open[cfg.Rand.Intn(len(open))])
	}
	return runes
}

// placeGuards picks Level+1 spawn cells away from the start and gives each a
// patrol route through the nearest room centres.
func placeGuards(gmap *gamemap.GameMap, cfg *Config, start gamemap.Cell, taken map[gamemap.Cell]bool) []GuardSpawn {
	count := max(1, cfg.Level+1)
	var guards []GuardSpawn
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < 200; attempt++ {
			c := gamemap.Cell{X: 1 + cfg.Rand.Intn(gmap.Width-2), Y: 1 + cfg.Rand.Intn(gmap.Height-2)}
			if !gmap.Walkable(c) || taken[c] || geom.CellDistance(c, start) < cfg.SafeRadius {
				continue
			}
			taken[c] = true
			guards = append(guards, GuardSpawn{Cell: c, Patrol: patrolRoute(gmap, c, cfg.PatrolStops)})
			break
		}
	}
	return guards
}

// patrolRoute starts at the spawn cell and visits the closest room centres.
func patrolRoute(gmap *gamemap.GameMap, spawn gamemap.Cell, stops int) []gamemap.Cell {
	route := []gamemap.Cell{spawn}
	type stop struct {
		cell gamemap.Cell
		dist float64
	}
	var candidates []stop
	for _, r := range gmap.Rooms {
		c := r.CenterCell()
		if c == spawn || !gmap.Walkable(c) {
			continue
		}
		candidates = append(candidates, stop{c, geom.CellDistance(spawn, c)})
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	for i := 0; i < stops && i < len(candidates); i++ {
		route = append(route, candidates[i].cell)
	}
	return route
}

// Connected reports whether every floor cell can reach every other through
// orthogonal steps.
func Connected(gmap *gamemap.GameMap) bool {
	open := gmap.WalkableCells()
	if len(open) == 0 {
		return true
	}
	return len(Reachable(gmap, open[0])) == len(open)
}

// Reachable flood-fills from c through orthogonal steps.
func Reachable(gmap *gamemap.GameMap, c gamemap.Cell) map[gamemap.Cell]int {
	dist := map[gamemap.Cell]int{c: 0}
	queue := []gamemap.Cell{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := cur.Add(d[0], d[1])
			if _, seen := dist[n]; seen || !gmap.Walkable(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

// Farthest returns the open cell with the longest walk from c, breaking ties
// in row-major order.
func Farthest(gmap *gamemap.GameMap, c gamemap.Cell) gamemap.Cell {
	best, bestDist := c, math.MinInt
	for cell, d := range Reachable(gmap, c) {
		if d > bestDist || (d == bestDist && cell.Less(best)) {
			best, bestDist = cell, d
		}
	}
	return best
}
