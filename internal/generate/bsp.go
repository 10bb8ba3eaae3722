// Package generate builds random levels: BSP rooms joined by corridors, a
// few pillars, rune cells, guard spawns and their patrol routes.
package generate

import (
	"math/rand"

	"runeguard/internal/gamemap"
)

// Config drives procedural generation for one level.
type Config struct {
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle
	Level               int // 1-based
	MinRunes            int
	PatrolStops         int // room centres added after the spawn cell
	SafeRadius          float64
	Rand                *rand.Rand
}

// GuardSpawn is a spawn cell and the route its guard will walk.
type GuardSpawn struct {
	Cell   gamemap.Cell
	Patrol []gamemap.Cell
}

// Result is a generated level.
type Result struct {
	Map    *gamemap.GameMap
	Start  gamemap.Cell
	Runes  []gamemap.Cell
	Guards []GuardSpawn
}

// leaf is a node in the BSP tree.
type leaf struct {
	X, Y, W, H  int
	left, right *leaf
	room        *gamemap.Rect
}

func (l *leaf) split(cfg *Config) bool {
	if l.left != nil {
		return false
	}
	horizontal := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		horizontal = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		horizontal = true
	}

	size := l.W
	if horizontal {
		size = l.H
	}
	lo, hi := cfg.MinLeafSize, size-cfg.MinLeafSize
	if size <= cfg.MinLeafSize*2 || lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if horizontal {
		l.left = &leaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &leaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &leaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &leaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// carveRooms places one room in every terminal leaf.
func (l *leaf) carveRooms(gmap *gamemap.GameMap, cfg *Config) {
	if l.left != nil {
		l.left.carveRooms(gmap, cfg)
		l.right.carveRooms(gmap, cfg)
		return
	}
	pad := cfg.RoomPadding
	availW := max(l.W-2*pad, cfg.MinRoomSize)
	availH := max(l.H-2*pad, cfg.MinRoomSize)
	rw := min(cfg.MinRoomSize+cfg.Rand.Intn(max(1, availW-cfg.MinRoomSize+1)), l.W-2*pad)
	rh := min(cfg.MinRoomSize+cfg.Rand.Intn(max(1, availH-cfg.MinRoomSize+1)), l.H-2*pad)
	rw, rh = max(rw, 3), max(rh, 3)

	// Keep a one-tile wall border around the map.
	rx := max(1, l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)))
	ry := max(1, l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)))
	rw = min(rw, gmap.Width-rx-1)
	rh = min(rh, gmap.Height-ry-1)
	if rw < 3 || rh < 3 {
		return
	}

	room := gamemap.Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	gmap.Rooms = append(gmap.Rooms, room)
}

// anyRoom returns a room from this subtree, preferring the left side.
func (l *leaf) anyRoom() *gamemap.Rect {
	if l.room != nil {
		return l.room
	}
	if l.left == nil {
		return nil
	}
	if r := l.left.anyRoom(); r != nil {
		return r
	}
	return l.right.anyRoom()
}

// connect joins sibling subtrees bottom-up so every room is reachable.
func (l *leaf) connect(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil {
		return
	}
	l.left.connect(gmap, cfg)
	l.right.connect(gmap, cfg)
	a, b := l.left.anyRoom(), l.right.anyRoom()
	if a == nil || b == nil {
		return
	}
	carveCorridor(gmap, a.CenterCell(), b.CenterCell(), cfg.CorridorStyle, cfg.Rand)
}

// buildRooms runs the BSP split and carves rooms and corridors.
func buildRooms(cfg *Config) *gamemap.GameMap {
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	root := &leaf{W: cfg.MapWidth, H: cfg.MapHeight}

	leaves := []*leaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*leaf
		for _, lf := range leaves {
			if lf.left != nil {
				next = append(next, lf.left, lf.right)
				continue
			}
			big := lf.W > cfg.MaxLeafSize || lf.H > cfg.MaxLeafSize
			if (big || cfg.Rand.Float64() > 0.25) && lf.split(cfg) {
				next = append(next, lf.left, lf.right)
				splitAny = true
				continue
			}
			next = append(next, lf)
		}
		leaves = next
	}

	root.carveRooms(gmap, cfg)
	root.connect(gmap, cfg)
	return gmap
}
