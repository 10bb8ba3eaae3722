package generate

import (
	"math/rand"

	"runeguard/internal/gamemap"
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// carveCorridor digs a tunnel between the centres of two rooms.
func carveCorridor(gmap *gamemap.GameMap, a, b gamemap.Cell, style CorridorStyle, rng *rand.Rand) {
	switch style {
	case CorridorZShaped:
		mid := (a.Y + b.Y) / 2
		carveCol(gmap, a.X, a.Y, mid)
		carveRow(gmap, mid, a.X, b.X)
		carveCol(gmap, b.X, mid, b.Y)
	case CorridorStraight:
		carveRow(gmap, a.Y, a.X, b.X)
		carveCol(gmap, b.X, a.Y, b.Y)
	default:
		// Which leg goes first is a coin toss.
		if rng.Intn(2) == 0 {
			carveRow(gmap, a.Y, a.X, b.X)
			carveCol(gmap, b.X, a.Y, b.Y)
		} else {
			carveCol(gmap, a.X, a.Y, b.Y)
			carveRow(gmap, b.Y, a.X, b.X)
		}
	}
}

func carveRow(gmap *gamemap.GameMap, y, x1, x2 int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveCol(gmap *gamemap.GameMap, x, y1, y2 int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}
