// Package geom holds the continuous-space helpers shared by guards and the
// renderer: vectors, bearings, world/cell conversion and grid line of sight.
package geom

import (
	"math"

	"runeguard/internal/gamemap"
)

// Vec2 is a position or displacement in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) DistanceTo(o Vec2) float64 { return o.Sub(v).Len() }

// Distance is the Euclidean distance between two world points.
func Distance(a, b Vec2) float64 {
	return a.DistanceTo(b)
}

// CellDistance is the Euclidean distance between two cells, in cells.
func CellDistance(a, b gamemap.Cell) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// Bearing returns the direction from one point to another in degrees,
// normalized to [0, 360).
func Bearing(from, to Vec2) float64 {
	deg := math.Atan2(to.Y-from.Y, to.X-from.X) * 180 / math.Pi
	return NormalizeDegrees(deg)
}

// NormalizeDegrees wraps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// AngularDifference returns the smallest separation between two headings,
// in [0, 180].
func AngularDifference(a, b float64) float64 {
	d := math.Mod(a-b+180, 360)
	if d < 0 {
		d += 360
	}
	return math.Abs(d - 180)
}

// CellOf maps a world position onto the cell containing it.
func CellOf(pos Vec2, tileSize float64) gamemap.Cell {
	return gamemap.Cell{
		X: int(math.Floor(pos.X / tileSize)),
		Y: int(math.Floor(pos.Y / tileSize)),
	}
}

// CellCenter is the world position of the middle of c.
func CellCenter(c gamemap.Cell, tileSize float64) Vec2 {
	return Vec2{
		X: (float64(c.X) + 0.5) * tileSize,
		Y: (float64(c.Y) + 0.5) * tileSize,
	}
}
