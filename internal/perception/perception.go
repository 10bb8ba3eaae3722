// Package perception decides whether a guard can currently see the target.
package perception

import (
	"math"

	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
)

// Observer is the read-only view of a guard that perception needs.
type Observer struct {
	Cell           gamemap.Cell
	Pos            geom.Vec2
	Heading        float64 // degrees
	VisionDistance float64 // tiles
	FOVHalfAngle   float64 // degrees
}

// CanPerceive applies the distance, field-of-view and line-of-sight tests in
// that order. Values exactly on a limit are accepted.
func CanPerceive(o Observer, targetCell gamemap.Cell, targetPos geom.Vec2, gmap *gamemap.GameMap) bool {
	if geom.CellDistance(o.Cell, targetCell) > o.VisionDistance {
		return false
	}
	if !inCone(o, targetPos) {
		return false
	}
	return geom.LineOfSight(gmap, o.Cell, targetCell)
}

func inCone(o Observer, target geom.Vec2) bool {
	if o.Pos == target {
		return true
	}
	bearing := geom.Bearing(o.Pos, target)
	return geom.AngularDifference(o.Heading, bearing) <= o.FOVHalfAngle
}

// Caught reports whether a perceiving guard is close enough to end the level.
func Caught(o Observer, perceives bool, targetPos geom.Vec2, catchRange float64) bool {
	return perceives && geom.Distance(o.Pos, targetPos) < catchRange
}

// VisibleCells returns every cell whose centre the observer would perceive,
// for drawing the vision cone.
func VisibleCells(o Observer, gmap *gamemap.GameMap, tileSize float64) []gamemap.Cell {
	r := int(math.Ceil(o.VisionDistance))
	var cells []gamemap.Cell
	for y := o.Cell.Y - r; y <= o.Cell.Y+r; y++ {
		for x := o.Cell.X - r; x <= o.Cell.X+r; x++ {
			c := gamemap.Cell{X: x, Y: y}
			if !gmap.InBounds(x, y) {
				continue
			}
			if CanPerceive(o, c, geom.CellCenter(c, tileSize), gmap) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}
