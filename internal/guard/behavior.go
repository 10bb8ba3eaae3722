package guard

import (
	"math"

	"runeguard/internal/geom"
	"runeguard/internal/predict"
)

func (g *Guard) patrol(t Tick) {
	if len(g.Patrol) == 0 {
		return
	}
	wp := g.Patrol[g.PatrolIndex]
	if g.Pos.DistanceTo(geom.CellCenter(wp, g.params.TileSize)) <= g.params.ArrivalThreshold {
		g.PatrolIndex = (g.PatrolIndex + 1) % len(g.Patrol)
		wp = g.Patrol[g.PatrolIndex]
		g.pathTo(t.Grid, wp)
	}
	if g.Path.Empty() {
		g.pathTo(t.Grid, wp)
	}
	g.FollowPath(t.DT)
}

func (g *Guard) chase(t Tick) {
	g.pathTo(t.Grid, t.TargetCell)
	g.FollowPath(t.DT)
}

func (g *Guard) search(t Tick, s Searching) {
	g.FollowPath(t.DT)
	s.Countdown -= t.DT
	if s.Countdown <= 0 {
		g.setState(Patrolling{})
		return
	}
	g.State = s
}

// hunt heads for the cell the target should reach next, falling back to its
// current cell when there is no prediction or no route to it.
func (g *Guard) hunt(t Tick) {
	g.History.Push(t.TargetCell)
	if pred, ok := predict.Predict(g.History, t.Grid.Width, t.Grid.Height); ok && g.pathTo(t.Grid, pred) {
		g.FollowPath(t.DT)
		return
	}
	g.pathTo(t.Grid, t.TargetCell)
	g.FollowPath(t.DT)
}

// adaptVision narrows an elevated guard's vision while it keeps the target
// in sight and widens it once the target has been gone too long.
func (g *Guard) adaptVision(t Tick, perceives bool) {
	b := g.params.Boss
	switch {
	case perceives:
		g.VisionDistance = math.Max(g.VisionDistance-b.ShrinkRate, b.VisionMin)
	case !g.seen || t.Now-g.lastSeen > b.ConfidenceWindow:
		if b.VisionCap > 0 {
			g.VisionDistance = math.Min(g.VisionDistance+b.GrowRate, b.VisionCap)
		}
	}
}
