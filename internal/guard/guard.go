// Package guard implements the per-guard behaviour controller: perception
// driven state transitions, patrol routes, pursuit and predictive hunting.
package guard

import (
	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
	"runeguard/internal/pathfind"
	"runeguard/internal/perception"
	"runeguard/internal/predict"
)

// Params are the tunables shared by every guard in a level.
type Params struct {
	TileSize         float64 // world units per cell
	ArrivalThreshold float64 // world units
	RecencyWindow    float64 // seconds a lost target is still searched for
	SearchDuration   float64 // seconds
	Path             pathfind.Options
	HistoryCapacity  int
	Boss             BossParams
}

// BossParams drive the vision adaptation of elevated guards. Rates are in
// tiles per tick, clamps in tiles.
type BossParams struct {
	GrowRate         float64
	ShrinkRate       float64
	VisionMin        float64
	VisionCap        float64
	ConfidenceWindow float64 // seconds unseen before vision starts growing
}

// Spawn describes one guard at level build.
type Spawn struct {
	ID             int
	Cell           gamemap.Cell
	Patrol         []gamemap.Cell
	Elevated       bool
	Speed          float64 // world units per second
	VisionDistance float64 // tiles
	FOVHalfAngle   float64 // degrees
	Heading        float64 // degrees
}

// Guard is one patrolling agent. Pos is authoritative; the cell is always
// derived from it.
type Guard struct {
	ID             int
	Pos            geom.Vec2
	Heading        float64
	Speed          float64
	VisionDistance float64
	FOVHalfAngle   float64
	Elevated       bool

	State       State
	Path        pathfind.Path
	Patrol      []gamemap.Cell
	PatrolIndex int
	History     *predict.History

	lastSeen float64
	seen     bool
	params   Params
}

// Tick is the world snapshot a guard reacts to.
type Tick struct {
	Now        float64 // simulated seconds
	DT         float64
	Grid       *gamemap.GameMap
	TargetCell gamemap.Cell
	TargetPos  geom.Vec2
}

// Report summarises one Update.
type Report struct {
	Prev      StateKind
	Kind      StateKind
	Perceived bool
}

// Changed reports whether the guard switched state this tick.
func (r Report) Changed() bool { return r.Prev != r.Kind }

// New places a guard at the centre of its spawn cell in the Patrol state.
func New(s Spawn, p Params) *Guard {
	patrol := make([]gamemap.Cell, len(s.Patrol))
	copy(patrol, s.Patrol)
	return &Guard{
		ID:             s.ID,
		Pos:            geom.CellCenter(s.Cell, p.TileSize),
		Heading:        geom.NormalizeDegrees(s.Heading),
		Speed:          s.Speed,
		VisionDistance: s.VisionDistance,
		FOVHalfAngle:   s.FOVHalfAngle,
		Elevated:       s.Elevated,
		State:          Patrolling{},
		Patrol:         patrol,
		History:        predict.NewHistory(p.HistoryCapacity),
		params:         p,
	}
}

// Kind returns the reported state, distinguishing Idle from Patrol.
func (g *Guard) Kind() StateKind {
	if _, ok := g.State.(Patrolling); ok && len(g.Patrol) == 0 {
		return Idle
	}
	return g.State.Kind()
}

// LastSeen returns when the target was last perceived.
func (g *Guard) LastSeen() (float64, bool) { return g.lastSeen, g.seen }

// Face turns the guard to an explicit heading.
func (g *Guard) Face(deg float64) { g.Heading = geom.NormalizeDegrees(deg) }

// Observer is the guard as seen by the perception module.
func (g *Guard) Observer(gmap *gamemap.GameMap) perception.Observer {
	return perception.Observer{
		Cell:           g.Cell(gmap),
		Pos:            g.Pos,
		Heading:        g.Heading,
		VisionDistance: g.VisionDistance,
		FOVHalfAngle:   g.FOVHalfAngle,
	}
}

// Update runs one tick: perceive, transition, then act for the new state.
func (g *Guard) Update(t Tick) Report {
	prev := g.Kind()
	perceives := perception.CanPerceive(g.Observer(t.Grid), t.TargetCell, t.TargetPos, t.Grid)
	g.transition(t.Now, perceives)

	switch s := g.State.(type) {
	case Patrolling:
		g.patrol(t)
	case Chasing:
		g.chase(t)
	case Searching:
		g.search(t, s)
	case Hunting:
		g.hunt(t)
	}
	if g.Elevated {
		g.adaptVision(t, perceives)
	}
	return Report{Prev: prev, Kind: g.Kind(), Perceived: perceives}
}

// transition applies the per-tick rule that picks the state before any
// behaviour runs.
func (g *Guard) transition(now float64, perceives bool) {
	switch {
	case perceives:
		g.lastSeen, g.seen = now, true
		if g.Elevated {
			g.setState(Hunting{})
		} else {
			g.setState(Chasing{})
		}
	case g.seen && now-g.lastSeen < g.params.RecencyWindow:
		g.setState(Searching{Countdown: g.params.SearchDuration})
	default:
		g.setState(Patrolling{})
	}
}

func (g *Guard) setState(s State) {
	if _, was := g.State.(Patrolling); !was {
		if _, now := s.(Patrolling); now {
			// Leftover pursuit paths do not carry into the patrol.
			g.Path.Clear()
		}
	}
	g.State = s
}
