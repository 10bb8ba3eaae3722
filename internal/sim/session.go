// Package sim runs one level: it owns the guards and advances them all once
// per tick in a fixed order.
package sim

import (
	"go.uber.org/zap"

	"runeguard/internal/config"
	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
	"runeguard/internal/guard"
	"runeguard/internal/pathfind"
	"runeguard/internal/perception"
)

// GuardView is the per-guard slice of a Frame.
type GuardView struct {
	ID             int
	Pos            geom.Vec2
	Cell           gamemap.Cell
	Heading        float64
	State          guard.StateKind
	Elevated       bool
	VisionDistance float64
	Perceived      bool
}

// Frame is the result of one Step.
type Frame struct {
	Tick     int
	Time     float64
	Target   gamemap.Cell
	Guards   []GuardView
	Caught   bool
	CaughtBy int // guard ID, -1 when not caught
}

// Session is a level in progress. It is not safe for concurrent use.
type Session struct {
	layout Layout
	cfg    *config.Config
	log    *zap.Logger
	guards []*guard.Guard
	tick   int
	now    float64
}

// NewSession validates the layout and spawns its guards in order; guard IDs
// follow spawn order.
func NewSession(layout Layout, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{layout: layout, cfg: cfg, log: logger}
	params := GuardParams(cfg, layout.Grid)
	for i, sp := range layout.Spawns {
		s.guards = append(s.guards, guard.New(spawnFor(i, sp, cfg), params))
	}
	logger.Debug("session ready",
		zap.Int("width", layout.Grid.Width),
		zap.Int("height", layout.Grid.Height),
		zap.Int("guards", len(s.guards)),
		zap.Int("runes", len(layout.Runes)))
	return s, nil
}

// GuardParams converts configuration into the per-level guard tunables.
func GuardParams(cfg *config.Config, gmap *gamemap.GameMap) guard.Params {
	return guard.Params{
		TileSize:         cfg.Sim.TileSize,
		ArrivalThreshold: cfg.Guard.ArrivalThreshold,
		RecencyWindow:    cfg.Guard.RecencyWindow,
		SearchDuration:   cfg.Guard.SearchDuration,
		Path: pathfind.Options{
			MaxExpansions:  cfg.Path.MaxExpansions,
			OrthogonalCost: cfg.Path.OrthogonalCost,
			DiagonalCost:   cfg.Path.DiagonalCost,
		},
		HistoryCapacity: cfg.Boss.HistoryCapacity,
		Boss: guard.BossParams{
			GrowRate:         cfg.Boss.GrowRate,
			ShrinkRate:       cfg.Boss.ShrinkRate,
			VisionMin:        cfg.Boss.VisionMin,
			VisionCap:        cfg.Boss.VisionCap(gmap.Width, gmap.Height),
			ConfidenceWindow: cfg.Boss.ConfidenceWindow,
		},
	}
}

func spawnFor(id int, sp Spawn, cfg *config.Config) guard.Spawn {
	scale := sp.SpeedScale
	if scale == 0 {
		scale = 1
	}
	return guard.Spawn{
		ID:             id,
		Cell:           sp.Cell,
		Patrol:         sp.Patrol,
		Elevated:       sp.Elevated,
		Speed:          (cfg.Guard.Speed + sp.SpeedBonus) * scale * cfg.Sim.TileSize,
		VisionDistance: cfg.Guard.VisionDistance + sp.VisionBonus,
		FOVHalfAngle:   cfg.Guard.FOVHalfAngle + sp.FOVBonus,
		Heading:        sp.Heading,
	}
}

// Grid returns the level grid.
func (s *Session) Grid() *gamemap.GameMap { return s.layout.Grid }

// Layout returns the layout the session was built from.
func (s *Session) Layout() Layout { return s.layout }

// Guards returns the guards in update order.
func (s *Session) Guards() []*guard.Guard { return s.guards }

// Now is the simulated time in seconds.
func (s *Session) Now() float64 { return s.now }

// TargetCell maps a world position to a cell inside the grid.
func (s *Session) TargetCell(pos geom.Vec2) gamemap.Cell {
	return s.layout.Grid.Clamp(geom.CellOf(pos, s.cfg.Sim.TileSize))
}

// VisionCone lists the cells guard id can currently see.
func (s *Session) VisionCone(id int) []gamemap.Cell {
	g := s.guards[id]
	return perception.VisibleCells(g.Observer(s.layout.Grid), s.layout.Grid, s.cfg.Sim.TileSize)
}

// Step advances the clock by dt and updates every guard once against the
// target's current position.
func (s *Session) Step(dt float64, target geom.Vec2) Frame {
	s.tick++
	s.now += dt
	gmap := s.layout.Grid
	targetCell := s.TargetCell(target)
	catchRange := s.cfg.Sim.CatchRange * s.cfg.Sim.TileSize

	f := Frame{
		Tick:     s.tick,
		Time:     s.now,
		Target:   targetCell,
		Guards:   make([]GuardView, 0, len(s.guards)),
		CaughtBy: -1,
	}
	for _, g := range s.guards {
		r := g.Update(guard.Tick{
			Now:        s.now,
			DT:         dt,
			Grid:       gmap,
			TargetCell: targetCell,
			TargetPos:  target,
		})
		if r.Changed() {
			s.log.Debug("guard state changed",
				zap.Int("guard", g.ID),
				zap.Stringer("from", r.Prev),
				zap.Stringer("to", r.Kind),
				zap.Int("tick", s.tick),
				zap.Float64("time", s.now))
		}
		obs := g.Observer(gmap)
		if !f.Caught && perception.Caught(obs, r.Perceived, target, catchRange) {
			f.Caught, f.CaughtBy = true, g.ID
			s.log.Info("target caught", zap.Int("guard", g.ID), zap.Int("tick", s.tick))
		}
		f.Guards = append(f.Guards, GuardView{
			ID:             g.ID,
			Pos:            g.Pos,
			Cell:           obs.Cell,
			Heading:        g.Heading,
			State:          r.Kind,
			Elevated:       g.Elevated,
			VisionDistance: g.VisionDistance,
			Perceived:      r.Perceived,
		})
	}
	return f
}
