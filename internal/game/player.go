package game

import (
	"math"

	"runeguard/internal/config"
	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
)

// Player is the pursuit target driven by the keyboard. Terminals report key
// presses but not releases, so a press keeps the player moving for HoldTime
// seconds and key repeat extends it.
type Player struct {
	Pos       geom.Vec2
	Stamina   float64
	Sprinting bool

	dx, dy   int
	hold     float64
	cfg      config.PlayerConfig
	tileSize float64
}

// NewPlayer places a rested player at the centre of cell.
func NewPlayer(cell gamemap.Cell, cfg config.PlayerConfig, tileSize float64) *Player {
	return &Player{
		Pos:      geom.CellCenter(cell, tileSize),
		Stamina:  cfg.MaxStamina,
		cfg:      cfg,
		tileSize: tileSize,
	}
}

// Press starts moving in direction (dx, dy).
func (p *Player) Press(dx, dy int) {
	p.dx, p.dy = dx, dy
	p.hold = p.cfg.HoldTime
}

// Stop cancels any movement still held.
func (p *Player) Stop() { p.hold = 0 }

// ToggleSprint switches sprinting on or off. It will not turn on with an
// empty stamina bar.
func (p *Player) ToggleSprint() {
	p.Sprinting = !p.Sprinting && p.Stamina > 0
}

// Moving reports whether a held direction is still active.
func (p *Player) Moving() bool {
	return p.hold > 0 && (p.dx != 0 || p.dy != 0)
}

// Cell is the grid cell under the player.
func (p *Player) Cell(gmap *gamemap.GameMap) gamemap.Cell {
	return gmap.Clamp(geom.CellOf(p.Pos, p.tileSize))
}

// Update advances the player by dt seconds. Each axis moves separately so
// the player slides along walls instead of sticking to them.
func (p *Player) Update(dt float64, gmap *gamemap.GameMap) {
	moving := p.Moving()
	p.hold = math.Max(0, p.hold-dt)

	speed := p.cfg.Speed * p.tileSize
	if p.Sprinting && moving {
		speed *= p.cfg.SprintMult
		p.Stamina -= p.cfg.StaminaDrain * dt
	} else {
		p.Stamina += p.cfg.StaminaRecover * dt
	}
	p.Stamina = math.Min(math.Max(p.Stamina, 0), p.cfg.MaxStamina)
	if p.Stamina == 0 {
		p.Sprinting = false
	}
	if !moving {
		return
	}

	step := speed * dt / math.Hypot(float64(p.dx), float64(p.dy))
	p.slide(geom.Vec2{X: float64(p.dx) * step}, gmap)
	p.slide(geom.Vec2{Y: float64(p.dy) * step}, gmap)
}

// slide applies delta if the destination stays inside the grid and off walls.
func (p *Player) slide(delta geom.Vec2, gmap *gamemap.GameMap) {
	half := p.tileSize / 2
	next := p.Pos.Add(delta)
	next.X = math.Min(math.Max(next.X, half), float64(gmap.Width)*p.tileSize-half)
	next.Y = math.Min(math.Max(next.Y, half), float64(gmap.Height)*p.tileSize-half)
	if gmap.Walkable(geom.CellOf(next, p.tileSize)) {
		p.Pos = next
	}
}
