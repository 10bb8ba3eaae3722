package sim

import (
	"fmt"

	"runeguard/internal/gamemap"
)

// Spawn places one guard when a level is built. Bonuses stack on top of the
// configured base guard values.
type Spawn struct {
	Cell        gamemap.Cell
	Patrol      []gamemap.Cell
	Elevated    bool
	Heading     float64 // degrees
	VisionBonus float64 // tiles
	FOVBonus    float64 // degrees added to the half-angle
	SpeedBonus  float64 // tiles per second
	SpeedScale  float64 // multiplier, 0 means 1
}

// Layout is everything the level builder hands to a session.
type Layout struct {
	Grid   *gamemap.GameMap
	Start  gamemap.Cell
	Runes  []gamemap.Cell
	Spawns []Spawn
}

// Validate checks that every cell in the layout is open.
func (l Layout) Validate() error {
	if l.Grid == nil {
		return fmt.Errorf("layout has no grid")
	}
	if err := l.Grid.CheckOpen(l.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	for i, r := range l.Runes {
		if err := l.Grid.CheckOpen(r); err != nil {
			return fmt.Errorf("rune %d: %w", i, err)
		}
	}
	for i, sp := range l.Spawns {
		if err := l.Grid.CheckOpen(sp.Cell); err != nil {
			return fmt.Errorf("guard %d spawn: %w", i, err)
		}
		for j, wp := range sp.Patrol {
			if err := l.Grid.CheckOpen(wp); err != nil {
				return fmt.Errorf("guard %d waypoint %d: %w", i, j, err)
			}
		}
	}
	return nil
}
