// Package level turns a level number into a playable layout: it runs the
// generator with the campaign's seed schedule, scales guards with depth and
// places the boss on the final level.
package level

import (
	"fmt"
	"math/rand"

	"runeguard/assets"
	"runeguard/internal/config"
	"runeguard/internal/gamemap"
	"runeguard/internal/generate"
	"runeguard/internal/geom"
	"runeguard/internal/sim"
)

// SeedStride separates the seeds of consecutive levels in one run.
const SeedStride = 13

// Seed returns the generator seed for level n of a run started with base.
func Seed(base int64, n int) int64 {
	return base + int64(n)*SeedStride
}

// IsFinal reports whether n is the last level of the campaign.
func IsFinal(n int, cfg *config.Config) bool {
	return n >= cfg.Level.Count
}

// Build generates level n (1-based) from the run seed.
func Build(n int, seed int64, cfg *config.Config) (sim.Layout, error) {
	if n < 1 || n > cfg.Level.Count {
		return sim.Layout{}, fmt.Errorf("level %d out of range 1..%d", n, cfg.Level.Count)
	}
	gcfg := generate.DefaultConfig(cfg.Level.Width, cfg.Level.Height, n)
	gcfg.MinRunes = cfg.Level.MinRunes
	gcfg.PatrolStops = cfg.Level.PatrolStops
	gcfg.Rand = rand.New(rand.NewSource(Seed(seed, n)))
	res := generate.Generate(&gcfg)

	layout := sim.Layout{Grid: res.Map, Start: res.Start, Runes: res.Runes}
	for _, g := range res.Guards {
		layout.Spawns = append(layout.Spawns, sim.Spawn{
			Cell:        g.Cell,
			Patrol:      g.Patrol,
			Heading:     facing(g),
			VisionBonus: cfg.Level.VisionPerLevel * float64(n),
			SpeedBonus:  cfg.Level.SpeedPerLevel * float64(n),
			SpeedScale:  1 + cfg.Level.ScalePerLevel*float64(n),
		})
	}
	if IsFinal(n, cfg) {
		layout.Spawns = append(layout.Spawns, bossSpawn(n, res, cfg))
	}
	if err := layout.Validate(); err != nil {
		return sim.Layout{}, fmt.Errorf("level %d: %w", n, err)
	}
	return layout, nil
}

// bossSpawn puts the boss on the open cell farthest from the start.
func bossSpawn(n int, res generate.Result, cfg *config.Config) sim.Spawn {
	cell := generate.Farthest(res.Map, res.Start)
	return sim.Spawn{
		Cell:        cell,
		Patrol:      []gamemap.Cell{cell},
		Elevated:    true,
		Heading:     geom.Bearing(geom.CellCenter(cell, 1), geom.CellCenter(res.Start, 1)),
		VisionBonus: cfg.Boss.VisionBonus,
		FOVBonus:    cfg.Boss.FOVBonus,
		SpeedScale:  cfg.Boss.SpeedScale + cfg.Boss.SpeedScalePerLevel*float64(n),
	}
}

// facing points a fresh guard at its first waypoint.
func facing(g generate.GuardSpawn) float64 {
	if len(g.Patrol) < 2 {
		return 0
	}
	return geom.Bearing(geom.CellCenter(g.Cell, 1), geom.CellCenter(g.Patrol[1], 1))
}

// Lore returns the lines shown after level n is cleared.
func Lore(n int) []string {
	return assets.Lore(n)
}
