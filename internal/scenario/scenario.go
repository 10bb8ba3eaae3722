// Package scenario runs scripted, headless guard simulations from YAML files.
// A scenario fixes the map, the guards and a keyframed target path, so the
// same file always produces the same frames.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"runeguard/internal/config"
	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
	"runeguard/internal/sim"
)

// ErrInvalidScenario is wrapped by every validation failure.
var ErrInvalidScenario = errors.New("invalid scenario")

// Point is a cell written as [x, y].
type Point [2]int

func (p Point) Cell() gamemap.Cell { return gamemap.Cell{X: p[0], Y: p[1]} }

type Guard struct {
	Cell        Point   `yaml:"cell"`
	Patrol      []Point `yaml:"patrol"`
	Elevated    bool    `yaml:"elevated"`
	Heading     float64 `yaml:"heading"`
	VisionBonus float64 `yaml:"vision_bonus"`
	FOVBonus    float64 `yaml:"fov_bonus"`
}

// Keyframe pins the target to a cell centre at a tick. Between keyframes the
// target moves in a straight line.
type Keyframe struct {
	Tick int   `yaml:"tick"`
	Cell Point `yaml:"cell"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Preset      string     `yaml:"preset"`
	TileSize    float64    `yaml:"tile_size"` // 0 keeps the preset value
	DT          float64    `yaml:"dt"`
	Ticks       int        `yaml:"ticks"`
	StopOnCatch bool       `yaml:"stop_on_catch"`
	Map         []string   `yaml:"map"`
	Guards      []Guard    `yaml:"guards"`
	Target      []Keyframe `yaml:"target"`
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the fields that do not need the grid.
func (sc *Scenario) Validate() error {
	switch {
	case len(sc.Map) == 0:
		return fmt.Errorf("%w: empty map", ErrInvalidScenario)
	case sc.DT <= 0:
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidScenario, sc.DT)
	case sc.Ticks <= 0:
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, sc.Ticks)
	case len(sc.Target) == 0:
		return fmt.Errorf("%w: no target keyframes", ErrInvalidScenario)
	case sc.TileSize < 0:
		return fmt.Errorf("%w: negative tile_size", ErrInvalidScenario)
	}
	if !sort.SliceIsSorted(sc.Target, func(i, j int) bool { return sc.Target[i].Tick < sc.Target[j].Tick }) {
		return fmt.Errorf("%w: target keyframes out of order", ErrInvalidScenario)
	}
	return nil
}

// Layout builds the sim layout. The target starts on its first keyframe.
func (sc *Scenario) Layout() (sim.Layout, error) {
	gmap, err := gamemap.Parse(sc.Map)
	if err != nil {
		return sim.Layout{}, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	for i, k := range sc.Target {
		if err := gmap.CheckOpen(k.Cell.Cell()); err != nil {
			return sim.Layout{}, fmt.Errorf("%w: keyframe %d: %w", ErrInvalidScenario, i, err)
		}
	}
	layout := sim.Layout{Grid: gmap, Start: sc.Target[0].Cell.Cell()}
	for _, g := range sc.Guards {
		sp := sim.Spawn{
			Cell:        g.Cell.Cell(),
			Elevated:    g.Elevated,
			Heading:     g.Heading,
			VisionBonus: g.VisionBonus,
			FOVBonus:    g.FOVBonus,
		}
		for _, p := range g.Patrol {
			sp.Patrol = append(sp.Patrol, p.Cell())
		}
		layout.Spawns = append(layout.Spawns, sp)
	}
	return layout, nil
}

// TargetAt is the target's world position at tick.
func (sc *Scenario) TargetAt(tick int, tileSize float64) geom.Vec2 {
	keys := sc.Target
	if tick <= keys[0].Tick {
		return geom.CellCenter(keys[0].Cell.Cell(), tileSize)
	}
	for i := 1; i < len(keys); i++ {
		if tick > keys[i].Tick {
			continue
		}
		a := geom.CellCenter(keys[i-1].Cell.Cell(), tileSize)
		b := geom.CellCenter(keys[i].Cell.Cell(), tileSize)
		span := keys[i].Tick - keys[i-1].Tick
		if span == 0 {
			return b
		}
		f := float64(tick-keys[i-1].Tick) / float64(span)
		return a.Add(b.Sub(a).Scale(f))
	}
	return geom.CellCenter(keys[len(keys)-1].Cell.Cell(), tileSize)
}

// Config applies the scenario's preset and tile size on top of base.
func (sc *Scenario) Config(base *config.Config) (*config.Config, error) {
	cfg := *base
	if sc.Preset != "" && sc.Preset != base.Preset {
		p, err := config.Preset(sc.Preset)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		cfg = p
	}
	if sc.TileSize > 0 {
		cfg.Sim.TileSize = sc.TileSize
	}
	return &cfg, nil
}

// Run plays the scenario and returns one frame per tick.
func Run(sc *Scenario, base *config.Config, logger *zap.Logger) ([]sim.Frame, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := sc.Config(base)
	if err != nil {
		return nil, err
	}
	layout, err := sc.Layout()
	if err != nil {
		return nil, err
	}
	session, err := sim.NewSession(layout, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	logger.Info("scenario started",
		zap.String("name", sc.Name),
		zap.Int("ticks", sc.Ticks),
		zap.Int("guards", len(layout.Spawns)))

	frames := make([]sim.Frame, 0, sc.Ticks)
	for tick := 1; tick <= sc.Ticks; tick++ {
		f := session.Step(sc.DT, sc.TargetAt(tick, cfg.Sim.TileSize))
		frames = append(frames, f)
		if f.Caught && sc.StopOnCatch {
			break
		}
	}
	logger.Info("scenario finished", zap.String("name", sc.Name), zap.Int("frames", len(frames)))
	return frames, nil
}
