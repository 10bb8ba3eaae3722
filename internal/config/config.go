// Package config loads game and simulation settings with viper. Every key has
// a default taken from the selected preset, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Preset string       `mapstructure:"preset"`
	Sim    SimConfig    `mapstructure:"sim"`
	Guard  GuardConfig  `mapstructure:"guard"`
	Path   PathConfig   `mapstructure:"path"`
	Boss   BossConfig   `mapstructure:"boss"`
	Level  LevelConfig  `mapstructure:"level"`
	Player PlayerConfig `mapstructure:"player"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type SimConfig struct {
	TileSize   float64 `mapstructure:"tile_size"`   // world units per cell
	TickRate   int     `mapstructure:"tick_rate"`   // ticks per second for real-time front-ends
	CatchRange float64 `mapstructure:"catch_range"` // tiles
}

type GuardConfig struct {
	Speed            float64 `mapstructure:"speed"`             // tiles per second
	VisionDistance   float64 `mapstructure:"vision_distance"`   // tiles
	FOVHalfAngle     float64 `mapstructure:"fov_half_angle"`    // degrees
	ArrivalThreshold float64 `mapstructure:"arrival_threshold"` // world units
	RecencyWindow    float64 `mapstructure:"recency_window"`    // seconds
	SearchDuration   float64 `mapstructure:"search_duration"`   // seconds
}

type PathConfig struct {
	MaxExpansions  int     `mapstructure:"max_expansions"`
	OrthogonalCost float64 `mapstructure:"orthogonal_cost"`
	DiagonalCost   float64 `mapstructure:"diagonal_cost"`
}

type BossConfig struct {
	HistoryCapacity    int     `mapstructure:"history_capacity"`
	GrowRate           float64 `mapstructure:"grow_rate"`   // tiles per tick
	ShrinkRate         float64 `mapstructure:"shrink_rate"` // tiles per tick
	VisionMin          float64 `mapstructure:"vision_min"`
	VisionCapFraction  float64 `mapstructure:"vision_cap_fraction"`
	VisionCapAxis      string  `mapstructure:"vision_cap_axis"` // height | max
	ConfidenceWindow   float64 `mapstructure:"confidence_window"`
	VisionBonus        float64 `mapstructure:"vision_bonus"`
	FOVBonus           float64 `mapstructure:"fov_bonus"` // added to the half-angle
	SpeedScale         float64 `mapstructure:"speed_scale"`
	SpeedScalePerLevel float64 `mapstructure:"speed_scale_per_level"`
}

type LevelConfig struct {
	Count          int     `mapstructure:"count"`
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	Seed           int64   `mapstructure:"seed"` // 0 picks one from the clock
	MinRunes       int     `mapstructure:"min_runes"`
	RuneScore      int     `mapstructure:"rune_score"`
	VisionPerLevel float64 `mapstructure:"vision_per_level"` // tiles
	SpeedPerLevel  float64 `mapstructure:"speed_per_level"`  // tiles per second
	ScalePerLevel  float64 `mapstructure:"scale_per_level"`  // speed multiplier step
	PatrolStops    int     `mapstructure:"patrol_stops"`
}

type PlayerConfig struct {
	Speed          float64 `mapstructure:"speed"` // tiles per second
	SprintMult     float64 `mapstructure:"sprint_mult"`
	MaxStamina     float64 `mapstructure:"max_stamina"`
	StaminaDrain   float64 `mapstructure:"stamina_drain"`   // per second while sprinting
	StaminaRecover float64 `mapstructure:"stamina_recover"` // per second otherwise
	HoldTime       float64 `mapstructure:"hold_time"`       // seconds a key press keeps moving
}

type ServerConfig struct {
	Port        int     `mapstructure:"port"`
	HostKey     string  `mapstructure:"host_key"`
	MaxSessions int     `mapstructure:"max_sessions"`
	ConnRate    float64 `mapstructure:"conn_rate"` // new connections per second
	ConnBurst   int     `mapstructure:"conn_burst"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
	File        string `mapstructure:"file"`
}

// Load reads config from the given YAML file path. An empty path or a
// missing file yields the defaults; RUNEGUARD_* environment variables
// override both (RUNEGUARD_GUARD_SPEED sets guard.speed).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("RUNEGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !isNotFound(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	v.SetDefault("preset", Preset2D)
	preset, err := Preset(v.GetString("preset"))
	if err != nil {
		return nil, err
	}
	setDefaults(v, preset)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	if errors.As(err, &nf) {
		return true
	}
	return errors.Is(err, os.ErrNotExist)
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Sim.TileSize <= 0:
		return fmt.Errorf("sim.tile_size must be positive, got %v", c.Sim.TileSize)
	case c.Sim.TickRate <= 0:
		return fmt.Errorf("sim.tick_rate must be positive, got %d", c.Sim.TickRate)
	case c.Path.MaxExpansions <= 0:
		return fmt.Errorf("path.max_expansions must be positive, got %d", c.Path.MaxExpansions)
	case c.Path.OrthogonalCost <= 0 || c.Path.DiagonalCost <= 0:
		return fmt.Errorf("path costs must be positive")
	case c.Boss.HistoryCapacity < 3:
		return fmt.Errorf("boss.history_capacity must hold at least 3 samples, got %d", c.Boss.HistoryCapacity)
	case c.Boss.VisionCapAxis != "height" && c.Boss.VisionCapAxis != "max":
		return fmt.Errorf("boss.vision_cap_axis must be height or max, got %q", c.Boss.VisionCapAxis)
	case c.Level.Count <= 0:
		return fmt.Errorf("level.count must be positive, got %d", c.Level.Count)
	}
	return nil
}

// VisionCap is the largest vision distance an elevated guard may grow to on
// a width x height grid.
func (b BossConfig) VisionCap(width, height int) float64 {
	side := height
	if b.VisionCapAxis == "max" {
		side = max(width, height)
	}
	return float64(side) * b.VisionCapFraction
}

// TickSeconds is the fixed simulation step for real-time front-ends.
func (s SimConfig) TickSeconds() float64 {
	return 1 / float64(s.TickRate)
}
