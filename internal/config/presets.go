package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Preset names.
const (
	Preset2D = "2d"
	Preset3D = "3d"
)

// Preset returns the built-in settings for a front-end. The 2d preset uses
// 32-unit tiles; the 3d preset uses unit tiles with faster guards, a shorter
// search and a higher vision floor for the boss.
func Preset(name string) (Config, error) {
	switch name {
	case "", Preset2D:
		return preset2D(), nil
	case Preset3D:
		return preset3D(), nil
	}
	return Config{}, fmt.Errorf("unknown preset %q", name)
}

// Default returns the 2d preset.
func Default() *Config {
	c := preset2D()
	return &c
}

func preset2D() Config {
	return Config{
		Preset: Preset2D,
		Sim: SimConfig{
			TileSize:   32,
			TickRate:   60,
			CatchRange: 0.8,
		},
		Guard: GuardConfig{
			Speed:            1.4,
			VisionDistance:   6,
			FOVHalfAngle:     35,
			ArrivalThreshold: 3,
			RecencyWindow:    4,
			SearchDuration:   3,
		},
		Path: PathConfig{
			MaxExpansions:  10000,
			OrthogonalCost: 1.0,
			DiagonalCost:   1.4,
		},
		Boss: BossConfig{
			HistoryCapacity:    8,
			GrowRate:           0.01,
			ShrinkRate:         0.05,
			VisionMin:          3,
			VisionCapFraction:  0.5,
			VisionCapAxis:      "height",
			ConfidenceWindow:   5,
			VisionBonus:        3,
			FOVBonus:           10,
			SpeedScale:         1,
			SpeedScalePerLevel: 0,
		},
		Level: LevelConfig{
			Count:          5,
			Width:          30,
			Height:         22,
			MinRunes:       3,
			RuneScore:      100,
			VisionPerLevel: 0.5,
			SpeedPerLevel:  0.3125,
			ScalePerLevel:  0,
			PatrolStops:    2,
		},
		Player: PlayerConfig{
			Speed:          3.75,
			SprintMult:     1.9,
			MaxStamina:     100,
			StaminaDrain:   30,
			StaminaRecover: 15,
			HoldTime:       0.15,
		},
		Server: ServerConfig{
			Port:        2222,
			HostKey:     "server_host_key",
			MaxSessions: 32,
			ConnRate:    2,
			ConnBurst:   5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func preset3D() Config {
	c := preset2D()
	c.Preset = Preset3D
	c.Sim.TileSize = 1
	c.Guard.Speed = 2.8
	c.Guard.VisionDistance = 7
	c.Guard.ArrivalThreshold = 0.05
	c.Guard.SearchDuration = 2.5
	c.Boss.VisionMin = 4
	c.Boss.VisionCapFraction = 1
	c.Boss.VisionCapAxis = "max"
	c.Boss.SpeedScale = 1.1
	c.Boss.SpeedScalePerLevel = 0.1
	c.Level.SpeedPerLevel = 0
	c.Level.ScalePerLevel = 0.08
	c.Player.Speed = 3.8
	c.Player.SprintMult = 1.8
	c.Player.StaminaDrain = 28
	return c
}

// setDefaults registers every key of c so file values and environment
// variables layer over the preset.
func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("preset", c.Preset)

	v.SetDefault("sim.tile_size", c.Sim.TileSize)
	v.SetDefault("sim.tick_rate", c.Sim.TickRate)
	v.SetDefault("sim.catch_range", c.Sim.CatchRange)

	v.SetDefault("guard.speed", c.Guard.Speed)
	v.SetDefault("guard.vision_distance", c.Guard.VisionDistance)
	v.SetDefault("guard.fov_half_angle", c.Guard.FOVHalfAngle)
	v.SetDefault("guard.arrival_threshold", c.Guard.ArrivalThreshold)
	v.SetDefault("guard.recency_window", c.Guard.RecencyWindow)
	v.SetDefault("guard.search_duration", c.Guard.SearchDuration)

	v.SetDefault("path.max_expansions", c.Path.MaxExpansions)
	v.SetDefault("path.orthogonal_cost", c.Path.OrthogonalCost)
	v.SetDefault("path.diagonal_cost", c.Path.DiagonalCost)

	v.SetDefault("boss.history_capacity", c.Boss.HistoryCapacity)
	v.SetDefault("boss.grow_rate", c.Boss.GrowRate)
	v.SetDefault("boss.shrink_rate", c.Boss.ShrinkRate)
	v.SetDefault("boss.vision_min", c.Boss.VisionMin)
	v.SetDefault("boss.vision_cap_fraction", c.Boss.VisionCapFraction)
	v.SetDefault("boss.vision_cap_axis", c.Boss.VisionCapAxis)
	v.SetDefault("boss.confidence_window", c.Boss.ConfidenceWindow)
	v.SetDefault("boss.vision_bonus", c.Boss.VisionBonus)
	v.SetDefault("boss.fov_bonus", c.Boss.FOVBonus)
	v.SetDefault("boss.speed_scale", c.Boss.SpeedScale)
	v.SetDefault("boss.speed_scale_per_level", c.Boss.SpeedScalePerLevel)

	v.SetDefault("level.count", c.Level.Count)
	v.SetDefault("level.width", c.Level.Width)
	v.SetDefault("level.height", c.Level.Height)
	v.SetDefault("level.seed", c.Level.Seed)
	v.SetDefault("level.min_runes", c.Level.MinRunes)
	v.SetDefault("level.rune_score", c.Level.RuneScore)
	v.SetDefault("level.vision_per_level", c.Level.VisionPerLevel)
	v.SetDefault("level.speed_per_level", c.Level.SpeedPerLevel)
	v.SetDefault("level.scale_per_level", c.Level.ScalePerLevel)
	v.SetDefault("level.patrol_stops", c.Level.PatrolStops)

	v.SetDefault("player.speed", c.Player.Speed)
	v.SetDefault("player.sprint_mult", c.Player.SprintMult)
	v.SetDefault("player.max_stamina", c.Player.MaxStamina)
	v.SetDefault("player.stamina_drain", c.Player.StaminaDrain)
	v.SetDefault("player.stamina_recover", c.Player.StaminaRecover)
	v.SetDefault("player.hold_time", c.Player.HoldTime)

	v.SetDefault("server.port", c.Server.Port)
	v.SetDefault("server.host_key", c.Server.HostKey)
	v.SetDefault("server.max_sessions", c.Server.MaxSessions)
	v.SetDefault("server.conn_rate", c.Server.ConnRate)
	v.SetDefault("server.conn_burst", c.Server.ConnBurst)

	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.development", c.Log.Development)
	v.SetDefault("log.file", c.Log.File)
}
