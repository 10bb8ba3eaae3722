package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeguard/internal/config"
	"runeguard/internal/gamemap"
	"runeguard/internal/geom"
	"runeguard/internal/guard"
)

func cell(x, y int) gamemap.Cell { return gamemap.Cell{X: x, Y: y} }

var hall = []string{
	"##########",
	"#........#",
	"#.##..##.#",
	"#........#",
	"##########",
}

func newSession(t *testing.T, spawns ...Spawn) *Session {
	t.Helper()
	s, err := NewSession(Layout{
		Grid:   gamemap.MustParse(hall...),
		Start:  cell(8, 3),
		Runes:  []gamemap.Cell{cell(4, 2)},
		Spawns: spawns,
	}, config.Default(), nil)
	require.NoError(t, err)
	return s
}

func TestNewSessionRejectsBadLayout(t *testing.T) {
	cfg := config.Default()
	gmap := gamemap.MustParse(hall...)

	_, err := NewSession(Layout{Grid: gmap, Start: cell(0, 0)}, cfg, nil)
	assert.ErrorIs(t, err, gamemap.ErrInvalidCoordinate)

	_, err = NewSession(Layout{Grid: gmap, Start: cell(1, 1), Spawns: []Spawn{{Cell: cell(2, 2)}}}, cfg, nil)
	assert.ErrorIs(t, err, gamemap.ErrInvalidCoordinate)
	assert.ErrorContains(t, err, "guard 0 spawn")

	_, err = NewSession(Layout{Grid: gmap, Start: cell(1, 1), Spawns: []Spawn{{Cell: cell(1, 1), Patrol: []gamemap.Cell{cell(9, 9)}}}}, cfg, nil)
	assert.ErrorContains(t, err, "waypoint 0")

	_, err = NewSession(Layout{}, cfg, nil)
	assert.Error(t, err)
}

func TestSpawnAppliesBonuses(t *testing.T) {
	s := newSession(t,
		Spawn{Cell: cell(1, 1), VisionBonus: 1, SpeedBonus: 0.3125},
		Spawn{Cell: cell(8, 1), Elevated: true, VisionBonus: 3, FOVBonus: 10, SpeedScale: 1.5, Heading: 180},
	)
	gs := s.Guards()
	require.Len(t, gs, 2)
	assert.Equal(t, 0, gs[0].ID)
	assert.InDelta(t, 7.0, gs[0].VisionDistance, 1e-9)
	assert.InDelta(t, (1.4+0.3125)*32, gs[0].Speed, 1e-9)
	assert.InDelta(t, 35.0, gs[0].FOVHalfAngle, 1e-9)

	assert.Equal(t, 1, gs[1].ID)
	assert.True(t, gs[1].Elevated)
	assert.InDelta(t, 9.0, gs[1].VisionDistance, 1e-9)
	assert.InDelta(t, 45.0, gs[1].FOVHalfAngle, 1e-9)
	assert.InDelta(t, 1.4*1.5*32, gs[1].Speed, 1e-9)
	assert.InDelta(t, 180.0, gs[1].Heading, 1e-9)
}

func TestStepReportsCatch(t *testing.T) {
	s := newSession(t, Spawn{Cell: cell(1, 1)})
	f := s.Step(1.0/60, geom.Vec2{X: 70, Y: 48})
	assert.Equal(t, 1, f.Tick)
	assert.Equal(t, cell(2, 1), f.Target)
	require.Len(t, f.Guards, 1)
	assert.True(t, f.Guards[0].Perceived)
	assert.Equal(t, guard.Chase, f.Guards[0].State)
	assert.True(t, f.Caught)
	assert.Equal(t, 0, f.CaughtBy)
}

func TestStepNoCatchOutOfRange(t *testing.T) {
	s := newSession(t, Spawn{Cell: cell(1, 1)})
	f := s.Step(1.0/60, geom.Vec2{X: 144, Y: 48})
	assert.True(t, f.Guards[0].Perceived)
	assert.False(t, f.Caught)
	assert.Equal(t, -1, f.CaughtBy)
}

func TestStepNoCatchWithoutPerception(t *testing.T) {
	s := newSession(t, Spawn{Cell: cell(1, 1), Heading: 180})
	f := s.Step(1.0/60, geom.Vec2{X: 70, Y: 48})
	assert.False(t, f.Guards[0].Perceived)
	assert.False(t, f.Caught)
}

func TestStepIsDeterministic(t *testing.T) {
	spawns := []Spawn{
		{Cell: cell(1, 1), Patrol: []gamemap.Cell{cell(1, 1), cell(8, 1)}},
		{Cell: cell(8, 3), Patrol: []gamemap.Cell{cell(8, 3), cell(1, 3)}, Heading: 180},
		{Cell: cell(4, 2), Elevated: true, Heading: 90},
	}
	a := newSession(t, spawns...)
	b := newSession(t, spawns...)
	for i := 0; i < 600; i++ {
		x := 48 + float64(i%240)
		target := geom.Vec2{X: x, Y: 112}
		fa := a.Step(1.0/60, target)
		fb := b.Step(1.0/60, target)
		require.Equal(t, fa, fb, "tick %d", i)
		for j, gv := range fa.Guards {
			require.Equal(t, j, gv.ID)
			require.True(t, a.Grid().Walkable(gv.Cell), "guard %d on %v", j, gv.Cell)
		}
	}
	assert.InDelta(t, 10.0, a.Now(), 1e-9)
}

func TestTargetCellClamps(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, cell(9, 0), s.TargetCell(geom.Vec2{X: 5000, Y: -3}))
}

func TestVisionCone(t *testing.T) {
	s := newSession(t, Spawn{Cell: cell(1, 1)})
	cone := s.VisionCone(0)
	assert.Contains(t, cone, cell(1, 1))
	assert.Contains(t, cone, cell(5, 1))
	assert.NotContains(t, cone, cell(2, 2))
}
