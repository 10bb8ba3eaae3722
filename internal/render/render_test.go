package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runeguard/assets"
	"runeguard/internal/gamemap"
	"runeguard/internal/guard"
	"runeguard/internal/sim"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, ss.Init())
	ss.SetSize(w, h)
	t.Cleanup(ss.Fini)
	return ss
}

func runeAt(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestCameraFollowClamps(t *testing.T) {
	c := NewCamera(20, 6) // 10 cells wide
	c.Follow(gamemap.Cell{X: 0, Y: 0}, 30, 20)
	assert.Equal(t, gamemap.Cell{X: 0, Y: 0}, c.Offset)

	c.Follow(gamemap.Cell{X: 15, Y: 10}, 30, 20)
	assert.Equal(t, gamemap.Cell{X: 10, Y: 7}, c.Offset)

	c.Follow(gamemap.Cell{X: 29, Y: 19}, 30, 20)
	assert.Equal(t, gamemap.Cell{X: 20, Y: 14}, c.Offset)

	// Smaller than the view.
	c.Follow(gamemap.Cell{X: 3, Y: 2}, 5, 4)
	assert.Equal(t, gamemap.Cell{}, c.Offset)
}

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(20, 6)
	c.Offset = gamemap.Cell{X: 4, Y: 2}
	sx, sy, ok := c.CellToScreen(gamemap.Cell{X: 6, Y: 3})
	require.True(t, ok)
	assert.Equal(t, 4, sx)
	assert.Equal(t, 1, sy)
	assert.Equal(t, gamemap.Cell{X: 6, Y: 3}, c.ScreenToCell(sx, sy))
	assert.Equal(t, gamemap.Cell{X: 6, Y: 3}, c.ScreenToCell(sx+1, sy))

	_, _, ok = c.CellToScreen(gamemap.Cell{X: 3, Y: 3})
	assert.False(t, ok)
}

func TestDrawSceneTintsCone(t *testing.T) {
	ss := newScreen(t, 40, 12)
	r := NewRenderer(ss)
	gmap := gamemap.MustParse(
		"#######",
		"#.....#",
		"#######",
	)
	r.DrawScene(Scene{
		Grid:   gmap,
		Level:  1,
		Target: gamemap.Cell{X: 5, Y: 1},
		Guards: []sim.GuardView{{ID: 0, Cell: gamemap.Cell{X: 1, Y: 1}, State: guard.Chase}},
		Cones:  [][]gamemap.Cell{{{X: 2, Y: 1}, {X: 3, Y: 1}}},
	})

	_, _, lit, _ := ss.GetContent(4, 1)
	_, bgLit, _ := lit.Decompose()
	assert.Equal(t, coneColors[guard.Chase], bgLit)

	_, _, dark, _ := ss.GetContent(8, 1)
	_, bgDark, _ := dark.Decompose()
	assert.Equal(t, tcell.ColorBlack, bgDark)

	assert.Equal(t, []rune(assets.GlyphChase)[0], runeAt(ss, 2, 1))
	assert.Equal(t, []rune(assets.GlyphTarget)[0], runeAt(ss, 10, 1))
	assert.Equal(t, '.', runeAt(ss, 8, 1))
}

func TestGuardGlyph(t *testing.T) {
	assert.Equal(t, assets.GlyphPatrol, guardGlyph(sim.GuardView{State: guard.Patrol}))
	assert.Equal(t, assets.GlyphIdle, guardGlyph(sim.GuardView{State: guard.Idle}))
	assert.Equal(t, assets.GlyphSearch, guardGlyph(sim.GuardView{State: guard.Search}))
	assert.Equal(t, assets.GlyphBoss, guardGlyph(sim.GuardView{State: guard.Patrol, Elevated: true}))
	assert.Equal(t, assets.GlyphBossAlert, guardGlyph(sim.GuardView{State: guard.Boss, Elevated: true}))
}

func TestDrawHUD(t *testing.T) {
	ss := newScreen(t, 80, 24)
	r := NewRenderer(ss)
	r.DrawHUD(Status{
		Level: 2, Levels: 5, Score: 300, RunesLeft: 1,
		Stamina: 50, MaxStamina: 100,
		Guards:   []sim.GuardView{{ID: 0, State: guard.Search}},
		Messages: []string{"old", "a rune", "spotted!"},
	})
	assert.Equal(t, "Level 2/5  Score 300  Runes left 1  Stamina [#####-----]", readRow(ss, 20, 80))
	assert.Equal(t, "g0:search", readRow(ss, 21, 80))
	assert.Equal(t, "a rune", readRow(ss, 22, 80))
	assert.Equal(t, "spotted!", readRow(ss, 23, 80))
}

func TestStaminaBar(t *testing.T) {
	assert.Equal(t, "[----]", staminaBar(0, 100, 4))
	assert.Equal(t, "[####]", staminaBar(150, 100, 4))
	assert.Equal(t, "[----]", staminaBar(10, 0, 4))
}

func TestDrawPanel(t *testing.T) {
	ss := newScreen(t, 60, 20)
	r := NewRenderer(ss)
	r.DrawPanel("Caught", []string{"A guard saw you."}, "[r] retry  [q] quit")
	var found bool
	for y := 0; y < 20; y++ {
		if strings.Contains(readRow(ss, y, 60), "A guard saw you.") {
			found = true
		}
	}
	assert.True(t, found)
}

func readRow(s tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(runeAt(s, x, y))
	}
	return strings.TrimSpace(b.String())
}
