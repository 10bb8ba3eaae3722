// Package render draws a level, its guards and the status bar onto a tcell
// screen.
package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"runeguard/assets"
	"runeguard/internal/gamemap"
	"runeguard/internal/guard"
	"runeguard/internal/sim"
)

// HUDRows is the number of rows reserved at the bottom of the screen.
const HUDRows = 5

// Scene is everything drawn in the map viewport for one frame.
type Scene struct {
	Grid   *gamemap.GameMap
	Level  int
	Runes  []gamemap.Cell
	Target gamemap.Cell
	Guards []sim.GuardView
	Cones  [][]gamemap.Cell // indexed like Guards
	Caught bool
}

// Renderer draws scenes onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(w, max(1, h-HUDRows)),
	}
}

// Resize refits the viewport after the terminal changes size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = w, max(1, h-HUDRows)
}

// Camera exposes the viewport camera.
func (r *Renderer) Camera() *Camera { return r.camera }

// DrawScene clears the screen and draws tiles, cones, runes, guards and the
// target, in that order.
func (r *Renderer) DrawScene(s Scene) {
	r.screen.Clear()
	r.camera.Follow(s.Target, s.Grid.Width, s.Grid.Height)

	tint := make(map[gamemap.Cell]tcell.Color)
	for i, cone := range s.Cones {
		if i >= len(s.Guards) {
			break
		}
		bg := coneColors[s.Guards[i].State]
		for _, c := range cone {
			tint[c] = bg
		}
	}

	r.drawMap(s.Grid, s.Level, tint)
	for _, c := range s.Runes {
		r.drawAt(c, assets.GlyphRune, tint[c])
	}
	for _, g := range s.Guards {
		r.drawAt(g.Cell, guardGlyph(g), tint[g.Cell])
	}
	target := assets.GlyphTarget
	if s.Caught {
		target = assets.GlyphCaught
	}
	r.drawAt(s.Target, target, tint[s.Target])
}

func (r *Renderer) drawMap(gmap *gamemap.GameMap, level int, tint map[gamemap.Cell]tcell.Color) {
	theme := ThemeFor(level)
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			c := gamemap.Cell{X: x, Y: y}
			sx, sy, onScreen := r.camera.CellToScreen(c)
			if !onScreen {
				continue
			}
			if gmap.At(x, y).Kind == gamemap.TileWall {
				r.putGlyph(sx, sy, theme.Wall, tcell.StyleDefault.Background(tcell.ColorBlack))
				continue
			}
			bg, lit := tint[c]
			if !lit {
				bg = tcell.ColorBlack
			}
			style := tcell.StyleDefault.Foreground(theme.FloorFG).Background(bg)
			r.screen.SetContent(sx, sy, []rune(theme.Floor)[0], nil, style)
			r.screen.SetContent(sx+1, sy, ' ', nil, style)
		}
	}
}

// drawAt draws glyph over cell c keeping the cone tint, if any.
func (r *Renderer) drawAt(c gamemap.Cell, glyph string, bg tcell.Color) {
	sx, sy, onScreen := r.camera.CellToScreen(c)
	if !onScreen {
		return
	}
	if bg == tcell.ColorDefault {
		bg = tcell.ColorBlack
	}
	r.putGlyph(sx, sy, glyph, tcell.StyleDefault.Background(bg))
}

func guardGlyph(g sim.GuardView) string {
	if g.Elevated {
		if g.State == guard.Boss {
			return assets.GlyphBossAlert
		}
		return assets.GlyphBoss
	}
	switch g.State {
	case guard.Chase:
		return assets.GlyphChase
	case guard.Search:
		return assets.GlyphSearch
	case guard.Idle:
		return assets.GlyphIdle
	}
	return assets.GlyphPatrol
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	if runewidth.StringWidth(glyph) < 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
