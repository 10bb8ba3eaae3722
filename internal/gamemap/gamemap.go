package gamemap

import (
	"fmt"
	"strings"
)

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// CenterCell returns Center as a Cell.
func (r Rect) CenterCell() Cell {
	x, y := r.Center()
	return Cell{X: x, Y: y}
}

// Contains reports whether c lies inside r (inclusive edges).
func (r Rect) Contains(c Cell) bool {
	return c.X >= r.X1 && c.X <= r.X2 && c.Y >= r.Y1 && c.Y <= r.Y2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// GameMap is the tile grid for one level. Once a level is built the grid is
// treated as read-only; guards and the target only ever query it.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Rect
}

// New creates a GameMap filled with walls.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// Parse builds a map from fixture rows: '#' is a wall, anything else floor.
func Parse(rows []string) (*GameMap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("parse map: empty grid")
	}
	width := len(rows[0])
	m := New(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("parse map: row %d has width %d, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			if row[x] != '#' {
				m.Set(x, y, MakeFloor())
			}
		}
	}
	return m, nil
}

// MustParse is Parse for fixtures known to be well formed.
func MustParse(rows ...string) *GameMap {
	m, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// Walkable is IsWalkable for a Cell.
func (m *GameMap) Walkable(c Cell) bool {
	return m.IsWalkable(c.X, c.Y)
}

// Clamp pulls c inside the grid bounds.
func (m *GameMap) Clamp(c Cell) Cell {
	c.X = min(max(c.X, 0), m.Width-1)
	c.Y = min(max(c.Y, 0), m.Height-1)
	return c
}

// WalkableCells lists every open cell in row-major order.
func (m *GameMap) WalkableCells() []Cell {
	var cells []Cell
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x].Walkable {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// CheckOpen returns an error wrapping ErrInvalidCoordinate when c is out of
// bounds or blocked.
func (m *GameMap) CheckOpen(c Cell) error {
	if !m.InBounds(c.X, c.Y) {
		return fmt.Errorf("%w: %v outside %dx%d grid", ErrInvalidCoordinate, c, m.Width, m.Height)
	}
	if !m.Tiles[c.Y][c.X].Walkable {
		return fmt.Errorf("%w: %v is blocked", ErrInvalidCoordinate, c)
	}
	return nil
}

// MustOpen panics when c is not an open cell. The check is compiled out of
// release builds.
func (m *GameMap) MustOpen(c Cell) {
	if !assertions {
		return
	}
	if err := m.CheckOpen(c); err != nil {
		panic(err)
	}
}

// MustContain panics when c lies outside the grid. Compiled out of release
// builds like MustOpen.
func (m *GameMap) MustContain(c Cell) {
	if assertions && !m.InBounds(c.X, c.Y) {
		panic(fmt.Errorf("%w: %v outside %dx%d grid", ErrInvalidCoordinate, c, m.Width, m.Height))
	}
}

// String renders the grid in fixture form.
func (m *GameMap) String() string {
	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.WriteByte(m.Tiles[y][x].Glyph())
		}
		if y < m.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
