package pathfind

import "runeguard/internal/gamemap"

// Path is a route being followed. Cells excludes the cell the walker started
// on and ends at the goal; Cursor indexes the next cell to reach.
type Path struct {
	Cells  []gamemap.Cell
	Cursor int
}

// NewPath wraps a FindPath result, dropping its start cell.
func NewPath(route []gamemap.Cell) Path {
	if len(route) <= 1 {
		return Path{}
	}
	return Path{Cells: route[1:]}
}

// Next returns the cell currently being walked toward.
func (p *Path) Next() (gamemap.Cell, bool) {
	if p.Cursor >= len(p.Cells) {
		return gamemap.Cell{}, false
	}
	return p.Cells[p.Cursor], true
}

// Advance moves the cursor past the current cell and clears the path once
// the goal has been reached.
func (p *Path) Advance() {
	if p.Cursor < len(p.Cells) {
		p.Cursor++
	}
	if p.Cursor >= len(p.Cells) {
		p.Clear()
	}
}

// Clear empties the path.
func (p *Path) Clear() {
	p.Cells = nil
	p.Cursor = 0
}

// Empty reports whether nothing is left to walk.
func (p *Path) Empty() bool { return p.Cursor >= len(p.Cells) }

// Len is the total number of cells in the route.
func (p *Path) Len() int { return len(p.Cells) }

// Remaining returns the cells not yet reached.
func (p *Path) Remaining() []gamemap.Cell {
	if p.Empty() {
		return nil
	}
	return p.Cells[p.Cursor:]
}

// Goal returns the final cell of the route.
func (p *Path) Goal() (gamemap.Cell, bool) {
	if len(p.Cells) == 0 {
		return gamemap.Cell{}, false
	}
	return p.Cells[len(p.Cells)-1], true
}
