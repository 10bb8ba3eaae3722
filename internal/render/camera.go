package render

import "runeguard/internal/gamemap"

// Camera translates between grid cells and screen positions.
// Each cell is 2 terminal columns wide because emoji occupy 2 columns.
type Camera struct {
	Offset     gamemap.Cell
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera for a viewport of viewW columns by viewH rows.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Follow centres the camera on c, but never scrolls past the edges of a
// mapW x mapH grid. A grid smaller than the view is pinned to the top left.
func (c *Camera) Follow(cell gamemap.Cell, mapW, mapH int) {
	cols := c.ViewWidth / 2
	c.Offset.X = clamp(cell.X-cols/2, 0, max(0, mapW-cols))
	c.Offset.Y = clamp(cell.Y-c.ViewHeight/2, 0, max(0, mapH-c.ViewHeight))
}

// CellToScreen converts a cell to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) CellToScreen(cell gamemap.Cell) (sx, sy int, visible bool) {
	sx = (cell.X - c.Offset.X) * 2
	sy = cell.Y - c.Offset.Y
	visible = sx >= 0 && sx+1 < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToCell converts screen (sx, sy) back to a cell.
func (c *Camera) ScreenToCell(sx, sy int) gamemap.Cell {
	return gamemap.Cell{X: sx/2 + c.Offset.X, Y: sy + c.Offset.Y}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
