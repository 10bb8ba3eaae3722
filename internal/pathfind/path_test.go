package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"runeguard/internal/gamemap"
)

func TestNewPathDropsStart(t *testing.T) {
	p := NewPath([]gamemap.Cell{c(0, 0), c(1, 0), c(2, 0)})
	assert.Equal(t, 2, p.Len())
	next, ok := p.Next()
	assert.True(t, ok)
	assert.Equal(t, c(1, 0), next)
	goal, ok := p.Goal()
	assert.True(t, ok)
	assert.Equal(t, c(2, 0), goal)
}

func TestNewPathSingleCellIsEmpty(t *testing.T) {
	p := NewPath([]gamemap.Cell{c(3, 3)})
	assert.True(t, p.Empty())
	_, ok := p.Next()
	assert.False(t, ok)

	none := NewPath(nil)
	assert.True(t, none.Empty())
}

func TestPathAdvanceClearsWhenExhausted(t *testing.T) {
	p := NewPath([]gamemap.Cell{c(0, 0), c(1, 0), c(2, 0)})
	p.Advance()
	assert.Equal(t, []gamemap.Cell{c(2, 0)}, p.Remaining())
	p.Advance()
	assert.True(t, p.Empty())
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, 0, p.Cursor)
	p.Advance()
	assert.Equal(t, 0, p.Cursor)
}
