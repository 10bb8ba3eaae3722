package gamemap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInBounds(t *testing.T) {
	m := New(10, 8)
	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 7, true},
		{-1, 0, false},
		{10, 0, false},
		{0, 8, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, m.InBounds(c.x, c.y), "InBounds(%d,%d)", c.x, c.y)
	}
}

func TestIsWalkable(t *testing.T) {
	m := New(5, 5)
	assert.False(t, m.IsWalkable(2, 2), "wall tile should not be walkable")
	m.Set(2, 2, MakeFloor())
	assert.True(t, m.IsWalkable(2, 2))
	assert.True(t, m.Walkable(Cell{2, 2}))
	assert.False(t, m.IsWalkable(-1, 0), "out-of-bounds should not be walkable")
}

func TestRectCenter(t *testing.T) {
	r := Rect{X1: 0, Y1: 0, X2: 4, Y2: 4}
	cx, cy := r.Center()
	assert.Equal(t, 2, cx)
	assert.Equal(t, 2, cy)
	assert.Equal(t, Cell{2, 2}, r.CenterCell())
	assert.True(t, r.Contains(Cell{4, 0}))
	assert.False(t, r.Contains(Cell{5, 0}))
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 4, 4}
	b := Rect{3, 3, 7, 7}
	c := Rect{5, 5, 9, 9}
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
}

func TestParse(t *testing.T) {
	m, err := Parse([]string{
		"#####",
		"#...#",
		"#.#.#",
		"#####",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Width)
	assert.Equal(t, 4, m.Height)
	assert.True(t, m.IsWalkable(1, 1))
	assert.False(t, m.IsWalkable(2, 2))
	assert.Len(t, m.WalkableCells(), 5)
	assert.Equal(t, "#####\n#...#\n#.#.#\n#####", m.String())
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)

	_, err = Parse([]string{"...", ".."})
	assert.ErrorContains(t, err, "row 1")
}

func TestCheckOpen(t *testing.T) {
	m := MustParse(
		"..",
		".#",
	)
	assert.NoError(t, m.CheckOpen(Cell{0, 0}))
	assert.ErrorIs(t, m.CheckOpen(Cell{1, 1}), ErrInvalidCoordinate)
	assert.ErrorIs(t, m.CheckOpen(Cell{2, 0}), ErrInvalidCoordinate)
	assert.ErrorIs(t, m.CheckOpen(Cell{0, -1}), ErrInvalidCoordinate)
}

func TestMustOpenPanicsOnBlocked(t *testing.T) {
	if !assertions {
		t.Skip("assertions compiled out")
	}
	m := MustParse("#.")
	assert.NotPanics(t, func() { m.MustOpen(Cell{1, 0}) })
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrInvalidCoordinate))
	}()
	m.MustOpen(Cell{0, 0})
}

func TestClamp(t *testing.T) {
	m := New(4, 3)
	assert.Equal(t, Cell{3, 0}, m.Clamp(Cell{9, -2}))
	assert.Equal(t, Cell{1, 2}, m.Clamp(Cell{1, 7}))
}
