package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"runeguard/internal/gamemap"
)

func cell(x, y int) gamemap.Cell { return gamemap.Cell{X: x, Y: y} }

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 5; i++ {
		h.Push(cell(i, 0))
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []gamemap.Cell{cell(2, 0), cell(3, 0), cell(4, 0)}, h.Cells())

	h.Reset()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Cells())
}

func TestHistoryDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewHistory(0).Cap())
}

func TestPredictLinear(t *testing.T) {
	h := NewHistory(DefaultCapacity)
	for _, c := range []gamemap.Cell{cell(2, 2), cell(3, 2), cell(4, 2)} {
		h.Push(c)
	}
	got, ok := Predict(h, 10, 10)
	assert.True(t, ok)
	assert.Equal(t, cell(5, 2), got)
}

func TestPredictNeedsThreeSamples(t *testing.T) {
	h := NewHistory(DefaultCapacity)
	h.Push(cell(1, 1))
	h.Push(cell(2, 1))
	_, ok := Predict(h, 10, 10)
	assert.False(t, ok)
}

func TestPredictClampsToGrid(t *testing.T) {
	cases := []struct {
		name    string
		samples []gamemap.Cell
		want    gamemap.Cell
	}{
		{"east edge", []gamemap.Cell{cell(7, 4), cell(8, 4), cell(9, 4)}, cell(9, 4)},
		{"north-west corner", []gamemap.Cell{cell(2, 2), cell(1, 1), cell(0, 0)}, cell(0, 0)},
		{"large jump", []gamemap.Cell{cell(0, 0), cell(0, 0), cell(6, 9)}, cell(9, 9)},
		{"stationary", []gamemap.Cell{cell(4, 4), cell(4, 4), cell(4, 4)}, cell(4, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHistory(DefaultCapacity)
			for _, c := range tc.samples {
				h.Push(c)
			}
			got, ok := Predict(h, 10, 10)
			assert.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPredictUsesLatestSamples(t *testing.T) {
	h := NewHistory(4)
	for _, c := range []gamemap.Cell{cell(0, 0), cell(0, 1), cell(0, 2), cell(1, 2), cell(2, 2)} {
		h.Push(c)
	}
	got, _ := Predict(h, 10, 10)
	assert.Equal(t, cell(3, 2), got)
}
