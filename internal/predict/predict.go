// Package predict extrapolates where a moving target is heading.
package predict

import "runeguard/internal/gamemap"

// DefaultCapacity is the number of samples a History keeps.
const DefaultCapacity = 8

// History is a bounded FIFO of observed target cells. Pushing onto a full
// history evicts the oldest sample.
type History struct {
	buf   []gamemap.Cell
	start int
	n     int
}

// NewHistory returns an empty history holding at most capacity samples.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{buf: make([]gamemap.Cell, capacity)}
}

// Push records a sample.
func (h *History) Push(c gamemap.Cell) {
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = c
		h.n++
		return
	}
	h.buf[h.start] = c
	h.start = (h.start + 1) % len(h.buf)
}

// Len is the number of samples held.
func (h *History) Len() int { return h.n }

// Cap is the maximum number of samples.
func (h *History) Cap() int { return len(h.buf) }

// At returns the i-th oldest sample.
func (h *History) At(i int) gamemap.Cell {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Cells returns the samples oldest first.
func (h *History) Cells() []gamemap.Cell {
	out := make([]gamemap.Cell, h.n)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}

// Reset drops every sample.
func (h *History) Reset() {
	h.start, h.n = 0, 0
}

// Predict projects the last step of the history one step forward and clamps
// the result into a width x height grid. It needs at least three samples.
func Predict(h *History, width, height int) (gamemap.Cell, bool) {
	if h.Len() < 3 {
		return gamemap.Cell{}, false
	}
	p1 := h.At(h.Len() - 2)
	p2 := h.At(h.Len() - 1)
	next := p2.Add(p2.X-p1.X, p2.Y-p1.Y)
	next.X = min(max(next.X, 0), width-1)
	next.Y = min(max(next.Y, 0), height-1)
	return next, true
}
