package gamemap

import "errors"

// ErrInvalidCoordinate reports a cell that is outside the grid or blocked
// where an open cell was required.
var ErrInvalidCoordinate = errors.New("invalid coordinate")
