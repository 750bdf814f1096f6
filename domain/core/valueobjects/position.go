package valueobjects

import (
	"math"

	pkgerrors "osintgraph-client/pkg/errors"
)

// Position is a node's location on the 2D editing canvas. A node always has
// a defined position; there is no "unplaced" state.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPosition creates a Position after checking both coordinates are finite.
func NewPosition(x, y float64) (Position, error) {
	if !isFinite(x) || !isFinite(y) {
		return Position{}, pkgerrors.NewValidationError("coordinates must be finite numbers")
	}
	return Position{X: x, Y: y}, nil
}

// Equals checks if two positions are equal within a small tolerance.
func (p Position) Equals(other Position) bool {
	const epsilon = 1e-9
	return math.Abs(p.X-other.X) < epsilon && math.Abs(p.Y-other.Y) < epsilon
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
