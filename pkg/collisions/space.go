package collisions

import (
	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/solarlune/resolv"
)

// NewCollisionSpace returns an empty space covering a viewport of the given size.
// Parts of an object outside the viewport occupy no cells.
func NewCollisionSpace(width, height float64) *resolv.Space {
	cell := constants.CollisionCellSize
	return resolv.NewSpace(int(width), int(height), cell, cell)
}
