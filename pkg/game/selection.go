package game

import (
	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/kinematic"
)

// PointerProvider supplies the controlling pointer once per tick.
// ok is false when no pointer is present.
type PointerProvider interface {
	Poll() (position kinematic.Vector, ok bool)
}

// TransferAttempt is produced when the selected token crosses the send edge.
type TransferAttempt struct {
	TokenID uint32
}

// Selection tracks the token held by the pointer by id.
type Selection struct {
	tokenID uint32
}

func NewSelection() *Selection {
	return &Selection{}
}

// TokenID returns the selected token id or 0.
func (s *Selection) TokenID() uint32 {
	return s.tokenID
}

func (s *Selection) HasSelection() bool {
	return s.tokenID != 0
}

func (s *Selection) Clear() {
	s.tokenID = 0
}

// Update runs one step of the selection state machine.
// It returns a transfer attempt when the held token crosses the send edge of role.
func (s *Selection) Update(pointer kinematic.Vector, present bool, registry *Registry, role types.Role, viewportWidth float64) *TransferAttempt {
	if !present {
		s.Clear()
		return nil
	}

	if s.tokenID == 0 {
		token, ok := registry.TokenAt(pointer)
		if !ok {
			return nil
		}
		s.tokenID = token.ID
	}

	token, ok := registry.Get(s.tokenID)
	if !ok || !token.IsIdle() {
		s.Clear()
		return nil
	}

	half := constants.ObjectSize / 2
	centered := kinematic.Vector{X: pointer.X - half, Y: pointer.Y - half}
	registry.MoveTo(token.ID, centered)

	if role.CrossedSendEdge(token.Position.X, constants.ObjectSize, viewportWidth) {
		s.Clear()
		return &TransferAttempt{TokenID: token.ID}
	}
	return nil
}
