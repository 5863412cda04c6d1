package state

import (
	"context"

	gametypes "github.com/cbodonnell/swipeduel/pkg/game/types"
)

// StateManager provides shared access to the latest game snapshot.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current snapshot.
	Get(ctx context.Context) (*gametypes.Snapshot, error)
	// Set sets the current snapshot.
	Set(ctx context.Context, snapshot *gametypes.Snapshot) error
}
