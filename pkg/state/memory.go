package state

import (
	"context"
	"fmt"
	"sync"

	gametypes "github.com/cbodonnell/swipeduel/pkg/game/types"
)

// ErrNoSnapshot is returned by Get before the first snapshot was published.
type ErrNoSnapshot struct{}

func (e *ErrNoSnapshot) Error() string {
	return "no snapshot published yet"
}

type InMemoryStateManager struct {
	lock     sync.RWMutex
	snapshot *gametypes.Snapshot
}

func NewInMemoryStateManager() *InMemoryStateManager {
	return &InMemoryStateManager{}
}

func (m *InMemoryStateManager) Get(ctx context.Context) (*gametypes.Snapshot, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if m.snapshot == nil {
		return nil, &ErrNoSnapshot{}
	}
	return m.snapshot.Copy(), nil
}

func (m *InMemoryStateManager) Set(ctx context.Context, snapshot *gametypes.Snapshot) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if snapshot == nil {
		return fmt.Errorf("snapshot is nil")
	}

	m.snapshot = snapshot
	return nil
}
