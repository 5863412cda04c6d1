package network

import (
	"bufio"
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/journal"
	"github.com/cbodonnell/swipeduel/pkg/messages"
	"github.com/cbodonnell/swipeduel/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEntry struct {
	direction journal.Direction
	literal   string
}

type fakeRecorder struct {
	lock    sync.Mutex
	entries []recordedEntry
}

func (r *fakeRecorder) Record(direction journal.Direction, literal string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries = append(r.entries, recordedEntry{direction: direction, literal: literal})
	return nil
}

func (r *fakeRecorder) Entries() []recordedEntry {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]recordedEntry(nil), r.entries...)
}

func TestPeer_HandleEvents(t *testing.T) {
	local, remote := net.Pipe()
	inbound := queue.NewInMemoryQueue[messages.Event](8)
	recorder := &fakeRecorder{}
	peer := NewPeer(NewPeerOptions{Conn: local, InboundQueue: inbound, Journal: recorder})

	go func() {
		// two events in one write, a malformed one, then one split across writes
		remote.Write([]byte("start\nsend:circle\n"))
		remote.Write([]byte("send:weapon\n"))
		remote.Write([]byte("time"))
		remote.Write([]byte("out:4\n"))
		remote.Close()
	}()

	err := peer.HandleEvents(context.Background())
	var closedByPeer *ErrConnectionClosedByPeer
	require.True(t, errors.As(err, &closedByPeer), "unexpected error: %v", err)

	events, err := inbound.ReadAllMessages()
	require.NoError(t, err)
	assert.Equal(t, []messages.Event{
		messages.NewStartEvent(),
		messages.NewSendEvent(types.TokenTypeCircle),
		messages.NewTimeoutEvent(4),
	}, events)

	entries := recorder.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, recordedEntry{direction: journal.DirectionReceived, literal: "send:weapon"}, entries[2])
}

func TestPeer_closedLocally(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	peer := NewPeer(NewPeerOptions{Conn: local, InboundQueue: queue.NewInMemoryQueue[messages.Event](8)})

	errChan := make(chan error, 1)
	go func() {
		errChan <- peer.HandleEvents(context.Background())
	}()

	require.NoError(t, peer.Close())
	select {
	case err := <-errChan:
		var closedLocally *ErrConnectionClosedLocally
		assert.True(t, errors.As(err, &closedLocally), "unexpected error: %v", err)
		assert.True(t, IsConnectionClosed(err))
	case <-time.After(time.Second):
		t.Fatal("receiver did not stop after close")
	}

	err := peer.SendEvent(messages.NewWinEvent())
	var closedLocally *ErrConnectionClosedLocally
	assert.True(t, errors.As(err, &closedLocally))
}

func TestPeer_contextCancel(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	peer := NewPeer(NewPeerOptions{Conn: local, InboundQueue: queue.NewInMemoryQueue[messages.Event](8)})

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- peer.HandleEvents(ctx)
	}()
	cancel()

	select {
	case err := <-errChan:
		var closedLocally *ErrConnectionClosedLocally
		assert.True(t, errors.As(err, &closedLocally), "unexpected error: %v", err)
	case <-time.After(time.Second):
		t.Fatal("receiver did not stop after cancel")
	}
}

func TestPeer_SendEvent(t *testing.T) {
	local, remote := net.Pipe()
	defer remote.Close()
	recorder := &fakeRecorder{}
	peer := NewPeer(NewPeerOptions{Conn: local, InboundQueue: queue.NewInMemoryQueue[messages.Event](8), Journal: recorder})
	defer peer.Close()

	lines := make(chan string, 2)
	go func() {
		reader := bufio.NewReader(remote)
		for i := 0; i < 2; i++ {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			lines <- line
		}
	}()

	require.NoError(t, peer.SendEvent(messages.NewSendEvent(types.TokenTypeSquare)))
	require.NoError(t, peer.SendEvent(messages.NewTimeoutEvent(0)))
	assert.Equal(t, "send:square\n", <-lines)
	assert.Equal(t, "timeout:0\n", <-lines)

	// invalid events never reach the wire
	assert.Error(t, peer.SendEvent(messages.NewSendEvent(types.TokenTypeWeapon)))

	assert.Equal(t, []recordedEntry{
		{direction: journal.DirectionSent, literal: "send:square"},
		{direction: journal.DirectionSent, literal: "timeout:0"},
	}, recorder.Entries())
}

func TestSendEvent_peerGone(t *testing.T) {
	local, remote := net.Pipe()
	remote.Close()
	peer := NewPeer(NewPeerOptions{Conn: local, InboundQueue: queue.NewInMemoryQueue[messages.Event](8)})
	defer peer.Close()

	assert.Error(t, peer.SendEvent(messages.NewFreezeEvent()))
}
