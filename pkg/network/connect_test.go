package network

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/messages"
	"github.com/cbodonnell/swipeduel/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exchange sends one event from each side and checks it arrives on the other.
func exchange(t *testing.T, hostConn, clientConn net.Conn) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hostQueue := queue.NewInMemoryQueue[messages.Event](8)
	clientQueue := queue.NewInMemoryQueue[messages.Event](8)
	host := NewPeer(NewPeerOptions{Conn: hostConn, InboundQueue: hostQueue})
	client := NewPeer(NewPeerOptions{Conn: clientConn, InboundQueue: clientQueue})
	defer host.Close()
	defer client.Close()

	go host.HandleEvents(ctx)
	go client.HandleEvents(ctx)

	require.NoError(t, host.SendEvent(messages.NewStartEvent()))
	require.NoError(t, client.SendEvent(messages.NewSendEvent(types.TokenTypeCircle)))

	waitFor := func(q *queue.InMemoryQueue[messages.Event]) []messages.Event {
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if q.Size() > 0 {
				events, err := q.ReadAllMessages()
				require.NoError(t, err)
				return events
			}
			time.Sleep(5 * time.Millisecond)
		}
		return nil
	}
	assert.Equal(t, []messages.Event{messages.NewStartEvent()}, waitFor(clientQueue))
	assert.Equal(t, []messages.Event{messages.NewSendEvent(types.TokenTypeCircle)}, waitFor(hostQueue))
}

func TestAcceptOne_TCP(t *testing.T) {
	ctx := context.Background()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := AcceptOne(ctx, listener)
		if err != nil {
			t.Errorf("accept failed: %v", err)
			close(accepted)
			return
		}
		accepted <- conn
	}()

	clientConn, err := DialTCP(ctx, listener.Addr().String())
	require.NoError(t, err)
	hostConn, ok := <-accepted
	require.True(t, ok)

	exchange(t, hostConn, clientConn)
}

func TestAcceptOne_cancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = AcceptOne(ctx, listener)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAcceptOneWS(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := AcceptOneWS(ctx, listener)
		if err != nil {
			t.Errorf("accept failed: %v", err)
			close(accepted)
			return
		}
		accepted <- conn
	}()

	clientConn, err := DialWS(ctx, "ws://"+listener.Addr().String()+"/")
	require.NoError(t, err)
	hostConn, ok := <-accepted
	require.True(t, ok)

	exchange(t, hostConn, clientConn)
}

func TestParseTransport(t *testing.T) {
	transport, err := ParseTransport("ws")
	assert.NoError(t, err)
	assert.Equal(t, TransportWebSocket, transport)

	_, err = ParseTransport("udp")
	assert.Error(t, err)
}
