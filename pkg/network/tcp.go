package network

import (
	"context"
	"fmt"
	"net"

	"github.com/cbodonnell/swipeduel/pkg/log"
)

// ListenTCP listens on port and returns the first accepted connection.
func ListenTCP(ctx context.Context, port int) (net.Conn, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on TCP port %d: %v", port, err)
	}
	log.Info("TCP listener waiting for a peer on %s", listener.Addr())
	return AcceptOne(ctx, listener)
}

// AcceptOne accepts exactly one connection and closes the listener.
func AcceptOne(ctx context.Context, listener net.Listener) (net.Conn, error) {
	defer listener.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-stop:
		}
	}()

	conn, err := listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to accept TCP connection: %v", err)
	}
	log.Info("Accepted peer %s", conn.RemoteAddr())
	return conn, nil
}

// DialTCP connects to a listening peer.
func DialTCP(ctx context.Context, addr string) (net.Conn, error) {
	log.Info("Connecting to TCP peer at %s", addr)
	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to peer: %v", err)
	}
	return conn, nil
}
