package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/cbodonnell/swipeduel/pkg/log"
	"nhooyr.io/websocket"
)

// ListenWS serves a WebSocket upgrade at / on port and returns the first
// accepted connection as a text message stream. Later upgrade attempts are rejected.
func ListenWS(ctx context.Context, port int) (net.Conn, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on WebSocket port %d: %v", port, err)
	}
	log.Info("WebSocket listener waiting for a peer on %s", listener.Addr())
	return AcceptOneWS(ctx, listener)
}

// AcceptOneWS serves upgrades on listener until one peer connects.
func AcceptOneWS(ctx context.Context, listener net.Listener) (net.Conn, error) {
	connChan := make(chan net.Conn, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("Failed to accept WebSocket connection: %v", err)
			return
		}
		// the request context ends with this handler, so the stream is bound to ctx
		conn := websocket.NetConn(ctx, c, websocket.MessageText)
		select {
		case connChan <- conn:
			log.Info("Accepted WebSocket peer %s", r.RemoteAddr)
		default:
			log.Warn("Rejecting additional WebSocket peer %s", r.RemoteAddr)
			c.Close(websocket.StatusPolicyViolation, "a peer is already connected")
		}
	})

	server := &http.Server{Handler: mux}
	errChan := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()
	defer server.Close()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errChan:
		return nil, fmt.Errorf("WebSocket server error: %v", err)
	case conn := <-connChan:
		return conn, nil
	}
}

// DialWS connects to a peer serving WebSocket upgrades.
func DialWS(ctx context.Context, url string) (net.Conn, error) {
	log.Info("Connecting to WebSocket peer at %s", url)
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to peer: %v", err)
	}
	return websocket.NetConn(ctx, c, websocket.MessageText), nil
}
