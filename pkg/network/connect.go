package network

import (
	"context"
	"fmt"
	"net"

	"github.com/cbodonnell/swipeduel/pkg/game/types"
)

// Transport selects how the event stream is carried.
type Transport string

const (
	TransportTCP       Transport = "tcp"
	TransportWebSocket Transport = "ws"
)

func ParseTransport(s string) (Transport, error) {
	switch Transport(s) {
	case TransportTCP, TransportWebSocket:
		return Transport(s), nil
	default:
		return "", fmt.Errorf("unknown transport: %s", s)
	}
}

type ConnectOptions struct {
	Role      types.Role
	Host      string
	Port      int
	Transport Transport
}

// Connect establishes the single peer connection for a role.
// The host listens and the client dials.
func Connect(ctx context.Context, opts ConnectOptions) (net.Conn, error) {
	switch opts.Transport {
	case TransportWebSocket:
		if opts.Role == types.RoleHost {
			return ListenWS(ctx, opts.Port)
		}
		return DialWS(ctx, fmt.Sprintf("ws://%s:%d/", opts.Host, opts.Port))
	case TransportTCP, "":
		if opts.Role == types.RoleHost {
			return ListenTCP(ctx, opts.Port)
		}
		return DialTCP(ctx, net.JoinHostPort(opts.Host, fmt.Sprint(opts.Port)))
	default:
		return nil, fmt.Errorf("unknown transport: %s", opts.Transport)
	}
}
