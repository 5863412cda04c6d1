package network

// ErrConnectionClosedByPeer is returned when the remote peer closes the connection
type ErrConnectionClosedByPeer struct{}

func (e *ErrConnectionClosedByPeer) Error() string {
	return "connection closed by peer"
}

// ErrConnectionClosedLocally is returned when the connection was closed on this side
type ErrConnectionClosedLocally struct{}

func (e *ErrConnectionClosedLocally) Error() string {
	return "connection closed locally"
}

// IsConnectionClosed reports whether err ends a session without being a transport fault.
func IsConnectionClosed(err error) bool {
	switch err.(type) {
	case *ErrConnectionClosedByPeer, *ErrConnectionClosedLocally:
		return true
	default:
		return false
	}
}
