package messages

import (
	"fmt"

	"github.com/cbodonnell/swipeduel/pkg/game/types"
)

const (
	// MessageBufferSize represents the maximum number of bytes read per receive
	MessageBufferSize = 1024
	// EventDelimiter terminates every encoded event on the wire
	EventDelimiter = '\n'
)

// EventType identifies one of the protocol events exchanged between peers.
type EventType uint8

const (
	EventTypeStart EventType = iota + 1
	EventTypeSend
	EventTypeWin
	EventTypeTimeout
	EventTypeFreeze
	EventTypeRestart
)

// Literal forms of the events
const (
	LiteralStart   = "start"
	LiteralSend    = "send"
	LiteralWin     = "win"
	LiteralTimeout = "timeout"
	LiteralFreeze  = "freeze"
	LiteralRestart = "restart"
)

func (t EventType) String() string {
	switch t {
	case EventTypeStart:
		return LiteralStart
	case EventTypeSend:
		return LiteralSend
	case EventTypeWin:
		return LiteralWin
	case EventTypeTimeout:
		return LiteralTimeout
	case EventTypeFreeze:
		return LiteralFreeze
	case EventTypeRestart:
		return LiteralRestart
	default:
		return "unknown"
	}
}

// Event is a single protocol event.
// TokenType is only meaningful for EventTypeSend and Count only for EventTypeTimeout.
type Event struct {
	Type      EventType
	TokenType types.TokenType
	Count     int
}

func NewStartEvent() Event {
	return Event{Type: EventTypeStart}
}

func NewSendEvent(tokenType types.TokenType) Event {
	return Event{Type: EventTypeSend, TokenType: tokenType}
}

func NewWinEvent() Event {
	return Event{Type: EventTypeWin}
}

func NewTimeoutEvent(count int) Event {
	return Event{Type: EventTypeTimeout, Count: count}
}

func NewFreezeEvent() Event {
	return Event{Type: EventTypeFreeze}
}

func NewRestartEvent() Event {
	return Event{Type: EventTypeRestart}
}

func (e Event) String() string {
	literal, err := EncodeEvent(e)
	if err != nil {
		return fmt.Sprintf("invalid(%s)", e.Type)
	}
	return literal
}
