package messages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cbodonnell/swipeduel/pkg/game/types"
)

// ErrMalformedEvent is returned when a received literal is not a valid event.
type ErrMalformedEvent struct {
	Literal string
	Reason  string
}

func (e *ErrMalformedEvent) Error() string {
	return fmt.Sprintf("malformed event %q: %s", e.Literal, e.Reason)
}

// EncodeEvent returns the literal form of an event without the delimiter.
func EncodeEvent(e Event) (string, error) {
	switch e.Type {
	case EventTypeStart, EventTypeWin, EventTypeFreeze, EventTypeRestart:
		return e.Type.String(), nil
	case EventTypeSend:
		if !e.TokenType.Transferable() {
			return "", fmt.Errorf("token type %s cannot be sent", e.TokenType)
		}
		return LiteralSend + ":" + e.TokenType.String(), nil
	case EventTypeTimeout:
		if e.Count < 0 {
			return "", fmt.Errorf("timeout count must not be negative: %d", e.Count)
		}
		return LiteralTimeout + ":" + strconv.Itoa(e.Count), nil
	default:
		return "", fmt.Errorf("unknown event type: %d", e.Type)
	}
}

// MarshalEvent returns the wire form of an event including the delimiter.
func MarshalEvent(e Event) ([]byte, error) {
	literal, err := EncodeEvent(e)
	if err != nil {
		return nil, err
	}
	return append([]byte(literal), EventDelimiter), nil
}

// DecodeEvent parses a single literal. Surrounding whitespace, including the
// delimiter, is ignored.
func DecodeEvent(literal string) (Event, error) {
	trimmed := strings.TrimSpace(literal)
	name, arg, hasArg := strings.Cut(trimmed, ":")

	switch name {
	case LiteralStart, LiteralWin, LiteralFreeze, LiteralRestart:
		if hasArg {
			return Event{}, &ErrMalformedEvent{Literal: trimmed, Reason: "unexpected argument"}
		}
		switch name {
		case LiteralStart:
			return NewStartEvent(), nil
		case LiteralWin:
			return NewWinEvent(), nil
		case LiteralFreeze:
			return NewFreezeEvent(), nil
		default:
			return NewRestartEvent(), nil
		}
	case LiteralSend:
		if !hasArg {
			return Event{}, &ErrMalformedEvent{Literal: trimmed, Reason: "missing token type"}
		}
		tokenType, err := types.ParseTokenType(arg)
		if err != nil || !tokenType.Transferable() {
			return Event{}, &ErrMalformedEvent{Literal: trimmed, Reason: "invalid token type"}
		}
		return NewSendEvent(tokenType), nil
	case LiteralTimeout:
		if !hasArg {
			return Event{}, &ErrMalformedEvent{Literal: trimmed, Reason: "missing count"}
		}
		count, err := strconv.Atoi(arg)
		if err != nil || count < 0 {
			return Event{}, &ErrMalformedEvent{Literal: trimmed, Reason: "invalid count"}
		}
		return NewTimeoutEvent(count), nil
	default:
		return Event{}, &ErrMalformedEvent{Literal: trimmed, Reason: "unknown event"}
	}
}
