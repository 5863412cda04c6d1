package types

import (
	"fmt"

	"github.com/cbodonnell/swipeduel/pkg/kinematic"
	"github.com/solarlune/resolv"
)

const (
	CollisionSpaceTagToken   string = "token"
	CollisionSpaceTagPointer string = "pointer"
)

// TokenType is the kind of a token.
type TokenType uint8

const (
	TokenTypeSquare TokenType = iota
	TokenTypeCircle
	TokenTypeWeapon
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeSquare:
		return "square"
	case TokenTypeCircle:
		return "circle"
	case TokenTypeWeapon:
		return "weapon"
	default:
		return "unknown"
	}
}

// Transferable reports whether tokens of this type may travel over the wire.
func (t TokenType) Transferable() bool {
	return t == TokenTypeSquare || t == TokenTypeCircle
}

// ParseTokenType parses the wire name of a token type.
func ParseTokenType(s string) (TokenType, error) {
	switch s {
	case "square":
		return TokenTypeSquare, nil
	case "circle":
		return TokenTypeCircle, nil
	case "weapon":
		return TokenTypeWeapon, nil
	default:
		return 0, fmt.Errorf("unknown token type: %s", s)
	}
}

// AnimationState tells whether a token is at rest in the pool or still flying in.
type AnimationState uint8

const (
	AnimationStateIdle AnimationState = iota
	AnimationStateIncoming
)

func (a AnimationState) String() string {
	switch a {
	case AnimationStateIdle:
		return "idle"
	case AnimationStateIncoming:
		return "incoming"
	default:
		return "unknown"
	}
}

type Token struct {
	ID        uint32
	Type      TokenType
	Position  kinematic.Vector
	Animation AnimationState
	// Target is the slot an incoming token is heading for
	Target kinematic.Vector
	// Object mirrors the token bounds in the registry collision space
	Object *resolv.Object
}

func (t *Token) IsIdle() bool {
	return t.Animation == AnimationStateIdle
}

// Contains reports whether a point lies inside the token bounds.
func (t *Token) Contains(point kinematic.Vector, size float64) bool {
	return point.X >= t.Position.X && point.X <= t.Position.X+size &&
		point.Y >= t.Position.Y && point.Y <= t.Position.Y+size
}
