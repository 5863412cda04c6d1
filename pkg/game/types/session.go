package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is fixed for the lifetime of a connection.
type Role uint8

const (
	RoleHost Role = iota
	RoleClient
)

func (r Role) String() string {
	switch r {
	case RoleHost:
		return "host"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "host":
		return RoleHost, nil
	case "client":
		return RoleClient, nil
	default:
		return 0, fmt.Errorf("unknown role: %s", s)
	}
}

// SendableType is the token type this role scores with.
func (r Role) SendableType() TokenType {
	if r == RoleHost {
		return TokenTypeSquare
	}
	return TokenTypeCircle
}

// CrossedSendEdge reports whether a token at x has left the viewport through the send edge.
// The host sends through the right edge and the client through the left edge.
func (r Role) CrossedSendEdge(x, size, viewportWidth float64) bool {
	if r == RoleHost {
		return x+size > viewportWidth
	}
	return x < 0
}

// InsideSendEdge returns the x coordinate just inside the send edge.
func (r Role) InsideSendEdge(size, viewportWidth float64) float64 {
	if r == RoleHost {
		return viewportWidth - size
	}
	return 0
}

// IncomingStartX returns where a received token appears: just outside the edge opposite the send edge.
func (r Role) IncomingStartX(size, viewportWidth float64) float64 {
	if r == RoleHost {
		return -size
	}
	return viewportWidth
}

type SessionState uint8

const (
	SessionStateWaitingToStart SessionState = iota
	SessionStatePlaying
	SessionStateRoundEnded
	SessionStateRestarting
)

func (s SessionState) String() string {
	switch s {
	case SessionStateWaitingToStart:
		return "waiting"
	case SessionStatePlaying:
		return "playing"
	case SessionStateRoundEnded:
		return "ended"
	case SessionStateRestarting:
		return "restarting"
	default:
		return "unknown"
	}
}

type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomePending
	OutcomeWin
	OutcomeLoss
	OutcomeTie
	OutcomeDisconnected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomePending:
		return "pending"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeTie:
		return "tie"
	case OutcomeDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Decided reports whether the outcome names a result of the round.
func (o Outcome) Decided() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomeTie
}

// CompareCounts resolves a timed out round: fewer sendable tokens wins.
func CompareCounts(local, opponent int) Outcome {
	switch {
	case local < opponent:
		return OutcomeWin
	case local > opponent:
		return OutcomeLoss
	default:
		return OutcomeTie
	}
}

type Session struct {
	Role    Role
	State   SessionState
	Outcome Outcome
	RoundID uuid.UUID
	// StartTime is zero until the round timer is running
	StartTime   time.Time
	FrozenUntil time.Time
	SendStreak  int
	// LocalReportedCount is set once the local timeout has fired
	LocalReportedCount *int
	// OpponentReportedCount is set once a timeout event was received
	OpponentReportedCount *int
	Notice                string
	NoticeExpiry          time.Time
	// ResultRecorded is set once the decided outcome was handed to the save worker
	ResultRecorded bool
}

func NewSession(role Role) *Session {
	return &Session{
		Role:    role,
		State:   SessionStateWaitingToStart,
		RoundID: uuid.New(),
	}
}

// Reset clears everything but the role and starts a new round id.
func (s *Session) Reset() {
	*s = Session{
		Role:    s.Role,
		State:   SessionStateRestarting,
		RoundID: uuid.New(),
	}
}

func (s *Session) SendableType() TokenType {
	return s.Role.SendableType()
}

func (s *Session) IsFrozen(now time.Time) bool {
	return !s.FrozenUntil.IsZero() && now.Before(s.FrozenUntil)
}

func (s *Session) IsEnded() bool {
	return s.State == SessionStateRoundEnded
}

// Remaining returns the time left in the round, or the full duration if the timer has not started.
func (s *Session) Remaining(now time.Time, duration time.Duration) time.Duration {
	if s.StartTime.IsZero() {
		return duration
	}
	remaining := duration - now.Sub(s.StartTime)
	if remaining < 0 {
		return 0
	}
	return remaining
}
