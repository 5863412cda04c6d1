package constants

import "time"

const (
	// DefaultPort is the well-known port the host listens on
	DefaultPort int = 12345

	// ScreenWidth is the default viewport width
	ScreenWidth float64 = 640.0
	// ScreenHeight is the default viewport height
	ScreenHeight float64 = 480.0
	// TicksPerSecond is the rate of the foreground loop
	TicksPerSecond int = 60

	// ObjectSize is the width and height of a token
	ObjectSize float64 = 50.0
	// ObjectGap is the horizontal gap between arranged tokens
	ObjectGap float64 = 10.0
	// BottomMargin is the distance between the arranged row and the bottom edge
	BottomMargin float64 = 20.0
	// AnimationSpeed is how far an incoming token moves per tick
	AnimationSpeed float64 = 10.0
	// CollisionCellSize is the cell size of the hit-test space
	CollisionCellSize int = 16

	// InitialEach is the number of squares and of circles each pool starts with
	InitialEach int = 5
	// WeaponStreak is the number of consecutive sends that grants a weapon
	WeaponStreak int = 2

	// RoundDuration is the length of a round
	RoundDuration time.Duration = 60 * time.Second
	// FreezeDuration is how long a freeze suspends interaction
	FreezeDuration time.Duration = 5 * time.Second
	// NoticeDuration is how long a rejection notice is displayed
	NoticeDuration time.Duration = 2 * time.Second

	// InboundQueueSize bounds the number of decoded events waiting for the next tick
	InboundQueueSize int = 1024
)

// Player facing texts
const (
	NoticeCannotSend   = "Cannot send this shape!"
	ResultWin          = "You win!"
	ResultLoss         = "You lose!"
	ResultTie          = "It's a tie!"
	ResultPending      = "Time's up! Waiting for opponent..."
	ResultDisconnected = "Disconnected"
	WaitingText        = "Waiting for host to start..."
)
