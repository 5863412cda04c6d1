package types

// TokenSnapshot is the render view of a token.
type TokenSnapshot struct {
	ID       uint32  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Incoming bool    `json:"incoming"`
	Selected bool    `json:"selected"`
}

// Snapshot is a read-only view of the game published once per tick.
type Snapshot struct {
	Timestamp        int64           `json:"timestamp"`
	RoundID          string          `json:"roundID"`
	Role             string          `json:"role"`
	State            string          `json:"state"`
	Outcome          string          `json:"outcome"`
	Tokens           []TokenSnapshot `json:"tokens"`
	Notice           string          `json:"notice,omitempty"`
	NoticeExpiry     int64           `json:"noticeExpiry,omitempty"`
	Frozen           bool            `json:"frozen"`
	RemainingSeconds float64         `json:"remainingSeconds"`
	ResultText       string          `json:"resultText,omitempty"`
	SendStreak       int             `json:"sendStreak"`
	SendableType     string          `json:"sendableType"`
	SendableCount    int             `json:"sendableCount"`
}

// Copy returns a deep copy of the snapshot
func (s *Snapshot) Copy() *Snapshot {
	c := *s
	c.Tokens = make([]TokenSnapshot, len(s.Tokens))
	copy(c.Tokens, s.Tokens)
	return &c
}
