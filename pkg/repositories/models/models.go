package models

// RoundResult is the persisted outcome of one decided round.
type RoundResult struct {
	RoundID string `json:"round_id"`
	Role    string `json:"role"`
	Outcome string `json:"outcome"`
	// LocalCount is the number of sendable tokens left in the local pool
	LocalCount int `json:"local_count"`
	// OpponentCount is only known for rounds that ended on the timer
	OpponentCount *int `json:"opponent_count,omitempty"`
	// FinishedAt is a unix timestamp in milliseconds
	FinishedAt int64 `json:"finished_at"`
}
