package repositories

import (
	"context"

	"github.com/cbodonnell/swipeduel/pkg/repositories/models"
)

const (
	// DefaultListLimit is used when a non-positive limit is requested
	DefaultListLimit = 20
)

type Repository interface {
	Close(ctx context.Context) error
	// SaveRoundResult inserts a result or replaces the one with the same round id.
	SaveRoundResult(ctx context.Context, result *models.RoundResult) error
	// ListRoundResults returns the most recently finished rounds first.
	ListRoundResults(ctx context.Context, limit int) ([]*models.RoundResult, error)
	GetRoundResult(ctx context.Context, roundID string) (*models.RoundResult, error)
}
