package workers

import (
	"context"

	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/repositories"
	"github.com/cbodonnell/swipeduel/pkg/repositories/models"
)

type SaveRoundResultWorker struct {
	repository          repositories.Repository
	saveRoundResultChan <-chan SaveRoundResultRequest
}

type NewSaveRoundResultWorkerOptions struct {
	Repository          repositories.Repository
	SaveRoundResultChan <-chan SaveRoundResultRequest
}

type SaveRoundResultRequest struct {
	Result *models.RoundResult
}

// NewSaveRoundResultWorker creates a new SaveRoundResultWorker.
// The worker persists the results the game loop hands off once a round is decided.
func NewSaveRoundResultWorker(opts NewSaveRoundResultWorkerOptions) *SaveRoundResultWorker {
	return &SaveRoundResultWorker{
		repository:          opts.Repository,
		saveRoundResultChan: opts.SaveRoundResultChan,
	}
}

func (w *SaveRoundResultWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest, ok := <-w.saveRoundResultChan:
			if !ok {
				return
			}
			w.saveRoundResult(ctx, saveRequest)
		}
	}
}

func (w *SaveRoundResultWorker) saveRoundResult(ctx context.Context, saveRequest SaveRoundResultRequest) {
	if saveRequest.Result == nil {
		log.Warn("Ignoring empty save request")
		return
	}
	err := w.repository.SaveRoundResult(ctx, saveRequest.Result)
	if err != nil {
		log.Error("Failed to save round result %s: %v", saveRequest.Result.RoundID, err)
		return
	}
	log.Debug("Saved round result %s (%s)", saveRequest.Result.RoundID, saveRequest.Result.Outcome)
}
