package game

import (
	"context"
	"sync"
	"time"

	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/kinematic"
	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/messages"
	"github.com/cbodonnell/swipeduel/pkg/network"
	"github.com/cbodonnell/swipeduel/pkg/queue"
	"github.com/cbodonnell/swipeduel/pkg/state"
	"github.com/cbodonnell/swipeduel/pkg/workers"
)

// GameManager owns the pool, the selection and the session of one peer.
// Every entry point holds lock, so the receiver and the foreground loop never interleave.
type GameManager struct {
	lock                sync.Mutex
	sender              network.EventSender
	inboundQueue        queue.Queue[messages.Event]
	pointer             PointerProvider
	stateManager        state.StateManager
	saveRoundResultChan chan<- workers.SaveRoundResultRequest
	viewportWidth       float64
	viewportHeight      float64
	gameLoopInterval    time.Duration

	registry  *Registry
	selection *Selection
	session   *types.Session
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	Role         types.Role
	Sender       network.EventSender
	InboundQueue queue.Queue[messages.Event]
	// Pointer is optional; without it no token is ever selected
	Pointer PointerProvider
	// StateManager is optional
	StateManager state.StateManager
	// SaveRoundResultChan is optional
	SaveRoundResultChan chan<- workers.SaveRoundResultRequest
	ViewportWidth       float64
	ViewportHeight      float64
	GameLoopInterval    time.Duration
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = constants.ScreenWidth
	}
	if opts.ViewportHeight <= 0 {
		opts.ViewportHeight = constants.ScreenHeight
	}
	if opts.GameLoopInterval <= 0 {
		opts.GameLoopInterval = time.Second / time.Duration(constants.TicksPerSecond)
	}

	registry := NewRegistry(opts.ViewportWidth, opts.ViewportHeight)
	registry.Reset(constants.InitialEach)
	registry.Arrange(opts.ViewportWidth, opts.ViewportHeight, 0)

	return &GameManager{
		sender:              opts.Sender,
		inboundQueue:        opts.InboundQueue,
		pointer:             opts.Pointer,
		stateManager:        opts.StateManager,
		saveRoundResultChan: opts.SaveRoundResultChan,
		viewportWidth:       opts.ViewportWidth,
		viewportHeight:      opts.ViewportHeight,
		gameLoopInterval:    opts.GameLoopInterval,
		registry:            registry,
		selection:           NewSelection(),
		session:             types.NewSession(opts.Role),
	}
}

// Begin starts the first round once the connection is up.
// The host starts its timer and sends start; the client waits for it.
func (gm *GameManager) Begin(now time.Time) {
	gm.lock.Lock()
	defer gm.lock.Unlock()

	gm.beginRound(now)
	gm.publishSnapshot(now)
}

// Start runs the game loop until ctx is done. It is used when no front-end drives Tick.
func (gm *GameManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			gm.Tick(t)
		}
	}
}

// Tick runs one iteration of the game loop.
func (gm *GameManager) Tick(now time.Time) {
	gm.lock.Lock()
	defer gm.lock.Unlock()

	gm.processInboundEvents(now)
	gm.expireNotice(now)
	gm.checkRoundTimer(now)
	gm.updateSelection(now)
	gm.updateObjects()
	gm.recordResult(now)
	gm.publishSnapshot(now)
}

// Restart resets the round on both peers.
func (gm *GameManager) Restart(now time.Time) {
	gm.lock.Lock()
	defer gm.lock.Unlock()

	if gm.session.Outcome == types.OutcomeDisconnected {
		log.Warn("Ignoring restart after disconnect")
		return
	}
	if !gm.send(messages.NewRestartEvent()) {
		return
	}
	gm.restart(now)
	gm.publishSnapshot(now)
}

// Disconnect ends the session after a transport failure.
func (gm *GameManager) Disconnect(err error) {
	gm.lock.Lock()
	defer gm.lock.Unlock()

	gm.disconnect(err)
}

// Snapshot builds the current render view.
func (gm *GameManager) Snapshot(now time.Time) *types.Snapshot {
	gm.lock.Lock()
	defer gm.lock.Unlock()

	return gm.buildSnapshot(now)
}

func (gm *GameManager) processInboundEvents(now time.Time) {
	if gm.inboundQueue == nil {
		return
	}
	events, err := gm.inboundQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read inbound events: %v", err)
		return
	}
	for _, event := range events {
		gm.applyEvent(now, event)
	}
}

func (gm *GameManager) expireNotice(now time.Time) {
	if gm.session.Notice != "" && !now.Before(gm.session.NoticeExpiry) {
		gm.session.Notice = ""
		gm.session.NoticeExpiry = time.Time{}
	}
}

func (gm *GameManager) updateSelection(now time.Time) {
	if gm.session.State != types.SessionStatePlaying || gm.session.IsFrozen(now) {
		gm.selection.Clear()
		return
	}

	var position kinematic.Vector
	present := false
	if gm.pointer != nil {
		position, present = gm.pointer.Poll()
	}

	attempt := gm.selection.Update(position, present, gm.registry, gm.session.Role, gm.viewportWidth)
	if attempt != nil {
		gm.handleTransfer(now, attempt)
	}
}

// updateObjects refreshes incoming targets, animates, then lays out the idle row.
func (gm *GameManager) updateObjects() {
	selectedID := gm.selection.TokenID()
	gm.registry.Arrange(gm.viewportWidth, gm.viewportHeight, selectedID)
	gm.registry.Tick()
	gm.registry.Arrange(gm.viewportWidth, gm.viewportHeight, selectedID)
}

// send writes an event and ends the session if the transport fails.
func (gm *GameManager) send(event messages.Event) bool {
	if gm.sender == nil {
		return true
	}
	if err := gm.sender.SendEvent(event); err != nil {
		log.Error("Failed to send %s: %v", event, err)
		gm.disconnect(err)
		return false
	}
	return true
}

func (gm *GameManager) disconnect(err error) {
	if gm.session.Outcome == types.OutcomeDisconnected {
		return
	}
	log.Info("Session disconnected: %v", err)
	gm.session.State = types.SessionStateRoundEnded
	gm.session.Outcome = types.OutcomeDisconnected
	gm.selection.Clear()
}

func (gm *GameManager) publishSnapshot(now time.Time) {
	if gm.stateManager == nil {
		return
	}
	if err := gm.stateManager.Set(context.Background(), gm.buildSnapshot(now)); err != nil {
		log.Error("Failed to publish snapshot: %v", err)
	}
}

func (gm *GameManager) buildSnapshot(now time.Time) *types.Snapshot {
	session := gm.session
	selectedID := gm.selection.TokenID()

	tokens := make([]types.TokenSnapshot, 0, gm.registry.Len())
	for _, token := range gm.registry.Tokens() {
		tokens = append(tokens, types.TokenSnapshot{
			ID:       token.ID,
			Type:     token.Type.String(),
			X:        token.Position.X,
			Y:        token.Position.Y,
			Incoming: token.Animation == types.AnimationStateIncoming,
			Selected: token.ID == selectedID,
		})
	}

	snapshot := &types.Snapshot{
		Timestamp:        now.UnixMilli(),
		RoundID:          session.RoundID.String(),
		Role:             session.Role.String(),
		State:            session.State.String(),
		Outcome:          session.Outcome.String(),
		Tokens:           tokens,
		Notice:           session.Notice,
		Frozen:           session.IsFrozen(now),
		RemainingSeconds: session.Remaining(now, constants.RoundDuration).Seconds(),
		ResultText:       resultText(session),
		SendStreak:       session.SendStreak,
		SendableType:     session.SendableType().String(),
		SendableCount:    gm.registry.Count(session.SendableType()),
	}
	if session.Notice != "" {
		snapshot.NoticeExpiry = session.NoticeExpiry.UnixMilli()
	}
	return snapshot
}

func resultText(session *types.Session) string {
	switch session.Outcome {
	case types.OutcomeWin:
		return constants.ResultWin
	case types.OutcomeLoss:
		return constants.ResultLoss
	case types.OutcomeTie:
		return constants.ResultTie
	case types.OutcomePending:
		return constants.ResultPending
	case types.OutcomeDisconnected:
		return constants.ResultDisconnected
	}
	if session.State == types.SessionStateWaitingToStart {
		return constants.WaitingText
	}
	return ""
}
