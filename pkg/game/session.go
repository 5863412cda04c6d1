package game

import (
	"time"

	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/kinematic"
	"github.com/cbodonnell/swipeduel/pkg/log"
	"github.com/cbodonnell/swipeduel/pkg/messages"
	"github.com/cbodonnell/swipeduel/pkg/repositories/models"
	"github.com/cbodonnell/swipeduel/pkg/workers"
)

// beginRound moves a fresh session into its first state for the role.
func (gm *GameManager) beginRound(now time.Time) {
	if gm.session.Role != types.RoleHost {
		gm.session.State = types.SessionStateWaitingToStart
		return
	}
	if !gm.send(messages.NewStartEvent()) {
		return
	}
	gm.session.State = types.SessionStatePlaying
	gm.session.StartTime = now
	log.Info("Round %s started", gm.session.RoundID)
}

// restart resets pool and session to the initial composition and begins a new round.
func (gm *GameManager) restart(now time.Time) {
	gm.session.Reset()
	gm.selection.Clear()
	gm.registry.Reset(constants.InitialEach)
	gm.registry.Arrange(gm.viewportWidth, gm.viewportHeight, 0)
	log.Info("Round restarted as %s", gm.session.RoundID)
	gm.beginRound(now)
}

func (gm *GameManager) applyEvent(now time.Time, event messages.Event) {
	if gm.session.Outcome == types.OutcomeDisconnected {
		return
	}
	log.Debug("Applying event %s in state %s", event, gm.session.State)

	switch event.Type {
	case messages.EventTypeStart:
		gm.handleStart(now)
	case messages.EventTypeSend:
		gm.handleIncomingToken(event.TokenType)
	case messages.EventTypeWin:
		gm.handleOpponentWin()
	case messages.EventTypeTimeout:
		gm.handleOpponentTimeout(event.Count)
	case messages.EventTypeFreeze:
		gm.handleFreeze(now)
	case messages.EventTypeRestart:
		gm.restart(now)
	default:
		log.Warn("Unhandled event type: %s", event.Type)
	}
}

func (gm *GameManager) handleStart(now time.Time) {
	if gm.session.Role == types.RoleHost || gm.session.State != types.SessionStateWaitingToStart {
		log.Debug("Ignoring start in state %s", gm.session.State)
		return
	}
	gm.session.State = types.SessionStatePlaying
	gm.session.StartTime = now
	log.Info("Round %s started", gm.session.RoundID)
}

// handleIncomingToken only accepts tokens during play. The host always sends start
// first, so a send seen while waiting belongs to a round that was restarted.
func (gm *GameManager) handleIncomingToken(tokenType types.TokenType) {
	if gm.session.State != types.SessionStatePlaying {
		log.Debug("Ignoring incoming %s in state %s", tokenType, gm.session.State)
		return
	}
	startX := gm.session.Role.IncomingStartX(constants.ObjectSize, gm.viewportWidth)
	token := gm.registry.AddIncoming(tokenType, startX, RowY(gm.viewportHeight))
	gm.session.SendStreak = 0
	log.Debug("Incoming %s token %d", tokenType, token.ID)
}

// handleOpponentWin ends the round as a loss. A win also settles a round still
// waiting on the opponent timeout, since the winner never reports a count.
func (gm *GameManager) handleOpponentWin() {
	playing := gm.session.State == types.SessionStatePlaying
	pending := gm.session.IsEnded() && gm.session.Outcome == types.OutcomePending
	if !playing && !pending {
		log.Debug("Ignoring win in state %s with outcome %s", gm.session.State, gm.session.Outcome)
		return
	}
	gm.endRound(types.OutcomeLoss)
}

func (gm *GameManager) handleFreeze(now time.Time) {
	if gm.session.State != types.SessionStatePlaying {
		log.Debug("Ignoring freeze in state %s", gm.session.State)
		return
	}
	gm.session.FrozenUntil = now.Add(constants.FreezeDuration)
	gm.selection.Clear()
	log.Debug("Frozen until %s", gm.session.FrozenUntil)
}

// handleOpponentTimeout stores the opponent count. If the local timer has not fired yet
// it fires now so the opponent can resolve the round too.
func (gm *GameManager) handleOpponentTimeout(count int) {
	if gm.session.OpponentReportedCount != nil {
		log.Debug("Ignoring repeated timeout")
		return
	}
	switch {
	case gm.session.State == types.SessionStatePlaying:
		gm.session.OpponentReportedCount = &count
		gm.fireLocalTimeout()
	case gm.session.IsEnded() && gm.session.Outcome == types.OutcomePending:
		gm.session.OpponentReportedCount = &count
		gm.resolveTimeout()
	default:
		log.Debug("Ignoring timeout in state %s", gm.session.State)
	}
}

func (gm *GameManager) checkRoundTimer(now time.Time) {
	if gm.session.State != types.SessionStatePlaying || gm.session.StartTime.IsZero() {
		return
	}
	if now.Sub(gm.session.StartTime) < constants.RoundDuration {
		return
	}
	gm.fireLocalTimeout()
}

// fireLocalTimeout captures the local count, reports it and ends the round.
func (gm *GameManager) fireLocalTimeout() {
	count := gm.registry.Count(gm.session.SendableType())
	gm.session.LocalReportedCount = &count
	if !gm.send(messages.NewTimeoutEvent(count)) {
		return
	}
	gm.endRound(types.OutcomePending)
	gm.resolveTimeout()
}

func (gm *GameManager) resolveTimeout() {
	local, opponent := gm.session.LocalReportedCount, gm.session.OpponentReportedCount
	if local == nil || opponent == nil {
		return
	}
	gm.session.Outcome = types.CompareCounts(*local, *opponent)
	log.Info("Round %s timed out with %d against %d: %s", gm.session.RoundID, *local, *opponent, gm.session.Outcome)
}

func (gm *GameManager) endRound(outcome types.Outcome) {
	gm.session.State = types.SessionStateRoundEnded
	gm.session.Outcome = outcome
	gm.selection.Clear()
	log.Info("Round %s ended: %s", gm.session.RoundID, outcome)
}

// handleTransfer applies a token crossing the send edge.
func (gm *GameManager) handleTransfer(now time.Time, attempt *TransferAttempt) {
	token, ok := gm.registry.Get(attempt.TokenID)
	if !ok {
		return
	}
	sendable := gm.session.SendableType()

	switch token.Type {
	case types.TokenTypeWeapon:
		gm.registry.Remove(token.ID)
		gm.send(messages.NewFreezeEvent())
	case sendable:
		gm.registry.Remove(token.ID)
		if !gm.send(messages.NewSendEvent(token.Type)) {
			return
		}
		gm.session.SendStreak++
		if gm.session.SendStreak > 0 && gm.session.SendStreak%constants.WeaponStreak == 0 {
			weapon := gm.registry.Add(types.TokenTypeWeapon, kinematic.Vector{})
			log.Debug("Streak of %d granted weapon %d", gm.session.SendStreak, weapon.ID)
		}
		if gm.registry.Count(sendable) == 0 {
			if !gm.send(messages.NewWinEvent()) {
				return
			}
			gm.endRound(types.OutcomeWin)
		}
	default:
		x := gm.session.Role.InsideSendEdge(constants.ObjectSize, gm.viewportWidth)
		gm.registry.MoveTo(token.ID, kinematic.Vector{X: x, Y: token.Position.Y})
		gm.session.Notice = constants.NoticeCannotSend
		gm.session.NoticeExpiry = now.Add(constants.NoticeDuration)
	}
}

// recordResult hands a decided outcome to the save worker once per round.
func (gm *GameManager) recordResult(now time.Time) {
	session := gm.session
	if session.ResultRecorded || !session.Outcome.Decided() {
		return
	}
	session.ResultRecorded = true
	if gm.saveRoundResultChan == nil {
		return
	}

	localCount := gm.registry.Count(session.SendableType())
	if session.LocalReportedCount != nil {
		localCount = *session.LocalReportedCount
	}
	result := &models.RoundResult{
		RoundID:       session.RoundID.String(),
		Role:          session.Role.String(),
		Outcome:       session.Outcome.String(),
		LocalCount:    localCount,
		OpponentCount: session.OpponentReportedCount,
		FinishedAt:    now.UnixMilli(),
	}
	select {
	case gm.saveRoundResultChan <- workers.SaveRoundResultRequest{Result: result}:
	default:
		log.Warn("Dropping round result %s: save queue is full", result.RoundID)
	}
}
