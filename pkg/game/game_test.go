package game

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	mocks "github.com/cbodonnell/swipeduel/mocks/github.com/cbodonnell/swipeduel/pkg/network"
	"github.com/cbodonnell/swipeduel/pkg/game/constants"
	"github.com/cbodonnell/swipeduel/pkg/game/types"
	"github.com/cbodonnell/swipeduel/pkg/kinematic"
	"github.com/cbodonnell/swipeduel/pkg/messages"
	"github.com/cbodonnell/swipeduel/pkg/network"
	"github.com/cbodonnell/swipeduel/pkg/queue"
	"github.com/cbodonnell/swipeduel/pkg/state"
	"github.com/cbodonnell/swipeduel/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Unix(1_700_000_000, 0)

type testPointer struct {
	position kinematic.Vector
	present  bool
}

func (p *testPointer) Poll() (kinematic.Vector, bool) {
	return p.position, p.present
}

type testGame struct {
	gm           *GameManager
	inbound      *queue.InMemoryQueue[messages.Event]
	pointer      *testPointer
	results      chan workers.SaveRoundResultRequest
	stateManager *state.InMemoryStateManager
}

func newTestGame(role types.Role, sender network.EventSender) *testGame {
	g := &testGame{
		inbound:      queue.NewInMemoryQueue[messages.Event](constants.InboundQueueSize),
		pointer:      &testPointer{},
		results:      make(chan workers.SaveRoundResultRequest, 4),
		stateManager: state.NewInMemoryStateManager(),
	}
	g.gm = NewGameManager(NewGameManagerOptions{
		Role:                role,
		Sender:              sender,
		InboundQueue:        g.inbound,
		Pointer:             g.pointer,
		StateManager:        g.stateManager,
		SaveRoundResultChan: g.results,
		ViewportWidth:       testWidth,
		ViewportHeight:      testHeight,
	})
	return g
}

// tick runs one game loop iteration and checks the arrangement holds afterwards.
func (g *testGame) tick(t *testing.T, now time.Time) {
	t.Helper()
	g.gm.Tick(now)
	assertArranged(t, g.gm.registry, g.gm.selection.TokenID())
}

func (g *testGame) receive(t *testing.T, events ...messages.Event) {
	t.Helper()
	for _, event := range events {
		require.NoError(t, g.inbound.Enqueue(event))
	}
}

func (g *testGame) firstIdle(t *testing.T, tokenType types.TokenType) *types.Token {
	t.Helper()
	for _, token := range g.gm.registry.Tokens() {
		if token.Type == tokenType && token.IsIdle() {
			return token
		}
	}
	t.Fatalf("no idle %s token", tokenType)
	return nil
}

func (g *testGame) sendEdgePoint() kinematic.Vector {
	if g.gm.session.Role == types.RoleHost {
		return kinematic.Vector{X: testWidth - 10, Y: 200}
	}
	return kinematic.Vector{X: 10, Y: 200}
}

// swipe picks the first idle token of a type and drags it through the send edge.
func (g *testGame) swipe(t *testing.T, tokenType types.TokenType, now time.Time) uint32 {
	t.Helper()
	token := g.firstIdle(t, tokenType)
	g.pointer.position = centerOf(token)
	g.pointer.present = true
	g.tick(t, now)
	require.Equal(t, token.ID, g.gm.selection.TokenID())

	g.pointer.position = g.sendEdgePoint()
	g.tick(t, now)
	g.pointer.present = false
	return token.ID
}

func (g *testGame) snapshot(t *testing.T) *types.Snapshot {
	t.Helper()
	snapshot, err := g.stateManager.Get(context.Background())
	require.NoError(t, err)
	return snapshot
}

func TestGameManager_hostBegin(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)
	assert.Equal(t, t0, g.gm.session.StartTime)

	snapshot := g.snapshot(t)
	assert.Equal(t, "playing", snapshot.State)
	assert.Equal(t, "host", snapshot.Role)
	assert.Equal(t, "square", snapshot.SendableType)
	assert.Equal(t, constants.InitialEach, snapshot.SendableCount)
	assert.Len(t, snapshot.Tokens, 2*constants.InitialEach)
	assert.Equal(t, constants.RoundDuration.Seconds(), snapshot.RemainingSeconds)
}

func TestGameManager_clientWaitsForStart(t *testing.T) {
	sender := mocks.NewEventSender(t)
	g := newTestGame(types.RoleClient, sender)
	g.gm.Begin(t0)

	assert.Equal(t, types.SessionStateWaitingToStart, g.gm.session.State)
	assert.Equal(t, constants.WaitingText, g.snapshot(t).ResultText)

	// a pointer over a token does nothing before the round starts
	g.pointer.position = centerOf(g.firstIdle(t, types.TokenTypeCircle))
	g.pointer.present = true
	g.tick(t, t0)
	assert.False(t, g.gm.selection.HasSelection())

	started := t0.Add(time.Second)
	g.receive(t, messages.NewStartEvent())
	g.tick(t, started)
	assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)
	assert.Equal(t, started, g.gm.session.StartTime)
	assert.True(t, g.gm.selection.HasSelection())
}

func TestGameManager_sendSquare(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()
	sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeSquare)).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	id := g.swipe(t, types.TokenTypeSquare, t0.Add(time.Second))

	_, ok := g.gm.registry.Get(id)
	assert.False(t, ok)
	assert.Equal(t, constants.InitialEach-1, g.gm.registry.Count(types.TokenTypeSquare))
	// other types are never reduced by a send
	assert.Equal(t, constants.InitialEach, g.gm.registry.Count(types.TokenTypeCircle))
	assert.Equal(t, 0, g.gm.registry.Count(types.TokenTypeWeapon))
	assert.Equal(t, 1, g.gm.session.SendStreak)
	assert.False(t, g.gm.selection.HasSelection())
	assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)
}

func TestGameManager_clientSendsCircle(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeCircle)).Return(nil).Once()

	g := newTestGame(types.RoleClient, sender)
	g.gm.Begin(t0)
	g.receive(t, messages.NewStartEvent())
	g.tick(t, t0)

	g.swipe(t, types.TokenTypeCircle, t0.Add(time.Second))
	assert.Equal(t, constants.InitialEach-1, g.gm.registry.Count(types.TokenTypeCircle))
	assert.Equal(t, constants.InitialEach, g.gm.registry.Count(types.TokenTypeSquare))
}

func TestGameManager_weaponGrant(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()
	sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeSquare)).Return(nil).Times(4)

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)
	now := t0.Add(time.Second)

	wantStreak := []int{1, 2, 1, 2}
	wantWeapons := []int{0, 1, 1, 2}
	for i := range wantStreak {
		if i == 2 {
			// an accepted inbound transfer resets the streak
			g.receive(t, messages.NewSendEvent(types.TokenTypeCircle))
			g.tick(t, now)
			assert.Equal(t, 0, g.gm.session.SendStreak)
		}
		g.swipe(t, types.TokenTypeSquare, now)
		assert.Equal(t, wantStreak[i], g.gm.session.SendStreak, "send %d", i+1)
		assert.Equal(t, wantWeapons[i], g.gm.registry.Count(types.TokenTypeWeapon), "send %d", i+1)
	}
}

func TestGameManager_weaponSendsFreeze(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()
	sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeSquare)).Return(nil).Times(2)
	sender.EXPECT().SendEvent(messages.NewFreezeEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)
	now := t0.Add(time.Second)

	g.swipe(t, types.TokenTypeSquare, now)
	g.swipe(t, types.TokenTypeSquare, now)
	require.Equal(t, 1, g.gm.registry.Count(types.TokenTypeWeapon))

	g.swipe(t, types.TokenTypeWeapon, now)
	assert.Equal(t, 0, g.gm.registry.Count(types.TokenTypeWeapon))
	assert.Equal(t, 2, g.gm.session.SendStreak)
	assert.Equal(t, constants.InitialEach-2, g.gm.registry.Count(types.TokenTypeSquare))
	assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)
}

func TestGameManager_win(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()
	sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeSquare)).Return(nil).Times(constants.InitialEach)
	sender.EXPECT().SendEvent(messages.NewWinEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)
	now := t0.Add(time.Second)

	for i := 0; i < constants.InitialEach; i++ {
		g.swipe(t, types.TokenTypeSquare, now)
	}

	assert.Equal(t, types.SessionStateRoundEnded, g.gm.session.State)
	assert.Equal(t, types.OutcomeWin, g.gm.session.Outcome)
	assert.Equal(t, constants.ResultWin, g.snapshot(t).ResultText)

	require.Len(t, g.results, 1)
	result := (<-g.results).Result
	assert.Equal(t, g.gm.session.RoundID.String(), result.RoundID)
	assert.Equal(t, "win", result.Outcome)
	assert.Equal(t, "host", result.Role)
	assert.Equal(t, 0, result.LocalCount)
	assert.Nil(t, result.OpponentCount)

	// the result is handed off once per round
	g.tick(t, now.Add(time.Second))
	assert.Len(t, g.results, 0)

	// no selection once the round ended
	g.pointer.position = centerOf(g.firstIdle(t, types.TokenTypeCircle))
	g.pointer.present = true
	g.tick(t, now.Add(2*time.Second))
	assert.False(t, g.gm.selection.HasSelection())
}

func TestGameManager_bounce(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)
	now := t0.Add(time.Second)

	id := g.swipe(t, types.TokenTypeCircle, now)

	token, ok := g.gm.registry.Get(id)
	require.True(t, ok)
	assert.True(t, token.IsIdle())
	assert.Equal(t, constants.InitialEach, g.gm.registry.Count(types.TokenTypeCircle))
	assert.Equal(t, 0, g.gm.session.SendStreak)
	assert.False(t, g.gm.selection.HasSelection())

	snapshot := g.snapshot(t)
	assert.Equal(t, constants.NoticeCannotSend, snapshot.Notice)
	assert.Equal(t, now.Add(constants.NoticeDuration).UnixMilli(), snapshot.NoticeExpiry)

	g.tick(t, now.Add(constants.NoticeDuration-time.Millisecond))
	assert.Equal(t, constants.NoticeCannotSend, g.snapshot(t).Notice)
	g.tick(t, now.Add(constants.NoticeDuration))
	assert.Empty(t, g.snapshot(t).Notice)
}

func TestGameManager_bounceMovesInsideSendEdge(t *testing.T) {
	tests := []struct {
		name  string
		role  types.Role
		wantX float64
	}{
		{name: "host", role: types.RoleHost, wantX: testWidth - constants.ObjectSize},
		{name: "client", role: types.RoleClient, wantX: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(tt.role, nil)
			g.gm.session.State = types.SessionStatePlaying
			wrongType := types.TokenTypeCircle
			if tt.role == types.RoleClient {
				wrongType = types.TokenTypeSquare
			}
			token := g.firstIdle(t, wrongType)

			g.gm.handleTransfer(t0, &TransferAttempt{TokenID: token.ID})
			assert.Equal(t, tt.wantX, token.Position.X)
			assert.Equal(t, constants.NoticeCannotSend, g.gm.session.Notice)
		})
	}
}

func TestGameManager_freeze(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	frozenAt := t0.Add(10 * time.Second)
	g.pointer.position = centerOf(g.firstIdle(t, types.TokenTypeSquare))
	g.pointer.present = true
	g.receive(t, messages.NewFreezeEvent())
	g.tick(t, frozenAt)
	assert.False(t, g.gm.selection.HasSelection())
	assert.True(t, g.snapshot(t).Frozen)

	g.tick(t, frozenAt.Add(constants.FreezeDuration-time.Millisecond))
	assert.False(t, g.gm.selection.HasSelection())

	g.tick(t, frozenAt.Add(constants.FreezeDuration))
	assert.True(t, g.gm.selection.HasSelection())
	assert.False(t, g.snapshot(t).Frozen)
}

func TestGameManager_freezeClearsSelection(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	g.pointer.position = centerOf(g.firstIdle(t, types.TokenTypeSquare))
	g.pointer.present = true
	g.tick(t, t0)
	require.True(t, g.gm.selection.HasSelection())

	g.receive(t, messages.NewFreezeEvent())
	g.tick(t, t0)
	assert.False(t, g.gm.selection.HasSelection())
}

func TestGameManager_timeout(t *testing.T) {
	tests := []struct {
		name          string
		opponentCount int
		remoteFirst   bool
		want          types.Outcome
	}{
		{name: "local first fewer", opponentCount: 6, want: types.OutcomeWin},
		{name: "local first more", opponentCount: 4, want: types.OutcomeLoss},
		{name: "local first equal", opponentCount: 5, want: types.OutcomeTie},
		{name: "remote first fewer", opponentCount: 6, remoteFirst: true, want: types.OutcomeWin},
		{name: "remote first more", opponentCount: 4, remoteFirst: true, want: types.OutcomeLoss},
		{name: "remote first equal", opponentCount: 5, remoteFirst: true, want: types.OutcomeTie},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := mocks.NewEventSender(t)
			sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()
			sender.EXPECT().SendEvent(messages.NewTimeoutEvent(constants.InitialEach)).Return(nil).Once()

			g := newTestGame(types.RoleHost, sender)
			g.gm.Begin(t0)

			if tt.remoteFirst {
				g.receive(t, messages.NewTimeoutEvent(tt.opponentCount))
				g.tick(t, t0.Add(30*time.Second))
			} else {
				g.tick(t, t0.Add(constants.RoundDuration-time.Millisecond))
				assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)

				g.tick(t, t0.Add(constants.RoundDuration))
				assert.Equal(t, types.SessionStateRoundEnded, g.gm.session.State)
				assert.Equal(t, types.OutcomePending, g.gm.session.Outcome)
				assert.Equal(t, constants.ResultPending, g.snapshot(t).ResultText)
				assert.Len(t, g.results, 0)

				g.receive(t, messages.NewTimeoutEvent(tt.opponentCount))
				g.tick(t, t0.Add(constants.RoundDuration+time.Second))
			}

			assert.Equal(t, types.SessionStateRoundEnded, g.gm.session.State)
			assert.Equal(t, tt.want, g.gm.session.Outcome)

			require.Len(t, g.results, 1)
			result := (<-g.results).Result
			assert.Equal(t, tt.want.String(), result.Outcome)
			assert.Equal(t, constants.InitialEach, result.LocalCount)
			require.NotNil(t, result.OpponentCount)
			assert.Equal(t, tt.opponentCount, *result.OpponentCount)

			// later timers and timeouts change nothing
			g.receive(t, messages.NewTimeoutEvent(0))
			g.tick(t, t0.Add(2*constants.RoundDuration))
			assert.Equal(t, tt.want, g.gm.session.Outcome)
		})
	}
}

func TestCompareCounts(t *testing.T) {
	for local := 0; local <= 3; local++ {
		for opponent := 0; opponent <= 3; opponent++ {
			got := types.CompareCounts(local, opponent)
			switch {
			case local < opponent:
				assert.Equal(t, types.OutcomeWin, got)
			case local > opponent:
				assert.Equal(t, types.OutcomeLoss, got)
			default:
				assert.Equal(t, types.OutcomeTie, got)
			}
		}
	}
}

func TestGameManager_opponentWin(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	g.receive(t, messages.NewWinEvent())
	g.tick(t, t0.Add(time.Second))
	assert.Equal(t, types.SessionStateRoundEnded, g.gm.session.State)
	assert.Equal(t, types.OutcomeLoss, g.gm.session.Outcome)
	assert.Equal(t, constants.ResultLoss, g.snapshot(t).ResultText)

	// a send arriving after the round ended is ignored
	g.receive(t, messages.NewSendEvent(types.TokenTypeCircle))
	g.tick(t, t0.Add(2*time.Second))
	assert.Equal(t, 2*constants.InitialEach, g.gm.registry.Len())
	assert.Len(t, g.results, 1)
}

func TestGameManager_opponentWinAfterLocalTimeout(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()
	sender.EXPECT().SendEvent(messages.NewTimeoutEvent(constants.InitialEach)).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	g.tick(t, t0.Add(constants.RoundDuration))
	require.Equal(t, types.OutcomePending, g.gm.session.Outcome)

	// the opponent emptied its pool before its own timer and never reports a count
	g.receive(t, messages.NewWinEvent())
	g.tick(t, t0.Add(constants.RoundDuration+time.Second))
	assert.Equal(t, types.SessionStateRoundEnded, g.gm.session.State)
	assert.Equal(t, types.OutcomeLoss, g.gm.session.Outcome)
	assert.Equal(t, constants.ResultLoss, g.snapshot(t).ResultText)

	require.Len(t, g.results, 1)
	assert.Equal(t, types.OutcomeLoss.String(), (<-g.results).Result.Outcome)

	// a late timeout does not reopen the result
	g.receive(t, messages.NewTimeoutEvent(0))
	g.tick(t, t0.Add(constants.RoundDuration+2*time.Second))
	assert.Equal(t, types.OutcomeLoss, g.gm.session.Outcome)
}

func TestGameManager_staleEventsAfterClientRestart(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewRestartEvent()).Return(nil).Once()

	g := newTestGame(types.RoleClient, sender)
	g.gm.Begin(t0)
	g.receive(t, messages.NewStartEvent())
	g.tick(t, t0)
	require.Equal(t, types.SessionStatePlaying, g.gm.session.State)

	g.gm.Restart(t0.Add(time.Second))
	require.Equal(t, types.SessionStateWaitingToStart, g.gm.session.State)

	// events the host sent before it saw our restart, then its new start
	g.receive(t,
		messages.NewSendEvent(types.TokenTypeSquare),
		messages.NewWinEvent(),
		messages.NewStartEvent(),
	)
	g.tick(t, t0.Add(2*time.Second))

	assertInitialRound(t, g)
	assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)
	assert.Equal(t, t0.Add(2*time.Second), g.gm.session.StartTime)
	assert.Len(t, g.results, 0)
}

func TestGameManager_restart(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, g *testGame)
	}{
		{
			name:  "fresh round",
			setup: func(t *testing.T, g *testGame) {},
		},
		{
			name: "after sends and a weapon grant",
			setup: func(t *testing.T, g *testGame) {
				g.swipe(t, types.TokenTypeSquare, t0)
				g.swipe(t, types.TokenTypeSquare, t0)
				g.receive(t, messages.NewSendEvent(types.TokenTypeCircle))
				g.tick(t, t0)
			},
		},
		{
			name: "while frozen with a notice",
			setup: func(t *testing.T, g *testGame) {
				g.swipe(t, types.TokenTypeCircle, t0)
				g.receive(t, messages.NewFreezeEvent())
				g.tick(t, t0)
			},
		},
		{
			name: "after a timeout",
			setup: func(t *testing.T, g *testGame) {
				g.tick(t, t0.Add(constants.RoundDuration))
			},
		},
		{
			name: "after a loss",
			setup: func(t *testing.T, g *testGame) {
				g.receive(t, messages.NewWinEvent())
				g.tick(t, t0)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := mocks.NewEventSender(t)
			sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Times(2)
			sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeSquare)).Return(nil).Maybe()
			sender.EXPECT().SendEvent(messages.NewTimeoutEvent(constants.InitialEach)).Return(nil).Maybe()
			sender.EXPECT().SendEvent(messages.NewRestartEvent()).Return(nil).Once()

			g := newTestGame(types.RoleHost, sender)
			g.gm.Begin(t0)
			previousRound := g.gm.session.RoundID
			tt.setup(t, g)

			restartedAt := t0.Add(2 * constants.RoundDuration)
			g.gm.Restart(restartedAt)

			assertInitialRound(t, g)
			assert.NotEqual(t, previousRound, g.gm.session.RoundID)
			assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)
			assert.Equal(t, restartedAt, g.gm.session.StartTime)
			assert.Equal(t, "playing", g.snapshot(t).State)
		})
	}
}

func assertInitialRound(t *testing.T, g *testGame) {
	t.Helper()
	session := g.gm.session
	assert.Equal(t, 2*constants.InitialEach, g.gm.registry.Len())
	assert.Equal(t, constants.InitialEach, g.gm.registry.Count(types.TokenTypeSquare))
	assert.Equal(t, constants.InitialEach, g.gm.registry.Count(types.TokenTypeCircle))
	assert.Equal(t, 0, g.gm.registry.Count(types.TokenTypeWeapon))
	assert.Equal(t, 0, session.SendStreak)
	assert.True(t, session.FrozenUntil.IsZero())
	assert.Nil(t, session.LocalReportedCount)
	assert.Nil(t, session.OpponentReportedCount)
	assert.Empty(t, session.Notice)
	assert.Equal(t, types.OutcomeNone, session.Outcome)
	assert.False(t, g.gm.selection.HasSelection())
	for _, token := range g.gm.registry.Tokens() {
		assert.True(t, token.IsIdle())
	}
}

func TestGameManager_restartReceivedByClient(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeCircle)).Return(nil).Once()

	g := newTestGame(types.RoleClient, sender)
	g.gm.Begin(t0)
	g.receive(t, messages.NewStartEvent())
	g.tick(t, t0)
	g.swipe(t, types.TokenTypeCircle, t0)

	g.receive(t, messages.NewRestartEvent())
	g.tick(t, t0.Add(time.Second))
	assertInitialRound(t, g)
	assert.Equal(t, types.SessionStateWaitingToStart, g.gm.session.State)
	assert.True(t, g.gm.session.StartTime.IsZero())

	// restart followed by start in the same tick begins the new round
	g.receive(t, messages.NewRestartEvent(), messages.NewStartEvent())
	g.tick(t, t0.Add(2*time.Second))
	assertInitialRound(t, g)
	assert.Equal(t, types.SessionStatePlaying, g.gm.session.State)
}

func TestGameManager_incomingToken(t *testing.T) {
	tests := []struct {
		name      string
		role      types.Role
		tokenType types.TokenType
		startX    float64
	}{
		{name: "host receives circle", role: types.RoleHost, tokenType: types.TokenTypeCircle, startX: -constants.ObjectSize},
		{name: "client receives square", role: types.RoleClient, tokenType: types.TokenTypeSquare, startX: testWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(tt.role, nil)
			g.gm.Begin(t0)
			if tt.role == types.RoleClient {
				g.receive(t, messages.NewStartEvent())
			}

			g.receive(t, messages.NewSendEvent(tt.tokenType))
			g.tick(t, t0)

			require.Equal(t, 2*constants.InitialEach+1, g.gm.registry.Len())
			tokens := g.gm.registry.Tokens()
			incoming := tokens[len(tokens)-1]
			assert.Equal(t, tt.tokenType, incoming.Type)
			assert.Equal(t, types.AnimationStateIncoming, incoming.Animation)
			assert.Equal(t, RowY(testHeight), incoming.Position.Y)

			target := SlotX(testWidth, 2*constants.InitialEach+1, 2*constants.InitialEach)
			assert.Equal(t, target, incoming.Target.X)
			// the first tick already moved it one step away from its entry edge
			step, _ := kinematic.Approach(tt.startX, target, constants.AnimationSpeed)
			assert.Equal(t, step, incoming.Position.X)

			bound := int(math.Ceil(math.Abs(target-tt.startX) / constants.AnimationSpeed))
			ticks := 1
			for incoming.Animation == types.AnimationStateIncoming && ticks <= bound {
				g.tick(t, t0)
				ticks++
			}
			assert.Equal(t, types.AnimationStateIdle, incoming.Animation)
			assert.LessOrEqual(t, ticks, bound)
			assert.Equal(t, target, incoming.Position.X)
		})
	}
}

func TestGameManager_disconnect(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()
	sender.EXPECT().SendEvent(messages.NewSendEvent(types.TokenTypeSquare)).Return(fmt.Errorf("broken pipe")).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	g.swipe(t, types.TokenTypeSquare, t0)
	assert.Equal(t, types.SessionStateRoundEnded, g.gm.session.State)
	assert.Equal(t, types.OutcomeDisconnected, g.gm.session.Outcome)
	assert.Equal(t, constants.ResultDisconnected, g.snapshot(t).ResultText)

	// nothing is applied or sent after a disconnect
	g.receive(t, messages.NewRestartEvent(), messages.NewSendEvent(types.TokenTypeCircle))
	g.tick(t, t0.Add(time.Second))
	g.gm.Restart(t0.Add(2 * time.Second))
	assert.Equal(t, types.OutcomeDisconnected, g.gm.session.Outcome)
	assert.Equal(t, 2*constants.InitialEach-1, g.gm.registry.Len())
	assert.Len(t, g.results, 0)
}

func TestGameManager_receiverDisconnect(t *testing.T) {
	sender := mocks.NewEventSender(t)
	sender.EXPECT().SendEvent(messages.NewStartEvent()).Return(nil).Once()

	g := newTestGame(types.RoleHost, sender)
	g.gm.Begin(t0)

	g.gm.Disconnect(&network.ErrConnectionClosedByPeer{})
	g.tick(t, t0.Add(time.Second))
	snapshot := g.snapshot(t)
	assert.Equal(t, "ended", snapshot.State)
	assert.Equal(t, "disconnected", snapshot.Outcome)

	// the round timer no longer runs
	g.tick(t, t0.Add(2*constants.RoundDuration))
	assert.Equal(t, types.OutcomeDisconnected, g.gm.session.Outcome)
}

func TestGameManager_Start(t *testing.T) {
	g := newTestGame(types.RoleClient, nil)
	g.gm.gameLoopInterval = time.Millisecond
	g.gm.Begin(t0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- g.gm.Start(ctx)
	}()

	require.NoError(t, g.inbound.Enqueue(messages.NewStartEvent()))
	require.Eventually(t, func() bool {
		return g.gm.Snapshot(time.Now()).State == "playing"
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("game loop did not stop")
	}
}
