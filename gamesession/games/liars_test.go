package games

import (
	"context"
	"testing"

	"croupier/domain/testhelpers"
	"croupier/gamesession"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rigLiars pins the table rank and both hands so claims resolve
// deterministically, and raises thresholds so nobody is eliminated unless a
// test lowers them again.
func rigLiars(s *gamesession.Session, tableRank int, hands map[int64][]int) {
	state := s.ModuleState.(*liarsState)
	state.tableRank = tableRank
	for _, p := range s.Players() {
		ps := p.State.(*liarsPlayer)
		ps.threshold = thresholdRange + 1
		if hand, ok := hands[p.UserID]; ok {
			ps.hand = append([]int(nil), hand...)
		}
	}
}

func liarsPlayerState(s *gamesession.Session, userID int64) *liarsPlayer {
	for _, p := range s.Players() {
		if p.UserID == userID {
			return p.State.(*liarsPlayer)
		}
	}
	return nil
}

func TestLiarsCaughtBluffPenalizesClaimant(t *testing.T) {
	ctx := context.Background()
	s := startSession(t, LiarsTable{}, testhelpers.NewFakeLedgerStore(),
		[]int64{100, 200}, []int64{0, 0})
	rigLiars(s, 7, map[int64][]int{
		100: {3, 4, 5, 9, rankKing},
		200: {2, 2, 6, 8, 10},
	})

	require.NoError(t, s.Action(ctx, 100, gamesession.Action{Type: ActionClaim, Cards: []int{3}}))
	require.NoError(t, s.Action(ctx, 200, gamesession.Action{Type: ActionChallenge}))

	assert.Equal(t, 1, liarsPlayerState(s, 100).counter, "caught claimant takes the penalty")
	assert.Equal(t, 0, liarsPlayerState(s, 200).counter)

	last := s.Snapshot().LastAction
	assert.Equal(t, false, last["honest"])
	assert.Equal(t, int64(100), last["penalized"])
}

func TestLiarsHonestClaimPenalizesChallenger(t *testing.T) {
	ctx := context.Background()
	s := startSession(t, LiarsTable{}, testhelpers.NewFakeLedgerStore(),
		[]int64{100, 200}, []int64{0, 0})
	rigLiars(s, 7, map[int64][]int{
		100: {7, 4, 5, 9, rankKing},
		200: {2, 2, 6, 8, 10},
	})

	require.NoError(t, s.Action(ctx, 100, gamesession.Action{Type: ActionClaim, Cards: []int{7}}))
	require.NoError(t, s.Action(ctx, 200, gamesession.Action{Type: ActionChallenge}))

	assert.Equal(t, 0, liarsPlayerState(s, 100).counter)
	assert.Equal(t, 1, liarsPlayerState(s, 200).counter, "wrong challenge takes the penalty")
	assert.Equal(t, true, s.Snapshot().LastAction["honest"])
}

func TestLiarsJokersAreWild(t *testing.T) {
	ctx := context.Background()
	s := startSession(t, LiarsTable{}, testhelpers.NewFakeLedgerStore(),
		[]int64{100, 200}, []int64{0, 0})
	rigLiars(s, 7, map[int64][]int{
		100: {rankJoker, 4, 5, 9, rankKing},
		200: {2, 2, 6, 8, 10},
	})

	require.NoError(t, s.Action(ctx, 100, gamesession.Action{Type: ActionClaim, Cards: []int{rankJoker}}))
	require.NoError(t, s.Action(ctx, 200, gamesession.Action{Type: ActionChallenge}))

	assert.Equal(t, true, s.Snapshot().LastAction["honest"], "a joker satisfies any table rank")
	assert.Equal(t, 1, liarsPlayerState(s, 200).counter)
}

// Playing a claim over an open one silently accepts it: no penalty fires and
// the new claim replaces the old.
func TestLiarsTacitAccept(t *testing.T) {
	ctx := context.Background()
	s := startSession(t, LiarsTable{}, testhelpers.NewFakeLedgerStore(),
		[]int64{100, 200, 300}, []int64{0, 0, 0})
	rigLiars(s, 7, map[int64][]int{
		100: {3, 4, 5, 9, rankKing},
		200: {2, 2, 6, 8, 10},
		300: {7, 7, 6, 8, 10},
	})

	require.NoError(t, s.Action(ctx, 100, gamesession.Action{Type: ActionClaim, Cards: []int{3}}))
	require.NoError(t, s.Action(ctx, 200, gamesession.Action{Type: ActionClaim, Cards: []int{2}}))

	assert.Equal(t, 0, liarsPlayerState(s, 100).counter, "accepted bluff goes unpunished")

	state := s.ModuleState.(*liarsState)
	require.NotNil(t, state.pending)
	assert.Equal(t, int64(200), state.pending.claimantID)
}

func TestLiarsChallengeWithoutClaimRejected(t *testing.T) {
	ctx := context.Background()
	s := startSession(t, LiarsTable{}, testhelpers.NewFakeLedgerStore(),
		[]int64{100, 200}, []int64{0, 0})

	err := s.Action(ctx, 100, gamesession.Action{Type: ActionChallenge})
	assert.ErrorContains(t, err, "no claim to challenge")
}

func TestLiarsCannotPlayUnheldCards(t *testing.T) {
	ctx := context.Background()
	s := startSession(t, LiarsTable{}, testhelpers.NewFakeLedgerStore(),
		[]int64{100, 200}, []int64{0, 0})
	rigLiars(s, 7, map[int64][]int{100: {3, 4, 5, 9, rankKing}})

	err := s.Action(ctx, 100, gamesession.Action{Type: ActionClaim, Cards: []int{rankQueen}})
	assert.ErrorContains(t, err, "do not hold")
	assert.Len(t, liarsPlayerState(s, 100).hand, 5, "rejected claim leaves the hand intact")
}

// A player whose counter reaches their threshold is out on that exact event,
// not before or after.
func TestLiarsThresholdExactness(t *testing.T) {
	p := &gamesession.Player{Alive: true, State: &liarsPlayer{threshold: 2}}
	g := LiarsTable{}

	assert.False(t, g.penalize(p), "first penalty is below the threshold")
	assert.True(t, p.Alive)

	assert.True(t, g.penalize(p), "second penalty hits threshold 2 exactly")
	assert.False(t, p.Alive)
}

func TestLiarsRiskPct(t *testing.T) {
	g := LiarsTable{}
	p := &gamesession.Player{State: &liarsPlayer{}}

	assert.InDelta(t, 1.0/6, g.RiskPct(nil, p), 1e-9)

	p.State.(*liarsPlayer).counter = 4
	assert.InDelta(t, 0.5, g.RiskPct(nil, p), 1e-9)

	p.State.(*liarsPlayer).counter = 5
	assert.InDelta(t, 1.0, g.RiskPct(nil, p), 1e-9)
}

// Elimination of the second-to-last player ends the game and pays the pot to
// the survivor.
func TestLiarsEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewFakeLedgerStore()
	store.Bank = 5000
	store.Accounts[100] = 1000
	store.Accounts[200] = 1000

	s := startSession(t, LiarsTable{}, store, []int64{100, 200}, []int64{1000, 1000})
	rigLiars(s, 7, map[int64][]int{
		100: {3, 4, 5, 9, rankKing},
		200: {2, 2, 6, 8, 10},
	})
	liarsPlayerState(s, 100).threshold = 1 // first penalty eliminates

	require.NoError(t, s.Action(ctx, 100, gamesession.Action{Type: ActionClaim, Cards: []int{3}}))
	require.NoError(t, s.Action(ctx, 200, gamesession.Action{Type: ActionChallenge}))

	assert.Equal(t, gamesession.StateEnded, s.State())
	assert.Equal(t, int64(2000), store.Balance(200), "survivor takes both stakes")
	assert.Equal(t, int64(5000), store.BankBalance())
}
