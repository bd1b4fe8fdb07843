package games

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"croupier/domain/services"
	"croupier/domain/testhelpers"
	"croupier/gamesession"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeed = 7

// startSession builds a playing session over an in-memory ledger. userIDs[0]
// is the host; stakes index-matches userIDs, zero meaning free play.
func startSession(t *testing.T, module gamesession.Module, store *testhelpers.FakeLedgerStore, userIDs []int64, stakes []int64) *gamesession.Session {
	t.Helper()
	ctx := context.Background()

	deps := gamesession.Deps{
		UowFactory:    &testhelpers.FakeUowFactory{Store: store},
		FeePolicy:     services.FeePolicy{Mode: services.CombineModeMax},
		Registry:      gamesession.NewRegistry(),
		Renderer:      gamesession.NopRenderer{},
		TurnTimeout:   time.Hour,
		ScriptedDelay: time.Hour,
		Rand:          rand.New(rand.NewSource(testSeed)),
	}

	s, err := gamesession.New(deps, module, 1, 1, userIDs[0], "host", 0, false)
	require.NoError(t, err)
	for _, id := range userIDs[1:] {
		require.NoError(t, s.Join(ctx, id, "player", 0))
	}
	for i, id := range userIDs {
		require.NoError(t, s.SetStake(ctx, id, stakes[i]))
	}
	require.NoError(t, s.Start(ctx, userIDs[0]))
	return s
}

func TestCatalog(t *testing.T) {
	assert.Equal(t, []string{"blackjack", "liars", "roulette", "streak"}, Names())

	m, ok := ByName("liars")
	require.True(t, ok)
	assert.Equal(t, "liars", m.Name())

	_, ok = ByName("poker")
	assert.False(t, ok)
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name     string
		hand     []int
		expected int
	}{
		{name: "faces count ten", hand: []int{rankKing, rankQueen}, expected: 20},
		{name: "ace counts eleven", hand: []int{rankAce, 9}, expected: 20},
		{name: "ace demotes past 21", hand: []int{rankAce, 9, 5}, expected: 15},
		{name: "two aces", hand: []int{rankAce, rankAce, 9}, expected: 21},
		{name: "blackjack", hand: []int{rankAce, rankKing}, expected: 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handValue(tt.hand))
		})
	}
}

func TestRemoveCards(t *testing.T) {
	hand := []int{7, 7, 3, rankJoker}

	got, ok := removeCards(hand, []int{7, rankJoker})
	require.True(t, ok)
	assert.ElementsMatch(t, []int{7, 3}, got)

	_, ok = removeCards(hand, []int{7, 7, 7})
	assert.False(t, ok, "only two sevens held")
	assert.Len(t, hand, 4, "failed removal must not mutate the hand")
}
