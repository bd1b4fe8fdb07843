package games

import (
	"math/rand"
)

// Card ranks. Jokers are wild and match any table rank.
const (
	rankJoker = 0
	rankAce   = 1
	rankJack  = 11
	rankQueen = 12
	rankKing  = 13
)

var rankNames = map[int]string{
	rankJoker: "Joker",
	rankAce:   "A",
	2:         "2",
	3:         "3",
	4:         "4",
	5:         "5",
	6:         "6",
	7:         "7",
	8:         "8",
	9:         "9",
	10:        "10",
	rankJack:  "J",
	rankQueen: "Q",
	rankKing:  "K",
}

// RankName returns the display name for a card rank.
func RankName(rank int) string {
	if name, ok := rankNames[rank]; ok {
		return name
	}
	return "?"
}

// newDeck builds a shuffled deck of four of each rank plus the requested
// number of jokers, represented as ranks only. Suits carry no meaning in any
// of our games.
func newDeck(rng *rand.Rand, jokers int) []int {
	deck := make([]int, 0, 52+jokers)
	for rank := rankAce; rank <= rankKing; rank++ {
		for i := 0; i < 4; i++ {
			deck = append(deck, rank)
		}
	}
	for i := 0; i < jokers; i++ {
		deck = append(deck, rankJoker)
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// draw removes and returns the top n cards, reshuffling a fresh deck of the
// same composition when the current one runs dry.
func draw(deck *[]int, n int, rng *rand.Rand, jokers int) []int {
	if len(*deck) < n {
		*deck = newDeck(rng, jokers)
	}
	cards := append([]int(nil), (*deck)[:n]...)
	*deck = (*deck)[n:]
	return cards
}

// handValue scores a blackjack hand: face cards count 10, aces count 11
// while the total stays at or under 21.
func handValue(hand []int) int {
	total := 0
	aces := 0
	for _, rank := range hand {
		switch {
		case rank == rankAce:
			aces++
			total += 11
		case rank >= 10:
			total += 10
		default:
			total += rank
		}
	}
	for aces > 0 && total > 21 {
		total -= 10
		aces--
	}
	return total
}

// removeCards removes each card of take from hand, one occurrence per
// requested card. Returns false without mutating when the hand does not hold
// all of them.
func removeCards(hand []int, take []int) ([]int, bool) {
	remaining := append([]int(nil), hand...)
	for _, card := range take {
		found := false
		for i, held := range remaining {
			if held == card {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return hand, false
		}
	}
	return remaining, true
}
