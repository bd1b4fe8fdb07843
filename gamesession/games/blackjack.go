package games

import (
	"fmt"

	"croupier/gamesession"
)

// Action verbs understood by the blackjack module.
const (
	ActionHit   = "hit"
	ActionStand = "stand"
)

type blackjackState struct {
	deck   []int
	dealer []int
	// dealerDone is set once every player has resolved and the dealer has
	// drawn out their hand.
	dealerDone bool
}

type blackjackPlayer struct {
	hand   []int
	done   bool
	busted bool
}

// Blackjack pits every player against a shared dealer hand. Players hit or
// stand in turn; the dealer then draws to 17. Winners are paid by the bank
// at even money, a natural pays three to two.
type Blackjack struct{}

func (Blackjack) Name() string    { return "blackjack" }
func (Blackjack) MinPlayers() int { return 1 }
func (Blackjack) MaxPlayers() int { return 7 }

func (Blackjack) Init(s *gamesession.Session) {
	rng := s.Rand()
	state := &blackjackState{deck: newDeck(rng, 0)}

	for _, p := range s.Players() {
		p.State = &blackjackPlayer{hand: draw(&state.deck, 2, rng, 0)}
	}
	state.dealer = draw(&state.deck, 2, rng, 0)
	s.ModuleState = state
}

func (g Blackjack) HandleAction(s *gamesession.Session, p *gamesession.Player, a gamesession.Action) (gamesession.ActionOutcome, error) {
	state := s.ModuleState.(*blackjackState)
	ps := p.State.(*blackjackPlayer)

	switch a.Type {
	case ActionHit:
		card := draw(&state.deck, 1, s.Rand(), 0)[0]
		ps.hand = append(ps.hand, card)
		total := handValue(ps.hand)
		info := map[string]any{"card": RankName(card), "total": total}
		if total > 21 {
			ps.busted = true
			g.resolvePlayer(s, p)
			info["busted"] = true
			return gamesession.ActionOutcome{Advance: true, Info: info}, nil
		}
		// Same player keeps deciding.
		return gamesession.ActionOutcome{Info: info}, nil

	case ActionStand:
		g.resolvePlayer(s, p)
		return gamesession.ActionOutcome{
			Advance: true,
			Info:    map[string]any{"total": handValue(ps.hand)},
		}, nil

	default:
		return gamesession.ActionOutcome{}, fmt.Errorf("unknown action %q", a.Type)
	}
}

// resolvePlayer takes the player out of the turn rotation and, when they
// were the last one in, plays out the dealer hand.
func (Blackjack) resolvePlayer(s *gamesession.Session, p *gamesession.Player) {
	p.State.(*blackjackPlayer).done = true
	p.Alive = false

	for _, other := range s.Players() {
		if !other.State.(*blackjackPlayer).done {
			return
		}
	}

	state := s.ModuleState.(*blackjackState)
	rng := s.Rand()
	for handValue(state.dealer) < 17 {
		state.dealer = append(state.dealer, draw(&state.deck, 1, rng, 0)[0])
	}
	state.dealerDone = true
}

func (Blackjack) AutoAction(s *gamesession.Session, p *gamesession.Player) gamesession.Action {
	if handValue(p.State.(*blackjackPlayer).hand) < 17 {
		return gamesession.Action{Type: ActionHit}
	}
	return gamesession.Action{Type: ActionStand}
}

func (Blackjack) Terminal(s *gamesession.Session) bool {
	return s.ModuleState.(*blackjackState).dealerDone
}

// Survivors returns the players who beat the dealer. Settlement money flows
// through BankPayouts; this is for display only.
func (g Blackjack) Survivors(s *gamesession.Session) []*gamesession.Player {
	var winners []*gamesession.Player
	for _, p := range s.Players() {
		if g.payoutFor(s, p) > p.Stake {
			winners = append(winners, p)
		}
	}
	return winners
}

// BankPayouts pays per player against the dealer: even money on a win, the
// stake back on a push, three-to-two on a natural two-card 21.
func (g Blackjack) BankPayouts(s *gamesession.Session) map[int64]int64 {
	payouts := make(map[int64]int64)
	for _, p := range s.Players() {
		if amount := g.payoutFor(s, p); amount > 0 {
			payouts[p.UserID] = amount
		}
	}
	return payouts
}

func (Blackjack) payoutFor(s *gamesession.Session, p *gamesession.Player) int64 {
	state := s.ModuleState.(*blackjackState)
	ps, ok := p.State.(*blackjackPlayer)
	if !ok || p.Stake <= 0 || ps.busted {
		return 0
	}

	playerTotal := handValue(ps.hand)
	dealerTotal := handValue(state.dealer)
	natural := playerTotal == 21 && len(ps.hand) == 2

	switch {
	case natural && dealerTotal != 21:
		return p.Stake + p.Stake*3/2
	case dealerTotal > 21 || playerTotal > dealerTotal:
		return p.Stake * 2
	case playerTotal == dealerTotal:
		return p.Stake
	default:
		return 0
	}
}

func (Blackjack) VisibleInfo(s *gamesession.Session) map[string]any {
	state, ok := s.ModuleState.(*blackjackState)
	if !ok || len(state.dealer) == 0 {
		return nil
	}
	info := map[string]any{"dealer_upcard": RankName(state.dealer[0])}
	if state.dealerDone {
		names := make([]string, len(state.dealer))
		for i, card := range state.dealer {
			names[i] = RankName(card)
		}
		info["dealer_hand"] = names
		info["dealer_total"] = handValue(state.dealer)
	}
	return info
}
