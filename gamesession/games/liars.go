package games

import (
	"fmt"

	"croupier/gamesession"
)

// Action verbs understood by the liar's table module.
const (
	ActionClaim     = "claim"
	ActionChallenge = "challenge"
)

// thresholdRange bounds the hidden elimination threshold: each player
// survives between 0 and thresholdRange-1 penalties before their threshold
// fires. Revolver odds, a sixth of the chamber per pull at worst.
const thresholdRange = 6

const (
	liarsHandSize = 5
	liarsJokers   = 2
)

// liarsState is the session-wide sub-state of a liar's table game.
type liarsState struct {
	deck      []int
	tableRank int
	pending   *pendingClaim
	round     int
}

// pendingClaim is an unresolved face-down play: the claimant asserts the
// cards all match the table rank. The next actor either challenges it or
// closes it as accepted by making their own claim.
type pendingClaim struct {
	claimantID int64
	cards      []int
}

// liarsPlayer is per-player hidden state.
type liarsPlayer struct {
	hand      []int
	counter   int
	threshold int
}

// LiarsTable is a bluffing card game. Each round has a table rank; players
// play cards face down claiming they match it. A false claim caught by a
// challenge, or a wrong challenge, fires a penalty against a hidden
// per-player threshold. Last player standing takes the pot.
type LiarsTable struct{}

func (LiarsTable) Name() string    { return "liars" }
func (LiarsTable) MinPlayers() int { return 2 }
func (LiarsTable) MaxPlayers() int { return 10 }

func (g LiarsTable) Init(s *gamesession.Session) {
	rng := s.Rand()
	state := &liarsState{deck: newDeck(rng, liarsJokers)}
	s.ModuleState = state

	for _, p := range s.Players() {
		p.State = &liarsPlayer{
			// Uniform over [1, thresholdRange].
			threshold: rng.Intn(thresholdRange) + 1,
		}
	}
	g.newRound(s, state)
}

// newRound redeals every surviving hand and draws a fresh table rank.
func (LiarsTable) newRound(s *gamesession.Session, state *liarsState) {
	rng := s.Rand()
	state.deck = newDeck(rng, liarsJokers)
	state.tableRank = rng.Intn(rankKing) + 1
	state.pending = nil
	state.round++
	for _, p := range s.Players() {
		if p.Alive {
			p.State.(*liarsPlayer).hand = draw(&state.deck, liarsHandSize, rng, liarsJokers)
		}
	}
}

func (g LiarsTable) HandleAction(s *gamesession.Session, p *gamesession.Player, a gamesession.Action) (gamesession.ActionOutcome, error) {
	state := s.ModuleState.(*liarsState)
	ps := p.State.(*liarsPlayer)

	switch a.Type {
	case ActionClaim:
		if len(a.Cards) < 1 || len(a.Cards) > 3 {
			return gamesession.ActionOutcome{}, fmt.Errorf("claim must play 1 to 3 cards, got %d", len(a.Cards))
		}
		if len(ps.hand) == 0 {
			// Hands only empty between challenges; draw a fresh one and let
			// the pending claim stand.
			ps.hand = draw(&state.deck, liarsHandSize, s.Rand(), liarsJokers)
		}
		remaining, ok := removeCards(ps.hand, a.Cards)
		if !ok {
			return gamesession.ActionOutcome{}, fmt.Errorf("you do not hold those cards")
		}

		// Playing over an open claim tacitly accepts it.
		ps.hand = remaining
		state.pending = &pendingClaim{claimantID: p.UserID, cards: a.Cards}
		return gamesession.ActionOutcome{
			Advance: true,
			Info:    map[string]any{"claimed_count": len(a.Cards)},
		}, nil

	case ActionChallenge:
		if state.pending == nil {
			return gamesession.ActionOutcome{}, fmt.Errorf("there is no claim to challenge")
		}
		return g.resolveChallenge(s, state, p), nil

	default:
		return gamesession.ActionOutcome{}, fmt.Errorf("unknown action %q", a.Type)
	}
}

// resolveChallenge reveals the pending cards. An honest claim penalizes the
// challenger; a caught bluff penalizes the claimant. Either way the round is
// over and fresh hands are dealt.
func (g LiarsTable) resolveChallenge(s *gamesession.Session, state *liarsState, challenger *gamesession.Player) gamesession.ActionOutcome {
	pending := state.pending
	honest := true
	for _, card := range pending.cards {
		if card != state.tableRank && card != rankJoker {
			honest = false
			break
		}
	}

	var penalized *gamesession.Player
	if honest {
		penalized = challenger
	} else {
		penalized = g.findPlayer(s, pending.claimantID)
	}

	eliminated := false
	if penalized != nil {
		eliminated = g.penalize(penalized)
	}

	info := map[string]any{
		"revealed": pending.cards,
		"honest":   honest,
	}
	if penalized != nil {
		info["penalized"] = penalized.UserID
		info["eliminated"] = eliminated
	}

	g.newRound(s, state)
	return gamesession.ActionOutcome{Advance: true, Info: info}
}

// penalize fires one adverse event: the failure counter increments and the
// player is eliminated exactly when it reaches their hidden threshold.
func (LiarsTable) penalize(p *gamesession.Player) bool {
	ps := p.State.(*liarsPlayer)
	ps.counter++
	if ps.counter >= ps.threshold {
		p.Alive = false
		return true
	}
	return false
}

// AutoAction plays honestly when possible, otherwise bluffs with the lowest
// card. It never challenges; timeouts should not gamble on the player's
// behalf.
func (LiarsTable) AutoAction(s *gamesession.Session, p *gamesession.Player) gamesession.Action {
	state := s.ModuleState.(*liarsState)
	ps := p.State.(*liarsPlayer)

	for _, card := range ps.hand {
		if card == state.tableRank || card == rankJoker {
			return gamesession.Action{Type: ActionClaim, Cards: []int{card}}
		}
	}
	lowest := ps.hand[0]
	for _, card := range ps.hand {
		if card < lowest {
			lowest = card
		}
	}
	return gamesession.Action{Type: ActionClaim, Cards: []int{lowest}}
}

func (LiarsTable) Terminal(s *gamesession.Session) bool {
	alive := 0
	for _, p := range s.Players() {
		if p.Alive {
			alive++
		}
	}
	return alive <= 1
}

func (LiarsTable) Survivors(s *gamesession.Session) []*gamesession.Player {
	var survivors []*gamesession.Player
	for _, p := range s.Players() {
		if p.Alive {
			survivors = append(survivors, p)
		}
	}
	return survivors
}

// RiskPct reports the probability the player's next penalty eliminates them:
// the threshold is uniform over the remaining candidate values.
func (LiarsTable) RiskPct(s *gamesession.Session, p *gamesession.Player) float64 {
	ps, ok := p.State.(*liarsPlayer)
	if !ok {
		return 0
	}
	remaining := thresholdRange - ps.counter
	if remaining <= 0 {
		return 1
	}
	return 1 / float64(remaining)
}

func (LiarsTable) VisibleInfo(s *gamesession.Session) map[string]any {
	state, ok := s.ModuleState.(*liarsState)
	if !ok {
		return nil
	}
	info := map[string]any{
		"table_rank": RankName(state.tableRank),
		"round":      state.round,
	}
	if state.pending != nil {
		info["pending_claimant"] = state.pending.claimantID
		info["pending_count"] = len(state.pending.cards)
	}
	return info
}

func (LiarsTable) findPlayer(s *gamesession.Session, userID int64) *gamesession.Player {
	for _, p := range s.Players() {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}
