package games

import (
	"fmt"
	"strconv"

	"croupier/gamesession"
)

// ActionBet places a roulette bet; the option names the target.
const ActionBet = "bet"

// redNumbers on a European wheel.
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

type rouletteState struct {
	spun   bool
	result int
}

type rouletteBet struct {
	kind   string // "red", "black", "even", "odd" or "number"
	number int
}

// Roulette is a single-round wheel game. Each player places one bet in turn;
// the wheel spins after the last bet and winners are paid by the bank at
// even money for outside bets, thirty-five to one for a straight number.
type Roulette struct{}

func (Roulette) Name() string    { return "roulette" }
func (Roulette) MinPlayers() int { return 1 }
func (Roulette) MaxPlayers() int { return 10 }

func (Roulette) Init(s *gamesession.Session) {
	s.ModuleState = &rouletteState{}
	for _, p := range s.Players() {
		p.State = (*rouletteBet)(nil)
	}
}

func (g Roulette) HandleAction(s *gamesession.Session, p *gamesession.Player, a gamesession.Action) (gamesession.ActionOutcome, error) {
	if a.Type != ActionBet {
		return gamesession.ActionOutcome{}, fmt.Errorf("unknown action %q", a.Type)
	}

	bet, err := parseBet(a.Option)
	if err != nil {
		return gamesession.ActionOutcome{}, err
	}

	p.State = bet
	p.Alive = false

	info := map[string]any{"bet": a.Option}
	if g.allBetsIn(s) {
		state := s.ModuleState.(*rouletteState)
		state.result = s.Rand().Intn(37)
		state.spun = true
		info["result"] = state.result
	}
	return gamesession.ActionOutcome{Advance: true, Info: info}, nil
}

func parseBet(option string) (*rouletteBet, error) {
	switch option {
	case "red", "black", "even", "odd":
		return &rouletteBet{kind: option}, nil
	}
	n, err := strconv.Atoi(option)
	if err != nil || n < 0 || n > 36 {
		return nil, fmt.Errorf("bet must be red, black, even, odd or a number 0-36, got %q", option)
	}
	return &rouletteBet{kind: "number", number: n}, nil
}

func (Roulette) allBetsIn(s *gamesession.Session) bool {
	for _, p := range s.Players() {
		if bet, _ := p.State.(*rouletteBet); bet == nil {
			return false
		}
	}
	return true
}

// AutoAction bets red. Safe, boring, half the wheel.
func (Roulette) AutoAction(s *gamesession.Session, p *gamesession.Player) gamesession.Action {
	return gamesession.Action{Type: ActionBet, Option: "red"}
}

func (Roulette) Terminal(s *gamesession.Session) bool {
	state, ok := s.ModuleState.(*rouletteState)
	return ok && state.spun
}

func (g Roulette) Survivors(s *gamesession.Session) []*gamesession.Player {
	var winners []*gamesession.Player
	for _, p := range s.Players() {
		if g.payoutFor(s, p) > 0 {
			winners = append(winners, p)
		}
	}
	return winners
}

func (g Roulette) BankPayouts(s *gamesession.Session) map[int64]int64 {
	payouts := make(map[int64]int64)
	for _, p := range s.Players() {
		if amount := g.payoutFor(s, p); amount > 0 {
			payouts[p.UserID] = amount
		}
	}
	return payouts
}

func (Roulette) payoutFor(s *gamesession.Session, p *gamesession.Player) int64 {
	state, ok := s.ModuleState.(*rouletteState)
	if !ok || !state.spun || p.Stake <= 0 {
		return 0
	}
	bet, _ := p.State.(*rouletteBet)
	if bet == nil {
		return 0
	}

	n := state.result
	switch bet.kind {
	case "red":
		if redNumbers[n] {
			return p.Stake * 2
		}
	case "black":
		if n != 0 && !redNumbers[n] {
			return p.Stake * 2
		}
	case "even":
		if n != 0 && n%2 == 0 {
			return p.Stake * 2
		}
	case "odd":
		if n%2 == 1 {
			return p.Stake * 2
		}
	case "number":
		if n == bet.number {
			return p.Stake * 36
		}
	}
	return 0
}

func (Roulette) VisibleInfo(s *gamesession.Session) map[string]any {
	state, ok := s.ModuleState.(*rouletteState)
	if !ok || !state.spun {
		return nil
	}
	color := "green"
	if redNumbers[state.result] {
		color = "red"
	} else if state.result != 0 {
		color = "black"
	}
	return map[string]any{"result": state.result, "color": color}
}
