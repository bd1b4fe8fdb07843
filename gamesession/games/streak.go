package games

import (
	"fmt"

	"croupier/gamesession"
)

// Action verbs understood by the streak module.
const (
	ActionPress   = "press"
	ActionCashout = "cashout"
)

type streakPlayer struct {
	streak    int
	counter   int
	threshold int
	cashedOut bool
}

// Streak is a press-your-luck elimination game. Each press extends the
// player's streak but fires one adverse event against their hidden
// threshold; busting forfeits the streak. Players who cash out lock their
// streak in, and the longest locked-in streak takes the pot. Ties split it.
type Streak struct{}

func (Streak) Name() string    { return "streak" }
func (Streak) MinPlayers() int { return 2 }
func (Streak) MaxPlayers() int { return 10 }

func (Streak) Init(s *gamesession.Session) {
	rng := s.Rand()
	for _, p := range s.Players() {
		p.State = &streakPlayer{
			threshold: rng.Intn(thresholdRange) + 1,
		}
	}
}

func (Streak) HandleAction(s *gamesession.Session, p *gamesession.Player, a gamesession.Action) (gamesession.ActionOutcome, error) {
	ps := p.State.(*streakPlayer)

	switch a.Type {
	case ActionPress:
		ps.counter++
		if ps.counter >= ps.threshold {
			// Busted: the streak is forfeit.
			ps.streak = 0
			p.Alive = false
			return gamesession.ActionOutcome{
				Advance: true,
				Info:    map[string]any{"busted": true},
			}, nil
		}
		ps.streak++
		return gamesession.ActionOutcome{
			Advance: true,
			Info:    map[string]any{"streak": ps.streak},
		}, nil

	case ActionCashout:
		if ps.streak == 0 {
			return gamesession.ActionOutcome{}, fmt.Errorf("nothing to cash out yet, press first")
		}
		ps.cashedOut = true
		p.Alive = false
		return gamesession.ActionOutcome{
			Advance: true,
			Info:    map[string]any{"cashed_out": ps.streak},
		}, nil

	default:
		return gamesession.ActionOutcome{}, fmt.Errorf("unknown action %q", a.Type)
	}
}

// AutoAction banks a streak when there is one; an idle player should not be
// pressed into more risk.
func (Streak) AutoAction(s *gamesession.Session, p *gamesession.Player) gamesession.Action {
	if p.State.(*streakPlayer).streak > 0 {
		return gamesession.Action{Type: ActionCashout}
	}
	return gamesession.Action{Type: ActionPress}
}

func (Streak) Terminal(s *gamesession.Session) bool {
	for _, p := range s.Players() {
		if p.Alive {
			return false
		}
	}
	return true
}

// Survivors returns the cashed-out players holding the longest streak.
func (Streak) Survivors(s *gamesession.Session) []*gamesession.Player {
	best := 0
	for _, p := range s.Players() {
		if ps := p.State.(*streakPlayer); ps.cashedOut && ps.streak > best {
			best = ps.streak
		}
	}
	if best == 0 {
		return nil
	}

	var winners []*gamesession.Player
	for _, p := range s.Players() {
		if ps := p.State.(*streakPlayer); ps.cashedOut && ps.streak == best {
			winners = append(winners, p)
		}
	}
	return winners
}

func (Streak) RiskPct(s *gamesession.Session, p *gamesession.Player) float64 {
	ps, ok := p.State.(*streakPlayer)
	if !ok {
		return 0
	}
	remaining := thresholdRange - ps.counter
	if remaining <= 0 {
		return 1
	}
	return 1 / float64(remaining)
}

func (Streak) VisibleInfo(s *gamesession.Session) map[string]any {
	streaks := make(map[string]any)
	for _, p := range s.Players() {
		if ps, ok := p.State.(*streakPlayer); ok {
			streaks[p.Name] = ps.streak
		}
	}
	return map[string]any{"streaks": streaks}
}
