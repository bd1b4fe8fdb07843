package gamesession

// Player is one participant in a session. Scripted players satisfy headcount
// for non-monetary play: they never pay a stake and never receive a payout.
type Player struct {
	UserID   int64
	Name     string
	Scripted bool
	FeeTier  int

	Alive bool
	Paid  bool
	Stake int64 // bet portion of the stake, excludes the house fee
	Fee   int64

	// State holds module-specific per-player state (hand, streak counter,
	// failure counter). Owned by the module.
	State any
}

// Real reports whether the player is a real participant whose stake counts
// toward the pot.
func (p *Player) Real() bool {
	return !p.Scripted
}
