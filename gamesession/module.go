package gamesession

// Action is a participant's move, interpreted by the session's module.
type Action struct {
	Type   string // module-specific verb, e.g. "claim", "hit", "cashout"
	Amount int64
	Option string
	Cards  []int
}

// ActionOutcome tells the engine what to do after a module applied an action.
type ActionOutcome struct {
	// Advance moves the turn to the next eligible player. Modules leave it
	// false to give the same player another decision (e.g. after a hit).
	Advance bool

	// Info carries module-specific facts about what happened, for the
	// presentation layer (revealed cards, bust, elimination).
	Info map[string]any
}

// Module supplies the rules of one game to the generic session engine.
// Modules mutate per-player and session sub-state; the engine owns turn
// order, timers, stakes and settlement.
type Module interface {
	Name() string

	// MinPlayers is the minimum roster size required to start.
	MinPlayers() int

	// MaxPlayers caps the roster, at most 10.
	MaxPlayers() int

	// Init sets up game state at the lobby-to-playing transition: deals
	// hands, draws hidden thresholds, picks the opening rank.
	Init(s *Session)

	// HandleAction applies the current player's action. Validation errors
	// come back as errors and leave state untouched; the turn stays put.
	HandleAction(s *Session, p *Player, a Action) (ActionOutcome, error)

	// AutoAction picks the action taken on behalf of a player when their
	// turn times out or when the player is scripted.
	AutoAction(s *Session, p *Player) Action

	// Terminal reports whether play has concluded. Checked after every
	// applied action.
	Terminal(s *Session) bool

	// Survivors returns the players still eligible to win the pot. May be
	// empty when everyone was eliminated on the same event.
	Survivors(s *Session) []*Player
}

// BankPayer is implemented by modules whose winners are paid by the bank at
// fixed odds (roulette, blackjack) instead of splitting the pot.
type BankPayer interface {
	// BankPayouts returns userID -> payout amount owed by the bank.
	BankPayouts(s *Session) map[int64]int64
}

// RiskReporter is implemented by modules with threshold elimination so the
// engine can expose each player's current elimination probability before
// they act.
type RiskReporter interface {
	RiskPct(s *Session, p *Player) float64
}

// InfoProvider is implemented by modules that publish visible sub-state
// (table rank, pending claim, dealer up-card) into snapshots.
type InfoProvider interface {
	VisibleInfo(s *Session) map[string]any
}
