package gamesession

// PlayerView is the visible slice of a player's state.
type PlayerView struct {
	UserID   int64
	Name     string
	Scripted bool
	Alive    bool
	Paid     bool
	Stake    int64
	// RiskPct is the probability the player is eliminated by the next
	// adverse event, when the module uses threshold elimination. Zero
	// otherwise.
	RiskPct float64
}

// Snapshot is everything the presentation layer needs to re-render a
// session. It holds no live references back into the session.
type Snapshot struct {
	ID        string
	GuildID   int64
	ChannelID int64
	HostID    int64
	Game      string
	State     State
	Players   []PlayerView
	Pot       int64
	// CurrentTurn is the user whose action is awaited; 0 outside playing.
	CurrentTurn int64
	// Info carries module-specific visible state (table rank, pending
	// claim, dealer card).
	Info map[string]any
	// LastAction carries the module's facts about the most recently applied
	// action (revealed cards, busts, eliminations).
	LastAction map[string]any
	// Result is set once the session has ended.
	Result *Settlement
}

// Renderer reflects session state to the outside world. Implementations own
// the presentation; render failures must never corrupt session state, so the
// engine logs and swallows returned errors.
type Renderer interface {
	Render(snapshot Snapshot) error
}

// NopRenderer discards snapshots. Used in tests and headless flows.
type NopRenderer struct{}

// Render implements Renderer.
func (NopRenderer) Render(Snapshot) error { return nil }
