package gamesession

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"croupier/domain/entities"
	"croupier/domain/interfaces"
	"croupier/domain/services"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// State is the session lifecycle state. Ended is terminal: sessions are
// destroyed, never reused.
type State string

const (
	StateLobby   State = "lobby"
	StatePlaying State = "playing"
	StateEnded   State = "ended"
)

// Deps are the collaborators a session needs. The composition root builds
// one Deps value and shares it across sessions.
type Deps struct {
	UowFactory    interfaces.UnitOfWorkFactory
	FeePolicy     services.FeePolicy
	HostFeeTier   int
	Registry      *Registry
	Renderer      Renderer
	TurnTimeout   time.Duration
	ScriptedDelay time.Duration
	Rand          *rand.Rand
}

// Session is one multiplayer game in one channel. All public methods
// serialize on the session mutex, so exactly one action is ever applied at a
// time and timer callbacks can detect that the world moved on while they
// were pending.
type Session struct {
	ID        string
	GuildID   int64
	ChannelID int64
	HostID    int64

	mu          sync.Mutex
	state       State
	players     []*Player
	turnIdx     int
	pot         int64
	allowScript bool
	generation  uint64
	timer       *time.Timer
	result      *Settlement
	lastInfo    map[string]any

	// endedFlag and lastActive are atomics so the registry can read them
	// without taking the session mutex. finishLocked deregisters while
	// holding the mutex, so the locks must never be taken in the other
	// order.
	endedFlag  atomic.Bool
	lastActive atomic.Int64

	module Module
	deps   Deps

	// ModuleState holds module-specific session-wide state (deck, table
	// rank, pending claim, dealer hand). Owned by the module.
	ModuleState any
}

// New creates a session in lobby state, adds the host as the first player
// and registers it for the channel. Registration fails when the channel
// already hosts an active session.
func New(deps Deps, module Module, guildID, channelID, hostID int64, hostName string, hostFeeTier int, allowScripted bool) (*Session, error) {
	s := &Session{
		ID:          uuid.NewString(),
		GuildID:     guildID,
		ChannelID:   channelID,
		HostID:      hostID,
		state:       StateLobby,
		allowScript: allowScripted,
		module:      module,
		deps:        deps,
	}
	s.lastActive.Store(time.Now().UnixNano())
	s.players = append(s.players, &Player{
		UserID:  hostID,
		Name:    hostName,
		FeeTier: hostFeeTier,
		Alive:   true,
	})

	if err := deps.Registry.Register(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Rand returns the session's random source, falling back to the global one.
// Modules draw hidden thresholds and shuffle decks from it so tests can seed
// deterministic games.
func (s *Session) Rand() *rand.Rand {
	if s.deps.Rand != nil {
		return s.deps.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ended reports whether the session reached its terminal state. Safe to
// call while holding the registry lock.
func (s *Session) Ended() bool {
	return s.endedFlag.Load()
}

// LastActivity returns when the session last applied an event. Safe to call
// while holding the registry lock.
func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Players returns the roster in join order. Modules call this while already
// holding the session lock through an engine callback.
func (s *Session) Players() []*Player {
	return s.players
}

// Pot returns the payable pot: the sum of bet portions paid by real players.
func (s *Session) Pot() int64 {
	return s.pot
}

// Result returns the settlement once the session has ended, else nil.
func (s *Session) Result() *Settlement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Join adds a participant while in lobby.
func (s *Session) Join(ctx context.Context, userID int64, name string, feeTier int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLobby {
		return ErrNotInLobby
	}
	if s.findPlayer(userID) != nil {
		return ErrAlreadyJoined
	}
	if len(s.players) >= s.module.MaxPlayers() {
		return ErrSessionFull
	}

	s.players = append(s.players, &Player{
		UserID:  userID,
		Name:    name,
		FeeTier: feeTier,
		Alive:   true,
	})
	s.touchLocked()
	s.renderLocked()
	return nil
}

// Leave removes a participant while in lobby, refunding any stake already
// paid. The host cannot leave; they force-end instead.
func (s *Session) Leave(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLobby {
		return ErrNotInLobby
	}
	if userID == s.HostID {
		return ErrNotHost
	}
	p := s.findPlayer(userID)
	if p == nil {
		return ErrNotJoined
	}

	if p.Paid && p.Stake+p.Fee > 0 {
		if err := s.refundLocked(ctx, p); err != nil {
			return err
		}
	}

	for i, other := range s.players {
		if other.UserID == userID {
			s.players = append(s.players[:i], s.players[i+1:]...)
			break
		}
	}
	s.touchLocked()
	s.renderLocked()
	return nil
}

// SetStake pays a participant's buy-in. The requested amount is the bet; the
// fee policy adds the house fee on top and the ledger debits the total in
// one operation, mirroring it into the bank. A zero stake marks the player
// paid without a debit, for non-monetary play.
func (s *Session) SetStake(ctx context.Context, userID int64, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLobby {
		return ErrNotInLobby
	}
	p := s.findPlayer(userID)
	if p == nil {
		return ErrNotJoined
	}
	if p.Paid {
		return ErrAlreadyPaid
	}
	if amount < 0 {
		return fmt.Errorf("stake must not be negative, got %d", amount)
	}

	if amount == 0 {
		p.Paid = true
		s.touchLocked()
		s.renderLocked()
		return nil
	}

	split := s.deps.FeePolicy.SplitStake(amount, s.deps.HostFeeTier, p.FeeTier)
	err := s.withLedger(ctx, func(ctx context.Context, ledger interfaces.LedgerService) error {
		result, err := ledger.UserToBank(ctx, userID, split.TotalCharge, entities.ReasonStake, map[string]any{
			"session_id": s.ID,
			"game":       s.module.Name(),
			"bet_amount": split.Bet,
			"fee_amount": split.Fee,
		})
		if err != nil {
			return err
		}
		if !result.OK {
			return &InsufficientStakeError{Needed: split.TotalCharge, Balance: result.Balance}
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.Paid = true
	p.Stake = split.Bet
	p.Fee = split.Fee
	s.pot += split.Bet
	s.touchLocked()
	s.renderLocked()
	return nil
}

// Start transitions lobby -> playing. Monetary play requires the module's
// minimum of real, paid participants. Scripted stand-ins only fill the
// roster when the host opted in and nobody has money on the table.
func (s *Session) Start(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLobby {
		return ErrNotInLobby
	}
	if userID != s.HostID {
		return ErrNotHost
	}
	for _, p := range s.players {
		if !p.Paid {
			return ErrNotAllPaid
		}
	}

	if s.allowScript && s.pot == 0 {
		s.fillScriptedLocked()
	}
	if len(s.players) < s.module.MinPlayers() {
		return ErrNotEnoughPlayers
	}

	s.state = StatePlaying
	s.module.Init(s)
	s.turnIdx = 0
	if !s.players[s.turnIdx].Alive {
		s.advanceTurnLocked()
	}
	s.generation++
	s.touchLocked()
	s.scheduleTurnLocked()
	s.renderLocked()
	return nil
}

// Action applies the acting participant's move. Only the current player may
// act; anything else is rejected without touching state.
func (s *Session) Action(ctx context.Context, userID int64, a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	current := s.players[s.turnIdx]
	if current.UserID != userID {
		return ErrNotYourTurn
	}

	return s.applyActionLocked(ctx, current, a)
}

// ForceEnd terminates the session early. In lobby, paid stakes are
// refunded. In play the pot is already funded, so it settles like a normal
// finish with whatever survivors the module reports. userID 0 is the
// internal idle sweeper.
func (s *Session) ForceEnd(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateEnded {
		return nil
	}
	if userID != 0 && userID != s.HostID {
		return ErrNotHost
	}

	if s.state == StateLobby {
		for _, p := range s.players {
			if p.Paid && p.Stake+p.Fee > 0 {
				if err := s.refundLocked(ctx, p); err != nil {
					log.Errorf("failed to refund stake for user %d in session %s: %v", p.UserID, s.ID, err)
				}
			}
		}
		s.finishLocked(&Settlement{})
		return nil
	}

	s.endLocked(ctx)
	return nil
}

// Snapshot captures the session's visible state for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// --- internals; callers hold s.mu ---

func (s *Session) findPlayer(userID int64) *Player {
	for _, p := range s.players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

func (s *Session) touchLocked() {
	s.lastActive.Store(time.Now().UnixNano())
}

// applyActionLocked runs the module, then drives terminal checks, turn
// advancement and timer rescheduling. Module errors leave the turn in place;
// the player retries or times out normally.
func (s *Session) applyActionLocked(ctx context.Context, p *Player, a Action) error {
	outcome, err := s.module.HandleAction(s, p, a)
	if err != nil {
		return err
	}

	s.generation++
	s.lastInfo = outcome.Info
	s.touchLocked()

	if s.module.Terminal(s) {
		s.endLocked(ctx)
		return nil
	}

	if outcome.Advance || !p.Alive {
		s.advanceTurnLocked()
	}
	s.scheduleTurnLocked()
	s.renderLocked()
	return nil
}

// advanceTurnLocked moves to the next eligible player, skipping eliminated
// ones with wraparound.
func (s *Session) advanceTurnLocked() {
	n := len(s.players)
	for i := 1; i <= n; i++ {
		idx := (s.turnIdx + i) % n
		if s.players[idx].Alive {
			s.turnIdx = idx
			return
		}
	}
}

// scheduleTurnLocked arms the turn timer for the current player. The closure
// captures the generation at arming time; a fired timer whose generation no
// longer matches is stale (a human acted first) and must be discarded.
func (s *Session) scheduleTurnLocked() {
	s.cancelTimerLocked()
	if s.state != StatePlaying {
		return
	}

	current := s.players[s.turnIdx]
	delay := s.deps.TurnTimeout
	if current.Scripted {
		delay = s.deps.ScriptedDelay
	}
	gen := s.generation

	s.timer = time.AfterFunc(delay, func() {
		s.autoAct(gen)
	})
}

func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// autoAct is the timer path: it acts for the current player (scripted turn
// or human timeout) unless the session moved on while the timer was pending.
func (s *Session) autoAct(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying || s.generation != gen {
		// Stale fire: a real action won the race.
		return
	}

	current := s.players[s.turnIdx]
	action := s.module.AutoAction(s, current)
	if err := s.applyActionLocked(context.Background(), current, action); err != nil {
		log.Errorf("auto action failed for user %d in session %s: %v", current.UserID, s.ID, err)
	}
}

func (s *Session) fillScriptedLocked() {
	seq := 1
	for len(s.players) < s.module.MinPlayers() {
		s.players = append(s.players, &Player{
			UserID:   -int64(seq), // negative ids keep scripted players out of the real id space
			Name:     fmt.Sprintf("House Bot %d", seq),
			Scripted: true,
			Alive:    true,
			Paid:     true,
		})
		seq++
	}
}

// refundLocked returns a paid stake (bet + fee) from the bank to the player.
func (s *Session) refundLocked(ctx context.Context, p *Player) error {
	total := p.Stake + p.Fee
	err := s.withLedger(ctx, func(ctx context.Context, ledger interfaces.LedgerService) error {
		if _, err := ledger.AddServerBank(ctx, -total, entities.ReasonBankAdjust, map[string]any{
			"session_id": s.ID,
			"refund_for": p.UserID,
		}); err != nil {
			return err
		}
		_, err := ledger.CreditUser(ctx, p.UserID, total, entities.ReasonStake, map[string]any{
			"session_id": s.ID,
			"refund":     true,
		})
		return err
	})
	if err != nil {
		return err
	}
	s.pot -= p.Stake
	p.Paid = false
	p.Stake = 0
	p.Fee = 0
	return nil
}

// finishLocked performs the terminal transition bookkeeping shared by all
// paths: single cancellation point for timers, registry removal, final
// render.
func (s *Session) finishLocked(result *Settlement) {
	s.state = StateEnded
	s.endedFlag.Store(true)
	s.result = result
	s.generation++
	s.cancelTimerLocked()
	s.deps.Registry.Deregister(s.ChannelID, s.ID)
	s.touchLocked()
	s.renderLocked()
}

func (s *Session) withLedger(ctx context.Context, fn func(ctx context.Context, ledger interfaces.LedgerService) error) error {
	uow := s.deps.UowFactory.CreateForGuild(s.GuildID)
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	ledger := services.NewLedgerService(uow.Accounts(), uow.Bank(), uow.Audit())
	if err := fn(ctx, ledger); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.Errorf("rollback failed for session %s: %v", s.ID, rbErr)
		}
		return err
	}
	return uow.Commit()
}

func (s *Session) renderLocked() {
	if s.deps.Renderer == nil {
		return
	}
	if err := s.deps.Renderer.Render(s.snapshotLocked()); err != nil {
		// Rendering must never corrupt session state.
		log.Warnf("render failed for session %s: %v", s.ID, err)
	}
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:         s.ID,
		GuildID:    s.GuildID,
		ChannelID:  s.ChannelID,
		HostID:     s.HostID,
		Game:       s.module.Name(),
		State:      s.state,
		Pot:        s.pot,
		Result:     s.result,
		LastAction: s.lastInfo,
	}

	risk, hasRisk := s.module.(RiskReporter)
	for _, p := range s.players {
		view := PlayerView{
			UserID:   p.UserID,
			Name:     p.Name,
			Scripted: p.Scripted,
			Alive:    p.Alive,
			Paid:     p.Paid,
			Stake:    p.Stake,
		}
		if hasRisk && s.state == StatePlaying && p.Alive {
			view.RiskPct = risk.RiskPct(s, p)
		}
		snap.Players = append(snap.Players, view)
	}

	if s.state == StatePlaying {
		snap.CurrentTurn = s.players[s.turnIdx].UserID
	}
	if info, ok := s.module.(InfoProvider); ok {
		snap.Info = info.VisibleInfo(s)
	}
	return snap
}
