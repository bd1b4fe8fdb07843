package gamesession

import (
	"errors"
	"fmt"
)

// Lifecycle and turn errors are sentinel values so command handlers can
// branch on them. They are all rejected-as-no-op: session state is never
// touched when one is returned.
var (
	ErrNotInLobby       = errors.New("session is not in lobby")
	ErrNotPlaying       = errors.New("session is not in play")
	ErrNotHost          = errors.New("only the host may do that")
	ErrAlreadyJoined    = errors.New("already joined this session")
	ErrNotJoined        = errors.New("not part of this session")
	ErrSessionFull      = errors.New("session is full")
	ErrAlreadyPaid      = errors.New("stake already paid")
	ErrNotAllPaid       = errors.New("every participant must pay their stake first")
	ErrNotEnoughPlayers = errors.New("not enough participants to start")
	ErrNotYourTurn      = errors.New("it is not your turn")
	ErrStaleAction      = errors.New("the turn has already moved on")
)

// InsufficientStakeError reports a stake debit refused for lack of funds.
type InsufficientStakeError struct {
	Needed  int64
	Balance int64
}

func (e *InsufficientStakeError) Error() string {
	return fmt.Sprintf("insufficient balance: need %d, have %d", e.Needed, e.Balance)
}
