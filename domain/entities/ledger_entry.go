package entities

import (
	"time"
)

// ReasonCode classifies a ledger entry.
type ReasonCode string

// All reason codes written by the system.
const (
	// Game-related entries
	ReasonStake      ReasonCode = "stake"
	ReasonStakeFee   ReasonCode = "stake_fee"
	ReasonGameWin    ReasonCode = "game_win"
	ReasonGameLoss   ReasonCode = "game_loss"
	ReasonGamePayout ReasonCode = "game_payout"

	// Shop entries
	ReasonPurchase ReasonCode = "purchase"

	// System entries
	ReasonSeed       ReasonCode = "seed"
	ReasonJobReward  ReasonCode = "job_reward"
	ReasonAdminGrant ReasonCode = "admin_grant"
	ReasonBankAdjust ReasonCode = "bank_adjust"
)

// IsGameRelated returns true if the reason code belongs to game settlement.
func (rc ReasonCode) IsGameRelated() bool {
	return rc == ReasonStake || rc == ReasonStakeFee ||
		rc == ReasonGameWin || rc == ReasonGameLoss || rc == ReasonGamePayout
}

// IsSystemGenerated returns true if the entry was not triggered by gameplay
// or shopping.
func (rc ReasonCode) IsSystemGenerated() bool {
	return rc == ReasonSeed || rc == ReasonJobReward || rc == ReasonAdminGrant
}

// String returns the string representation of the reason code.
func (rc ReasonCode) String() string {
	return string(rc)
}

// LedgerEntry is an immutable audit record of a balance mutation. Entries are
// append-only and written best-effort after the authoritative mutation has
// committed; a failed write never rolls the mutation back.
type LedgerEntry struct {
	ID        int64          `db:"id"`
	GuildID   int64          `db:"guild_id"`
	UserID    int64          `db:"user_id"`
	Amount    int64          `db:"amount"`
	Reason    ReasonCode     `db:"reason"`
	Metadata  map[string]any `db:"metadata"`
	CreatedAt time.Time      `db:"created_at"`
}
