package entities

import (
	"time"
)

// Bank is the shared house pool for a guild. Game losses flow in, payouts
// flow out. Payouts are only allowed up to its current balance.
type Bank struct {
	GuildID   int64     `db:"guild_id"`
	Balance   int64     `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CanPayOut checks whether the bank can cover a payout of the given amount.
func (b *Bank) CanPayOut(amount int64) bool {
	return b.Balance >= amount
}
