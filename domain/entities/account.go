package entities

import (
	"time"
)

// Account represents a user's chip balance within a guild.
// Accounts are created lazily on first reference and never deleted.
type Account struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	UserID    int64     `db:"user_id"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CanAfford checks whether the account covers the given amount.
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}
