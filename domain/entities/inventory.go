package entities

import (
	"time"
)

// InventoryEntry tracks how many copies of an item a user holds.
// UsesRemaining is seeded from the item's MaxUses on first purchase only;
// restocks increase Qty but never refill uses.
type InventoryEntry struct {
	ID            int64     `db:"id"`
	GuildID       int64     `db:"guild_id"`
	UserID        int64     `db:"user_id"`
	ItemID        string    `db:"item_id"`
	Qty           int       `db:"qty"`
	UsesRemaining int       `db:"uses_remaining"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
