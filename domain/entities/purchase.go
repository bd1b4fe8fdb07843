package entities

import (
	"time"
)

// PurchaseRecord is one completed purchase transaction. Records are inserted
// and read, never mutated: they are the sole source of truth for cooldown and
// daily-stock enforcement.
type PurchaseRecord struct {
	ID         int64     `db:"id"`
	GuildID    int64     `db:"guild_id"`
	UserID     int64     `db:"user_id"`
	ItemID     string    `db:"item_id"`
	Qty        int       `db:"qty"`
	UnitPrice  int64     `db:"unit_price"`
	TotalPrice int64     `db:"total_price"`
	CreatedAt  time.Time `db:"created_at"`
}
