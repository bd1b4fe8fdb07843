package entities

import (
	"time"
)

// ItemKind tags what a store item does when used.
type ItemKind string

const (
	ItemKindConsumable ItemKind = "consumable"
	ItemKindRoleGrant  ItemKind = "role_grant"
	ItemKindCosmetic   ItemKind = "cosmetic"
	ItemKindTrophy     ItemKind = "trophy"
)

// StoreItem is a shop catalog entry. Constraint fields use 0 to mean
// "unconstrained".
type StoreItem struct {
	ID              int64     `db:"id"`
	GuildID         int64     `db:"guild_id"`
	ItemID          string    `db:"item_id"`
	Name            string    `db:"name"`
	Price           int64     `db:"price"`
	Kind            ItemKind  `db:"kind"`
	Stackable       bool      `db:"stackable"`
	Enabled         bool      `db:"enabled"`
	MaxOwned        int       `db:"max_owned"`
	MaxUses         int       `db:"max_uses"`
	MaxPurchaseEver int       `db:"max_purchase_ever"`
	CooldownSeconds int64     `db:"cooldown_seconds"`
	DailyStock      int       `db:"daily_stock"`
	CreatedAt       time.Time `db:"created_at"`
}

// TracksUses returns true when the item carries a per-copy use counter.
func (i *StoreItem) TracksUses() bool {
	return i.MaxUses > 0
}

// EffectivePurchaseQty clamps the requested quantity. Non-stackable or
// uses-tracked items are bought one at a time regardless of the request.
func (i *StoreItem) EffectivePurchaseQty(requested int) int {
	if requested < 1 {
		requested = 1
	}
	if !i.Stackable || i.TracksUses() {
		return 1
	}
	return requested
}

// RemainingCooldown returns how long until the item can be bought again,
// given the timestamp of the buyer's last purchase. Zero when no cooldown
// applies or it has elapsed.
func (i *StoreItem) RemainingCooldown(lastPurchase time.Time, now time.Time) time.Duration {
	if i.CooldownSeconds <= 0 {
		return 0
	}
	readyAt := lastPurchase.Add(time.Duration(i.CooldownSeconds) * time.Second)
	if !now.Before(readyAt) {
		return 0
	}
	return readyAt.Sub(now)
}
