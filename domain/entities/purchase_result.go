package entities

import (
	"time"
)

// DeclineCode identifies why a purchase was refused. Declines are values, not
// errors: callers branch on them and no partial state is ever committed.
type DeclineCode string

const (
	DeclineNotFound          DeclineCode = "not_found"
	DeclineDisabled          DeclineCode = "disabled"
	DeclineBadPrice          DeclineCode = "bad_price"
	DeclineMaxPurchaseEver   DeclineCode = "max_purchase_ever"
	DeclineCooldown          DeclineCode = "cooldown"
	DeclineSoldOutDaily      DeclineCode = "sold_out_daily"
	DeclineMaxOwned          DeclineCode = "max_owned"
	DeclineInsufficientFunds DeclineCode = "insufficient_funds"
)

// PurchaseDecline carries a decline code plus enough context for the
// presentation layer to explain the refusal.
type PurchaseDecline struct {
	Code              DeclineCode
	CooldownRemaining time.Duration // cooldown
	RemainingStock    int           // sold_out_daily
	CurrentBalance    int64         // insufficient_funds
}

// PurchaseResult is the outcome of a purchase attempt. Exactly one of
// Decline or the success fields is populated.
type PurchaseResult struct {
	Item          *StoreItem
	Decline       *PurchaseDecline
	QtyBought     int
	TotalPrice    int64
	NewBalance    int64
	UsesRemaining int // meaningful only when the item tracks uses
}

// Declined reports whether the purchase was refused.
func (r *PurchaseResult) Declined() bool {
	return r.Decline != nil
}
