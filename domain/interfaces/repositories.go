package interfaces

import (
	"context"
	"time"

	"croupier/domain/entities"
)

// AccountRepository defines the interface for account balance data access.
// Repositories are scoped to a single guild by the unit of work that created
// them.
type AccountRepository interface {
	// GetBalance returns the account balance, or 0 for unknown accounts
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// Credit upserts the account and adds amount to its balance, returning
	// the new balance
	Credit(ctx context.Context, userID int64, amount int64) (int64, error)

	// TryDebit decrements the balance only if it covers amount, in a single
	// atomic statement. Returns ok=false and the unchanged balance otherwise
	TryDebit(ctx context.Context, userID int64, amount int64) (ok bool, balance int64, err error)
}

// BankRepository defines the interface for the shared guild bank.
type BankRepository interface {
	// GetBalance returns the bank balance, or 0 if the row does not exist yet
	GetBalance(ctx context.Context) (int64, error)

	// Add applies a (possibly negative) delta to the bank balance and
	// returns the new balance
	Add(ctx context.Context, delta int64) (int64, error)

	// TryDebit decrements the bank balance only if it covers amount
	TryDebit(ctx context.Context, amount int64) (ok bool, balance int64, err error)
}

// LedgerRepository defines the interface for the append-only audit log.
type LedgerRepository interface {
	// Insert appends a ledger entry
	Insert(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByUser returns the most recent entries for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.LedgerEntry, error)
}

// StoreItemRepository defines the interface for the shop catalog.
type StoreItemRepository interface {
	// GetByItemID retrieves a catalog entry, or nil if absent
	GetByItemID(ctx context.Context, itemID string) (*entities.StoreItem, error)

	// GetByItemIDForUpdate retrieves a catalog entry with a row lock,
	// serializing concurrent purchases of the same item
	GetByItemIDForUpdate(ctx context.Context, itemID string) (*entities.StoreItem, error)

	// Create inserts a catalog entry
	Create(ctx context.Context, item *entities.StoreItem) error

	// ListEnabled returns all enabled items ordered by price
	ListEnabled(ctx context.Context) ([]*entities.StoreItem, error)
}

// InventoryRepository defines the interface for per-user item holdings.
type InventoryRepository interface {
	// Get retrieves a user's holding of an item, or nil if absent
	Get(ctx context.Context, userID int64, itemID string) (*entities.InventoryEntry, error)

	// AddQty upserts the holding, adding qty copies. UsesRemaining is seeded
	// from seedUses on first insert only and never refilled on restock
	AddQty(ctx context.Context, userID int64, itemID string, qty int, seedUses int) (*entities.InventoryEntry, error)

	// ListByUser returns all holdings for a user
	ListByUser(ctx context.Context, userID int64) ([]*entities.InventoryEntry, error)
}

// PurchaseRepository defines the interface for immutable purchase records.
type PurchaseRepository interface {
	// Create inserts a purchase record
	Create(ctx context.Context, record *entities.PurchaseRecord) error

	// CountByUserAndItem returns how many purchase transactions a user has
	// completed for an item, ever
	CountByUserAndItem(ctx context.Context, userID int64, itemID string) (int, error)

	// GetLastByUserAndItem returns the user's most recent purchase of an
	// item, or nil if none
	GetLastByUserAndItem(ctx context.Context, userID int64, itemID string) (*entities.PurchaseRecord, error)

	// SumQtySince returns the total quantity of an item sold across all
	// buyers since the given time
	SumQtySince(ctx context.Context, itemID string, since time.Time) (int, error)
}
