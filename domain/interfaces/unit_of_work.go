package interfaces

import (
	"context"
)

// UnitOfWork wraps a database transaction and exposes guild-scoped
// repositories bound to it. Repository getters panic if Begin has not been
// called.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	Accounts() AccountRepository
	Bank() BankRepository
	Ledger() LedgerRepository
	StoreItems() StoreItemRepository
	Inventory() InventoryRepository
	Purchases() PurchaseRepository

	// Audit returns the transactional audit buffer flushed after commit
	Audit() AuditRecorder
}

// UnitOfWorkFactory creates units of work scoped to a guild.
type UnitOfWorkFactory interface {
	CreateForGuild(guildID int64) UnitOfWork
}
