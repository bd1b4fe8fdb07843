package repository

import (
	"context"
	"fmt"

	"croupier/database"
	"croupier/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db      *database.DB
	tx      pgx.Tx
	ctx     context.Context
	guildID int64

	audit         *auditBuffer
	accountRepo   interfaces.AccountRepository
	bankRepo      interfaces.BankRepository
	ledgerRepo    interfaces.LedgerRepository
	storeItemRepo interfaces.StoreItemRepository
	inventoryRepo interfaces.InventoryRepository
	purchaseRepo  interfaces.PurchaseRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

// CreateForGuild creates a new UnitOfWork scoped to a guild
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) interfaces.UnitOfWork {
	return &unitOfWork{
		db:      f.db,
		guildID: guildID,
		audit:   newAuditBuffer(guildID),
	}
}

// Begin starts a new transaction and binds guild-scoped repositories to it
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.accountRepo = newAccountRepository(tx, u.guildID)
	u.bankRepo = newBankRepository(tx, u.guildID)
	u.ledgerRepo = newLedgerRepository(tx, u.guildID)
	u.storeItemRepo = newStoreItemRepository(tx, u.guildID)
	u.inventoryRepo = newInventoryRepository(tx, u.guildID)
	u.purchaseRepo = newPurchaseRepository(tx, u.guildID)

	return nil
}

// Commit commits the transaction and then flushes the audit buffer.
// Audit writes are best-effort after commit by design.
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	u.audit.flush(u.ctx, u.db)

	return nil
}

// Rollback rolls back the transaction and discards buffered audit entries
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.audit.discard()

	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// Accounts returns the account repository for this unit of work
func (u *unitOfWork) Accounts() interfaces.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// Bank returns the bank repository for this unit of work
func (u *unitOfWork) Bank() interfaces.BankRepository {
	if u.bankRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bankRepo
}

// Ledger returns the ledger repository for this unit of work
func (u *unitOfWork) Ledger() interfaces.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// StoreItems returns the store item repository for this unit of work
func (u *unitOfWork) StoreItems() interfaces.StoreItemRepository {
	if u.storeItemRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.storeItemRepo
}

// Inventory returns the inventory repository for this unit of work
func (u *unitOfWork) Inventory() interfaces.InventoryRepository {
	if u.inventoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.inventoryRepo
}

// Purchases returns the purchase repository for this unit of work
func (u *unitOfWork) Purchases() interfaces.PurchaseRepository {
	if u.purchaseRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.purchaseRepo
}

// Audit returns the transactional audit buffer
func (u *unitOfWork) Audit() interfaces.AuditRecorder {
	return u.audit
}
