package interfaces

import (
	"context"

	"croupier/domain/entities"
)

// DebitResult is the outcome of a conditional debit.
type DebitResult struct {
	OK bool
	// Balance is the post-debit balance on success, or the unchanged
	// balance when the debit was refused.
	Balance int64
}

// LedgerService defines the interface for all balance mutations. Every
// method runs against the repositories of a single unit of work; multi-step
// sequences therefore commit or roll back together.
type LedgerService interface {
	// GetBalance returns the user's balance; 0 for unknown accounts
	GetBalance(ctx context.Context, userID int64) (int64, error)

	// CreditUser unconditionally adds amount to the user's balance and
	// records an audit entry. amount must be positive
	CreditUser(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (int64, error)

	// TryDebitUser removes amount from the user's balance only if covered.
	// This is the sole legal way to remove funds from a user
	TryDebitUser(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (*DebitResult, error)

	// GetServerBank returns the guild bank balance
	GetServerBank(ctx context.Context) (int64, error)

	// AddServerBank applies a signed delta to the guild bank
	AddServerBank(ctx context.Context, delta int64, reason entities.ReasonCode, meta map[string]any) (int64, error)

	// BankToUserIfEnough pays the user from the bank only if the bank can
	// cover the full amount; it never partially pays
	BankToUserIfEnough(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (bool, error)

	// UserToBank debits the user and, on success, credits the bank with the
	// same amount in the same transaction
	UserToBank(ctx context.Context, userID int64, amount int64, reason entities.ReasonCode, meta map[string]any) (*DebitResult, error)
}

// PurchaseService defines the interface for the purchase constraint engine.
type PurchaseService interface {
	// PurchaseItem runs the full constraint chain and the debit against one
	// transactional snapshot. Constraint failures come back as a decline on
	// the result, never as an error
	PurchaseItem(ctx context.Context, userID int64, itemID string, qty int, meta map[string]any) (*entities.PurchaseResult, error)
}

// AuditRecorder buffers ledger entries during a transaction. The unit of
// work flushes the buffer best-effort after commit and discards it on
// rollback, so a failed audit write can never undo a committed mutation.
type AuditRecorder interface {
	// Record buffers an audit entry for the current transaction
	Record(entry *entities.LedgerEntry)
}
