package repository

import (
	"context"
	"fmt"

	"croupier/database"
	"croupier/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// BankRepository implements the BankRepository interface
type BankRepository struct {
	q       Queryable
	guildID int64
}

// NewBankRepository creates a new bank repository over the pool
func NewBankRepository(db *database.DB, guildID int64) *BankRepository {
	return &BankRepository{q: db.Pool, guildID: guildID}
}

func newBankRepository(tx Queryable, guildID int64) interfaces.BankRepository {
	return &BankRepository{q: tx, guildID: guildID}
}

// GetBalance returns the bank balance, or 0 before the first deposit
func (r *BankRepository) GetBalance(ctx context.Context) (int64, error) {
	query := `
		SELECT balance
		FROM bank
		WHERE guild_id = $1
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, r.guildID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get bank balance for guild %d: %w", r.guildID, err)
	}

	return balance, nil
}

// Add applies a signed delta to the bank, creating the row lazily
func (r *BankRepository) Add(ctx context.Context, delta int64) (int64, error) {
	query := `
		INSERT INTO bank (guild_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (guild_id)
		DO UPDATE SET balance = bank.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, r.guildID, delta).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to adjust bank by %d for guild %d: %w", delta, r.guildID, err)
	}

	return balance, nil
}

// TryDebit decrements the bank only when it covers amount, in one statement
func (r *BankRepository) TryDebit(ctx context.Context, amount int64) (bool, int64, error) {
	query := `
		UPDATE bank
		SET balance = balance - $2, updated_at = NOW()
		WHERE guild_id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, r.guildID, amount).Scan(&balance)
	if err == nil {
		return true, balance, nil
	}
	if err != pgx.ErrNoRows {
		return false, 0, fmt.Errorf("failed to debit %d from bank for guild %d: %w", amount, r.guildID, err)
	}

	current, err := r.GetBalance(ctx)
	if err != nil {
		return false, 0, err
	}
	return false, current, nil
}
