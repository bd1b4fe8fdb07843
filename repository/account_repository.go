package repository

import (
	"context"
	"fmt"

	"croupier/database"
	"croupier/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the AccountRepository interface
type AccountRepository struct {
	q       Queryable
	guildID int64
}

// NewAccountRepository creates a new account repository over the pool
func NewAccountRepository(db *database.DB, guildID int64) *AccountRepository {
	return &AccountRepository{q: db.Pool, guildID: guildID}
}

func newAccountRepository(tx Queryable, guildID int64) interfaces.AccountRepository {
	return &AccountRepository{q: tx, guildID: guildID}
}

// GetBalance returns the balance for a user, or 0 if no account exists yet
func (r *AccountRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT balance
		FROM accounts
		WHERE guild_id = $1 AND user_id = $2
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, r.guildID, userID).Scan(&balance)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance for user %d in guild %d: %w", userID, r.guildID, err)
	}

	return balance, nil
}

// Credit upserts the account and adds amount, returning the new balance
func (r *AccountRepository) Credit(ctx context.Context, userID int64, amount int64) (int64, error) {
	query := `
		INSERT INTO accounts (guild_id, user_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, user_id)
		DO UPDATE SET balance = accounts.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, r.guildID, userID, amount).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to credit %d to user %d in guild %d: %w", amount, userID, r.guildID, err)
	}

	return balance, nil
}

// TryDebit decrements the balance only when it covers amount. The condition
// and the decrement are one statement, so concurrent debits against the same
// account serialize on the row and can never drive the balance negative.
func (r *AccountRepository) TryDebit(ctx context.Context, userID int64, amount int64) (bool, int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance - $3, updated_at = NOW()
		WHERE guild_id = $1 AND user_id = $2 AND balance >= $3
		RETURNING balance
	`

	var balance int64
	err := r.q.QueryRow(ctx, query, r.guildID, userID, amount).Scan(&balance)
	if err == nil {
		return true, balance, nil
	}
	if err != pgx.ErrNoRows {
		return false, 0, fmt.Errorf("failed to debit %d from user %d in guild %d: %w", amount, userID, r.guildID, err)
	}

	// Refused: report the unchanged balance so callers can explain the failure
	current, err := r.GetBalance(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	return false, current, nil
}
