package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"croupier/database"
	"croupier/domain/entities"
	"croupier/domain/interfaces"
)

// LedgerRepository implements the LedgerRepository interface
type LedgerRepository struct {
	q       Queryable
	guildID int64
}

// NewLedgerRepository creates a new ledger repository over the pool. The
// audit flusher uses this form so entries are written outside any
// transaction.
func NewLedgerRepository(db *database.DB, guildID int64) *LedgerRepository {
	return &LedgerRepository{q: db.Pool, guildID: guildID}
}

func newLedgerRepository(tx Queryable, guildID int64) interfaces.LedgerRepository {
	return &LedgerRepository{q: tx, guildID: guildID}
}

// Insert appends a ledger entry
func (r *LedgerRepository) Insert(ctx context.Context, entry *entities.LedgerEntry) error {
	metadataJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger metadata: %w", err)
	}

	query := `
		INSERT INTO ledger (guild_id, user_id, amount, reason, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = r.q.QueryRow(ctx, query, r.guildID, entry.UserID, entry.Amount, entry.Reason, metadataJSON).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry for user %d in guild %d: %w", entry.UserID, r.guildID, err)
	}
	entry.GuildID = r.guildID

	return nil
}

// GetByUser returns the most recent entries for a user
func (r *LedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, guild_id, user_id, amount, reason, metadata, created_at
		FROM ledger
		WHERE guild_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.q.Query(ctx, query, r.guildID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for user %d in guild %d: %w", userID, r.guildID, err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		var entry entities.LedgerEntry
		var metadataJSON []byte
		err := rows.Scan(
			&entry.ID,
			&entry.GuildID,
			&entry.UserID,
			&entry.Amount,
			&entry.Reason,
			&metadataJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal ledger metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}
