package repository

import (
	"context"
	"fmt"

	"croupier/database"
	"croupier/domain/entities"
	"croupier/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// InventoryRepository implements the InventoryRepository interface
type InventoryRepository struct {
	q       Queryable
	guildID int64
}

// NewInventoryRepository creates a new inventory repository over the pool
func NewInventoryRepository(db *database.DB, guildID int64) *InventoryRepository {
	return &InventoryRepository{q: db.Pool, guildID: guildID}
}

func newInventoryRepository(tx Queryable, guildID int64) interfaces.InventoryRepository {
	return &InventoryRepository{q: tx, guildID: guildID}
}

// Get retrieves a user's holding of an item, or nil if absent
func (r *InventoryRepository) Get(ctx context.Context, userID int64, itemID string) (*entities.InventoryEntry, error) {
	query := `
		SELECT id, guild_id, user_id, item_id, qty, uses_remaining, created_at, updated_at
		FROM inventory
		WHERE guild_id = $1 AND user_id = $2 AND item_id = $3
	`

	var entry entities.InventoryEntry
	err := r.q.QueryRow(ctx, query, r.guildID, userID, itemID).Scan(
		&entry.ID,
		&entry.GuildID,
		&entry.UserID,
		&entry.ItemID,
		&entry.Qty,
		&entry.UsesRemaining,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory of %q for user %d in guild %d: %w", itemID, userID, r.guildID, err)
	}

	return &entry, nil
}

// AddQty upserts a holding. uses_remaining is seeded on insert only; the
// conflict branch leaves it untouched so restocks never recharge uses.
func (r *InventoryRepository) AddQty(ctx context.Context, userID int64, itemID string, qty int, seedUses int) (*entities.InventoryEntry, error) {
	query := `
		INSERT INTO inventory (guild_id, user_id, item_id, qty, uses_remaining)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (guild_id, user_id, item_id)
		DO UPDATE SET qty = inventory.qty + EXCLUDED.qty, updated_at = NOW()
		RETURNING id, guild_id, user_id, item_id, qty, uses_remaining, created_at, updated_at
	`

	var entry entities.InventoryEntry
	err := r.q.QueryRow(ctx, query, r.guildID, userID, itemID, qty, seedUses).Scan(
		&entry.ID,
		&entry.GuildID,
		&entry.UserID,
		&entry.ItemID,
		&entry.Qty,
		&entry.UsesRemaining,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add %d of %q for user %d in guild %d: %w", qty, itemID, userID, r.guildID, err)
	}

	return &entry, nil
}

// ListByUser returns all holdings for a user
func (r *InventoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.InventoryEntry, error) {
	query := `
		SELECT id, guild_id, user_id, item_id, qty, uses_remaining, created_at, updated_at
		FROM inventory
		WHERE guild_id = $1 AND user_id = $2 AND qty > 0
		ORDER BY item_id
	`

	rows, err := r.q.Query(ctx, query, r.guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory for user %d in guild %d: %w", userID, r.guildID, err)
	}
	defer rows.Close()

	var entries []*entities.InventoryEntry
	for rows.Next() {
		var entry entities.InventoryEntry
		err := rows.Scan(
			&entry.ID,
			&entry.GuildID,
			&entry.UserID,
			&entry.ItemID,
			&entry.Qty,
			&entry.UsesRemaining,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory entries: %w", err)
	}

	return entries, nil
}
