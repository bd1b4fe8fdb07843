package repository

import (
	"context"
	"fmt"
	"time"

	"croupier/database"
	"croupier/domain/entities"
	"croupier/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// PurchaseRepository implements the PurchaseRepository interface
type PurchaseRepository struct {
	q       Queryable
	guildID int64
}

// NewPurchaseRepository creates a new purchase repository over the pool
func NewPurchaseRepository(db *database.DB, guildID int64) *PurchaseRepository {
	return &PurchaseRepository{q: db.Pool, guildID: guildID}
}

func newPurchaseRepository(tx Queryable, guildID int64) interfaces.PurchaseRepository {
	return &PurchaseRepository{q: tx, guildID: guildID}
}

// Create inserts a purchase record
func (r *PurchaseRepository) Create(ctx context.Context, record *entities.PurchaseRecord) error {
	query := `
		INSERT INTO purchases (guild_id, user_id, item_id, qty, unit_price, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		record.UserID,
		record.ItemID,
		record.Qty,
		record.UnitPrice,
		record.TotalPrice,
		record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to create purchase record of %q for user %d in guild %d: %w", record.ItemID, record.UserID, r.guildID, err)
	}
	record.GuildID = r.guildID

	return nil
}

// CountByUserAndItem returns how many purchase transactions a user has
// completed for an item
func (r *PurchaseRepository) CountByUserAndItem(ctx context.Context, userID int64, itemID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM purchases
		WHERE guild_id = $1 AND user_id = $2 AND item_id = $3
	`

	var count int
	err := r.q.QueryRow(ctx, query, r.guildID, userID, itemID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count purchases of %q for user %d in guild %d: %w", itemID, userID, r.guildID, err)
	}

	return count, nil
}

// GetLastByUserAndItem returns the user's most recent purchase of an item
func (r *PurchaseRepository) GetLastByUserAndItem(ctx context.Context, userID int64, itemID string) (*entities.PurchaseRecord, error) {
	query := `
		SELECT id, guild_id, user_id, item_id, qty, unit_price, total_price, created_at
		FROM purchases
		WHERE guild_id = $1 AND user_id = $2 AND item_id = $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	var record entities.PurchaseRecord
	err := r.q.QueryRow(ctx, query, r.guildID, userID, itemID).Scan(
		&record.ID,
		&record.GuildID,
		&record.UserID,
		&record.ItemID,
		&record.Qty,
		&record.UnitPrice,
		&record.TotalPrice,
		&record.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last purchase of %q for user %d in guild %d: %w", itemID, userID, r.guildID, err)
	}

	return &record, nil
}

// SumQtySince returns the total quantity of an item sold across all buyers
// since the given time
func (r *PurchaseRepository) SumQtySince(ctx context.Context, itemID string, since time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(qty), 0)
		FROM purchases
		WHERE guild_id = $1 AND item_id = $2 AND created_at >= $3
	`

	var total int
	err := r.q.QueryRow(ctx, query, r.guildID, itemID, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum sales of %q since %v in guild %d: %w", itemID, since, r.guildID, err)
	}

	return total, nil
}
