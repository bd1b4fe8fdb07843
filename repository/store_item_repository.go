package repository

import (
	"context"
	"fmt"

	"croupier/database"
	"croupier/domain/entities"
	"croupier/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const storeItemColumns = `
	id, guild_id, item_id, name, price, kind, stackable, enabled,
	max_owned, max_uses, max_purchase_ever, cooldown_seconds, daily_stock, created_at`

// StoreItemRepository implements the StoreItemRepository interface
type StoreItemRepository struct {
	q       Queryable
	guildID int64
}

// NewStoreItemRepository creates a new store item repository over the pool
func NewStoreItemRepository(db *database.DB, guildID int64) *StoreItemRepository {
	return &StoreItemRepository{q: db.Pool, guildID: guildID}
}

func newStoreItemRepository(tx Queryable, guildID int64) interfaces.StoreItemRepository {
	return &StoreItemRepository{q: tx, guildID: guildID}
}

func (r *StoreItemRepository) scanItem(row pgx.Row) (*entities.StoreItem, error) {
	var item entities.StoreItem
	err := row.Scan(
		&item.ID,
		&item.GuildID,
		&item.ItemID,
		&item.Name,
		&item.Price,
		&item.Kind,
		&item.Stackable,
		&item.Enabled,
		&item.MaxOwned,
		&item.MaxUses,
		&item.MaxPurchaseEver,
		&item.CooldownSeconds,
		&item.DailyStock,
		&item.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetByItemID retrieves a catalog entry, or nil if absent
func (r *StoreItemRepository) GetByItemID(ctx context.Context, itemID string) (*entities.StoreItem, error) {
	query := `
		SELECT` + storeItemColumns + `
		FROM store_items
		WHERE guild_id = $1 AND item_id = $2
	`

	item, err := r.scanItem(r.q.QueryRow(ctx, query, r.guildID, itemID))
	if err != nil {
		return nil, fmt.Errorf("failed to get store item %q in guild %d: %w", itemID, r.guildID, err)
	}
	return item, nil
}

// GetByItemIDForUpdate retrieves a catalog entry with a row lock so that
// concurrent purchases of the same item serialize within their transactions
func (r *StoreItemRepository) GetByItemIDForUpdate(ctx context.Context, itemID string) (*entities.StoreItem, error) {
	query := `
		SELECT` + storeItemColumns + `
		FROM store_items
		WHERE guild_id = $1 AND item_id = $2
		FOR UPDATE
	`

	item, err := r.scanItem(r.q.QueryRow(ctx, query, r.guildID, itemID))
	if err != nil {
		return nil, fmt.Errorf("failed to get store item %q for update in guild %d: %w", itemID, r.guildID, err)
	}
	return item, nil
}

// Create inserts a catalog entry
func (r *StoreItemRepository) Create(ctx context.Context, item *entities.StoreItem) error {
	query := `
		INSERT INTO store_items
			(guild_id, item_id, name, price, kind, stackable, enabled,
			 max_owned, max_uses, max_purchase_ever, cooldown_seconds, daily_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		item.ItemID,
		item.Name,
		item.Price,
		item.Kind,
		item.Stackable,
		item.Enabled,
		item.MaxOwned,
		item.MaxUses,
		item.MaxPurchaseEver,
		item.CooldownSeconds,
		item.DailyStock,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create store item %q in guild %d: %w", item.ItemID, r.guildID, err)
	}
	item.GuildID = r.guildID

	return nil
}

// ListEnabled returns all enabled items ordered by price
func (r *StoreItemRepository) ListEnabled(ctx context.Context) ([]*entities.StoreItem, error) {
	query := `
		SELECT` + storeItemColumns + `
		FROM store_items
		WHERE guild_id = $1 AND enabled = TRUE
		ORDER BY price ASC
	`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list store items in guild %d: %w", r.guildID, err)
	}
	defer rows.Close()

	var items []*entities.StoreItem
	for rows.Next() {
		var item entities.StoreItem
		err := rows.Scan(
			&item.ID,
			&item.GuildID,
			&item.ItemID,
			&item.Name,
			&item.Price,
			&item.Kind,
			&item.Stackable,
			&item.Enabled,
			&item.MaxOwned,
			&item.MaxUses,
			&item.MaxPurchaseEver,
			&item.CooldownSeconds,
			&item.DailyStock,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan store item: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate store items: %w", err)
	}

	return items, nil
}
