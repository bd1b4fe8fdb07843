package services

import (
	"context"
	"fmt"
	"time"

	"croupier/config"
	"croupier/domain/entities"
	"croupier/domain/interfaces"
	"croupier/domain/utils"
)

type purchaseService struct {
	storeItemRepo interfaces.StoreItemRepository
	inventoryRepo interfaces.InventoryRepository
	purchaseRepo  interfaces.PurchaseRepository
	ledger        interfaces.LedgerService
	now           func() time.Time
}

// NewPurchaseService creates a new purchase service. All repositories must
// come from the same unit of work so the constraint checks and the debit
// evaluate against one transactional snapshot.
func NewPurchaseService(
	storeItemRepo interfaces.StoreItemRepository,
	inventoryRepo interfaces.InventoryRepository,
	purchaseRepo interfaces.PurchaseRepository,
	ledger interfaces.LedgerService,
) interfaces.PurchaseService {
	return &purchaseService{
		storeItemRepo: storeItemRepo,
		inventoryRepo: inventoryRepo,
		purchaseRepo:  purchaseRepo,
		ledger:        ledger,
		now:           time.Now,
	}
}

func decline(item *entities.StoreItem, d entities.PurchaseDecline) *entities.PurchaseResult {
	return &entities.PurchaseResult{Item: item, Decline: &d}
}

// PurchaseItem implements the purchase constraint chain. Ordering matters:
// every check runs against the row-locked item snapshot, so two concurrent
// purchases of the same item serialize on the item row and the second one
// sees the first one's purchase records.
func (s *purchaseService) PurchaseItem(ctx context.Context, userID int64, itemID string, qty int, meta map[string]any) (*entities.PurchaseResult, error) {
	item, err := s.storeItemRepo.GetByItemIDForUpdate(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock store item %q: %w", itemID, err)
	}
	if item == nil {
		return decline(nil, entities.PurchaseDecline{Code: entities.DeclineNotFound}), nil
	}
	if !item.Enabled {
		return decline(item, entities.PurchaseDecline{Code: entities.DeclineDisabled}), nil
	}
	if item.Price <= 0 {
		return decline(item, entities.PurchaseDecline{Code: entities.DeclineBadPrice}), nil
	}

	qty = item.EffectivePurchaseQty(qty)
	now := s.now()

	if item.MaxPurchaseEver > 0 {
		count, err := s.purchaseRepo.CountByUserAndItem(ctx, userID, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to count purchases of %q for user %d: %w", itemID, userID, err)
		}
		if count >= item.MaxPurchaseEver {
			return decline(item, entities.PurchaseDecline{Code: entities.DeclineMaxPurchaseEver}), nil
		}
	}

	if item.CooldownSeconds > 0 {
		last, err := s.purchaseRepo.GetLastByUserAndItem(ctx, userID, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get last purchase of %q for user %d: %w", itemID, userID, err)
		}
		if last != nil {
			if remaining := item.RemainingCooldown(last.CreatedAt, now); remaining > 0 {
				return decline(item, entities.PurchaseDecline{
					Code:              entities.DeclineCooldown,
					CooldownRemaining: remaining,
				}), nil
			}
		}
	}

	if item.DailyStock > 0 {
		boundary := utils.PeriodStartAt(config.Get().DailyResetHour, now)
		sold, err := s.purchaseRepo.SumQtySince(ctx, itemID, boundary)
		if err != nil {
			return nil, fmt.Errorf("failed to sum daily sales of %q: %w", itemID, err)
		}
		remaining := item.DailyStock - sold
		if remaining < qty {
			if remaining < 0 {
				remaining = 0
			}
			return decline(item, entities.PurchaseDecline{
				Code:           entities.DeclineSoldOutDaily,
				RemainingStock: remaining,
			}), nil
		}
	}

	if item.MaxOwned > 0 {
		holding, err := s.inventoryRepo.Get(ctx, userID, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to get inventory of %q for user %d: %w", itemID, userID, err)
		}
		owned := 0
		if holding != nil {
			owned = holding.Qty
		}
		if owned+qty > item.MaxOwned {
			return decline(item, entities.PurchaseDecline{Code: entities.DeclineMaxOwned}), nil
		}
	}

	totalPrice := item.Price * int64(qty)
	debit, err := s.ledger.TryDebitUser(ctx, userID, totalPrice, entities.ReasonPurchase, mergePurchaseMeta(meta, item, qty, totalPrice))
	if err != nil {
		return nil, fmt.Errorf("failed to debit %d for purchase of %q: %w", totalPrice, itemID, err)
	}
	if !debit.OK {
		return decline(item, entities.PurchaseDecline{
			Code:           entities.DeclineInsufficientFunds,
			CurrentBalance: debit.Balance,
		}), nil
	}

	holding, err := s.inventoryRepo.AddQty(ctx, userID, itemID, qty, item.MaxUses)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert inventory of %q for user %d: %w", itemID, userID, err)
	}

	record := &entities.PurchaseRecord{
		UserID:     userID,
		ItemID:     itemID,
		Qty:        qty,
		UnitPrice:  item.Price,
		TotalPrice: totalPrice,
		CreatedAt:  now,
	}
	if err := s.purchaseRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create purchase record for %q: %w", itemID, err)
	}

	result := &entities.PurchaseResult{
		Item:       item,
		QtyBought:  qty,
		TotalPrice: totalPrice,
		NewBalance: debit.Balance,
	}
	if item.TracksUses() {
		result.UsesRemaining = holding.UsesRemaining
	}
	return result, nil
}

func mergePurchaseMeta(meta map[string]any, item *entities.StoreItem, qty int, totalPrice int64) map[string]any {
	merged := map[string]any{
		"item_id":     item.ItemID,
		"qty":         qty,
		"unit_price":  item.Price,
		"total_price": totalPrice,
	}
	for k, v := range meta {
		merged[k] = v
	}
	return merged
}
