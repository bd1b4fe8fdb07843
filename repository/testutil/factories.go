package testutil

import (
	"croupier/domain/entities"
)

// CreateTestStoreItem creates an enabled, stackable catalog entry with no
// constraints. Tests tighten individual fields as needed.
func CreateTestStoreItem(itemID string, price int64) *entities.StoreItem {
	return &entities.StoreItem{
		ItemID:    itemID,
		Name:      itemID,
		Price:     price,
		Kind:      entities.ItemKindConsumable,
		Stackable: true,
		Enabled:   true,
	}
}

// CreateTestStoreItemWith creates a test store item and applies a mutation.
func CreateTestStoreItemWith(itemID string, price int64, mutate func(*entities.StoreItem)) *entities.StoreItem {
	item := CreateTestStoreItem(itemID, price)
	mutate(item)
	return item
}

// CreateTestLedgerEntry creates a ledger entry with metadata marking it as
// test data.
func CreateTestLedgerEntry(userID int64, amount int64, reason entities.ReasonCode) *entities.LedgerEntry {
	return &entities.LedgerEntry{
		UserID:   userID,
		Amount:   amount,
		Reason:   reason,
		Metadata: map[string]any{"test": true},
	}
}
