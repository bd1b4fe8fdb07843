package services

import (
	"context"
	"testing"
	"time"

	"croupier/config"
	"croupier/domain/entities"
	"croupier/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type purchaseFixture struct {
	storeItems *testhelpers.MockStoreItemRepository
	inventory  *testhelpers.MockInventoryRepository
	purchases  *testhelpers.MockPurchaseRepository
	accounts   *testhelpers.MockAccountRepository
	audit      *testhelpers.RecordingAudit
	svc        *purchaseService
	now        time.Time
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	config.SetTestConfig(config.NewTestConfig())
	t.Cleanup(config.ResetConfig)

	f := &purchaseFixture{
		storeItems: new(testhelpers.MockStoreItemRepository),
		inventory:  new(testhelpers.MockInventoryRepository),
		purchases:  new(testhelpers.MockPurchaseRepository),
		accounts:   new(testhelpers.MockAccountRepository),
		audit:      &testhelpers.RecordingAudit{},
		now:        time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
	}
	ledger := NewLedgerService(f.accounts, new(testhelpers.MockBankRepository), f.audit)
	f.svc = &purchaseService{
		storeItemRepo: f.storeItems,
		inventoryRepo: f.inventory,
		purchaseRepo:  f.purchases,
		ledger:        ledger,
		now:           func() time.Time { return f.now },
	}
	return f
}

func testItem(mutate func(*entities.StoreItem)) *entities.StoreItem {
	item := &entities.StoreItem{
		ItemID:    "trinket",
		Name:      "Trinket",
		Price:     500,
		Kind:      entities.ItemKindConsumable,
		Stackable: true,
		Enabled:   true,
	}
	if mutate != nil {
		mutate(item)
	}
	return item
}

func TestPurchaseItemSuccess(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)
	item := testItem(nil)

	f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
	f.accounts.On("TryDebit", ctx, int64(42), int64(1000)).Return(true, int64(4000), nil)
	f.inventory.On("AddQty", ctx, int64(42), "trinket", 2, 0).
		Return(&entities.InventoryEntry{UserID: 42, ItemID: "trinket", Qty: 2}, nil)
	f.purchases.On("Create", ctx, mock.MatchedBy(func(r *entities.PurchaseRecord) bool {
		return r.UserID == 42 && r.Qty == 2 && r.TotalPrice == 1000
	})).Return(nil)

	result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 2, nil)

	require.NoError(t, err)
	require.False(t, result.Declined())
	assert.Equal(t, 2, result.QtyBought)
	assert.Equal(t, int64(1000), result.TotalPrice)
	assert.Equal(t, int64(4000), result.NewBalance)
	require.Len(t, f.audit.Entries, 1)
	assert.Equal(t, entities.ReasonPurchase, f.audit.Entries[0].Reason)
	f.purchases.AssertExpectations(t)
}

func TestPurchaseItemDeclines(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown item", func(t *testing.T) {
		f := newPurchaseFixture(t)
		f.storeItems.On("GetByItemIDForUpdate", ctx, "ghost").Return(nil, nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "ghost", 1, nil)
		require.NoError(t, err)
		require.True(t, result.Declined())
		assert.Equal(t, entities.DeclineNotFound, result.Decline.Code)
	})

	t.Run("disabled item", func(t *testing.T) {
		f := newPurchaseFixture(t)
		item := testItem(func(i *entities.StoreItem) { i.Enabled = false })
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.DeclineDisabled, result.Decline.Code)
	})

	t.Run("bad price", func(t *testing.T) {
		f := newPurchaseFixture(t)
		item := testItem(func(i *entities.StoreItem) { i.Price = 0 })
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.DeclineBadPrice, result.Decline.Code)
	})

	t.Run("one-time item already bought", func(t *testing.T) {
		f := newPurchaseFixture(t)
		item := testItem(func(i *entities.StoreItem) { i.MaxPurchaseEver = 1 })
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
		f.purchases.On("CountByUserAndItem", ctx, int64(42), "trinket").Return(1, nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.DeclineMaxPurchaseEver, result.Decline.Code)
	})

	t.Run("cooldown active with remaining time", func(t *testing.T) {
		f := newPurchaseFixture(t)
		item := testItem(func(i *entities.StoreItem) { i.CooldownSeconds = 3600 })
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
		f.purchases.On("GetLastByUserAndItem", ctx, int64(42), "trinket").
			Return(&entities.PurchaseRecord{CreatedAt: f.now.Add(-10 * time.Minute)}, nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.DeclineCooldown, result.Decline.Code)
		assert.Equal(t, 50*time.Minute, result.Decline.CooldownRemaining)
	})

	t.Run("cooldown elapsed proceeds", func(t *testing.T) {
		f := newPurchaseFixture(t)
		item := testItem(func(i *entities.StoreItem) { i.CooldownSeconds = 3600 })
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
		f.purchases.On("GetLastByUserAndItem", ctx, int64(42), "trinket").
			Return(&entities.PurchaseRecord{CreatedAt: f.now.Add(-2 * time.Hour)}, nil)
		f.accounts.On("TryDebit", ctx, int64(42), int64(500)).Return(true, int64(500), nil)
		f.inventory.On("AddQty", ctx, int64(42), "trinket", 1, 0).
			Return(&entities.InventoryEntry{Qty: 1}, nil)
		f.purchases.On("Create", ctx, mock.Anything).Return(nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.False(t, result.Declined())
	})

	t.Run("daily stock sold out", func(t *testing.T) {
		f := newPurchaseFixture(t)
		item := testItem(func(i *entities.StoreItem) { i.DailyStock = 1 })
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
		f.purchases.On("SumQtySince", ctx, "trinket", mock.Anything).Return(1, nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.DeclineSoldOutDaily, result.Decline.Code)
		assert.Equal(t, 0, result.Decline.RemainingStock)
	})

	t.Run("max owned reached", func(t *testing.T) {
		f := newPurchaseFixture(t)
		item := testItem(func(i *entities.StoreItem) { i.MaxOwned = 1 })
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
		f.inventory.On("Get", ctx, int64(42), "trinket").
			Return(&entities.InventoryEntry{Qty: 1}, nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.DeclineMaxOwned, result.Decline.Code)
	})

	t.Run("insufficient funds with balance context", func(t *testing.T) {
		f := newPurchaseFixture(t)
		f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(testItem(nil), nil)
		f.accounts.On("TryDebit", ctx, int64(42), int64(500)).Return(false, int64(120), nil)

		result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
		require.NoError(t, err)
		assert.Equal(t, entities.DeclineInsufficientFunds, result.Decline.Code)
		assert.Equal(t, int64(120), result.Decline.CurrentBalance)
		assert.Empty(t, f.audit.Entries, "decline must leave no ledger trace")
		f.inventory.AssertNotCalled(t, "AddQty")
		f.purchases.AssertNotCalled(t, "Create")
	})
}

// Non-stackable and uses-tracked items are bought one at a time no matter
// what quantity was requested.
func TestPurchaseItemClampsQty(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)
	item := testItem(func(i *entities.StoreItem) {
		i.Stackable = false
		i.MaxUses = 3
	})

	f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
	f.accounts.On("TryDebit", ctx, int64(42), int64(500)).Return(true, int64(500), nil)
	f.inventory.On("AddQty", ctx, int64(42), "trinket", 1, 3).
		Return(&entities.InventoryEntry{Qty: 1, UsesRemaining: 3}, nil)
	f.purchases.On("Create", ctx, mock.Anything).Return(nil)

	result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 5, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, result.QtyBought)
	assert.Equal(t, int64(500), result.TotalPrice)
	assert.Equal(t, 3, result.UsesRemaining)
}

// Daily stock is checked against the configured reset boundary, not a
// calendar midnight.
func TestPurchaseItemDailyBoundary(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)
	item := testItem(func(i *entities.StoreItem) { i.DailyStock = 3 })

	// Reset hour is 14 UTC and the fixture clock reads 18:00, so the window
	// opened at 14:00 today.
	expectedBoundary := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)

	f.storeItems.On("GetByItemIDForUpdate", ctx, "trinket").Return(item, nil)
	f.purchases.On("SumQtySince", ctx, "trinket", mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(expectedBoundary)
	})).Return(2, nil)
	f.accounts.On("TryDebit", ctx, int64(42), int64(500)).Return(true, int64(500), nil)
	f.inventory.On("AddQty", ctx, int64(42), "trinket", 1, 0).
		Return(&entities.InventoryEntry{Qty: 1}, nil)
	f.purchases.On("Create", ctx, mock.Anything).Return(nil)

	result, err := f.svc.PurchaseItem(ctx, 42, "trinket", 1, nil)
	require.NoError(t, err)
	assert.False(t, result.Declined())
	f.purchases.AssertExpectations(t)
}
