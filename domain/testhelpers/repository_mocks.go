package testhelpers

import (
	"context"
	"time"

	"croupier/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Credit(ctx context.Context, userID int64, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) TryDebit(ctx context.Context, userID int64, amount int64) (bool, int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// MockBankRepository is a mock implementation of BankRepository
type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) GetBalance(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankRepository) Add(ctx context.Context, delta int64) (int64, error) {
	args := m.Called(ctx, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBankRepository) TryDebit(ctx context.Context, amount int64) (bool, int64, error) {
	args := m.Called(ctx, amount)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Insert(ctx context.Context, entry *entities.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LedgerEntry), args.Error(1)
}

// MockStoreItemRepository is a mock implementation of StoreItemRepository
type MockStoreItemRepository struct {
	mock.Mock
}

func (m *MockStoreItemRepository) GetByItemID(ctx context.Context, itemID string) (*entities.StoreItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StoreItem), args.Error(1)
}

func (m *MockStoreItemRepository) GetByItemIDForUpdate(ctx context.Context, itemID string) (*entities.StoreItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.StoreItem), args.Error(1)
}

func (m *MockStoreItemRepository) Create(ctx context.Context, item *entities.StoreItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStoreItemRepository) ListEnabled(ctx context.Context) ([]*entities.StoreItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.StoreItem), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) Get(ctx context.Context, userID int64, itemID string) (*entities.InventoryEntry, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) AddQty(ctx context.Context, userID int64, itemID string, qty int, seedUses int) (*entities.InventoryEntry, error) {
	args := m.Called(ctx, userID, itemID, qty, seedUses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.InventoryEntry), args.Error(1)
}

func (m *MockInventoryRepository) ListByUser(ctx context.Context, userID int64) ([]*entities.InventoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.InventoryEntry), args.Error(1)
}

// MockPurchaseRepository is a mock implementation of PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, record *entities.PurchaseRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CountByUserAndItem(ctx context.Context, userID int64, itemID string) (int, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockPurchaseRepository) GetLastByUserAndItem(ctx context.Context, userID int64, itemID string) (*entities.PurchaseRecord, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PurchaseRecord), args.Error(1)
}

func (m *MockPurchaseRepository) SumQtySince(ctx context.Context, itemID string, since time.Time) (int, error) {
	args := m.Called(ctx, itemID, since)
	return args.Int(0), args.Error(1)
}

// MockAuditRecorder is a mock implementation of AuditRecorder. Most tests
// prefer RecordingAudit, which keeps the entries for assertions.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(entry *entities.LedgerEntry) {
	m.Called(entry)
}

// RecordingAudit collects audit entries so tests can assert on what was
// written without mock plumbing.
type RecordingAudit struct {
	Entries []*entities.LedgerEntry
}

func (r *RecordingAudit) Record(entry *entities.LedgerEntry) {
	r.Entries = append(r.Entries, entry)
}
