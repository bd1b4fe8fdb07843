package testhelpers

import (
	"context"
	"sync"
	"time"

	"croupier/domain/entities"
	"croupier/domain/interfaces"
)

// FakeLedgerStore is an in-memory stand-in for the accounts, bank and ledger
// tables, shared by every unit of work a FakeUowFactory hands out. It gives
// session-engine tests real money movement without a database.
type FakeLedgerStore struct {
	mu       sync.Mutex
	Accounts map[int64]int64
	Bank     int64
	Ledger   []*entities.LedgerEntry
}

func NewFakeLedgerStore() *FakeLedgerStore {
	return &FakeLedgerStore{Accounts: make(map[int64]int64)}
}

// Balance returns a user's current balance.
func (f *FakeLedgerStore) Balance(userID int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Accounts[userID]
}

// BankBalance returns the bank's current balance.
func (f *FakeLedgerStore) BankBalance() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Bank
}

// FakeUowFactory creates units of work over a shared FakeLedgerStore.
type FakeUowFactory struct {
	Store *FakeLedgerStore
}

func (f *FakeUowFactory) CreateForGuild(guildID int64) interfaces.UnitOfWork {
	return &fakeUow{store: f.Store, guildID: guildID}
}

// fakeUow applies mutations to a scratch copy and publishes them on Commit,
// mirroring transactional semantics closely enough for engine tests.
type fakeUow struct {
	store   *FakeLedgerStore
	guildID int64

	begun    bool
	accounts map[int64]int64
	bank     int64
	ledger   []*entities.LedgerEntry
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	u.accounts = make(map[int64]int64, len(u.store.Accounts))
	for id, bal := range u.store.Accounts {
		u.accounts[id] = bal
	}
	u.bank = u.store.Bank
	u.ledger = nil
	u.begun = true
	return nil
}

func (u *fakeUow) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	u.store.Accounts = u.accounts
	u.store.Bank = u.bank
	u.store.Ledger = append(u.store.Ledger, u.ledger...)
	u.begun = false
	return nil
}

func (u *fakeUow) Rollback() error {
	u.begun = false
	return nil
}

func (u *fakeUow) mustBegun() {
	if !u.begun {
		panic("unit of work not started - call Begin() first")
	}
}

func (u *fakeUow) Accounts() interfaces.AccountRepository {
	u.mustBegun()
	return fakeAccountRepo{u}
}

func (u *fakeUow) Bank() interfaces.BankRepository {
	u.mustBegun()
	return fakeBankRepo{u}
}

func (u *fakeUow) Ledger() interfaces.LedgerRepository {
	u.mustBegun()
	return fakeLedgerRepo{u}
}

func (u *fakeUow) Audit() interfaces.AuditRecorder {
	u.mustBegun()
	return fakeAudit{u}
}

func (u *fakeUow) StoreItems() interfaces.StoreItemRepository { panic("not implemented in fake") }
func (u *fakeUow) Inventory() interfaces.InventoryRepository  { panic("not implemented in fake") }
func (u *fakeUow) Purchases() interfaces.PurchaseRepository   { panic("not implemented in fake") }

type fakeAccountRepo struct{ u *fakeUow }

func (r fakeAccountRepo) GetBalance(ctx context.Context, userID int64) (int64, error) {
	return r.u.accounts[userID], nil
}

func (r fakeAccountRepo) Credit(ctx context.Context, userID int64, amount int64) (int64, error) {
	r.u.accounts[userID] += amount
	return r.u.accounts[userID], nil
}

func (r fakeAccountRepo) TryDebit(ctx context.Context, userID int64, amount int64) (bool, int64, error) {
	balance := r.u.accounts[userID]
	if balance < amount {
		return false, balance, nil
	}
	r.u.accounts[userID] = balance - amount
	return true, balance - amount, nil
}

type fakeBankRepo struct{ u *fakeUow }

func (r fakeBankRepo) GetBalance(ctx context.Context) (int64, error) {
	return r.u.bank, nil
}

func (r fakeBankRepo) Add(ctx context.Context, delta int64) (int64, error) {
	r.u.bank += delta
	return r.u.bank, nil
}

func (r fakeBankRepo) TryDebit(ctx context.Context, amount int64) (bool, int64, error) {
	if r.u.bank < amount {
		return false, r.u.bank, nil
	}
	r.u.bank -= amount
	return true, r.u.bank, nil
}

type fakeLedgerRepo struct{ u *fakeUow }

func (r fakeLedgerRepo) Insert(ctx context.Context, entry *entities.LedgerEntry) error {
	entry.GuildID = r.u.guildID
	entry.CreatedAt = time.Now()
	r.u.ledger = append(r.u.ledger, entry)
	return nil
}

func (r fakeLedgerRepo) GetByUser(ctx context.Context, userID int64, limit int) ([]*entities.LedgerEntry, error) {
	var out []*entities.LedgerEntry
	for i := len(r.u.store.Ledger) - 1; i >= 0 && len(out) < limit; i-- {
		if r.u.store.Ledger[i].UserID == userID {
			out = append(out, r.u.store.Ledger[i])
		}
	}
	return out, nil
}

type fakeAudit struct{ u *fakeUow }

func (a fakeAudit) Record(entry *entities.LedgerEntry) {
	entry.GuildID = a.u.guildID
	entry.CreatedAt = time.Now()
	a.u.ledger = append(a.u.ledger, entry)
}
