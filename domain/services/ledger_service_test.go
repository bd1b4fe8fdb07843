package services

import (
	"context"
	"testing"

	"croupier/domain/entities"
	"croupier/domain/interfaces"
	"croupier/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditUser(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(testhelpers.MockAccountRepository)
	bankRepo := new(testhelpers.MockBankRepository)
	audit := &testhelpers.RecordingAudit{}

	accountRepo.On("Credit", ctx, int64(123), int64(500)).Return(int64(1500), nil)

	svc := NewLedgerService(accountRepo, bankRepo, audit)
	newBalance, err := svc.CreditUser(ctx, 123, 500, entities.ReasonSeed, map[string]any{"source": "test"})

	require.NoError(t, err)
	assert.Equal(t, int64(1500), newBalance)
	require.Len(t, audit.Entries, 1)
	assert.Equal(t, int64(500), audit.Entries[0].Amount)
	assert.Equal(t, entities.ReasonSeed, audit.Entries[0].Reason)
	accountRepo.AssertExpectations(t)
}

func TestCreditUserRejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	svc := NewLedgerService(new(testhelpers.MockAccountRepository), new(testhelpers.MockBankRepository), &testhelpers.RecordingAudit{})

	_, err := svc.CreditUser(ctx, 123, 0, entities.ReasonSeed, nil)
	assert.Error(t, err)
	_, err = svc.CreditUser(ctx, 123, -5, entities.ReasonSeed, nil)
	assert.Error(t, err)
}

func TestTryDebitUserRefusedLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(testhelpers.MockAccountRepository)
	audit := &testhelpers.RecordingAudit{}

	accountRepo.On("TryDebit", ctx, int64(123), int64(1500)).Return(false, int64(1000), nil)

	svc := NewLedgerService(accountRepo, new(testhelpers.MockBankRepository), audit)
	result, err := svc.TryDebitUser(ctx, 123, 1500, entities.ReasonStake, nil)

	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, int64(1000), result.Balance)
	assert.Empty(t, audit.Entries, "refused debit must not write a ledger entry")
}

func TestTryDebitUserRecordsNegativeAmount(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(testhelpers.MockAccountRepository)
	audit := &testhelpers.RecordingAudit{}

	accountRepo.On("TryDebit", ctx, int64(123), int64(400)).Return(true, int64(600), nil)

	svc := NewLedgerService(accountRepo, new(testhelpers.MockBankRepository), audit)
	result, err := svc.TryDebitUser(ctx, 123, 400, entities.ReasonPurchase, nil)

	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, int64(600), result.Balance)
	require.Len(t, audit.Entries, 1)
	assert.Equal(t, int64(-400), audit.Entries[0].Amount)
}

func TestBankToUserIfEnough(t *testing.T) {
	ctx := context.Background()

	t.Run("bank covers it", func(t *testing.T) {
		accountRepo := new(testhelpers.MockAccountRepository)
		bankRepo := new(testhelpers.MockBankRepository)
		audit := &testhelpers.RecordingAudit{}

		bankRepo.On("TryDebit", ctx, int64(2000)).Return(true, int64(3000), nil)
		accountRepo.On("Credit", ctx, int64(123), int64(2000)).Return(int64(2000), nil)

		svc := NewLedgerService(accountRepo, bankRepo, audit)
		ok, err := svc.BankToUserIfEnough(ctx, 123, 2000, entities.ReasonGamePayout, nil)

		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, audit.Entries, 1)
		accountRepo.AssertExpectations(t)
		bankRepo.AssertExpectations(t)
	})

	t.Run("bank cannot cover it", func(t *testing.T) {
		accountRepo := new(testhelpers.MockAccountRepository)
		bankRepo := new(testhelpers.MockBankRepository)
		audit := &testhelpers.RecordingAudit{}

		bankRepo.On("TryDebit", ctx, int64(2000)).Return(false, int64(500), nil)

		svc := NewLedgerService(accountRepo, bankRepo, audit)
		ok, err := svc.BankToUserIfEnough(ctx, 123, 2000, entities.ReasonGamePayout, nil)

		require.NoError(t, err)
		assert.False(t, ok, "must never partially pay")
		assert.Empty(t, audit.Entries)
		accountRepo.AssertNotCalled(t, "Credit")
	})
}

func TestUserToBankMirrorsDebit(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(testhelpers.MockAccountRepository)
	bankRepo := new(testhelpers.MockBankRepository)
	audit := &testhelpers.RecordingAudit{}

	accountRepo.On("TryDebit", ctx, int64(123), int64(1020)).Return(true, int64(480), nil)
	bankRepo.On("Add", ctx, int64(1020)).Return(int64(1020), nil)

	svc := NewLedgerService(accountRepo, bankRepo, audit)
	result, err := svc.UserToBank(ctx, 123, 1020, entities.ReasonStake, nil)

	require.NoError(t, err)
	assert.True(t, result.OK)
	bankRepo.AssertExpectations(t)
}

func TestUserToBankRefusedSkipsBank(t *testing.T) {
	ctx := context.Background()
	accountRepo := new(testhelpers.MockAccountRepository)
	bankRepo := new(testhelpers.MockBankRepository)

	accountRepo.On("TryDebit", ctx, int64(123), int64(9999)).Return(false, int64(100), nil)

	svc := NewLedgerService(accountRepo, bankRepo, &testhelpers.RecordingAudit{})
	result, err := svc.UserToBank(ctx, 123, 9999, entities.ReasonStake, nil)

	require.NoError(t, err)
	assert.False(t, result.OK)
	bankRepo.AssertNotCalled(t, "Add")
}

// Seed, overdraw, then spend: the balance follows exactly the applied
// amounts and the overdraw is a no-op.
func TestLedgerSequenceAgainstFakeStore(t *testing.T) {
	ctx := context.Background()
	store := testhelpers.NewFakeLedgerStore()
	factory := &testhelpers.FakeUowFactory{Store: store}

	run := func(fn func(svc interfaces.LedgerService) error) {
		uow := factory.CreateForGuild(42)
		require.NoError(t, uow.Begin(ctx))
		svc := NewLedgerService(uow.Accounts(), uow.Bank(), uow.Audit())
		require.NoError(t, fn(svc))
		require.NoError(t, uow.Commit())
	}

	run(func(svc interfaces.LedgerService) error {
		balance, err := svc.CreditUser(ctx, 7, 1000, entities.ReasonSeed, nil)
		assert.Equal(t, int64(1000), balance)
		return err
	})

	run(func(svc interfaces.LedgerService) error {
		result, err := svc.TryDebitUser(ctx, 7, 1500, entities.ReasonStake, nil)
		assert.False(t, result.OK)
		assert.Equal(t, int64(1000), result.Balance)
		return err
	})
	assert.Equal(t, int64(1000), store.Balance(7))

	run(func(svc interfaces.LedgerService) error {
		result, err := svc.TryDebitUser(ctx, 7, 400, entities.ReasonStake, nil)
		assert.True(t, result.OK)
		assert.Equal(t, int64(600), result.Balance)
		return err
	})
	assert.Equal(t, int64(600), store.Balance(7))
}
