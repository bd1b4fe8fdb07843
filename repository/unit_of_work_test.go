package repository

import (
	"context"
	"testing"

	"croupier/domain/entities"
	"croupier/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitFlushesAudit(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()

	uow := factory.CreateForGuild(1)
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.Accounts().Credit(ctx, 100, 1000)
	require.NoError(t, err)
	uow.Audit().Record(testutil.CreateTestLedgerEntry(100, 1000, entities.ReasonSeed))

	require.NoError(t, uow.Commit())

	// The mutation committed and the audit entry landed after it.
	balance, err := NewAccountRepository(testDB.DB, 1).GetBalance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	entries, err := NewLedgerRepository(testDB.DB, 1).GetByUser(ctx, 100, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.ReasonSeed, entries[0].Reason)
	assert.Equal(t, int64(1000), entries[0].Amount)
	assert.Equal(t, int64(1), entries[0].GuildID)
}

func TestUnitOfWork_RollbackDiscardsEverything(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	factory := NewUnitOfWorkFactory(testDB.DB)
	ctx := context.Background()

	uow := factory.CreateForGuild(1)
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.Accounts().Credit(ctx, 100, 1000)
	require.NoError(t, err)
	uow.Audit().Record(testutil.CreateTestLedgerEntry(100, 1000, entities.ReasonSeed))

	require.NoError(t, uow.Rollback())

	balance, err := NewAccountRepository(testDB.DB, 1).GetBalance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	entries, err := NewLedgerRepository(testDB.DB, 1).GetByUser(ctx, 100, 10)
	require.NoError(t, err)
	assert.Empty(t, entries, "rolled-back audit entries must never be written")
}

func TestUnitOfWork_RepositoriesPanicBeforeBegin(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	factory := NewUnitOfWorkFactory(testDB.DB)

	uow := factory.CreateForGuild(1)
	assert.Panics(t, func() { uow.Accounts() })
	assert.Panics(t, func() { uow.Purchases() })
}

func TestUnitOfWork_RollbackWithoutBeginIsNoop(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	factory := NewUnitOfWorkFactory(testDB.DB)

	uow := factory.CreateForGuild(1)
	assert.NoError(t, uow.Rollback())
}
