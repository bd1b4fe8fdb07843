package repository

import (
	"context"
	"sync"
	"testing"

	"croupier/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_GetBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB, 1)
	ctx := context.Background()

	t.Run("unknown account reads zero", func(t *testing.T) {
		balance, err := repo.GetBalance(ctx, 999999)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("after credit", func(t *testing.T) {
		_, err := repo.Credit(ctx, 100, 1000)
		require.NoError(t, err)

		balance, err := repo.GetBalance(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), balance)
	})

	t.Run("guild scoping", func(t *testing.T) {
		otherGuild := NewAccountRepository(testDB.DB, 2)
		balance, err := otherGuild.GetBalance(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})
}

func TestAccountRepository_Credit(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB, 1)
	ctx := context.Background()

	// First credit lazily creates the account.
	balance, err := repo.Credit(ctx, 100, 700)
	require.NoError(t, err)
	assert.Equal(t, int64(700), balance)

	// Second credit accumulates.
	balance, err = repo.Credit(ctx, 100, 300)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)
}

func TestAccountRepository_TryDebit(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB, 1)
	ctx := context.Background()

	_, err := repo.Credit(ctx, 100, 1000)
	require.NoError(t, err)

	t.Run("covered debit succeeds", func(t *testing.T) {
		ok, balance, err := repo.TryDebit(ctx, 100, 400)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(600), balance)
	})

	t.Run("overdraw refused without side effects", func(t *testing.T) {
		ok, balance, err := repo.TryDebit(ctx, 100, 5000)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(600), balance, "refusal reports the unchanged balance")
	})

	t.Run("unknown account refused", func(t *testing.T) {
		ok, balance, err := repo.TryDebit(ctx, 31337, 1)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(0), balance)
	})
}

// Concurrent debits against one account must serialize on the row: with 1000
// in the account and ten racing debits of 300, exactly three can win.
func TestAccountRepository_ConcurrentDebits(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAccountRepository(testDB.DB, 1)
	ctx := context.Background()

	_, err := repo.Credit(ctx, 100, 1000)
	require.NoError(t, err)

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _, err := repo.TryDebit(ctx, 100, 300)
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	assert.Equal(t, 3, succeeded)

	balance, err := repo.GetBalance(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}
