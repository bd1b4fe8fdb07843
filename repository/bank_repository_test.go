package repository

import (
	"context"
	"testing"

	"croupier/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBankRepository(testDB.DB, 1)
	ctx := context.Background()

	t.Run("missing row reads zero", func(t *testing.T) {
		balance, err := repo.GetBalance(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("add lazily creates the row", func(t *testing.T) {
		balance, err := repo.Add(ctx, 5000)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), balance)
	})

	t.Run("negative delta", func(t *testing.T) {
		balance, err := repo.Add(ctx, -2000)
		require.NoError(t, err)
		assert.Equal(t, int64(3000), balance)
	})

	t.Run("try debit covered", func(t *testing.T) {
		ok, balance, err := repo.TryDebit(ctx, 1000)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(2000), balance)
	})

	t.Run("try debit refused never partially pays", func(t *testing.T) {
		ok, balance, err := repo.TryDebit(ctx, 99999)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(2000), balance)
	})
}
