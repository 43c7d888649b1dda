package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ruralpay/accounts/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Accounts(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStore().Stores()

	created, err := stores.Accounts.Create(ctx, testAccount("acc-1", "100", 0))
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)

	_, err = stores.Accounts.Create(ctx, testAccount("acc-1", "100", 0))
	assert.ErrorIs(t, err, ErrAccountExists)

	t.Run("returned values are copies", func(t *testing.T) {
		account, err := stores.Accounts.FindByID(ctx, "acc-1")
		require.NoError(t, err)
		account.Balance = decimal.NewFromInt(1)
		*account.FeePerTransaction = decimal.NewFromInt(99)

		again, err := stores.Accounts.FindByID(ctx, "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "100", again.Balance.String())
		assert.Equal(t, "10", again.FeePerTransaction.String())
	})

	t.Run("save checks the version", func(t *testing.T) {
		account, err := stores.Accounts.FindByID(ctx, "acc-1")
		require.NoError(t, err)

		account.Balance = decimal.NewFromInt(80)
		saved, err := stores.Accounts.Save(ctx, account)
		require.NoError(t, err)
		assert.Equal(t, account.Version+1, saved.Version)

		// Same snapshot again is stale now.
		_, err = stores.Accounts.Save(ctx, account)
		assert.ErrorIs(t, err, ErrVersionConflict)
	})

	t.Run("save all is all or nothing", func(t *testing.T) {
		_, err := stores.Accounts.Create(ctx, testAccount("acc-2", "50", 0))
		require.NoError(t, err)

		first, err := stores.Accounts.FindByID(ctx, "acc-1")
		require.NoError(t, err)
		second, err := stores.Accounts.FindByID(ctx, "acc-2")
		require.NoError(t, err)

		second.Version = 99
		first.Balance = decimal.Zero
		err = stores.Accounts.SaveAll(ctx, first, second)
		assert.ErrorIs(t, err, ErrVersionConflict)

		unchanged, err := stores.Accounts.FindByID(ctx, "acc-1")
		require.NoError(t, err)
		assert.Equal(t, "80", unchanged.Balance.String())
	})

	t.Run("lookups", func(t *testing.T) {
		exists, err := stores.Accounts.ExistsByID(ctx, "acc-2")
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = stores.Accounts.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, ErrAccountNotFound)

		accounts, err := stores.Accounts.FindByCustomerAndType(ctx, "cust-1", models.AccountTypeChecking)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		assert.Equal(t, "acc-1", accounts[0].AccountID)
		assert.Equal(t, "acc-2", accounts[1].AccountID)
	})
}

func TestMemoryStore_Transactions(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStore().Stores()
	day := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	insert := func(id, source, destination string, at time.Time) {
		require.NoError(t, stores.Transactions.Insert(ctx, &models.Transaction{
			TransactionID:        id,
			Type:                 models.TransactionTypeDeposit,
			Amount:               decimal.NewFromInt(1),
			Date:                 at,
			SourceAccountID:      source,
			DestinationAccountID: destination,
		}))
	}
	insert("t1", "a", "", day.Add(time.Hour))
	insert("t2", "b", "a", day.Add(2*time.Hour))
	insert("t3", "a", "", day.AddDate(0, 0, 1))
	insert("t4", "a", "", day.Add(-time.Nanosecond))

	all, err := stores.Transactions.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	bySource, err := stores.Transactions.FindByAccountID(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, bySource, 3)

	count, err := stores.Transactions.CountBySourceBetween(ctx, "a", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = stores.Transactions.CountByAccountBetween(ctx, "a", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryStore_Cards(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	stores := mem.Stores()

	ids := models.AccountIDs{"b", "c"}
	mem.PutCard(&models.DebitCard{ID: "card-1", CardNumber: "4111", PrimaryAccountID: "a", AssociatedAccountIDs: ids})
	ids[0] = "changed"

	card, err := stores.Cards.FindByCardNumber(ctx, "4111")
	require.NoError(t, err)
	assert.Equal(t, models.AccountIDs{"b", "c"}, card.AssociatedAccountIDs)

	_, err = stores.Cards.FindByCardNumber(ctx, "0000")
	assert.ErrorIs(t, err, ErrCardNotFound)

	exists, err := stores.Cards.ExistsByID(ctx, "card-1")
	require.NoError(t, err)
	assert.True(t, exists)
}
