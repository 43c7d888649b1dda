package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardRowColumns = []string{"id", "card_number", "expiration_date", "primary_account_id", "associated_account_ids"}

func TestPostgresCardStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewPostgresCardStore(db)
	ctx := context.Background()
	expires := time.Date(2028, time.December, 31, 0, 0, 0, 0, time.UTC)

	t.Run("find by number keeps fallback order", func(t *testing.T) {
		mock.ExpectQuery("FROM debit_cards WHERE card_number = \\$1").
			WithArgs("4111").
			WillReturnRows(sqlmock.NewRows(cardRowColumns).
				AddRow("card-1", "4111", expires, "acc-1", []byte(`["acc-3","acc-2"]`)))

		card, err := store.FindByCardNumber(ctx, "4111")
		require.NoError(t, err)
		assert.Equal(t, "acc-1", card.PrimaryAccountID)
		assert.Equal(t, []string{"acc-3", "acc-2"}, []string(card.AssociatedAccountIDs))
		require.NotNil(t, card.ExpirationDate)
		assert.True(t, expires.Equal(*card.ExpirationDate))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("find by id without associated accounts", func(t *testing.T) {
		mock.ExpectQuery("FROM debit_cards WHERE id = \\$1").
			WithArgs("card-2").
			WillReturnRows(sqlmock.NewRows(cardRowColumns).
				AddRow("card-2", "5500", nil, "acc-9", nil))

		card, err := store.FindByID(ctx, "card-2")
		require.NoError(t, err)
		assert.Empty(t, card.AssociatedAccountIDs)
		assert.Nil(t, card.ExpirationDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("FROM debit_cards WHERE id = \\$1").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := store.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrCardNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exists", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM debit_cards WHERE id = \\$1\\)").
			WithArgs("card-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := store.ExistsByID(ctx, "card-1")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
