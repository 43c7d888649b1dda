package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ruralpay/accounts/internal/models"
)

type PostgresCardStore struct {
	db *sql.DB
}

func NewPostgresCardStore(db *sql.DB) *PostgresCardStore {
	return &PostgresCardStore{db: db}
}

func (s *PostgresCardStore) FindByID(ctx context.Context, cardID string) (*models.DebitCard, error) {
	return s.findOne(ctx, `WHERE id = $1`, cardID)
}

func (s *PostgresCardStore) FindByCardNumber(ctx context.Context, cardNumber string) (*models.DebitCard, error) {
	return s.findOne(ctx, `WHERE card_number = $1`, cardNumber)
}

func (s *PostgresCardStore) ExistsByID(ctx context.Context, cardID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM debit_cards WHERE id = $1)`, cardID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check card %s: %w", cardID, err)
	}
	return exists, nil
}

func (s *PostgresCardStore) findOne(ctx context.Context, where string, arg string) (*models.DebitCard, error) {
	var (
		card       models.DebitCard
		expiration sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, card_number, expiration_date, primary_account_id, associated_account_ids
		FROM debit_cards `+where, arg).
		Scan(&card.ID, &card.CardNumber, &expiration, &card.PrimaryAccountID, &card.AssociatedAccountIDs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch card: %w", err)
	}
	if expiration.Valid {
		card.ExpirationDate = &expiration.Time
	}
	return &card, nil
}

// NewPostgresStores wires every Postgres-backed store onto one connection pool.
func NewPostgresStores(db *sql.DB) Stores {
	return Stores{
		Accounts:     NewPostgresAccountStore(db),
		Transactions: NewPostgresTransactionStore(db),
		Commissions:  NewPostgresCommissionStore(db),
		Cards:        NewPostgresCardStore(db),
	}
}
