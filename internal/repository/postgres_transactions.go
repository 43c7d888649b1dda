package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ruralpay/accounts/internal/models"
)

const transactionColumns = `transaction_id, type, transaction_mode, amount, date, source_account_id, destination_account_id, is_by_card`

type PostgresTransactionStore struct {
	db *sql.DB
}

func NewPostgresTransactionStore(db *sql.DB) *PostgresTransactionStore {
	return &PostgresTransactionStore{db: db}
}

func (s *PostgresTransactionStore) Insert(ctx context.Context, tx *models.Transaction) error {
	var destination sql.NullString
	if tx.DestinationAccountID != "" {
		destination = sql.NullString{String: tx.DestinationAccountID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.TransactionID, string(tx.Type), string(tx.TransactionMode), tx.Amount, tx.Date,
		tx.SourceAccountID, destination, tx.IsByCard)
	if err != nil {
		return fmt.Errorf("insert transaction %s: %w", tx.TransactionID, err)
	}
	return nil
}

func (s *PostgresTransactionStore) FindAll(ctx context.Context) ([]models.Transaction, error) {
	return s.query(ctx, `SELECT `+transactionColumns+` FROM transactions ORDER BY date`)
}

func (s *PostgresTransactionStore) FindByAccountID(ctx context.Context, accountID string) ([]models.Transaction, error) {
	return s.query(ctx, `SELECT `+transactionColumns+` FROM transactions
		WHERE source_account_id = $1 ORDER BY date`, accountID)
}

func (s *PostgresTransactionStore) FindByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]models.Transaction, error) {
	return s.query(ctx, `SELECT `+transactionColumns+` FROM transactions
		WHERE (source_account_id = $1 OR destination_account_id = $1) AND date >= $2 AND date < $3
		ORDER BY date`, accountID, from, to)
}

func (s *PostgresTransactionStore) CountBySourceBetween(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions
		WHERE source_account_id = $1 AND date >= $2 AND date < $3`, accountID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions for %s: %w", accountID, err)
	}
	return count, nil
}

func (s *PostgresTransactionStore) CountByAccountBetween(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions
		WHERE (source_account_id = $1 OR destination_account_id = $1) AND date >= $2 AND date < $3`,
		accountID, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions for %s: %w", accountID, err)
	}
	return count, nil
}

func (s *PostgresTransactionStore) query(ctx context.Context, query string, args ...any) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var (
			t                 models.Transaction
			txType, mode      string
			destinationAcctID sql.NullString
		)
		if err := rows.Scan(&t.TransactionID, &txType, &mode, &t.Amount, &t.Date,
			&t.SourceAccountID, &destinationAcctID, &t.IsByCard); err != nil {
			return nil, err
		}
		t.Type = models.TransactionType(txType)
		t.TransactionMode = models.TransactionMode(mode)
		t.DestinationAccountID = destinationAcctID.String
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

type PostgresCommissionStore struct {
	db *sql.DB
}

func NewPostgresCommissionStore(db *sql.DB) *PostgresCommissionStore {
	return &PostgresCommissionStore{db: db}
}

func (s *PostgresCommissionStore) Insert(ctx context.Context, commission *models.Commission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO commissions (id, transaction_id, account_id, amount, date_time)
		VALUES ($1, $2, $3, $4, $5)`,
		commission.ID, commission.TransactionID, commission.AccountID, commission.Amount, commission.DateTime)
	if err != nil {
		return fmt.Errorf("insert commission for transaction %s: %w", commission.TransactionID, err)
	}
	return nil
}

func (s *PostgresCommissionStore) FindByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]models.Commission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, transaction_id, account_id, amount, date_time FROM commissions
		WHERE account_id = $1 AND date_time >= $2 AND date_time < $3
		ORDER BY date_time`, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query commissions for %s: %w", accountID, err)
	}
	defer rows.Close()

	var commissions []models.Commission
	for rows.Next() {
		var c models.Commission
		if err := rows.Scan(&c.ID, &c.TransactionID, &c.AccountID, &c.Amount, &c.DateTime); err != nil {
			return nil, err
		}
		commissions = append(commissions, c)
	}
	return commissions, rows.Err()
}
