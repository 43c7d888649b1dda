package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ruralpay/accounts/internal/models"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, account_type, customer_id, customer_type, customer_subtype, balance,
	maintenance_fee, fee_per_transaction, movement_limit, monthly_movement_limit, transaction_movements,
	allowed_day_of_month, minimum_daily_average, version, created_at, updated_at,
	last_movement_at, movement_month, monthly_movements`

type PostgresAccountStore struct {
	db *sql.DB
}

func NewPostgresAccountStore(db *sql.DB) *PostgresAccountStore {
	return &PostgresAccountStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresAccountStore) FindByID(ctx context.Context, accountID string) (*models.Account, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *PostgresAccountStore) ExistsByID(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE account_id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account %s: %w", accountID, err)
	}
	return exists, nil
}

func (s *PostgresAccountStore) FindByCustomerAndType(ctx context.Context, customerID string, accountType models.AccountType) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts
		WHERE customer_id = $1 AND account_type = $2
		ORDER BY account_id`, customerID, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("list accounts for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *PostgresAccountStore) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 1, $14, $14, NULL, NULL, 0)
		ON CONFLICT (account_id) DO NOTHING`,
		account.AccountID, string(account.AccountType), account.CustomerID, string(account.CustomerType),
		string(account.CustomerSubtype), account.Balance, nullDecimal(account.MaintenanceFee),
		nullDecimal(account.FeePerTransaction), nullInt(account.MovementLimit), nullInt(account.MonthlyMovementLimit),
		account.TransactionMovements, nullInt(account.AllowedDayOfMonth), nullDecimal(account.MinimumDailyAverage), now)
	if err != nil {
		return nil, fmt.Errorf("insert account %s: %w", account.AccountID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrAccountExists
	}

	saved := account.Clone()
	saved.Version = 1
	saved.CreatedAt = now
	saved.UpdatedAt = now
	return saved, nil
}

func (s *PostgresAccountStore) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	updatedAt, err := updateAccount(ctx, s.db, account)
	if err != nil {
		return nil, err
	}
	saved := account.Clone()
	saved.Version = account.Version + 1
	saved.UpdatedAt = updatedAt
	return saved, nil
}

func (s *PostgresAccountStore) SaveAll(ctx context.Context, accounts ...*models.Account) error {
	// Lock accounts in consistent order to prevent deadlocks
	ordered := append([]*models.Account(nil), accounts...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].AccountID < ordered[j].AccountID })

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin account save: %w", err)
	}
	defer tx.Rollback()

	for _, account := range ordered {
		if _, err := updateAccount(ctx, tx, account); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit account save: %w", err)
	}
	return nil
}

func updateAccount(ctx context.Context, ex execer, account *models.Account) (time.Time, error) {
	now := time.Now().UTC()
	result, err := ex.ExecContext(ctx, `
		UPDATE accounts
		SET balance = $1, transaction_movements = $2, customer_subtype = $3, maintenance_fee = $4,
			fee_per_transaction = $5, movement_limit = $6, monthly_movement_limit = $7,
			allowed_day_of_month = $8, minimum_daily_average = $9, last_movement_at = $10,
			movement_month = $11, monthly_movements = $12, version = version + 1, updated_at = $13
		WHERE account_id = $14 AND version = $15`,
		account.Balance, account.TransactionMovements, string(account.CustomerSubtype),
		nullDecimal(account.MaintenanceFee), nullDecimal(account.FeePerTransaction),
		nullInt(account.MovementLimit), nullInt(account.MonthlyMovementLimit),
		nullInt(account.AllowedDayOfMonth), nullDecimal(account.MinimumDailyAverage),
		nullTime(account.LastMovementAt), nullTime(account.MovementMonth), account.MonthlyMovements,
		now, account.AccountID, account.Version)
	if err != nil {
		return time.Time{}, fmt.Errorf("update account %s: %w", account.AccountID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return time.Time{}, err
	}
	if rowsAffected == 0 {
		return time.Time{}, fmt.Errorf("%w for account %s", ErrVersionConflict, account.AccountID)
	}
	return now, nil
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a                                          models.Account
		accountType, customerType, customerSubtype string
		maintenanceFee, fee, minAverage            decimal.NullDecimal
		movementLimit, monthlyLimit, allowedDay    sql.NullInt64
		lastMovement, movementMonth                sql.NullTime
	)
	err := row.Scan(&a.AccountID, &accountType, &a.CustomerID, &customerType, &customerSubtype, &a.Balance,
		&maintenanceFee, &fee, &movementLimit, &monthlyLimit, &a.TransactionMovements,
		&allowedDay, &minAverage, &a.Version, &a.CreatedAt, &a.UpdatedAt,
		&lastMovement, &movementMonth, &a.MonthlyMovements)
	if err != nil {
		return nil, err
	}
	a.AccountType = models.AccountType(accountType)
	a.CustomerType = models.CustomerType(customerType)
	a.CustomerSubtype = models.CustomerSubtype(customerSubtype)
	a.MaintenanceFee = decimalPtr(maintenanceFee)
	a.FeePerTransaction = decimalPtr(fee)
	a.MinimumDailyAverage = decimalPtr(minAverage)
	a.MovementLimit = intPtr(movementLimit)
	a.MonthlyMovementLimit = intPtr(monthlyLimit)
	a.AllowedDayOfMonth = intPtr(allowedDay)
	a.LastMovementAt = timePtr(lastMovement)
	a.MovementMonth = timePtr(movementMonth)
	return &a, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func intPtr(i sql.NullInt64) *int {
	if !i.Valid {
		return nil
	}
	v := int(i.Int64)
	return &v
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
