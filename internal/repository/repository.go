// Package repository holds the account, transaction, commission and debit-card stores.
// Postgres backs production; the in-memory store backs tests and local runs.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ruralpay/accounts/internal/models"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrCardNotFound    = errors.New("debit card not found")
	ErrAccountExists   = errors.New("account already exists")
	// ErrVersionConflict means the account changed since it was read.
	ErrVersionConflict = errors.New("optimistic lock failed")
)

// AccountStore persists accounts as versioned records.
type AccountStore interface {
	FindByID(ctx context.Context, accountID string) (*models.Account, error)
	ExistsByID(ctx context.Context, accountID string) (bool, error)
	FindByCustomerAndType(ctx context.Context, customerID string, accountType models.AccountType) ([]*models.Account, error)
	// Create inserts a new account at version 1.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	// Save writes the account if its stored version still equals account.Version and
	// returns the saved state with the bumped version.
	Save(ctx context.Context, account *models.Account) (*models.Account, error)
	// SaveAll is Save for several accounts as one atomic step. Rows are locked in
	// ascending account id order.
	SaveAll(ctx context.Context, accounts ...*models.Account) error
}

// TransactionStore is the append-only transaction log.
type TransactionStore interface {
	Insert(ctx context.Context, tx *models.Transaction) error
	FindAll(ctx context.Context) ([]models.Transaction, error)
	FindByAccountID(ctx context.Context, accountID string) ([]models.Transaction, error)
	// FindByAccountBetween returns transactions where the account is source or destination
	// and the date lies in [from, to).
	FindByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]models.Transaction, error)
	CountBySourceBetween(ctx context.Context, accountID string, from, to time.Time) (int, error)
	CountByAccountBetween(ctx context.Context, accountID string, from, to time.Time) (int, error)
}

// CommissionStore records charged fees.
type CommissionStore interface {
	Insert(ctx context.Context, commission *models.Commission) error
	FindByAccountBetween(ctx context.Context, accountID string, from, to time.Time) ([]models.Commission, error)
}

// CardStore resolves debit cards.
type CardStore interface {
	FindByID(ctx context.Context, cardID string) (*models.DebitCard, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*models.DebitCard, error)
	ExistsByID(ctx context.Context, cardID string) (bool, error)
}

// Stores bundles every store the services need.
type Stores struct {
	Accounts     AccountStore
	Transactions TransactionStore
	Commissions  CommissionStore
	Cards        CardStore
}
