package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/repository"
)

// TransactionRules decides whether a transaction may be posted against an account.
// It only reads: the account snapshot it is given plus the transaction history.
// Calendar windows consult both. The log can trail a posting whose account write already
// committed, while the account snapshot is versioned, so a retried posting always sees
// the movement that beat it.
type TransactionRules struct {
	transactions repository.TransactionStore
}

func NewTransactionRules(transactions repository.TransactionStore) *TransactionRules {
	return &TransactionRules{transactions: transactions}
}

// Validate runs the checks for the account's type against tx. tx.Date must already be
// set to the posting instant; calendar windows are taken from it.
func (r *TransactionRules) Validate(ctx context.Context, account *models.Account, tx *models.Transaction) error {
	switch account.AccountType {
	case models.AccountTypeSavings:
		return r.validateSavings(ctx, account, tx)
	case models.AccountTypeChecking:
		return checkBalanceFloor(account, tx)
	case models.AccountTypeFixedTerm:
		return r.validateFixedTerm(ctx, account, tx)
	default:
		return fmt.Errorf("%w: account type %q", ErrUnsupportedType, account.AccountType)
	}
}

func checkBalanceFloor(account *models.Account, tx *models.Transaction) error {
	if tx.Type == models.TransactionTypeWithdrawal && !account.Balance.IsPositive() {
		return violation(RuleBalanceFloor, "account %s has no positive balance to withdraw from", account.AccountID)
	}
	return nil
}

func (r *TransactionRules) validateSavings(ctx context.Context, account *models.Account, tx *models.Transaction) error {
	if err := checkBalanceFloor(account, tx); err != nil {
		return err
	}
	if account.MonthlyMovementLimit == nil {
		return nil
	}

	from, to := monthBounds(tx.Date)
	count, err := r.transactions.CountBySourceBetween(ctx, account.AccountID, from, to)
	if err != nil {
		return fmt.Errorf("count monthly movements: %w", err)
	}
	if recorded := account.MovementsInMonth(from); recorded > count {
		count = recorded
	}
	if count >= *account.MonthlyMovementLimit {
		return violation(RuleMonthlyLimit, "account %s reached its monthly limit of %d movements",
			account.AccountID, *account.MonthlyMovementLimit)
	}
	return nil
}

func (r *TransactionRules) validateFixedTerm(ctx context.Context, account *models.Account, tx *models.Transaction) error {
	if err := checkBalanceFloor(account, tx); err != nil {
		return err
	}
	if account.AllowedDayOfMonth == nil {
		return violation(RuleAllowedDay, "account %s has no allowed day configured", account.AccountID)
	}
	if tx.Date.Day() != *account.AllowedDayOfMonth {
		return violation(RuleAllowedDay, "account %s only allows movements on day %d of the month",
			account.AccountID, *account.AllowedDayOfMonth)
	}

	from, to := dayBounds(tx.Date)
	count, err := r.transactions.CountByAccountBetween(ctx, account.AccountID, from, to)
	if err != nil {
		return fmt.Errorf("count daily movements: %w", err)
	}
	if count > 0 || account.MovedBetween(from, to) {
		return violation(RuleOnePerDay, "account %s already has a movement on %s",
			account.AccountID, from.Format("2006-01-02"))
	}
	return nil
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	start := models.MonthStart(t)
	return start, start.AddDate(0, 1, 0)
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
