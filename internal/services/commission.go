package services

import (
	"fmt"

	"github.com/ruralpay/accounts/internal/models"
	"github.com/shopspring/decimal"
)

// CommissionApplies reports whether the account's next movement is charged.
// The counter is compared before the current movement is counted.
func CommissionApplies(account *models.Account) bool {
	limit, ok := account.EffectiveMovementLimit()
	return ok && account.TransactionMovements >= limit
}

// CommissionFor returns the flat fee charged on the account's next movement, zero when free.
func CommissionFor(account *models.Account) decimal.Decimal {
	if !CommissionApplies(account) {
		return decimal.Zero
	}
	return account.Fee()
}

// applySingle returns the account state after posting tx against it alone.
func applySingle(account *models.Account, tx *models.Transaction, commission decimal.Decimal) (*models.Account, error) {
	available := account.Balance.Sub(commission)

	var balance decimal.Decimal
	switch tx.Type {
	case models.TransactionTypeDeposit:
		balance = available.Add(tx.Amount)
		if balance.IsNegative() {
			return nil, fmt.Errorf("%w on account %s", ErrCommissionShortfall, account.AccountID)
		}
	case models.TransactionTypeWithdrawal:
		if available.LessThan(tx.Amount) {
			return nil, fmt.Errorf("%w: account %s has %s available, needs %s",
				ErrInsufficientFunds, account.AccountID, available, tx.Amount)
		}
		balance = available.Sub(tx.Amount)
	default:
		return nil, fmt.Errorf("%w: transaction type %q", ErrUnsupportedType, tx.Type)
	}

	updated := account.Clone()
	updated.Balance = balance
	updated.TransactionMovements++
	updated.RecordMovement(tx.Date, true)
	return updated, nil
}

// applyTransfer returns source and destination after posting tx between them.
// Deposit moves money source -> destination, withdrawal pulls it destination -> source.
// The commission is always paid by the source.
func applyTransfer(source, destination *models.Account, tx *models.Transaction, commission decimal.Decimal) (*models.Account, *models.Account, error) {
	src := source.Clone()
	dst := destination.Clone()

	switch tx.Type {
	case models.TransactionTypeDeposit:
		totalDebit := tx.Amount.Add(commission)
		if source.Balance.LessThan(totalDebit) {
			return nil, nil, fmt.Errorf("%w: account %s has %s, needs %s including commission",
				ErrInsufficientFunds, source.AccountID, source.Balance, totalDebit)
		}
		src.Balance = source.Balance.Sub(totalDebit)
		dst.Balance = destination.Balance.Add(tx.Amount)
	case models.TransactionTypeWithdrawal:
		if destination.Balance.LessThan(tx.Amount) {
			return nil, nil, fmt.Errorf("%w: destination account %s has %s, needs %s",
				ErrInsufficientFunds, destination.AccountID, destination.Balance, tx.Amount)
		}
		if source.Balance.LessThan(commission) {
			return nil, nil, fmt.Errorf("%w on account %s", ErrCommissionShortfall, source.AccountID)
		}
		src.Balance = source.Balance.Add(tx.Amount).Sub(commission)
		dst.Balance = destination.Balance.Sub(tx.Amount)
	default:
		return nil, nil, fmt.Errorf("%w: transaction type %q", ErrUnsupportedType, tx.Type)
	}

	src.TransactionMovements++
	src.RecordMovement(tx.Date, true)
	dst.RecordMovement(tx.Date, false)
	return src, dst, nil
}
