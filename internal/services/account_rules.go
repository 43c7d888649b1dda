package services

import (
	"fmt"

	"github.com/ruralpay/accounts/internal/models"
)

// ValidateAccountStructure checks the fee and limit shape required by the account's type
// and returns the account with type-fixed fields normalised. It runs on create and update,
// never on the posting path.
func ValidateAccountStructure(account *models.Account) (*models.Account, error) {
	normalized := account.Clone()

	if account.MaintenanceFee != nil && account.MaintenanceFee.IsNegative() {
		return nil, violation(RuleAccountStructure, "maintenance fee cannot be negative")
	}
	if account.FeePerTransaction != nil && account.FeePerTransaction.IsNegative() {
		return nil, violation(RuleAccountStructure, "fee per transaction cannot be negative")
	}

	switch account.AccountType {
	case models.AccountTypeSavings:
		return normalized, validateSavingsStructure(account)
	case models.AccountTypeChecking:
		return normalized, validateCheckingStructure(account)
	case models.AccountTypeFixedTerm:
		if err := validateFixedTermStructure(account); err != nil {
			return nil, err
		}
		one := 1
		normalized.MovementLimit = &one
		return normalized, nil
	default:
		return nil, fmt.Errorf("%w: account type %q", ErrUnsupportedType, account.AccountType)
	}
}

func validateSavingsStructure(account *models.Account) error {
	if account.MaintenanceFee != nil && !account.MaintenanceFee.IsZero() {
		return violation(RuleAccountStructure, "savings accounts have no maintenance fee")
	}
	if account.MonthlyMovementLimit == nil || *account.MonthlyMovementLimit < 1 {
		return violation(RuleAccountStructure, "savings accounts need a monthly movement limit of at least 1")
	}
	if account.CustomerSubtype == models.CustomerSubtypeVIP &&
		(account.MinimumDailyAverage == nil || !account.MinimumDailyAverage.IsPositive()) {
		return violation(RuleAccountStructure, "VIP savings accounts need a positive minimum daily average")
	}
	return nil
}

func validateCheckingStructure(account *models.Account) error {
	if account.FeePerTransaction == nil || account.MovementLimit == nil {
		return violation(RuleAccountStructure, "checking accounts need a fee per transaction and a movement limit")
	}
	if *account.MovementLimit < 0 {
		return violation(RuleAccountStructure, "movement limit cannot be negative")
	}
	if account.MonthlyMovementLimit != nil {
		return violation(RuleAccountStructure, "checking accounts have no monthly movement limit")
	}
	if account.CustomerSubtype == models.CustomerSubtypePyme {
		if account.MaintenanceFee != nil && !account.MaintenanceFee.IsZero() {
			return violation(RuleAccountStructure, "PYME checking accounts have no maintenance fee")
		}
		return nil
	}
	if account.MaintenanceFee == nil {
		return violation(RuleAccountStructure, "checking accounts need a maintenance fee")
	}
	return nil
}

func validateFixedTermStructure(account *models.Account) error {
	if account.FeePerTransaction == nil {
		return violation(RuleAccountStructure, "fixed-term accounts need a fee per transaction")
	}
	if account.AllowedDayOfMonth == nil {
		return violation(RuleAccountStructure, "fixed-term accounts need an allowed day of month")
	}
	if day := *account.AllowedDayOfMonth; day < 1 || day > 31 {
		return violation(RuleAccountStructure, "allowed day of month must be between 1 and 31, got %d", day)
	}
	return nil
}
