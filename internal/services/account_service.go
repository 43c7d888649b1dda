package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/ruralpay/accounts/internal/audit"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/repository"
	"github.com/shopspring/decimal"
)

// AccountChanges holds the configuration fields an update may touch. Nil means unchanged.
// Balance, movement counter, type and owner are never updatable.
type AccountChanges struct {
	CustomerSubtype      *models.CustomerSubtype `json:"customerSubType,omitempty" validate:"omitempty,oneof=REGULAR VIP PYME"`
	MaintenanceFee       *decimal.Decimal        `json:"maintenanceFee,omitempty"`
	FeePerTransaction    *decimal.Decimal        `json:"feePerTransaction,omitempty"`
	MovementLimit        *int                    `json:"movementLimit,omitempty" validate:"omitempty,gte=0"`
	MonthlyMovementLimit *int                    `json:"monthlyMovementLimit,omitempty" validate:"omitempty,gte=1"`
	AllowedDayOfMonth    *int                    `json:"allowedDayOfMonth,omitempty" validate:"omitempty,min=1,max=31"`
	MinimumDailyAverage  *decimal.Decimal        `json:"minimumDailyAverage,omitempty"`
}

type AccountService struct {
	accounts repository.AccountStore
	audit    *audit.Logger
	newID    func() string
}

func NewAccountService(accounts repository.AccountStore, auditLogger *audit.Logger) *AccountService {
	return &AccountService{accounts: accounts, audit: auditLogger, newID: uuid.NewString}
}

// CreateAccount applies the customer rules, then the account-type rules, and stores the account
// with a zero movement counter.
func (s *AccountService) CreateAccount(ctx context.Context, account models.Account) (*models.Account, error) {
	if account.AccountID == "" {
		account.AccountID = s.newID()
	}
	if account.Balance.IsNegative() {
		return nil, violation(RuleAccountStructure, "opening balance cannot be negative")
	}
	account.TransactionMovements = 0
	account.Version = 0

	if err := s.checkCustomer(ctx, &account); err != nil {
		return nil, err
	}

	normalized, err := ValidateAccountStructure(&account)
	if err != nil {
		return nil, err
	}

	created, err := s.accounts.Create(ctx, normalized)
	if errors.Is(err, repository.ErrAccountExists) {
		return nil, violation(RuleAccountStructure, "account %s already exists", account.AccountID)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[ACCOUNT] Created %s account %s for customer %s", created.AccountType, created.AccountID, created.CustomerID)
	s.audit.LogAccountChange(created.AccountID, "CREATE")
	return created, nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}
	return account, err
}

// UpdateAccount changes configuration fields only. A concurrent posting bumps the version,
// in which case the caller gets ErrConcurrentModification and may resubmit.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, changes AccountChanges) (*models.Account, error) {
	current, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := current.Clone()
	if changes.CustomerSubtype != nil {
		updated.CustomerSubtype = *changes.CustomerSubtype
	}
	if changes.MaintenanceFee != nil {
		updated.MaintenanceFee = changes.MaintenanceFee
	}
	if changes.FeePerTransaction != nil {
		updated.FeePerTransaction = changes.FeePerTransaction
	}
	if changes.MovementLimit != nil {
		updated.MovementLimit = changes.MovementLimit
	}
	if changes.MonthlyMovementLimit != nil {
		updated.MonthlyMovementLimit = changes.MonthlyMovementLimit
	}
	if changes.AllowedDayOfMonth != nil {
		updated.AllowedDayOfMonth = changes.AllowedDayOfMonth
	}
	if changes.MinimumDailyAverage != nil {
		updated.MinimumDailyAverage = changes.MinimumDailyAverage
	}

	if err := checkSubtype(updated.CustomerType, updated.CustomerSubtype); err != nil {
		return nil, err
	}
	normalized, err := ValidateAccountStructure(updated)
	if err != nil {
		return nil, err
	}

	saved, err := s.accounts.Save(ctx, normalized)
	if errors.Is(err, repository.ErrVersionConflict) {
		return nil, fmt.Errorf("%w: account %s", ErrConcurrentModification, accountID)
	}
	if err != nil {
		return nil, err
	}

	s.audit.LogAccountChange(saved.AccountID, "UPDATE")
	return saved, nil
}

// AccountExists is used by the validation bridge.
func (s *AccountService) AccountExists(ctx context.Context, accountID string) (bool, error) {
	return s.accounts.ExistsByID(ctx, accountID)
}

// checkCustomer applies the personal or business creation rules.
func (s *AccountService) checkCustomer(ctx context.Context, account *models.Account) error {
	if account.CustomerID == "" {
		return violation(RuleCustomer, "customer id is required")
	}
	if err := checkSubtype(account.CustomerType, account.CustomerSubtype); err != nil {
		return err
	}

	switch account.CustomerType {
	case models.CustomerTypePersonal:
		if account.AccountType == models.AccountTypeFixedTerm {
			return nil
		}
		existing, err := s.accounts.FindByCustomerAndType(ctx, account.CustomerID, account.AccountType)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return violation(RuleAccountLimit, "personal customer %s already has a %s account",
				account.CustomerID, account.AccountType)
		}
		return nil
	case models.CustomerTypeBusiness:
		if account.AccountType != models.AccountTypeChecking {
			return violation(RuleAccountLimit, "business customers can only open checking accounts")
		}
		return nil
	default:
		return fmt.Errorf("%w: customer type %q", ErrUnsupportedType, account.CustomerType)
	}
}

func checkSubtype(customerType models.CustomerType, subtype models.CustomerSubtype) error {
	switch customerType {
	case models.CustomerTypePersonal:
		if subtype != models.CustomerSubtypeRegular && subtype != models.CustomerSubtypeVIP {
			return violation(RuleCustomer, "personal customers must be REGULAR or VIP, got %q", subtype)
		}
	case models.CustomerTypeBusiness:
		if subtype != models.CustomerSubtypeRegular && subtype != models.CustomerSubtypePyme {
			return violation(RuleCustomer, "business customers must be REGULAR or PYME, got %q", subtype)
		}
	default:
		return fmt.Errorf("%w: customer type %q", ErrUnsupportedType, customerType)
	}
	return nil
}
